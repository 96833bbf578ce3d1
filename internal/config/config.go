// Package config handles loading and validating voicetask
// configuration. Supports YAML config files and environment variable
// overrides (VOICETASK_*).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/marcus/voicetask/internal/history"
	"github.com/marcus/voicetask/internal/logging"
	"github.com/marcus/voicetask/internal/store"
)

// Config holds all voicetask configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Log     LogConfig     `mapstructure:"log"`
	History HistoryConfig `mapstructure:"history"`
	Backup  BackupConfig  `mapstructure:"backup"`
}

// DataConfig locates the tasks file.
type DataConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig mirrors logging.Config.
type LogConfig struct {
	Level         string `mapstructure:"level"`
	Path          string `mapstructure:"path"`
	Format        string `mapstructure:"format"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// HistoryConfig controls the command history ledger.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// BackupConfig controls scheduled snapshots of the tasks file. An
// empty schedule disables backups.
type BackupConfig struct {
	Schedule string `mapstructure:"schedule"` // cron expression
	Dir      string `mapstructure:"dir"`
	Keep     int    `mapstructure:"keep"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "voicetask", "config.yaml")
}

// DefaultBackupDir returns the default backup directory.
func DefaultBackupDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "voicetask", "backups")
}

// Load reads configuration from the given file (DefaultPath when
// empty) and the environment. A missing config file is fine; every
// setting has a default.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("VOICETASK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	logDefaults := logging.DefaultConfig()
	v.SetDefault("data.path", store.DefaultPath())
	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.path", logDefaults.Path)
	v.SetDefault("log.format", logDefaults.Format)
	v.SetDefault("log.retention_days", logDefaults.RetentionDays)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", history.DefaultPath())
	v.SetDefault("backup.schedule", "")
	v.SetDefault("backup.dir", DefaultBackupDir())
	v.SetDefault("backup.keep", 10)

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoggingConfig converts the log section for logging.Init.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:         c.Log.Level,
		Path:          c.Log.Path,
		Format:        c.Log.Format,
		RetentionDays: c.Log.RetentionDays,
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid log.format %q (want json or text)", c.Log.Format)
	}
	if c.Backup.Keep < 1 {
		return fmt.Errorf("invalid backup.keep %d (want >= 1)", c.Backup.Keep)
	}
	return nil
}
