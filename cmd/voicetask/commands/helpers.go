package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/voicetask/internal/config"
	"github.com/marcus/voicetask/internal/history"
	"github.com/marcus/voicetask/internal/logging"
	"github.com/marcus/voicetask/internal/session"
	"github.com/marcus/voicetask/internal/store"
)

// app bundles everything a command needs: config, the store behind its
// coordinator, and the optional history ledger.
type app struct {
	cfg    *config.Config
	store  *store.Store
	ledger *history.Ledger
	coord  *session.Coordinator
	logger *logging.Logger
}

// loadConfig reads config honoring the --config and --data flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataPath, _ := cmd.Flags().GetString("data"); dataPath != "" {
		cfg.Data.Path = dataPath
	}
	return cfg, nil
}

// setupApp loads config, initializes logging, opens the store and
// history ledger, and starts a coordinator. Call app.close when done.
func setupApp(cmd *cobra.Command, opts ...session.Option) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if err := logging.Init(cfg.LoggingConfig()); err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	logger := logging.Get().WithComponent("cli")

	st, err := store.New(cfg.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("opening task store: %w", err)
	}

	var ledger *history.Ledger
	if cfg.History.Enabled {
		ledger, err = history.Open(cfg.History.Path)
		if err != nil {
			// The tracker works without its ledger; say so and move on.
			logger.Err(err).Msg("opening command history")
			ledger = nil
		}
	}

	if ledger != nil {
		opts = append(opts, session.WithRecorder(ledger))
	}
	opts = append(opts, session.WithWarnf(logger.Warnf))

	return &app{
		cfg:    cfg,
		store:  st,
		ledger: ledger,
		coord:  session.New(st, opts...),
		logger: logger,
	}, nil
}

// close tears the app down: queued submissions are cancelled, the
// in-flight one (if any) completes first.
func (a *app) close() {
	a.coord.Close()
	if a.ledger != nil {
		_ = a.ledger.Close()
	}
}
