// Package commands implements the voicetask CLI commands using cobra.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "voicetask",
	Short: "Task tracker driven by free-form commands",
	Long: `Voicetask manages a to-do list through plain-language commands like
"add buy milk", "complete 3", or "delete finish report", whether they
arrive typed, piped from a speech recognizer, or through the built-in
interactive prompt.`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file path (default ~/.config/voicetask/config.yaml)")
	rootCmd.PersistentFlags().String("data", "", "Tasks file path (overrides config)")
}
