package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/voicetask/internal/session"
	"github.com/marcus/voicetask/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive task prompt",
	Long: `Open the interactive terminal UI: a live task list plus a prompt that
accepts the same free-form commands as the voice path ("add buy milk",
"complete 3", "list tasks").

External changes to the tasks file show up live, and scheduled backups
run if configured.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	// The event handler needs the program to deliver messages, and the
	// program needs the model, which needs the coordinator. Events only
	// fire once commands are submitted, so filling in the pointer after
	// construction is safe.
	var program *tea.Program

	a, err := setupApp(cmd, session.WithEvents(func(ev session.Event) {
		if program == nil || ev.Type != session.EventFinished {
			return
		}
		line := fmt.Sprintf("%s → %s", ev.Raw, ev.Status)
		if ev.Err != nil {
			line = fmt.Sprintf("%s → error: %v", ev.Raw, ev.Err)
		}
		program.Send(ui.ActivityMsg{Line: line})
	}))
	if err != nil {
		return err
	}
	defer a.close()

	logger := a.logger.WithComponent("repl")

	initial, err := a.coord.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	model := ui.New(a.coord, initial)
	program = tea.NewProgram(model)

	watcher, err := watchTasksFile(a.store.Path(), logger, func() {
		program.Send(ui.ReloadMsg{})
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	backupRunner, err := startBackup(a.cfg, a.store.Path(), a.logger)
	if err != nil {
		return err
	}
	if backupRunner != nil {
		defer backupRunner.Stop()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
