package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marcus/voicetask/internal/session"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Read commands line by line from stdin",
	Long: `Run the headless listening path: read newline-delimited command text
from standard input, typically piped from a speech recognizer, and
print each result.

The tasks file is watched while listening, so edits made by another
process are picked up. If backup.schedule is configured, scheduled
backups run too.`,
	Args: cobra.NoArgs,
	RunE: runListen,
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	logger := a.logger.WithComponent("listen")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := watchTasksFile(a.store.Path(), logger, func() {
		if rerr := a.coord.Reload(context.Background()); rerr != nil {
			logger.Err(rerr).Msg("reloading tasks file")
		}
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

	logger.Info("listening on stdin")

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			res, err := a.coord.Submit(ctx, line)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, session.ErrClosed) {
					return nil
				}
				return err
			}
			fmt.Println(res.Message)
		}
	}
}
