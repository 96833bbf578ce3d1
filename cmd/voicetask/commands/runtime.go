package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/marcus/voicetask/internal/backup"
	"github.com/marcus/voicetask/internal/config"
	"github.com/marcus/voicetask/internal/logging"
)

// watchTasksFile watches the tasks file's directory and invokes
// onChange whenever the file is written or replaced. Watching the
// directory instead of the file survives the store's atomic
// rename-over-save. Close the returned watcher to stop.
func watchTasksFile(tasksPath string, logger *logging.Logger, onChange func()) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	dir := filepath.Dir(tasksPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != tasksPath {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					onChange()
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Err(err).Msg("tasks file watcher")
			}
		}
	}()

	return watcher, nil
}

// startBackup starts the scheduled backup runner if one is configured.
// Returns nil when backups are disabled.
func startBackup(cfg *config.Config, tasksPath string, logger *logging.Logger) (*backup.Runner, error) {
	if cfg.Backup.Schedule == "" {
		return nil, nil
	}

	runner, err := backup.New(tasksPath, cfg.Backup.Dir, cfg.Backup.Keep, cfg.Backup.Schedule,
		logger.WithComponent("backup"))
	if err != nil {
		return nil, err
	}
	runner.Start()
	return runner, nil
}
