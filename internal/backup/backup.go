// Package backup snapshots the tasks file on a cron schedule so a
// corrupted or fat-fingered tasks.json can be recovered.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/marcus/voicetask/internal/logging"
)

// Runner copies the tasks file into a backup directory on a schedule
// and prunes old copies.
type Runner struct {
	srcPath string
	dir     string
	keep    int
	cron    *cron.Cron
	logger  *logging.Logger
}

// New creates a Runner. schedule is a standard 5-field cron expression.
func New(srcPath, dir string, keep int, schedule string, logger *logging.Logger) (*Runner, error) {
	if keep < 1 {
		keep = 1
	}
	r := &Runner{
		srcPath: srcPath,
		dir:     dir,
		keep:    keep,
		cron:    cron.New(),
		logger:  logger,
	}

	if _, err := r.cron.AddFunc(schedule, func() {
		if err := r.RunOnce(); err != nil {
			r.logger.Err(err).Msg("scheduled backup failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start begins running the schedule in the background.
func (r *Runner) Start() {
	r.cron.Start()
	r.logger.Info("backup schedule started")
}

// Stop halts the schedule. A backup already in progress completes.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// RunOnce takes a single backup immediately.
func (r *Runner) RunOnce() error {
	raw, err := os.ReadFile(r.srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // nothing to back up yet
		}
		return fmt.Errorf("reading tasks file: %w", err)
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("creating backup dir: %w", err)
	}

	name := fmt.Sprintf("tasks-%s.json", time.Now().Format("20060102-150405"))
	dst := filepath.Join(r.dir, name)
	if err := os.WriteFile(dst, raw, 0644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}

	r.logger.Debugf("wrote backup %s", dst)
	return r.prune()
}

// prune deletes the oldest backups beyond the keep limit.
func (r *Runner) prune() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading backup dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "tasks-") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}

	// Timestamped names sort chronologically.
	sort.Strings(names)
	for len(names) > r.keep {
		if err := os.Remove(filepath.Join(r.dir, names[0])); err != nil {
			return fmt.Errorf("pruning backup %s: %w", names[0], err)
		}
		names = names[1:]
	}
	return nil
}
