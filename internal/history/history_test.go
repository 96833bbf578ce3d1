package history

import (
	"path/filepath"
	"testing"

	"github.com/marcus/voicetask/internal/command"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := newTestLedger(t)

	cmds := []struct {
		raw    string
		intent command.IntentKind
		status command.Status
	}{
		{"add buy milk", command.IntentAdd, command.StatusSuccess},
		{"complete 1", command.IntentComplete, command.StatusSuccess},
		{"frobnicate", command.IntentUnrecognized, command.StatusUnrecognized},
	}
	for _, c := range cmds {
		if err := l.RecordCommand(c.raw, c.intent, c.status, "msg"); err != nil {
			t.Fatalf("RecordCommand(%q) error = %v", c.raw, err)
		}
	}

	entries, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent() = %d entries, want 3", len(entries))
	}

	// Newest first.
	if entries[0].RawText != "frobnicate" {
		t.Errorf("entries[0].RawText = %q, want frobnicate", entries[0].RawText)
	}
	if entries[2].RawText != "add buy milk" {
		t.Errorf("entries[2].RawText = %q, want add buy milk", entries[2].RawText)
	}
	if entries[0].Intent != "unrecognized" || entries[0].Status != "unrecognized" {
		t.Errorf("entries[0] intent/status = %q/%q", entries[0].Intent, entries[0].Status)
	}
	if entries[0].SubmittedAt.IsZero() {
		t.Error("entries[0].SubmittedAt is zero")
	}
}

func TestRecentLimit(t *testing.T) {
	l := newTestLedger(t)

	for i := 0; i < 5; i++ {
		if err := l.RecordCommand("list tasks", command.IntentList, command.StatusSuccess, ""); err != nil {
			t.Fatalf("RecordCommand() error = %v", err)
		}
	}

	entries, err := l.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Recent(2) = %d entries, want 2", len(entries))
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := l.RecordCommand("add buy milk", command.IntentAdd, command.StatusSuccess, ""); err != nil {
		t.Fatalf("RecordCommand() error = %v", err)
	}
	l.Close()

	// Migrations must be idempotent across reopens.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() reopen error = %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Recent() after reopen = %d entries, want 1", len(entries))
	}
}
