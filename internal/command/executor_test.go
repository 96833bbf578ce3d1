package command

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/voicetask/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "tasks.json"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	return s
}

func execute(t *testing.T, st *store.Store, raw string) Result {
	t.Helper()
	res, err := Execute(Interpret(raw), st)
	if err != nil {
		t.Fatalf("Execute(%q) error = %v", raw, err)
	}
	return res
}

func TestExecuteAdd(t *testing.T) {
	st := newTestStore(t)

	res := execute(t, st, "add buy groceries")
	if res.Status != StatusSuccess {
		t.Fatalf("Status = %v, want success", res.Status)
	}
	if res.Message != "Added task 1: buy groceries" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestExecuteAddInvalidDescription(t *testing.T) {
	st := newTestStore(t)

	// Only reachable with a hand-built intent: the interpreter already
	// rejects "add" with a blank remainder.
	res, err := Execute(Intent{Kind: IntentAdd, Description: "   "}, st)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Status != StatusInvalid {
		t.Errorf("Status = %v, want invalid", res.Status)
	}
}

func TestExecuteCompleteByID(t *testing.T) {
	st := newTestStore(t)
	execute(t, st, "add buy groceries")

	res := execute(t, st, "complete 1")
	if res.Status != StatusSuccess {
		t.Fatalf("Status = %v, want success", res.Status)
	}
	if res.Message != "Completed task 1: buy groceries" {
		t.Errorf("Message = %q", res.Message)
	}

	task, _ := st.Find(1)
	if !task.Completed {
		t.Error("task not completed in store")
	}
}

func TestExecuteCompleteByIDNotFound(t *testing.T) {
	st := newTestStore(t)

	res := execute(t, st, "complete 9")
	if res.Status != StatusNotFound {
		t.Fatalf("Status = %v, want not_found", res.Status)
	}
	if res.Message != "Task 9 not found" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestExecuteDeleteByDescription(t *testing.T) {
	st := newTestStore(t)
	execute(t, st, "add buy milk")
	execute(t, st, "add walk dog")

	res := execute(t, st, "delete walk")
	if res.Status != StatusSuccess {
		t.Fatalf("Status = %v, want success", res.Status)
	}
	if st.Len() != 1 {
		t.Errorf("store has %d tasks after delete, want 1", st.Len())
	}
}

func TestExecuteDescriptionNotFound(t *testing.T) {
	st := newTestStore(t)

	res := execute(t, st, "delete finish report")
	if res.Status != StatusNotFound {
		t.Fatalf("Status = %v, want not_found", res.Status)
	}
	if res.Message != "No task matching 'finish report'" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestExecuteAmbiguousMutatesNothing(t *testing.T) {
	st := newTestStore(t)
	execute(t, st, "add buy milk")
	execute(t, st, "add buy bread")

	res := execute(t, st, "complete buy")
	if res.Status != StatusAmbiguous {
		t.Fatalf("Status = %v, want ambiguous", res.Status)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("Matches = %d, want 2", len(res.Matches))
	}
	for _, want := range []string{"1: buy milk", "2: buy bread"} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("Message = %q, missing %q", res.Message, want)
		}
	}

	// Neither candidate changed.
	for _, task := range st.List() {
		if task.Completed {
			t.Errorf("task %d completed despite ambiguity", task.ID)
		}
	}
}

func TestExecuteList(t *testing.T) {
	st := newTestStore(t)

	res := execute(t, st, "list tasks")
	if res.Status != StatusSuccess {
		t.Fatalf("Status = %v, want success", res.Status)
	}
	if len(res.Tasks) != 0 {
		t.Errorf("Tasks = %d, want 0", len(res.Tasks))
	}
	if res.Message != "Your task list is empty" {
		t.Errorf("Message = %q", res.Message)
	}

	execute(t, st, "add buy milk")
	execute(t, st, "add walk dog")

	res = execute(t, st, "list tasks")
	if len(res.Tasks) != 2 {
		t.Fatalf("Tasks = %d, want 2", len(res.Tasks))
	}
	if res.Tasks[0].Description != "buy milk" || res.Tasks[1].Description != "walk dog" {
		t.Errorf("list order = %q, %q", res.Tasks[0].Description, res.Tasks[1].Description)
	}
}

func TestExecuteUnrecognized(t *testing.T) {
	st := newTestStore(t)
	execute(t, st, "add buy milk")

	res := execute(t, st, "frobnicate")
	if res.Status != StatusUnrecognized {
		t.Fatalf("Status = %v, want unrecognized", res.Status)
	}
	if !strings.Contains(res.Message, "frobnicate") {
		t.Errorf("Message = %q, should echo the raw text", res.Message)
	}
	if st.Len() != 1 {
		t.Error("unrecognized command mutated the store")
	}
}
