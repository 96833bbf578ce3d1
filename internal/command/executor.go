package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marcus/voicetask/internal/store"
)

// Execute applies an intent to the store and produces a Result.
// Business-level conditions (not found, ambiguous, invalid input,
// unrecognized command) are Result statuses; only infrastructure
// failures, such as a persist that could not reach disk, return an error.
func Execute(intent Intent, st *store.Store) (Result, error) {
	switch intent.Kind {
	case IntentAdd:
		return executeAdd(intent, st)
	case IntentComplete:
		return executeMutation(intent, st, "Completed", st.Complete)
	case IntentDelete:
		return executeMutation(intent, st, "Deleted", st.Delete)
	case IntentList:
		return executeList(st), nil
	default:
		return Result{
			Status:  StatusUnrecognized,
			Message: fmt.Sprintf("Sorry, I didn't understand %q", intent.Raw),
		}, nil
	}
}

func executeAdd(intent Intent, st *store.Store) (Result, error) {
	task, err := st.Add(intent.Description)
	if err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			return Result{Status: StatusInvalid, Message: "Please specify a task to add"}, nil
		}
		return Result{}, err
	}
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Added task %d: %s", task.ID, task.Description),
	}, nil
}

// executeMutation runs complete or delete against whichever task the
// selector resolves to. With a description selector it applies the
// mutation only on exactly one match; zero matches is not-found and
// several matches is ambiguous, with nothing changed; the system never
// guesses among candidates.
func executeMutation(intent Intent, st *store.Store, verb string, mutate func(int64) (store.Task, error)) (Result, error) {
	sel := intent.Selector

	id := sel.ID
	if sel.Kind == SelectByDescription {
		matches := st.FindByDescription(sel.Text)
		switch len(matches) {
		case 0:
			return Result{
				Status:  StatusNotFound,
				Message: fmt.Sprintf("No task matching '%s'", sel.Text),
			}, nil
		case 1:
			id = matches[0].ID
		default:
			return Result{
				Status:  StatusAmbiguous,
				Message: fmt.Sprintf("Multiple tasks match '%s': %s", sel.Text, describeMatches(matches)),
				Matches: matches,
			}, nil
		}
	}

	task, err := mutate(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Result{
				Status:  StatusNotFound,
				Message: fmt.Sprintf("Task %d not found", id),
			}, nil
		}
		return Result{}, err
	}
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("%s task %d: %s", verb, task.ID, task.Description),
	}, nil
}

func executeList(st *store.Store) Result {
	tasks := st.List()
	msg := fmt.Sprintf("You have %d tasks", len(tasks))
	switch len(tasks) {
	case 0:
		msg = "Your task list is empty"
	case 1:
		msg = "You have 1 task"
	}
	return Result{Status: StatusSuccess, Message: msg, Tasks: tasks}
}

func describeMatches(matches []store.Task) string {
	parts := make([]string, len(matches))
	for i, t := range matches {
		parts[i] = fmt.Sprintf("%d: %s", t.ID, t.Description)
	}
	return strings.Join(parts, ", ")
}
