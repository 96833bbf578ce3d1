// Package command turns free-form utterances into typed intents and
// applies them to the task store. Interpretation is a pure text
// function; all lookup and ambiguity policy lives in execution.
package command

import "github.com/marcus/voicetask/internal/store"

// IntentKind classifies what the user asked for.
type IntentKind int

const (
	IntentAdd IntentKind = iota
	IntentComplete
	IntentDelete
	IntentList
	IntentUnrecognized
)

func (k IntentKind) String() string {
	switch k {
	case IntentAdd:
		return "add"
	case IntentComplete:
		return "complete"
	case IntentDelete:
		return "delete"
	case IntentList:
		return "list"
	case IntentUnrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// SelectorKind is how a target task is identified.
type SelectorKind int

const (
	SelectByID SelectorKind = iota
	SelectByDescription
)

// Selector identifies the task a complete/delete intent targets,
// either by numeric id or by description text. Description selectors
// are resolved against the store at execution time, not parse time.
type Selector struct {
	Kind SelectorKind
	ID   int64
	Text string
}

// Intent is the parsed form of one utterance. Raw always carries the
// text as submitted; the remaining fields depend on Kind.
type Intent struct {
	Kind        IntentKind
	Description string   // IntentAdd
	Selector    Selector // IntentComplete, IntentDelete
	Raw         string
}

// Status is the business outcome of executing an intent.
type Status string

const (
	StatusSuccess      Status = "success"
	StatusNotFound     Status = "not_found"
	StatusAmbiguous    Status = "ambiguous"
	StatusInvalid      Status = "invalid"
	StatusUnrecognized Status = "unrecognized"
)

// Result is what an executed intent produces: an outcome, a message fit
// for display or speech, and for list/ambiguous outcomes a snapshot of
// the tasks involved.
type Result struct {
	Status  Status
	Message string
	Tasks   []store.Task // list snapshot for IntentList
	Matches []store.Task // candidates for StatusAmbiguous
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}
