package session

import (
	"time"

	"github.com/marcus/voicetask/internal/command"
)

// EventType classifies coordinator lifecycle events.
type EventType int

const (
	EventStarted  EventType = iota // a submission left the queue and began executing
	EventFinished                  // a submission finished, Result or error in hand
	EventReloaded                  // the store was reloaded from disk
)

// Event carries data about one coordinator lifecycle event.
type Event struct {
	Type   EventType
	Time   time.Time
	Raw    string             // submitted command text
	Intent command.IntentKind // valid from EventFinished
	Status command.Status     // valid from EventFinished on success
	Err    error              // infrastructure failure, if any
}

// EventHandler is a callback that receives coordinator events. It runs
// on the coordinator's worker goroutine and must not call Submit.
type EventHandler func(Event)
