// Package session serializes concurrent command submissions into the
// executor. Two independent producers, a listening path and a typed
// path, can submit at once; the coordinator guarantees one store
// access at a time, strict arrival order, and that an in-flight
// command always completes even during shutdown.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/marcus/voicetask/internal/command"
	"github.com/marcus/voicetask/internal/store"
)

// ErrClosed is returned for submissions that were still queued when the
// coordinator shut down.
var ErrClosed = errors.New("session closed")

// Recorder receives every executed command for durable history.
// Implementations must tolerate being called from a single goroutine.
type Recorder interface {
	RecordCommand(raw string, intent command.IntentKind, status command.Status, message string) error
}

// submission is one queued command and its reply channel.
type submission struct {
	ctx      context.Context
	raw      string
	reload   bool // reload the store instead of running a command
	snapshot bool // internal list read: no history entry, no events
	reply    chan outcome
}

type outcome struct {
	res command.Result
	err error
}

// Coordinator owns the store for the process lifetime and is the only
// path to it. Submit is safe for concurrent use.
type Coordinator struct {
	store    *store.Store
	recorder Recorder
	events   EventHandler
	warnf    func(format string, args ...any)

	queue   chan submission
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRecorder attaches a command history recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) { c.recorder = r }
}

// WithEvents attaches a lifecycle event callback.
func WithEvents(h EventHandler) Option {
	return func(c *Coordinator) { c.events = h }
}

// WithWarnf sets where non-fatal coordinator warnings go.
func WithWarnf(f func(format string, args ...any)) Option {
	return func(c *Coordinator) { c.warnf = f }
}

const queueDepth = 16

// New creates a Coordinator around the store and starts its worker.
func New(st *store.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:   st,
		warnf:   func(string, ...any) {},
		queue:   make(chan submission, queueDepth),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.run()
	return c
}

// Submit queues raw command text and blocks until it has been
// interpreted and executed, returning the Result. Submissions are
// served strictly in arrival order. Cancelling ctx while the
// submission is still queued returns the context error and the command
// never touches the store; once started it always completes.
func (c *Coordinator) Submit(ctx context.Context, raw string) (command.Result, error) {
	return c.enqueue(submission{ctx: ctx, raw: raw, reply: make(chan outcome, 1)})
}

// Reload asks the coordinator to re-read the tasks file, serialized
// with command execution. Used when the file changes externally.
func (c *Coordinator) Reload(ctx context.Context) error {
	_, err := c.enqueue(submission{ctx: ctx, reload: true, reply: make(chan outcome, 1)})
	return err
}

// Snapshot returns the current task list via the serialized path,
// without recording a history entry.
func (c *Coordinator) Snapshot(ctx context.Context) ([]store.Task, error) {
	res, err := c.enqueue(submission{ctx: ctx, snapshot: true, reply: make(chan outcome, 1)})
	if err != nil {
		return nil, err
	}
	return res.Tasks, nil
}

func (c *Coordinator) enqueue(sub submission) (command.Result, error) {
	select {
	case c.queue <- sub:
	case <-sub.ctx.Done():
		return command.Result{}, sub.ctx.Err()
	case <-c.done:
		return command.Result{}, ErrClosed
	}

	// The worker answers every submission it sees, including the ones
	// it drains at shutdown. The stopped branch covers the narrow case
	// of a submission enqueued after the drain already ran.
	select {
	case out := <-sub.reply:
		return out.res, out.err
	case <-c.stopped:
		select {
		case out := <-sub.reply:
			return out.res, out.err
		default:
			return command.Result{}, ErrClosed
		}
	}
}

// Close shuts the coordinator down. The in-flight submission (if any)
// completes; queued-but-unstarted submissions are answered ErrClosed.
func (c *Coordinator) Close() {
	c.once.Do(func() { close(c.done) })
	<-c.stopped
}

func (c *Coordinator) run() {
	defer close(c.stopped)
	for {
		select {
		case sub := <-c.queue:
			c.serve(sub)
		case <-c.done:
			c.drain()
			return
		}
	}
}

// drain answers everything still queued at shutdown without running it.
func (c *Coordinator) drain() {
	for {
		select {
		case sub := <-c.queue:
			sub.reply <- outcome{err: ErrClosed}
		default:
			return
		}
	}
}

func (c *Coordinator) serve(sub submission) {
	// Abandoned while queued: report, never execute.
	if err := sub.ctx.Err(); err != nil {
		sub.reply <- outcome{err: err}
		return
	}

	if sub.reload {
		err := c.store.Reload()
		c.emit(Event{Type: EventReloaded, Time: time.Now(), Err: err})
		sub.reply <- outcome{err: err}
		return
	}

	if sub.snapshot {
		res, err := command.Execute(command.Intent{Kind: command.IntentList}, c.store)
		sub.reply <- outcome{res: res, err: err}
		return
	}

	c.emit(Event{Type: EventStarted, Time: time.Now(), Raw: sub.raw})

	intent := command.Interpret(sub.raw)
	res, err := command.Execute(intent, c.store)

	if err == nil && c.recorder != nil {
		// History is observability, not source of truth: a failed
		// insert must not fail the command.
		if rerr := c.recorder.RecordCommand(sub.raw, intent.Kind, res.Status, res.Message); rerr != nil {
			c.warnf("recording command history: %v", rerr)
		}
	}

	c.emit(Event{
		Type:   EventFinished,
		Time:   time.Now(),
		Raw:    sub.raw,
		Intent: intent.Kind,
		Status: res.Status,
		Err:    err,
	})

	sub.reply <- outcome{res: res, err: err}
}

func (c *Coordinator) emit(ev Event) {
	if c.events != nil {
		c.events(ev)
	}
}
