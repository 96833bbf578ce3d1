// Package store owns the authoritative task collection and its persisted
// JSON representation. All mutations persist before they are reported as
// successful; a failed persist rolls the in-memory state back so memory
// and disk never disagree.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Sentinel errors for store operations.
var (
	ErrNotFound       = errors.New("task not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrStorageCorrupt = errors.New("storage corrupt")
	ErrPersistFailed  = errors.New("persist failed")
)

// Task is a single to-do item. Description and CreatedAt are immutable
// once the task exists; only Completed ever changes.
type Task struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// storeData is the serialized store structure.
type storeData struct {
	NextID int64  `json:"nextId"`
	Tasks  []Task `json:"tasks"`
}

// Store manages the ordered task list backed by a JSON file.
type Store struct {
	mu       sync.Mutex
	filePath string
	data     storeData
}

const tasksFile = "tasks.json"

// DefaultPath returns the default tasks file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "voicetask", tasksFile)
}

// New creates a Store backed by the given file, loading existing state
// if present. A missing file means an empty store; a present but
// unparseable file returns ErrStorageCorrupt.
func New(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &Store{
		filePath: filePath,
		data:     storeData{NextID: 1, Tasks: make([]Task, 0)},
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the tasks file path.
func (s *Store) Path() string {
	return s.filePath
}

// Reload re-reads the tasks file, replacing in-memory state. Used at
// startup and when the file changes underneath us (external edit).
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = storeData{NextID: 1, Tasks: make([]Task, 0)}
			return nil
		}
		return fmt.Errorf("reading tasks file: %w", err)
	}

	var loaded storeData
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrStorageCorrupt, s.filePath, err)
	}
	if loaded.Tasks == nil {
		loaded.Tasks = make([]Task, 0)
	}

	// Normalize the counter so ids are never reused, even if the file
	// was written by hand.
	var maxID int64
	for _, t := range loaded.Tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	if loaded.NextID <= maxID {
		loaded.NextID = maxID + 1
	}
	if loaded.NextID < 1 {
		loaded.NextID = 1
	}

	s.data = loaded
	return nil
}

// save writes the store to disk atomically via a temp file.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling tasks: %w", err)
	}

	tmpFile := s.filePath + ".tmp"
	if err := os.WriteFile(tmpFile, raw, 0644); err != nil {
		return fmt.Errorf("writing tasks file: %w", err)
	}
	if err := os.Rename(tmpFile, s.filePath); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("renaming tasks file: %w", err)
	}
	return nil
}

// persistOrRollback saves to disk, restoring prev on failure.
func (s *Store) persistOrRollback(prev storeData) error {
	if err := s.save(); err != nil {
		s.data = prev
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

// snapshot copies the current data deeply enough to roll back to.
func (s *Store) snapshot() storeData {
	tasks := make([]Task, len(s.data.Tasks))
	copy(tasks, s.data.Tasks)
	return storeData{NextID: s.data.NextID, Tasks: tasks}
}

// Add appends a new task with the next id and persists. The description
// must contain something other than whitespace.
func (s *Store) Add(description string) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, fmt.Errorf("%w: empty description", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshot()
	task := Task{
		ID:          s.data.NextID,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	s.data.Tasks = append(s.data.Tasks, task)
	s.data.NextID++

	if err := s.persistOrRollback(prev); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Complete marks a task done and persists. Completing an
// already-completed task is a no-op success.
func (s *Store) Complete(id int64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	prev := s.snapshot()
	s.data.Tasks[idx].Completed = true

	if err := s.persistOrRollback(prev); err != nil {
		return Task{}, err
	}
	return s.data.Tasks[idx], nil
}

// Delete removes a task and persists. Its id is never reassigned.
func (s *Store) Delete(id int64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	prev := s.snapshot()
	removed := s.data.Tasks[idx]
	s.data.Tasks = append(s.data.Tasks[:idx], s.data.Tasks[idx+1:]...)

	if err := s.persistOrRollback(prev); err != nil {
		return Task{}, err
	}
	return removed, nil
}

// Find returns the task with the given id, if any.
func (s *Store) Find(id int64) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, false
	}
	return s.data.Tasks[idx], true
}

// FindByDescription returns all tasks whose description contains text,
// case-insensitively, preserving store order.
func (s *Store) FindByDescription(text string) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(text)
	matches := make([]Task, 0)
	for _, t := range s.data.Tasks {
		if strings.Contains(strings.ToLower(t.Description), needle) {
			matches = append(matches, t)
		}
	}
	return matches
}

// List returns a snapshot copy of all tasks in insertion order. The
// caller can hold it safely after any lock is released.
func (s *Store) List() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.data.Tasks))
	copy(out, s.data.Tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.Tasks)
}

// indexOf returns the slice index for id, or -1. Caller holds the lock.
func (s *Store) indexOf(id int64) int {
	for i, t := range s.data.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
