// Package state tracks the currently applied theme for the lifetime of
// the process.
package state

import "sync"

// Store holds the last successfully applied theme name. It is written
// only by a successful apply and read by the browse UI for highlighting.
// The value is never persisted; a new process starts empty. Callers own
// the Store and pass it explicitly to whoever needs it.
type Store struct {
	mu      sync.RWMutex
	current string
}

// New returns an empty Store: no theme has been applied yet.
func New() *Store {
	return &Store{}
}

// Current returns the last successfully applied theme name, or the
// empty string before the first successful apply.
func (s *Store) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrent records a successfully applied theme.
func (s *Store) SetCurrent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = name
}
