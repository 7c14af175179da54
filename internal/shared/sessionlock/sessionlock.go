// Package sessionlock serializes work per browsing session. An entry only
// lives while some caller holds or waits for it, so abandoned sessions leave
// nothing behind.
package sessionlock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locks is a set of mutexes keyed by session id. The zero value is ready to use.
type Locks struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// Lock blocks until the session is free and returns its unlock function.
func (l *Locks) Lock(sessionID string) (unlock func()) {
	l.mu.Lock()
	if l.entries == nil {
		l.entries = map[string]*entry{}
	}
	e, ok := l.entries[sessionID]
	if !ok {
		e = &entry{}
		l.entries[sessionID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, sessionID)
		}
		l.mu.Unlock()
	}
}

// Len reports how many sessions currently hold or wait for a lock.
func (l *Locks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
