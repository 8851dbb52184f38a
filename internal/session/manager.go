package session

import (
	"sync"
	"time"
)

// Manager tracks live call sessions. Calls are independent units of
// work; the map is the only shared state and sits behind a mutex.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Start returns the session for a call, creating it on first sight.
// A duplicate "connected" event reuses the existing session.
func (m *Manager) Start(callID string, now time.Time) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[callID]; ok {
		return s
	}
	s := New(callID, now)
	m.sessions[callID] = s
	return s
}

// Get returns the live session for a call, if any.
func (m *Manager) Get(callID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[callID]
	return s, ok
}

// End removes the session and returns it. The second End for the same
// call returns nothing, which makes the disconnect path idempotent.
func (m *Manager) End(callID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[callID]
	if ok {
		delete(m.sessions, callID)
	}
	return s, ok
}

// Active returns the number of live sessions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
