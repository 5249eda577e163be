package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopcart/pos-api/internal/domain/entity"
	"github.com/shopcart/pos-api/pkg/apperror"
)

// CustomerIdentity is the identity captured for the transaction in
// progress. Attaching it never changes loyalty points; only a
// successful checkout does.
type CustomerIdentity struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	DOB    string `json:"dob,omitempty"`
	Email  string `json:"email,omitempty"`
}

// quote is a bill preview stamped with the cart revision it was
// computed against. Checkout refuses to run against a stale quote.
type quote struct {
	preview  entity.BillPreview
	revision uint64
}

// Session is one transaction in progress: a single live cart plus at
// most one attached customer identity. All access goes through the
// session mutex.
type Session struct {
	ID uuid.UUID

	mu         sync.Mutex
	items      []entity.LineItem
	customer   *CustomerIdentity
	revision   uint64
	quote      *quote
	createdAt  time.Time
	lastActive time.Time
}

// SessionState is the JSON view of a session returned to the caller.
type SessionState struct {
	ID        uuid.UUID           `json:"id"`
	Items     []entity.LineItem   `json:"items"`
	SubTotal  float64             `json:"sub_total"`
	Customer  *CustomerIdentity   `json:"customer,omitempty"`
	Bill      *entity.BillPreview `json:"bill,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// state builds the JSON view. Callers must hold the session mutex.
func (s *Session) state() *SessionState {
	items := make([]entity.LineItem, len(s.items))
	copy(items, s.items)

	st := &SessionState{
		ID:        s.ID,
		Items:     items,
		SubTotal:  float64(entity.Subtotal(s.items)) / 100,
		Customer:  s.customer,
		CreatedAt: s.createdAt,
	}
	if s.quote != nil && s.quote.revision == s.revision {
		preview := s.quote.preview
		st.Bill = &preview
	}
	return st
}

// SessionManager owns the live checkout sessions. Sessions are
// in-memory only: an unfinished transaction does not survive a restart,
// matching the single-till model.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

// NewSessionManager creates a session manager whose sessions expire
// after ttl of inactivity. A background loop reaps expired sessions.
func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	m := &SessionManager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}
	go m.cleanupLoop()
	return m
}

// Create opens a new empty session.
func (m *SessionManager) Create() *Session {
	s := &Session{
		ID:         uuid.New(),
		createdAt:  time.Now(),
		lastActive: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Get returns the session or ErrSessionNotFound.
func (m *SessionManager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()

	return s, nil
}

// Close discards a session and its cart.
func (m *SessionManager) Close(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *SessionManager) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.cleanup()
	}
}

func (m *SessionManager) cleanup() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.mu.Lock()
		stale := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(m.sessions, id)
		}
	}
}
