package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcart/pos-api/pkg/apperror"
)

func TestSessionManagerCreateAndGet(t *testing.T) {
	m := NewSessionManager(time.Hour)

	s := m.Create()
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
}

func TestSessionManagerUnknownSession(t *testing.T) {
	m := NewSessionManager(time.Hour)

	_, err := m.Get(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestSessionManagerClose(t *testing.T) {
	m := NewSessionManager(time.Hour)

	s := m.Create()
	m.Close(s.ID)

	assert.Equal(t, 0, m.Len())
	_, err := m.Get(s.ID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestSessionManagerCleanupReapsIdleSessions(t *testing.T) {
	m := NewSessionManager(time.Minute)

	idle := m.Create()
	active := m.Create()

	idle.mu.Lock()
	idle.lastActive = time.Now().Add(-2 * time.Minute)
	idle.mu.Unlock()

	m.cleanup()

	assert.Equal(t, 1, m.Len())
	_, err := m.Get(idle.ID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
	_, err = m.Get(active.ID)
	assert.NoError(t, err)
}

func TestSessionStateHidesStaleQuote(t *testing.T) {
	m := NewSessionManager(time.Hour)
	s := m.Create()

	s.mu.Lock()
	s.quote = &quote{revision: 0}
	s.revision = 1
	state := s.state()
	s.mu.Unlock()

	assert.Nil(t, state.Bill)
}
