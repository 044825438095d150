package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns the view state of every client session. Sessions never share
// state with each other.
type Manager struct {
	sessions map[string]*workspace
	mu       sync.RWMutex
	now      func() time.Time
	logger   *zap.Logger
}

type workspace struct {
	mu       sync.Mutex
	views    map[View]*State
	lastSeen time.Time
}

// NewManager creates an empty session manager.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*workspace),
		now:      time.Now,
		logger:   logger,
	}
}

// NewID issues a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// With runs fn against the state of one view in one session while holding
// that session's lock. The state is created on first use.
func (m *Manager) With(sessionID string, view View, fn func(*State) error) error {
	ws := m.workspace(sessionID)

	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.lastSeen = m.now()
	st, ok := ws.views[view]
	if !ok {
		st = newState()
		ws.views[view] = st
	}
	return fn(st)
}

func (m *Manager) workspace(sessionID string) *workspace {
	m.mu.RLock()
	ws, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return ws
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ws, ok = m.sessions[sessionID]; ok {
		return ws
	}
	ws = &workspace{views: make(map[View]*State), lastSeen: m.now()}
	m.sessions[sessionID] = ws
	m.logger.Debug("session opened", zap.String("session_id", sessionID))
	return ws
}

// Clear discards every view of a session, as a full navigation away would.
func (m *Manager) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Sweep drops sessions idle for longer than maxIdle and reports how many were
// removed.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, ws := range m.sessions {
		ws.mu.Lock()
		idle := ws.lastSeen.Before(cutoff)
		ws.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("swept idle sessions", zap.Int("removed", removed), zap.Int("remaining", len(m.sessions)))
	}
	return removed
}

// Len reports the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
