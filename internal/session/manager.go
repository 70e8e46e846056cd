package session

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
)

// Manager tracks live sessions. Safe for concurrent use.
type Manager struct {
	rules  nebula.Rules
	saver  ScoreSaver
	logger *log.Logger

	mu       sync.RWMutex
	sessions map[ID]*Session
}

// NewManager creates a manager whose sessions play by rules and save
// finished runs to saver (nil disables saving).
func NewManager(rules nebula.Rules, saver ScoreSaver, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		rules:    rules,
		saver:    saver,
		logger:   logger,
		sessions: make(map[ID]*Session),
	}
}

// Create starts a new session. A zero seed picks one from the clock.
func (m *Manager) Create(player string, seed int64) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	id := ID(uuid.NewString())
	s := New(id, player, seed, m.rules, m.saver, m.logger)

	m.mu.Lock()
	m.sessions[id] = s
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info("session started", "session", string(id), "player", player, "active", count)
	return s
}

// Get retrieves a session by ID.
func (m *Manager) Get(id ID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove ends a session and reports whether it existed.
func (m *Manager) Remove(id ID) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.close()
		m.logger.Info("session ended", "session", string(id))
	}
	return ok
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IDs returns the live session IDs, sorted.
func (m *Manager) IDs() []ID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]ID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Reap removes sessions idle since before cutoff and returns how many it removed.
func (m *Manager) Reap(cutoff time.Time) int {
	m.mu.RLock()
	var stale []ID
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.Remove(id)
	}
	return len(stale)
}
