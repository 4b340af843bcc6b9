package session

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/praaatap/gdit.site/internal/logging"
	"github.com/praaatap/gdit.site/pkg/clock"
	"github.com/praaatap/gdit.site/pkg/domain"
	"github.com/praaatap/gdit.site/pkg/playback"
)

// Factory builds the engine behind a new session.
type Factory func(id string) *playback.Session

// Info describes a registered session.
type Info struct {
	ID       string    `json:"id"`
	Created  time.Time `json:"created"`
	LastSeen time.Time `json:"last_seen"`
}

type entry struct {
	info     Info
	session  *playback.Session
	watchers int
	gone     chan struct{}
}

// Manager is a concurrency-safe registry of sessions.
type Manager struct {
	factory Factory
	sched   clock.Scheduler

	mu       sync.RWMutex
	sessions map[string]*entry

	maxSessions int
	idleTTL     time.Duration
	newID       func() string
	logger      *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithMaxSessions bounds the registry. Zero means unbounded.
func WithMaxSessions(n int) Option {
	return func(m *Manager) {
		m.maxSessions = n
	}
}

// WithIdleTTL sets how long an untouched session survives a Sweep. Zero disables eviction.
func WithIdleTTL(d time.Duration) Option {
	return func(m *Manager) {
		m.idleTTL = d
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a registry whose sessions are built by factory. sched provides
// the timestamps used for idle eviction.
func NewManager(factory Factory, sched clock.Scheduler, opts ...Option) *Manager {
	m := &Manager{
		factory:  factory,
		sched:    sched,
		sessions: make(map[string]*entry),
		newID:    uuid.NewString,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create registers a new session. Expired sessions are swept first when the registry is full.
func (m *Manager) Create() (Info, *playback.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		m.sweepLocked()
		if len(m.sessions) >= m.maxSessions {
			return Info{}, nil, fmt.Errorf("%w: limit=%d", domain.ErrTooManySessions, m.maxSessions)
		}
	}

	id := m.newID()
	if _, exists := m.sessions[id]; exists {
		return Info{}, nil, fmt.Errorf("session id collision: %s", id)
	}

	now := m.sched.Now()
	e := &entry{
		info:    Info{ID: id, Created: now, LastSeen: now},
		session: m.factory(id),
		gone:    make(chan struct{}),
	}
	m.sessions[id] = e
	m.logger.Debug("session created", "session_id", id, "active", len(m.sessions))
	return e.info, e.session, nil
}

// Get returns a session and marks it as seen.
func (m *Manager) Get(id string) (*playback.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e.info.LastSeen = m.sched.Now()
	return e.session, nil
}

// Attach pins a session for a long-lived watcher such as a stream. A pinned session
// is never evicted by Sweep. The returned channel is closed when the session is
// deleted. release unpins it and counts as a touch.
func (m *Manager) Attach(id string) (sess *playback.Session, gone <-chan struct{}, release func(), err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e.watchers++
	e.info.LastSeen = m.sched.Now()

	var once sync.Once
	release = func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			e.watchers--
			e.info.LastSeen = m.sched.Now()
		})
	}
	return e.session, e.gone, release, nil
}

// Info returns the bookkeeping of a session without touching it.
func (m *Manager) Info(id string) (Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.sessions[id]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return e.info, nil
}

// Delete removes a session. Its in-flight playback is discarded.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	close(e.gone)
	e.session.Reset()
	m.logger.Debug("session deleted", "session_id", id)
	return nil
}

// List returns the registered session IDs in lexical order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts unpinned sessions idle for longer than the TTL and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked()
}

func (m *Manager) sweepLocked() int {
	if m.idleTTL <= 0 {
		return 0
	}
	now := m.sched.Now()
	evicted := 0
	for id, e := range m.sessions {
		if e.watchers == 0 && now.Sub(e.info.LastSeen) > m.idleTTL {
			delete(m.sessions, id)
			close(e.gone)
			e.session.Reset()
			evicted++
		}
	}
	if evicted > 0 {
		m.logger.Debug("sessions evicted", "count", evicted, "active", len(m.sessions))
	}
	return evicted
}
