package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viscontilabs/bitstore-backend/pkg/logger"
	"github.com/viscontilabs/bitstore-backend/pkg/metrics"
)

// Session owns the authoritative in-memory cart for one storefront session.
// It hydrates once from the durable slot before the first action, and writes
// through after every transition. Persistence is best effort: a failed write
// is logged and counted, never surfaced, and the in-memory state stays
// authoritative for the rest of the session.
type Session struct {
	id      string
	store   Store
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics

	mu       sync.Mutex
	state    State
	hydrated bool
}

// Dispatch applies one action through the reducer and write-through persists
// the result. It returns the state after the transition.
func (s *Session) Dispatch(ctx context.Context, action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hydrate(ctx)
	s.state = Reduce(s.state, action)
	s.metrics.IncCartTransition(actionName(action))
	s.persist(ctx)
	return s.state
}

// State returns the current cart, hydrating from storage on first touch.
func (s *Session) State(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hydrate(ctx)
	return s.state
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) hydrate(ctx context.Context) {
	if s.hydrated {
		return
	}
	s.hydrated = true
	s.state = EmptyState()

	if s.store == nil {
		return
	}
	snapshot, found, err := s.store.Load(ctx, s.id)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithSessionID(ctx, s.id), fmt.Sprintf("cart hydration failed: %v", err))
		}
		return
	}
	if !found {
		return
	}
	s.state = Reduce(s.state, LoadAction{Snapshot: snapshot})
}

func (s *Session) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.id, s.state); err != nil {
		s.metrics.IncPersistFailure()
		if s.logg != nil {
			s.logg.Warn(s.logg.WithSessionID(ctx, s.id), fmt.Sprintf("cart persistence failed: %v", err))
		}
	}
}

func actionName(action Action) string {
	if action == nil {
		return ""
	}
	return action.name()
}

const (
	// sessionIdleTTL bounds how long an untouched holder stays in memory.
	// The durable slot carries its own TTL; dropping the holder only
	// releases the in-memory copy, which re-hydrates on the next touch.
	sessionIdleTTL = time.Hour

	// maxLiveSessions caps the registry so arbitrary client-supplied
	// session ids cannot grow it without bound.
	maxLiveSessions = 4096
)

type sessionEntry struct {
	session   *Session
	lastTouch time.Time
}

// Manager hands out one Session per session id. It is the explicit
// state-container registry injected into the HTTP layer; collaborators receive
// sessions rather than looking them up ambiently.
type Manager struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics

	idleTTL time.Duration
	maxLive int
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewManager builds the session registry. The store may be nil, which runs
// every session in the "no persistence available" mode.
func NewManager(store Store, logg *logger.Logger, m *metrics.StorefrontMetrics) *Manager {
	return &Manager{
		store:    store,
		logg:     logg,
		metrics:  m,
		idleTTL:  sessionIdleTTL,
		maxLive:  maxLiveSessions,
		now:      time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

// Session returns the holder for the given id, creating it on first use.
// Idle holders are evicted on the way; when the registry is full the
// least-recently-touched holder makes room for the new one.
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictIdle(now)

	if entry, ok := m.sessions[id]; ok {
		entry.lastTouch = now
		return entry.session
	}

	if len(m.sessions) >= m.maxLive {
		m.evictOldest()
	}

	created := &Session{
		id:      id,
		store:   m.store,
		logg:    m.logg,
		metrics: m.metrics,
	}
	m.sessions[id] = &sessionEntry{session: created, lastTouch: now}
	return created
}

func (m *Manager) evictIdle(now time.Time) {
	for id, entry := range m.sessions {
		if now.Sub(entry.lastTouch) > m.idleTTL {
			delete(m.sessions, id)
		}
	}
}

func (m *Manager) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, entry := range m.sessions {
		if oldestID == "" || entry.lastTouch.Before(oldest) {
			oldestID = id
			oldest = entry.lastTouch
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
	}
}
