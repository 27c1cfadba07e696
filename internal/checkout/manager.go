package checkout

import (
	"context"
	"sync"

	"shop-checkout/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager owns the live checkout sessions, one orchestrator (with its
// own cart store and navigator) per browser session.
type Manager struct {
	mu         sync.Mutex
	sessions   map[uuid.UUID]*Orchestrator
	newSession func() *Orchestrator
	logger     zerolog.Logger
}

// NewManager creates a session manager. The factory builds a fully
// wired orchestrator for each new session.
func NewManager(factory func() *Orchestrator, logger zerolog.Logger) *Manager {
	return &Manager{
		sessions:   make(map[uuid.UUID]*Orchestrator),
		newSession: factory,
		logger:     logger.With().Str("component", "checkout-sessions").Logger(),
	}
}

// Create starts a new checkout session and initialises its screen state.
func (m *Manager) Create(ctx context.Context) (uuid.UUID, *Orchestrator) {
	session := m.newSession()
	session.Init(ctx)

	id := uuid.New()

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	m.logger.Info().Str("session_id", id.String()).Msg("checkout session created")
	return id, session
}

// Get returns the session with the given ID.
func (m *Manager) Get(id uuid.UUID) (*Orchestrator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

// Delete discards a session. Deleting an unknown ID is a no-op.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		m.logger.Info().Str("session_id", id.String()).Msg("checkout session deleted")
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
