package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	domain "github.com/luckyeats/food-order-api/internal/entity"
)

// Storage is a single named slot holding the JSON-serialized state.
type Storage interface {
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, data []byte) error
}

// Manager keeps per-session flow state in memory, mirrored to durable
// storage the same way the cart is.
type Manager struct {
	mu      sync.Mutex
	states  map[string]State
	storage Storage
	log     *slog.Logger
}

func NewManager(storage Storage, log *slog.Logger) *Manager {
	return &Manager{
		states:  make(map[string]State),
		storage: storage,
		log:     log,
	}
}

// Get returns the session's state, restoring it from storage on first
// access. A missing or corrupt slot yields the initial state.
func (m *Manager) Get(ctx context.Context, sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx, sessionID)
}

// Apply runs a user event through the state machine and persists the result.
func (m *Manager) Apply(ctx context.Context, sessionID string, e Event) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.load(ctx, sessionID)
	next, err := Transition(cur, e)
	if err != nil {
		return cur, err
	}
	m.set(ctx, sessionID, next)
	return next, nil
}

// Confirm adopts the confirmed-order state for the session. Driven by the
// checkout orchestrator as part of its commit, not by a user event.
func (m *Manager) Confirm(ctx context.Context, sessionID string, order domain.ConfirmedOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(ctx, sessionID, Confirmed(order))
}

func (m *Manager) set(ctx context.Context, sessionID string, s State) {
	m.states[sessionID] = s
	data, err := json.Marshal(s)
	if err != nil {
		m.log.Error("session marshal failed", "session_id", sessionID, "error", err)
		return
	}
	if err := m.storage.Save(ctx, "session:"+sessionID, data); err != nil {
		m.log.Warn("session persist failed", "session_id", sessionID, "error", err)
	}
}

// load assumes m.mu is held.
func (m *Manager) load(ctx context.Context, sessionID string) State {
	if s, ok := m.states[sessionID]; ok {
		return s
	}
	s := Initial()
	data, err := m.storage.Load(ctx, "session:"+sessionID)
	if err != nil {
		m.log.Warn("session restore failed, starting fresh", "session_id", sessionID, "error", err)
	} else if len(data) > 0 {
		if err := json.Unmarshal(data, &s); err != nil {
			m.log.Warn("session slot corrupt, starting fresh", "session_id", sessionID, "error", err)
			s = Initial()
		}
	}
	m.states[sessionID] = s
	return s
}
