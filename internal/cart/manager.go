package cart

import (
	"context"
	"log/slog"
	"sync"
)

// Manager hands out one Store per session, restoring it from durable storage
// on first access.
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*Store
	storage Storage
	log     *slog.Logger
}

func NewManager(storage Storage, log *slog.Logger) *Manager {
	return &Manager{
		stores:  make(map[string]*Store),
		storage: storage,
		log:     log,
	}
}

// ForSession returns the session's store, restoring it on first access.
func (m *Manager) ForSession(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[sessionID]; ok {
		return s
	}
	s := Restore(ctx, "cart:"+sessionID, m.storage, m.log)
	m.stores[sessionID] = s
	return s
}
