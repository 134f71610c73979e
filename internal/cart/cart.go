// Package cart holds the in-progress selection of menu items for one
// session. Every mutation mirrors the full cart to a durable slot; the slot
// is read back once when the session's store is first touched.
package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	domain "github.com/luckyeats/food-order-api/internal/entity"
)

// Storage is a single named slot holding the JSON-serialized cart array.
type Storage interface {
	// Load returns nil data when the slot is empty.
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, data []byte) error
}

// Store keeps the cart in memory in insertion order. At most one entry per
// menu-item id; duplicate adds increment quantity.
type Store struct {
	mu      sync.Mutex
	slot    string
	items   []domain.CartItem
	storage Storage
	log     *slog.Logger
}

// Restore loads the cart from its durable slot. Any read or deserialization
// failure yields an empty cart, never an error: a corrupt slot is not worth
// blocking the session over.
func Restore(ctx context.Context, slot string, storage Storage, log *slog.Logger) *Store {
	s := &Store{slot: slot, storage: storage, log: log}
	data, err := storage.Load(ctx, slot)
	if err != nil {
		log.Warn("cart restore failed, starting empty", "slot", slot, "error", err)
		return s
	}
	if len(data) == 0 {
		return s
	}
	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn("cart slot corrupt, starting empty", "slot", slot, "error", err)
		return s
	}
	s.items = items
	return s
}

// Add appends item with quantity 1, or bumps the quantity of an existing
// entry with the same id. Entry order is preserved.
func (s *Store) Add(ctx context.Context, item domain.MenuItem) domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			s.persist(ctx)
			return s.items[i]
		}
	}
	entry := domain.CartItem{MenuItem: item, Quantity: 1}
	s.items = append(s.items, entry)
	s.persist(ctx)
	return entry
}

// SetQuantity replaces the quantity of the matching entry in place.
// n <= 0 removes the entry.
func (s *Store) SetQuantity(ctx context.Context, id string, n int) {
	if n <= 0 {
		s.Remove(ctx, id)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = n
			s.persist(ctx)
			return
		}
	}
}

// Remove deletes the matching entry. Absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) (domain.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			removed := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return removed, true
		}
	}
	return domain.CartItem{}, false
}

// Clear empties the cart. Called only on successful order confirmation.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist(ctx)
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the total quantity across all entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Subtotal sums price*quantity over the cart.
func (s *Store) Subtotal() int64 {
	return domain.Subtotal(s.Items())
}

// persist mirrors the cart to its slot. Writes are fire-and-forget: a failed
// write is logged and the in-memory cart stays authoritative.
// Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.log.Error("cart marshal failed", "slot", s.slot, "error", err)
		return
	}
	if err := s.storage.Save(ctx, s.slot, data); err != nil {
		s.log.Warn("cart persist failed", "slot", s.slot, "error", err)
	}
}
