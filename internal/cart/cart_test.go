package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/luckyeats/food-order-api/internal/entity"
)

type fakeStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	loadErr error
	saveErr error
	saves   int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{data: make(map[string][]byte)}
}

func (f *fakeStorage) Load(ctx context.Context, slot string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.data[slot], nil
}

func (f *fakeStorage) Save(ctx context.Context, slot string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[slot] = data
	return nil
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func burger() domain.MenuItem {
	return domain.MenuItem{ID: "m1", Name: "經典漢堡", Price: 180, RestaurantName: "熾熱鐵板燒"}
}

func fries() domain.MenuItem {
	return domain.MenuItem{ID: "m3", Name: "薯條", Price: 80, RestaurantName: "熾熱鐵板燒"}
}

func TestStore_AddIncrementsExistingEntry(t *testing.T) {
	ctx := context.Background()
	store := Restore(ctx, "cart:s1", newFakeStorage(), testLogger())

	store.Add(ctx, burger())
	store.Add(ctx, burger())

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_NeverHoldsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	store := Restore(ctx, "cart:s1", newFakeStorage(), testLogger())

	store.Add(ctx, burger())
	store.Add(ctx, fries())
	store.Add(ctx, burger())
	store.SetQuantity(ctx, "m3", 4)
	store.Add(ctx, fries())

	seen := map[string]bool{}
	for _, it := range store.Items() {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}

func TestStore_AddPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := Restore(ctx, "cart:s1", newFakeStorage(), testLogger())

	store.Add(ctx, burger())
	store.Add(ctx, fries())
	store.Add(ctx, burger()) // bump, must not move

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "m1", items[0].ID)
	assert.Equal(t, "m3", items[1].ID)
}

func TestStore_SetQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	store := Restore(ctx, "cart:s1", newFakeStorage(), testLogger())

	store.Add(ctx, burger())
	store.Add(ctx, fries())
	store.SetQuantity(ctx, "m1", 0)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "m3", items[0].ID)
}

func TestStore_RemoveAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := Restore(ctx, "cart:s1", newFakeStorage(), testLogger())
	store.Add(ctx, burger())

	_, ok := store.Remove(ctx, "nope")

	assert.False(t, ok)
	assert.Len(t, store.Items(), 1)
}

func TestStore_SubtotalSumsPriceTimesQuantity(t *testing.T) {
	ctx := context.Background()
	store := Restore(ctx, "cart:s1", newFakeStorage(), testLogger())

	store.Add(ctx, burger())
	store.Add(ctx, burger())
	store.Add(ctx, fries())

	assert.Equal(t, int64(180*2+80), store.Subtotal())
	assert.Equal(t, 3, store.Count())
}

func TestStore_EveryMutationPersists(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	store := Restore(ctx, "cart:s1", storage, testLogger())

	store.Add(ctx, burger())
	store.SetQuantity(ctx, "m1", 3)
	store.Remove(ctx, "m1")
	store.Clear(ctx)

	assert.Equal(t, 4, storage.saves)
	assert.Equal(t, []byte("[]"), storage.data["cart:s1"])
}

func TestRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()

	first := Restore(ctx, "cart:s1", storage, testLogger())
	first.Add(ctx, burger())
	first.Add(ctx, burger())
	first.Add(ctx, fries())

	second := Restore(ctx, "cart:s1", storage, testLogger())
	items := second.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(440), second.Subtotal())
}

func TestRestore_CorruptSlotYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	storage.data["cart:s1"] = []byte("{not json")

	store := Restore(ctx, "cart:s1", storage, testLogger())

	assert.Empty(t, store.Items())
}

func TestRestore_LoadErrorYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	storage.loadErr = errors.New("redis down")

	store := Restore(ctx, "cart:s1", storage, testLogger())

	assert.Empty(t, store.Items())
}

func TestStore_SaveErrorDoesNotLoseCart(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	storage.saveErr = errors.New("redis down")

	store := Restore(ctx, "cart:s1", storage, testLogger())
	store.Add(ctx, burger())

	assert.Len(t, store.Items(), 1)
}

func TestManager_ReturnsSameStorePerSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newFakeStorage(), testLogger())

	a := m.ForSession(ctx, "s1")
	b := m.ForSession(ctx, "s1")
	other := m.ForSession(ctx, "s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}
