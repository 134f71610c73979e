package session

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/luckyeats/food-order-api/internal/entity"
)

func TestTransition_HappyFlow(t *testing.T) {
	s := Initial()

	s, err := Transition(s, Event{Kind: EventSelectRestaurant, RestaurantName: "熾熱鐵板燒"})
	require.NoError(t, err)
	assert.Equal(t, ViewMenu, s.View)
	assert.Equal(t, "熾熱鐵板燒", s.RestaurantName)

	s, err = Transition(s, Event{Kind: EventOpenCart})
	require.NoError(t, err)
	assert.Equal(t, ViewCart, s.View)

	s, err = Transition(s, Event{Kind: EventBeginCheckout})
	require.NoError(t, err)
	assert.Equal(t, ViewCheckout, s.View)
}

func TestTransition_BackFromCartReturnsToMenuWhenRestaurantSelected(t *testing.T) {
	s := State{View: ViewCart, RestaurantName: "泰式風味"}

	s, err := Transition(s, Event{Kind: EventBack})

	require.NoError(t, err)
	assert.Equal(t, ViewMenu, s.View)
}

func TestTransition_BackFromCartWithoutRestaurantGoesToList(t *testing.T) {
	s := State{View: ViewCart}

	s, err := Transition(s, Event{Kind: EventBack})

	require.NoError(t, err)
	assert.Equal(t, ViewRestaurants, s.View)
}

func TestTransition_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		state State
		event Event
	}{
		{"checkout from menu", State{View: ViewMenu}, Event{Kind: EventBeginCheckout}},
		{"select without name", Initial(), Event{Kind: EventSelectRestaurant}},
		{"select from cart", State{View: ViewCart}, Event{Kind: EventSelectRestaurant, RestaurantName: "x"}},
		{"new order before confirmation", State{View: ViewCheckout}, Event{Kind: EventNewOrder}},
		{"leave confirmation via browse", State{View: ViewConfirmation}, Event{Kind: EventBrowse}},
		{"unknown event", Initial(), Event{Kind: "teleport"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.state, tt.event)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.state, got, "state must be unchanged on rejection")
		})
	}
}

func TestTransition_NewOrderResetsEverything(t *testing.T) {
	order := domain.ConfirmedOrder{OrderNumber: "ORD-123456"}
	s := Confirmed(order)

	s, err := Transition(s, Event{Kind: EventNewOrder})

	require.NoError(t, err)
	assert.Equal(t, Initial(), s)
}

type memStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStorage) Load(ctx context.Context, slot string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[slot], nil
}

func (m *memStorage) Save(ctx context.Context, slot string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[slot] = data
	return nil
}

func TestManager_ConfirmAndRestore(t *testing.T) {
	ctx := context.Background()
	storage := &memStorage{data: make(map[string][]byte)}
	m := NewManager(storage, slog.Default())

	order := domain.ConfirmedOrder{OrderNumber: "ORD-654321", Total: 390}
	m.Confirm(ctx, "s1", order)

	got := m.Get(ctx, "s1")
	assert.Equal(t, ViewConfirmation, got.View)
	require.NotNil(t, got.ConfirmedOrder)
	assert.Equal(t, "ORD-654321", got.ConfirmedOrder.OrderNumber)

	// a fresh manager restores the same state from storage
	m2 := NewManager(storage, slog.Default())
	restored := m2.Get(ctx, "s1")
	assert.Equal(t, ViewConfirmation, restored.View)
	require.NotNil(t, restored.ConfirmedOrder)
	assert.Equal(t, int64(390), restored.ConfirmedOrder.Total)
}

func TestManager_CorruptSlotYieldsInitialState(t *testing.T) {
	ctx := context.Background()
	storage := &memStorage{data: map[string][]byte{"session:s1": []byte("??")}}
	m := NewManager(storage, slog.Default())

	assert.Equal(t, Initial(), m.Get(ctx, "s1"))
}
