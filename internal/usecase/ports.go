package usecase

import (
	"context"

	domain "github.com/luckyeats/food-order-api/internal/entity"
)

// ProcessResult is the bounded shape the order processor must return.
type ProcessResult struct {
	OrderNumber           string `json:"orderNumber"`
	EstimatedDeliveryTime string `json:"estimatedDeliveryTime"`
}

// OrderProcessor assigns an order number and delivery estimate. It may be
// generative or deterministic; the orchestrator only sees this contract.
type OrderProcessor interface {
	Process(ctx context.Context, details domain.OrderDetails, items []domain.CartItem) (ProcessResult, error)
}

// PersistResult carries the ledger's explicit success flag. Transport and
// decode failures are reported through it too, matching the ledger's
// "never throw, always flag" contract.
type PersistResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OrderLedger durably records a confirmed order. An unconfigured ledger
// reports success without transmitting anything.
type OrderLedger interface {
	Persist(ctx context.Context, order domain.ConfirmedOrder) (PersistResult, error)
}

// Catalog supplies the restaurant list and per-restaurant menus.
type Catalog interface {
	Restaurants(ctx context.Context) ([]domain.Restaurant, error)
	Menu(ctx context.Context, restaurantName string) ([]domain.MenuItem, error)
}

// AttemptGuard rejects a second submission for the same session while one is
// already in flight.
type AttemptGuard interface {
	TryBegin(ctx context.Context, sessionID string) (bool, error)
	End(ctx context.Context, sessionID string)
}

type Notification struct {
	SessionID   string `json:"sessionId"`
	Outcome     string `json:"outcome"`
	Message     string `json:"message"`
	OrderNumber string `json:"orderNumber,omitempty"`
}

// Notifier raises a transient notification for every terminal checkout
// outcome. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
