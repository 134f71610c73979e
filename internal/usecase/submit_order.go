package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/luckyeats/food-order-api/internal/cart"
	domain "github.com/luckyeats/food-order-api/internal/entity"
	"github.com/luckyeats/food-order-api/internal/logging"
	"github.com/luckyeats/food-order-api/internal/session"
)

// Outcome labels for metrics and notifications. One per terminal state of a
// submission attempt.
const (
	OutcomeConfirmed           = "confirmed"
	OutcomeEmptyCart           = "empty_cart"
	OutcomeInFlight            = "attempt_in_flight"
	OutcomeProcessingTimeout   = "processing_timeout"
	OutcomeProcessingFailed    = "processing_failed"
	OutcomePersistenceTimeout  = "persistence_timeout"
	OutcomePersistenceRejected = "persistence_rejected"
	OutcomeUnknown             = "unknown"
)

type SubmitOrderInput struct {
	SessionID string
	Details   domain.OrderDetails
}

// SubmitOrder turns a cart plus customer details into either a persisted
// confirmed order or a user-visible failure. Processing and persistence each
// race their own full timeout budget; the commit (adopt order, clear cart,
// move to the confirmation screen) happens only after both succeed, never
// partially.
type SubmitOrder struct {
	processor   OrderProcessor
	ledger      OrderLedger
	guard       AttemptGuard
	notifier    Notifier
	carts       *cart.Manager
	sessions    *session.Manager
	timeout     time.Duration
	shippingFee int64
}

func NewSubmitOrder(
	processor OrderProcessor,
	ledger OrderLedger,
	guard AttemptGuard,
	notifier Notifier,
	carts *cart.Manager,
	sessions *session.Manager,
	timeout time.Duration,
	shippingFee int64,
) *SubmitOrder {
	return &SubmitOrder{
		processor:   processor,
		ledger:      ledger,
		guard:       guard,
		notifier:    notifier,
		carts:       carts,
		sessions:    sessions,
		timeout:     timeout,
		shippingFee: shippingFee,
	}
}

func (uc *SubmitOrder) Execute(ctx context.Context, in SubmitOrderInput) (domain.ConfirmedOrder, error) {
	log := logging.FromCtx(ctx).With("session_id", in.SessionID)

	ok, err := uc.guard.TryBegin(ctx, in.SessionID)
	if err != nil {
		// the guard is advisory; a broken lock store must not block checkout
		log.Warn("attempt guard unavailable, proceeding unguarded", "error", err)
	} else if !ok {
		return uc.fail(ctx, in.SessionID, OutcomeInFlight, ErrAttemptInFlight)
	}
	defer uc.guard.End(ctx, in.SessionID)

	store := uc.carts.ForSession(ctx, in.SessionID)
	items := store.Items()
	if len(items) == 0 {
		return uc.fail(ctx, in.SessionID, OutcomeEmptyCart, ErrEmptyCart)
	}

	log.Info("submission processing", "item_count", len(items))
	res, err, timedOut := raceTimeout(ctx, uc.timeout, func(ctx context.Context) (ProcessResult, error) {
		return uc.processor.Process(ctx, in.Details, items)
	})
	if timedOut {
		return uc.fail(ctx, in.SessionID, OutcomeProcessingTimeout, ErrProcessingTimeout)
	}
	if err != nil {
		var unknown *UnknownError
		if errors.As(err, &unknown) {
			return uc.fail(ctx, in.SessionID, OutcomeUnknown, unknown)
		}
		return uc.fail(ctx, in.SessionID, OutcomeProcessingFailed, &ProcessingError{Err: err})
	}

	// totals are purely local and cannot fail
	subtotal := domain.Subtotal(items)
	order := domain.ConfirmedOrder{
		OrderDetails:          in.Details,
		OrderNumber:           res.OrderNumber,
		EstimatedDeliveryTime: res.EstimatedDeliveryTime,
		Items:                 domain.Snapshot(items),
		Subtotal:              subtotal,
		ShippingFee:           uc.shippingFee,
		Total:                 subtotal + uc.shippingFee,
	}

	log.Info("submission persisting", "order_number", order.OrderNumber)
	persisted, err, timedOut := raceTimeout(ctx, uc.timeout, func(ctx context.Context) (PersistResult, error) {
		return uc.ledger.Persist(ctx, order)
	})
	if timedOut {
		return uc.fail(ctx, in.SessionID, OutcomePersistenceTimeout, ErrPersistenceTimeout)
	}
	if err != nil {
		var unknown *UnknownError
		if !errors.As(err, &unknown) {
			unknown = &UnknownError{Message: err.Error()}
		}
		return uc.fail(ctx, in.SessionID, OutcomeUnknown, unknown)
	}
	if !persisted.Success {
		return uc.fail(ctx, in.SessionID, OutcomePersistenceRejected, &RejectedError{Reason: persisted.Message})
	}

	// commit: exactly one cart-clear and one view-transition, only together,
	// only here
	store.Clear(ctx)
	uc.sessions.Confirm(ctx, in.SessionID, order)
	submissionsTotal.WithLabelValues(OutcomeConfirmed).Inc()
	uc.notifier.Notify(ctx, Notification{
		SessionID:   in.SessionID,
		Outcome:     OutcomeConfirmed,
		Message:     "訂單已成功送出！",
		OrderNumber: order.OrderNumber,
	})
	log.Info("submission committed", "order_number", order.OrderNumber, "total", order.Total)
	return order, nil
}

// fail reports a terminal failure: counted, notified, surfaced. Cart and
// session state are untouched on every path through here.
func (uc *SubmitOrder) fail(ctx context.Context, sessionID, outcome string, err error) (domain.ConfirmedOrder, error) {
	submissionsTotal.WithLabelValues(outcome).Inc()
	uc.notifier.Notify(ctx, Notification{
		SessionID: sessionID,
		Outcome:   outcome,
		Message:   err.Error(),
	})
	logging.FromCtx(ctx).Warn("submission failed", "session_id", sessionID, "outcome", outcome, "error", err)
	return domain.ConfirmedOrder{}, err
}
