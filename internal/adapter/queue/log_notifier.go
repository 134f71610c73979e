package queue

import (
	"context"
	"log/slog"

	"github.com/luckyeats/food-order-api/internal/usecase"
)

// LogNotifier stands in when no broker is configured, so the mandatory
// per-outcome notification still leaves a trace.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, msg usecase.Notification) {
	n.log.Info("order notification",
		"session_id", msg.SessionID,
		"outcome", msg.Outcome,
		"message", msg.Message,
		"order_number", msg.OrderNumber,
	)
}

var _ usecase.Notifier = (*LogNotifier)(nil)
