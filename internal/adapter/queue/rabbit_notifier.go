package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/luckyeats/food-order-api/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitNotifier publishes the transient notification raised for every
// terminal checkout outcome. Publishing is fire-and-forget: a broker problem
// is logged and never changes the outcome of the submission.
type RabbitNotifier struct {
	ch         *amqp.Channel
	exchange   string
	routingKey string
	log        *slog.Logger
}

// NewRabbitNotifier declares the exchange once at startup.
func NewRabbitNotifier(ch *amqp.Channel, exchange, routingKey string, log *slog.Logger) (*RabbitNotifier, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &RabbitNotifier{ch: ch, exchange: exchange, routingKey: routingKey, log: log}, nil
}

func (n *RabbitNotifier) Notify(ctx context.Context, msg usecase.Notification) {
	body, err := json.Marshal(msg)
	if err != nil {
		n.log.Error("marshal notification", "error", err)
		return
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}
	if err := n.ch.PublishWithContext(ctx, n.exchange, n.routingKey, false, false, pub); err != nil {
		n.log.Warn("publish notification failed", "outcome", msg.Outcome, "error", err)
	}
}

var _ usecase.Notifier = (*RabbitNotifier)(nil)
