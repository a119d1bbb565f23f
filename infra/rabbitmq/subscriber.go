package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sokoide/solid-orders/domain/entity"
)

// EmailSubscriber consumes notifications published by EmailPublisher.
type EmailSubscriber struct {
	ch       *amqp.Channel
	exchange string
	logger   *slog.Logger
}

func NewEmailSubscriber(ch *amqp.Channel, exchange string, logger *slog.Logger) *EmailSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailSubscriber{ch: ch, exchange: exchange, logger: logger}
}

// Subscribe binds a durable queue to bindingKey and calls handler for every
// delivery until ctx is done. Handler errors requeue the message once.
func (s *EmailSubscriber) Subscribe(ctx context.Context, queue, bindingKey string, handler func(entity.EmailNotification) error) error {
	q, err := s.ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("could not declare queue: %w", err)
	}

	if err := s.ch.QueueBind(q.Name, bindingKey, s.exchange, false, nil); err != nil {
		return fmt.Errorf("could not bind queue: %w", err)
	}

	msgs, err := s.ch.Consume(
		q.Name, // queue
		"",     // consumer tag
		false,  // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return fmt.Errorf("could not start consume: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					return
				}
				s.handle(ctx, d, handler)
			}
		}
	}()

	return nil
}

func (s *EmailSubscriber) handle(ctx context.Context, d amqp.Delivery, handler func(entity.EmailNotification) error) {
	var n entity.EmailNotification
	if err := json.Unmarshal(d.Body, &n); err != nil {
		s.logger.ErrorContext(ctx, "dropping malformed notification", slog.String("message_id", d.MessageId), slog.Any("error", err))
		d.Nack(false, false)
		return
	}
	if err := handler(n); err != nil {
		s.logger.ErrorContext(ctx, "notification handler failed", slog.String("message_id", n.ID), slog.Any("error", err))
		d.Nack(false, !d.Redelivered)
		return
	}
	d.Ack(false)
}
