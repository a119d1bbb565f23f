package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sokoide/solid-orders/domain/entity"
)

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// EmailPublisher implements repository.Messenger by publishing one message per
// email to the notification exchange.
type EmailPublisher struct {
	ch       publishChannel
	exchange string
	logger   *slog.Logger
	now      func() time.Time
}

func NewEmailPublisher(ch publishChannel, exchange string, logger *slog.Logger) *EmailPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailPublisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *EmailPublisher) SendEmail(ctx context.Context, address, message string) error {
	n := entity.EmailNotification{
		ID:      uuid.New().String(),
		Address: address,
		Message: message,
		SentAt:  p.now(),
	}
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("could not marshal notification: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,      // exchange
		EmailRoutingKey, // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    n.ID,
			Timestamp:    n.SentAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("could not publish notification: %w", err)
	}
	p.logger.InfoContext(ctx, "notification published", slog.String("message_id", n.ID), slog.String("address", address))
	return nil
}
