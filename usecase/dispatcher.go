package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/sokoide/solid-orders/domain/entity"
)

// OrderDispatcher forwards every order to the one processor it was built with.
type OrderDispatcher struct {
	processor OrderProcessor
	logger    *slog.Logger
}

func NewOrderDispatcher(p OrderProcessor, logger *slog.Logger) *OrderDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderDispatcher{
		processor: p,
		logger:    logger,
	}
}

func (d *OrderDispatcher) ProcessOrder(ctx context.Context, order entity.Order) error {
	err := d.processor.Process(ctx, order)
	if err != nil {
		d.logger.WarnContext(ctx, "order processing failed",
			slog.String("order_id", order.ID),
			slog.String("type", string(order.Type)),
			slog.Any("error", err))
		return err
	}
	d.logger.InfoContext(ctx, "order processed",
		slog.String("order_id", order.ID),
		slog.String("type", string(order.Type)))
	return nil
}

// NewDispatchers builds one traced dispatcher per supported order type.
func NewDispatchers(steps Steps, tp trace.TracerProvider, logger *slog.Logger) map[entity.OrderType]*OrderDispatcher {
	return map[entity.OrderType]*OrderDispatcher{
		entity.OrderTypeStandard: NewOrderDispatcher(NewTracedProcessor(NewStandardOrderProcessor(steps), tp), logger),
		entity.OrderTypeExpress:  NewOrderDispatcher(NewTracedProcessor(NewExpressOrderProcessor(steps), tp), logger),
	}
}
