package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sokoide/solid-orders/domain/entity"
)

const tracerName = "github.com/sokoide/solid-orders/usecase"

// TracedProcessor wraps an OrderProcessor in a span. Errors are recorded on the
// span and returned as-is.
type TracedProcessor struct {
	next   OrderProcessor
	tracer trace.Tracer
}

func NewTracedProcessor(next OrderProcessor, tp trace.TracerProvider) *TracedProcessor {
	return &TracedProcessor{
		next:   next,
		tracer: tp.Tracer(tracerName),
	}
}

func (p *TracedProcessor) Process(ctx context.Context, order entity.Order) error {
	ctx, span := p.tracer.Start(ctx, "ProcessOrder",
		trace.WithAttributes(
			attribute.String("order.id", order.ID),
			attribute.String("order.type", string(order.Type)),
			attribute.Int("order.quantity", order.Quantity),
		))
	defer span.End()

	if err := p.next.Process(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
