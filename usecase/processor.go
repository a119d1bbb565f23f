package usecase

import (
	"context"
	"fmt"

	"github.com/sokoide/solid-orders/domain/entity"
	"github.com/sokoide/solid-orders/domain/service"
)

// OrderProcessor runs the full workflow for a single order.
type OrderProcessor interface {
	Process(ctx context.Context, order entity.Order) error
}

// Steps bundles the collaborators every processor variant runs in the same order.
type Steps struct {
	Inventory *service.InventoryChecker
	Payment   *service.PaymentProcessor
	Status    *service.OrderStatusUpdater
	Notifier  *service.CustomerNotifier
}

// run executes inventory -> charge -> status -> notify and stops at the first error,
// returning it unmodified. Earlier steps are not undone.
func (s Steps) run(ctx context.Context, order entity.Order, charge func(context.Context, entity.Order) error) error {
	if err := s.Inventory.Verify(ctx, order); err != nil {
		return err
	}
	if err := charge(ctx, order); err != nil {
		return err
	}
	if err := s.Status.SetStatus(ctx, order, entity.OrderStatusProcessed); err != nil {
		return err
	}
	return s.Notifier.Notify(ctx, order)
}

type StandardOrderProcessor struct {
	steps Steps
}

func NewStandardOrderProcessor(steps Steps) *StandardOrderProcessor {
	return &StandardOrderProcessor{steps: steps}
}

func (p *StandardOrderProcessor) Process(ctx context.Context, order entity.Order) error {
	return p.steps.run(ctx, order, p.steps.Payment.ChargeStandard)
}

type ExpressOrderProcessor struct {
	steps    Steps
	priority entity.Priority
}

func NewExpressOrderProcessor(steps Steps) *ExpressOrderProcessor {
	return &ExpressOrderProcessor{
		steps:    steps,
		priority: entity.PriorityHigh,
	}
}

func (p *ExpressOrderProcessor) Process(ctx context.Context, order entity.Order) error {
	return p.steps.run(ctx, order, func(ctx context.Context, o entity.Order) error {
		return p.steps.Payment.ChargeExpress(ctx, o, p.priority)
	})
}

// ProcessorFor picks the processor variant for an order type. Hosts call it once
// at construction time and hand the result to NewOrderDispatcher.
func ProcessorFor(t entity.OrderType, steps Steps) (OrderProcessor, error) {
	switch t {
	case entity.OrderTypeStandard:
		return NewStandardOrderProcessor(steps), nil
	case entity.OrderTypeExpress:
		return NewExpressOrderProcessor(steps), nil
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownOrderType, t)
	}
}
