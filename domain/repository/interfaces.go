package repository

import (
	"context"

	"github.com/sokoide/solid-orders/domain/entity"
)

// PaymentGateway charges a standard payment. false means the gateway declined.
type PaymentGateway interface {
	Process(ctx context.Context, amount float64) (bool, error)
}

// PriorityPaymentGateway charges an express payment tagged with a priority.
type PriorityPaymentGateway interface {
	ProcessWithPriority(ctx context.Context, amount float64, priority entity.Priority) (bool, error)
}

type StatusStore interface {
	UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) error
}

type Messenger interface {
	SendEmail(ctx context.Context, address, message string) error
}

// InventorySource reports the currently available inventory level.
type InventorySource interface {
	Level(ctx context.Context) (int, error)
}

type IDGenerator interface {
	GenerateID() string
}
