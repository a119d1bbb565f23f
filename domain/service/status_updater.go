package service

import (
	"context"

	"github.com/sokoide/solid-orders/domain/entity"
	"github.com/sokoide/solid-orders/domain/repository"
)

type OrderStatusUpdater struct {
	store repository.StatusStore
}

func NewOrderStatusUpdater(store repository.StatusStore) *OrderStatusUpdater {
	return &OrderStatusUpdater{store: store}
}

// SetStatus writes status for order.ID without reading or checking the previous one.
func (u *OrderStatusUpdater) SetStatus(ctx context.Context, order entity.Order, status entity.OrderStatus) error {
	return u.store.UpdateOrderStatus(ctx, order.ID, status)
}
