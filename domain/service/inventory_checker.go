package service

import (
	"context"

	"github.com/sokoide/solid-orders/domain/entity"
	"github.com/sokoide/solid-orders/domain/repository"
)

type InventoryChecker struct {
	source repository.InventorySource
}

func NewInventoryChecker(source repository.InventorySource) *InventoryChecker {
	return &InventoryChecker{source: source}
}

// Verify fails with entity.ErrOutOfStock when the available level is below the
// ordered quantity. Nothing is reserved.
func (c *InventoryChecker) Verify(ctx context.Context, order entity.Order) error {
	level, err := c.source.Level(ctx)
	if err != nil {
		return err
	}
	if level < order.Quantity {
		return entity.ErrOutOfStock
	}
	return nil
}
