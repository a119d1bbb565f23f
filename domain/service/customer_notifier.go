package service

import (
	"context"

	"github.com/sokoide/solid-orders/domain/entity"
	"github.com/sokoide/solid-orders/domain/repository"
)

type CustomerNotifier struct {
	messenger repository.Messenger
}

func NewCustomerNotifier(m repository.Messenger) *CustomerNotifier {
	return &CustomerNotifier{messenger: m}
}

func (n *CustomerNotifier) Notify(ctx context.Context, order entity.Order) error {
	return n.messenger.SendEmail(ctx, order.CustomerEmail, entity.NotificationMessage)
}
