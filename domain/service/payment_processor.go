package service

import (
	"context"

	"github.com/sokoide/solid-orders/domain/entity"
	"github.com/sokoide/solid-orders/domain/repository"
)

type PaymentProcessor struct {
	standard repository.PaymentGateway
	express  repository.PriorityPaymentGateway
}

func NewPaymentProcessor(standard repository.PaymentGateway, express repository.PriorityPaymentGateway) *PaymentProcessor {
	return &PaymentProcessor{
		standard: standard,
		express:  express,
	}
}

func (p *PaymentProcessor) ChargeStandard(ctx context.Context, order entity.Order) error {
	ok, err := p.standard.Process(ctx, order.Amount)
	if err != nil {
		return err
	}
	if !ok {
		return entity.ErrPaymentFailed
	}
	return nil
}

func (p *PaymentProcessor) ChargeExpress(ctx context.Context, order entity.Order, priority entity.Priority) error {
	ok, err := p.express.ProcessWithPriority(ctx, order.Amount, priority)
	if err != nil {
		return err
	}
	if !ok {
		return entity.ErrExpressPaymentFailed
	}
	return nil
}
