package client

import (
	"context"
	"log/slog"

	"github.com/sokoide/solid-orders/domain/entity"
)

// SimulatedPaymentGateway stands in for a real payment provider. It approves
// every amount up to limit; a zero limit approves everything.
type SimulatedPaymentGateway struct {
	limit  float64
	logger *slog.Logger
}

func NewSimulatedPaymentGateway(limit float64, logger *slog.Logger) *SimulatedPaymentGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulatedPaymentGateway{limit: limit, logger: logger}
}

func (g *SimulatedPaymentGateway) Process(ctx context.Context, amount float64) (bool, error) {
	ok := g.approve(amount)
	g.logger.InfoContext(ctx, "standard payment", slog.Float64("amount", amount), slog.Bool("approved", ok))
	return ok, nil
}

func (g *SimulatedPaymentGateway) ProcessWithPriority(ctx context.Context, amount float64, priority entity.Priority) (bool, error) {
	ok := g.approve(amount)
	g.logger.InfoContext(ctx, "express payment", slog.Float64("amount", amount), slog.String("priority", string(priority)), slog.Bool("approved", ok))
	return ok, nil
}

func (g *SimulatedPaymentGateway) approve(amount float64) bool {
	if amount < 0 {
		return false
	}
	return g.limit == 0 || amount <= g.limit
}
