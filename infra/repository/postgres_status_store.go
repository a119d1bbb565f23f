package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sokoide/solid-orders/domain/entity"
)

const (
	createStatusTable = `CREATE TABLE IF NOT EXISTS order_statuses (
	order_id   VARCHAR(128) PRIMARY KEY,
	status     VARCHAR(32)  NOT NULL,
	updated_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
)`
	upsertStatus = `INSERT INTO order_statuses (order_id, status, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (order_id) DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	selectStatus = `SELECT status FROM order_statuses WHERE order_id = $1`
)

// PostgresStatusStore is the database/sql variant used when the store driver is postgres.
type PostgresStatusStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPostgresStatusStore(db *sql.DB, logger *slog.Logger) *PostgresStatusStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStatusStore{db: db, logger: logger}
}

func (s *PostgresStatusStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createStatusTable); err != nil {
		return fmt.Errorf("could not create order_statuses: %w", err)
	}
	return nil
}

func (s *PostgresStatusStore) UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) error {
	if _, err := s.db.ExecContext(ctx, upsertStatus, orderID, string(status)); err != nil {
		return fmt.Errorf("could not save order status: %w", err)
	}
	s.logger.InfoContext(ctx, "order status saved", slog.String("order_id", orderID), slog.String("status", string(status)))
	return nil
}

func (s *PostgresStatusStore) Status(ctx context.Context, orderID string) (entity.OrderStatus, error) {
	var status string
	err := s.db.QueryRowContext(ctx, selectStatus, orderID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", entity.ErrStatusNotFound
		}
		return "", fmt.Errorf("could not load order status: %w", err)
	}
	return entity.OrderStatus(status), nil
}
