package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sokoide/solid-orders/domain/entity"
)

type orderStatusRecord struct {
	OrderID   string `gorm:"primaryKey;type:varchar(128)"`
	Status    string `gorm:"type:varchar(32);not null"`
	UpdatedAt time.Time
}

func (orderStatusRecord) TableName() string { return "order_statuses" }

// GormStatusStore persists the last status written for each order id.
type GormStatusStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormStatusStore(db *gorm.DB, logger *slog.Logger) *GormStatusStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormStatusStore{db: db, logger: logger}
}

func (s *GormStatusStore) AutoMigrate() error {
	return s.db.AutoMigrate(&orderStatusRecord{})
}

// UpdateOrderStatus overwrites whatever status was stored for orderID.
func (s *GormStatusStore) UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) error {
	rec := orderStatusRecord{OrderID: orderID, Status: string(status)}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("could not save order status: %w", err)
	}
	s.logger.InfoContext(ctx, "order status saved", slog.String("order_id", orderID), slog.String("status", string(status)))
	return nil
}

func (s *GormStatusStore) Status(ctx context.Context, orderID string) (entity.OrderStatus, error) {
	var rec orderStatusRecord
	err := s.db.WithContext(ctx).First(&rec, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", entity.ErrStatusNotFound
		}
		return "", fmt.Errorf("could not load order status: %w", err)
	}
	return entity.OrderStatus(rec.Status), nil
}
