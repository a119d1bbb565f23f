package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sokoide/solid-orders/config"
	"github.com/sokoide/solid-orders/domain/entity"
	domainrepo "github.com/sokoide/solid-orders/domain/repository"
)

// StatusRepository is a status store that hosts can also read back from.
type StatusRepository interface {
	domainrepo.StatusStore
	Status(ctx context.Context, orderID string) (entity.OrderStatus, error)
}

// OpenStatusStore opens the store selected by cfg.Driver and prepares its schema.
// The returned func releases the underlying connection.
func OpenStatusStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (StatusRepository, func() error, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite store: %w", err)
		}
		store := NewGormStatusStore(db, logger)
		if err := store.AutoMigrate(); err != nil {
			return nil, nil, fmt.Errorf("could not migrate sqlite store: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return store, sqlDB.Close, nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open postgres store: %w", err)
		}
		db.SetMaxIdleConns(5)
		db.SetMaxOpenConns(20)
		db.SetConnMaxLifetime(30 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("could not reach postgres store: %w", err)
		}
		store := NewPostgresStatusStore(db, logger)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
