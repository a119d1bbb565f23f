package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

var ErrNegativeStock = errors.New("stock cannot go below zero")

// RedisInventoryRepository keeps the available inventory level in a single key.
type RedisInventoryRepository struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

func NewRedisInventoryRepository(client *redis.Client, key string, logger *slog.Logger) *RedisInventoryRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisInventoryRepository{
		client: client,
		key:    key,
		logger: logger,
	}
}

// Level returns the stored level. A key that was never set reads as 0.
func (r *RedisInventoryRepository) Level(ctx context.Context) (int, error) {
	level, err := r.client.Get(ctx, r.key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("could not read inventory level: %w", err)
	}
	return level, nil
}

func (r *RedisInventoryRepository) SetLevel(ctx context.Context, level int) error {
	if level < 0 {
		return ErrNegativeStock
	}
	if err := r.client.Set(ctx, r.key, level, 0).Err(); err != nil {
		return fmt.Errorf("could not set inventory level: %w", err)
	}
	r.logger.InfoContext(ctx, "inventory level set", slog.String("key", r.key), slog.Int("level", level))
	return nil
}

// AddStock atomically adds delta (which may be negative) and returns the new level.
func (r *RedisInventoryRepository) AddStock(ctx context.Context, delta int) (int, error) {
	res, err := r.client.Eval(ctx, adjustStock, []string{r.key}, delta).Int()
	if err != nil {
		return 0, fmt.Errorf("could not adjust inventory level: %w", err)
	}
	if res < 0 {
		return 0, ErrNegativeStock
	}
	r.logger.InfoContext(ctx, "inventory level adjusted", slog.String("key", r.key), slog.Int("delta", delta), slog.Int("level", res))
	return res, nil
}
