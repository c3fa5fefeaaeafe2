package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	client *redis.Client
	key    string
}

func NewRedisCart(client *redis.Client, key string) (port.CartRepository, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	return &redisRepository{
		client: client,
		key:    snapshotKey(key),
	}, nil
}

func (r *redisRepository) Load(ctx context.Context) ([]domain.CartItem, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("client.Get: %w", err)
	}

	items, err := UnmarshalSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("UnmarshalSnapshot: %w", err)
	}

	return items, nil
}

// Save stores the snapshot without expiry, it has to survive restarts.
func (r *redisRepository) Save(ctx context.Context, items []domain.CartItem) error {
	payload, err := MarshalSnapshot(items)
	if err != nil {
		return fmt.Errorf("MarshalSnapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func snapshotKey(key string) string {
	return fmt.Sprintf("cart:%s", key)
}
