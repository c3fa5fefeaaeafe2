package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/db"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
	key  string
}

func NewCart(pool *pgxpool.Pool, key string) (port.CartRepository, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
		key:  key,
	}, nil
}

func NewCartWithTx(tx pgx.Tx, key string) (port.CartRepository, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
		key:  key,
	}, nil
}

func (r *cartRepository) Load(ctx context.Context) ([]domain.CartItem, error) {
	row, err := r.q.GetCartSnapshot(ctx, r.key)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("q.GetCartSnapshot: %w", err)
	}

	items, err := UnmarshalSnapshot(row.Payload)
	if err != nil {
		return nil, fmt.Errorf("UnmarshalSnapshot: %w", err)
	}

	return items, nil
}

// Save overwrites the snapshot and bumps its revision. The row is locked
// for the duration of the write, the last writer wins.
func (r *cartRepository) Save(ctx context.Context, items []domain.CartItem) error {
	payload, err := MarshalSnapshot(items)
	if err != nil {
		return fmt.Errorf("MarshalSnapshot: %w", err)
	}

	_, err = withTx(ctx, r.pool, r.q, func(q *db.Queries) (int64, error) {
		revision, err := q.LockCartSnapshotRevision(ctx, r.key)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("q.LockCartSnapshotRevision: %w", err)
		}

		err = q.UpsertCartSnapshot(ctx, db.UpsertCartSnapshotParams{
			Key:      r.key,
			Payload:  payload,
			Revision: revision + 1,
		})
		if err != nil {
			return 0, fmt.Errorf("q.UpsertCartSnapshot: %w", err)
		}

		return revision + 1, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}
