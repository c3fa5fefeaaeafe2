package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// ErrSnapshotNotFound is returned by Load when nothing was saved yet.
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// CartRepository stores the single cart snapshot under the key it was built with.
type CartRepository interface {
	Load(ctx context.Context) ([]domain.CartItem, error)
	Save(ctx context.Context, items []domain.CartItem) error
}
