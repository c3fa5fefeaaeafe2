package port

import (
	"context"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type CatalogClient interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}
