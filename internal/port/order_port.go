package port

import (
	"context"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type OrderClient interface {
	PlaceOrder(ctx context.Context, items []domain.OrderItem) (domain.OrderConfirmation, error)
}
