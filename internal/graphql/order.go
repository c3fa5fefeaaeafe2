package graphql

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/shopspring/decimal"
)

const placeOrderMutation = `mutation PlaceOrder($items: [OrderInput!]!) {
  placeOrder(items: $items) {
    id
    items {
      product_id
      quantity
      price
      attributes { attribute_set_id attribute_item_id }
    }
  }
}`

type orderClient struct {
	c *Client
}

func NewOrders(c *Client) port.OrderClient {
	return &orderClient{c: c}
}

type orderInput struct {
	ProductID  string           `json:"productId"`
	Quantity   int              `json:"quantity"`
	Attributes []attributeInput `json:"attributes"`
}

type attributeInput struct {
	AttributeSetID  string `json:"attribute_set_id"`
	AttributeItemID string `json:"attribute_item_id"`
}

type gqlOrder struct {
	ID    flexibleID `json:"id"`
	Items []struct {
		ProductID  flexibleID      `json:"product_id"`
		Quantity   int             `json:"quantity"`
		Price      decimal.Decimal `json:"price"`
		Attributes []struct {
			AttributeSetID  flexibleID `json:"attribute_set_id"`
			AttributeItemID flexibleID `json:"attribute_item_id"`
		} `json:"attributes"`
	} `json:"items"`
}

func (r *orderClient) PlaceOrder(ctx context.Context, items []domain.OrderItem) (domain.OrderConfirmation, error) {
	input := make([]orderInput, 0, len(items))
	for _, item := range items {
		in := orderInput{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Attributes: make([]attributeInput, 0, len(item.Attributes)),
		}
		for _, a := range item.Attributes {
			in.Attributes = append(in.Attributes, attributeInput{
				AttributeSetID:  a.AttributeSetID,
				AttributeItemID: a.AttributeItemID,
			})
		}
		input = append(input, in)
	}

	var data struct {
		PlaceOrder *gqlOrder `json:"placeOrder"`
	}
	if err := r.c.Do(ctx, placeOrderMutation, map[string]any{"items": input}, &data); err != nil {
		return domain.OrderConfirmation{}, err
	}
	if data.PlaceOrder == nil || data.PlaceOrder.ID == "" {
		return domain.OrderConfirmation{}, fmt.Errorf("order was not acknowledged")
	}

	return mapOrderToDomain(*data.PlaceOrder), nil
}

func mapOrderToDomain(o gqlOrder) domain.OrderConfirmation {
	out := domain.OrderConfirmation{OrderID: string(o.ID)}

	for _, item := range o.Items {
		ci := domain.ConfirmedItem{
			ProductID: string(item.ProductID),
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		for _, a := range item.Attributes {
			ci.Attributes = append(ci.Attributes, domain.OrderAttribute{
				AttributeSetID:  string(a.AttributeSetID),
				AttributeItemID: string(a.AttributeItemID),
			})
		}
		out.Items = append(out.Items, ci)
	}

	return out
}
