package graphql

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const productsQuery = `query {
  products {
    id
    name
    description
    inStock
    category { id name }
    brand
    gallery
    prices { amount currency { label symbol } }
    attributes { id name type items { id value displayValue } }
  }
}`

const categoriesQuery = `query {
  categories { id name }
}`

type catalogClient struct {
	c   *Client
	log *zap.Logger
}

func NewCatalog(c *Client, log *zap.Logger) port.CatalogClient {
	return &catalogClient{c: c, log: log}
}

type gqlCategory struct {
	ID   flexibleID `json:"id"`
	Name string     `json:"name"`
}

type gqlProduct struct {
	ID          flexibleID     `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InStock     bool           `json:"inStock"`
	Category    *gqlCategory   `json:"category"`
	Brand       string         `json:"brand"`
	Gallery     []string       `json:"gallery"`
	Prices      []gqlPrice     `json:"prices"`
	Attributes  []gqlAttribute `json:"attributes"`
}

type gqlPrice struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency struct {
		Label  string `json:"label"`
		Symbol string `json:"symbol"`
	} `json:"currency"`
}

type gqlAttribute struct {
	ID    flexibleID `json:"id"`
	Name  string     `json:"name"`
	Type  string     `json:"type"`
	Items []struct {
		ID           flexibleID `json:"id"`
		Value        string     `json:"value"`
		DisplayValue string     `json:"displayValue"`
	} `json:"items"`
}

func (r *catalogClient) Products(ctx context.Context) ([]domain.Product, error) {
	var data struct {
		Products []gqlProduct `json:"products"`
	}
	if err := r.c.Do(ctx, productsQuery, nil, &data); err != nil {
		return nil, fmt.Errorf("c.Do products: %w", err)
	}

	products := make([]domain.Product, 0, len(data.Products))
	for _, p := range data.Products {
		products = append(products, r.mapProductToDomain(p))
	}

	return products, nil
}

func (r *catalogClient) Categories(ctx context.Context) ([]domain.Category, error) {
	var data struct {
		Categories []gqlCategory `json:"categories"`
	}
	if err := r.c.Do(ctx, categoriesQuery, nil, &data); err != nil {
		return nil, fmt.Errorf("c.Do categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(data.Categories))
	for _, c := range data.Categories {
		categories = append(categories, domain.Category{ID: string(c.ID), Name: c.Name})
	}

	return categories, nil
}

func (r *catalogClient) mapProductToDomain(p gqlProduct) domain.Product {
	out := domain.Product{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		InStock:     p.InStock,
		Brand:       p.Brand,
		Gallery:     p.Gallery,
	}
	if p.Category != nil {
		out.Category = domain.Category{ID: string(p.Category.ID), Name: p.Category.Name}
	}

	for _, price := range p.Prices {
		out.Prices = append(out.Prices, domain.Money{
			Amount:   price.Amount,
			Currency: r.mapCurrency(price.Currency.Label, price.Currency.Symbol),
		})
	}

	for _, a := range p.Attributes {
		attr := domain.Attribute{ID: string(a.ID), Name: a.Name, Type: a.Type}
		for _, item := range a.Items {
			attr.Items = append(attr.Items, domain.AttributeOption{
				ID:           string(item.ID),
				Value:        item.Value,
				DisplayValue: item.DisplayValue,
			})
		}
		out.Attributes = append(out.Attributes, attr)
	}

	return out
}

// mapCurrency canonicalizes ISO labels and keeps anything else as sent.
func (r *catalogClient) mapCurrency(label, symbol string) domain.Currency {
	cur := domain.Currency{Label: label, Symbol: symbol}

	unit, err := cur.Unit()
	if err != nil {
		r.log.Debug("non ISO currency label", zap.String("label", label))
		return cur
	}

	cur.Label = unit.String()
	return cur
}
