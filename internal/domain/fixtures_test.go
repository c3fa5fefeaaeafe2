package domain_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
)

func product(price string, attrs ...domain.Attribute) domain.Product {
	return domain.Product{
		ID:      gofakeit.UUID(),
		Name:    gofakeit.ProductName(),
		InStock: true,
		Brand:   gofakeit.Company(),
		Gallery: []string{gofakeit.URL()},
		Prices: []domain.Money{{
			Amount:   decimal.RequireFromString(price),
			Currency: domain.Currency{Label: "USD", Symbol: "$"},
		}},
		Attributes: attrs,
	}
}

func attribute(name string, values ...string) domain.Attribute {
	a := domain.Attribute{
		ID:   gofakeit.UUID(),
		Name: name,
		Type: "text",
	}
	for _, v := range values {
		a.Items = append(a.Items, domain.AttributeOption{
			ID:           gofakeit.UUID(),
			Value:        v,
			DisplayValue: v,
		})
	}
	return a
}

func sizeAttr() domain.Attribute {
	return attribute("Size", "S", "M", "L")
}

func colorAttr() domain.Attribute {
	a := attribute("Color", "#000000", "#FFFFFF")
	a.Type = "swatch"
	return a
}

func mustReduce(c domain.Cart, cmds ...domain.Command) domain.Cart {
	for _, cmd := range cmds {
		var err error
		c, err = domain.Reduce(c, cmd)
		if err != nil {
			panic(err)
		}
	}
	return c
}
