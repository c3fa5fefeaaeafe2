package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func randomCartItems(n int) []domain.CartItem {
	items := make([]domain.CartItem, 0, n)
	for range n {
		items = append(items, randomCartItem())
	}
	return items
}

func randomCartItem() domain.CartItem {
	size := randomAttribute("Size", 3)
	color := randomAttribute("Color", 2)

	return domain.CartItem{
		ProductID:  gofakeit.UUID(),
		Name:       gofakeit.ProductName(),
		Brand:      gofakeit.Company(),
		Prices:     []domain.Money{randomMoney()},
		Gallery:    []string{gofakeit.URL(), gofakeit.URL()},
		Attributes: []domain.Attribute{size, color},
		Selected: domain.Selection{
			size.Name:  size.Items[gofakeit.IntRange(0, 2)].Value,
			color.Name: color.Items[gofakeit.IntRange(0, 1)].Value,
		},
		Quantity: gofakeit.IntRange(1, 10),
	}
}

func randomAttribute(name string, options int) domain.Attribute {
	a := domain.Attribute{
		ID:   gofakeit.UUID(),
		Name: name,
		Type: "text",
	}
	for i := range options {
		value := gofakeit.LetterN(3) + gofakeit.DigitN(uint(i+1))
		a.Items = append(a.Items, domain.AttributeOption{
			ID:           gofakeit.UUID(),
			Value:        value,
			DisplayValue: value,
		})
	}
	return a
}

func randomMoney() domain.Money {
	unit := randomCurrency()

	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: domain.Currency{Label: unit.String(), Symbol: gofakeit.CurrencyShort()},
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func assertCartItems(t *testing.T, expected, actual []domain.CartItem) {
	t.Helper()

	diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty())
	assert.Empty(t, diff)
}
