package domain

import "github.com/shopspring/decimal"

const DefaultCurrencySymbol = "$"

type Total struct {
	Amount decimal.Decimal
	Symbol string
}

// Formatted renders the amount with exactly two decimal digits.
func (t Total) Formatted() string {
	return t.Amount.StringFixed(2)
}

func (t Total) String() string {
	return t.Symbol + t.Formatted()
}

func TotalItemCount(c Cart) int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums quantity times the first listed price of every item. The
// catalog is assumed single-currency, the symbol comes from the first item.
func TotalPrice(c Cart) Total {
	amount := decimal.Zero
	for _, item := range c.Items {
		price, ok := item.UnitPrice()
		if !ok {
			continue
		}
		amount = amount.Add(price.Amount.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return Total{
		Amount: amount.Round(2),
		Symbol: displaySymbol(c),
	}
}

func displaySymbol(c Cart) string {
	if c.IsEmpty() {
		return DefaultCurrencySymbol
	}
	price, ok := c.Items[0].UnitPrice()
	if !ok || price.Currency.Symbol == "" {
		return DefaultCurrencySymbol
	}
	return price.Currency.Symbol
}
