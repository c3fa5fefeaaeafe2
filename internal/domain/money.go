package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

type Currency struct {
	Label  string
	Symbol string
}

// Unit parses Label as an ISO 4217 code.
func (c Currency) Unit() (currency.Unit, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(c.Label))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Label, err)
	}

	return unit, nil
}
