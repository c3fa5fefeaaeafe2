package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
)

// SnapshotVersion is written into every saved snapshot. Version 0 is the
// bare JSON array written before the envelope existed.
const SnapshotVersion = 1

var (
	ErrCorruptSnapshot = errors.New("cart snapshot is corrupt")
)

type snapshotEnvelope struct {
	Version int            `json:"version"`
	Items   []snapshotItem `json:"items"`
}

type snapshotItem struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Brand              string              `json:"brand,omitempty"`
	Prices             []snapshotPrice     `json:"prices"`
	Gallery            []string            `json:"gallery"`
	Attributes         []snapshotAttribute `json:"attributes"`
	SelectedAttributes map[string]string   `json:"selectedAttributes"`
	Quantity           int                 `json:"quantity"`
}

type snapshotPrice struct {
	Amount   decimal.Decimal  `json:"amount"`
	Currency snapshotCurrency `json:"currency"`
}

type snapshotCurrency struct {
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
}

type snapshotAttribute struct {
	ID    string               `json:"id"`
	Name  string               `json:"name"`
	Type  string               `json:"type"`
	Items []snapshotAttrOption `json:"items"`
}

type snapshotAttrOption struct {
	ID           string `json:"id"`
	Value        string `json:"value"`
	DisplayValue string `json:"displayValue"`
}

func MarshalSnapshot(items []domain.CartItem) ([]byte, error) {
	env := snapshotEnvelope{
		Version: SnapshotVersion,
		Items:   make([]snapshotItem, 0, len(items)),
	}
	for _, item := range items {
		env.Items = append(env.Items, mapItemToSnapshot(item))
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return data, nil
}

// UnmarshalSnapshot accepts the versioned envelope and the legacy bare array.
// Anything else, including an unknown version, is ErrCorruptSnapshot.
func UnmarshalSnapshot(data []byte) ([]domain.CartItem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty payload: %w", ErrCorruptSnapshot)
	}

	var env snapshotEnvelope
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &env.Items); err != nil {
			return nil, fmt.Errorf("json.Unmarshal legacy: %w: %w", ErrCorruptSnapshot, err)
		}
	} else {
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("json.Unmarshal: %w: %w", ErrCorruptSnapshot, err)
		}
		if env.Version < 1 || env.Version > SnapshotVersion {
			return nil, fmt.Errorf("version[%d] is not supported: %w", env.Version, ErrCorruptSnapshot)
		}
	}

	items, err := mapSnapshotItemsToDomain(env.Items)
	if err != nil {
		return nil, fmt.Errorf("mapSnapshotItemsToDomain: %w", err)
	}

	return items, nil
}

func mapItemToSnapshot(item domain.CartItem) snapshotItem {
	out := snapshotItem{
		ID:                 item.ProductID,
		Name:               item.Name,
		Brand:              item.Brand,
		Prices:             make([]snapshotPrice, 0, len(item.Prices)),
		Gallery:            item.Gallery,
		Attributes:         make([]snapshotAttribute, 0, len(item.Attributes)),
		SelectedAttributes: item.Selected,
		Quantity:           item.Quantity,
	}
	if out.Gallery == nil {
		out.Gallery = []string{}
	}
	if out.SelectedAttributes == nil {
		out.SelectedAttributes = map[string]string{}
	}

	for _, p := range item.Prices {
		out.Prices = append(out.Prices, snapshotPrice{
			Amount:   p.Amount,
			Currency: snapshotCurrency{Label: p.Currency.Label, Symbol: p.Currency.Symbol},
		})
	}

	for _, a := range item.Attributes {
		sa := snapshotAttribute{
			ID:    a.ID,
			Name:  a.Name,
			Type:  a.Type,
			Items: make([]snapshotAttrOption, 0, len(a.Items)),
		}
		for _, opt := range a.Items {
			sa.Items = append(sa.Items, snapshotAttrOption{
				ID:           opt.ID,
				Value:        opt.Value,
				DisplayValue: opt.DisplayValue,
			})
		}
		out.Attributes = append(out.Attributes, sa)
	}

	return out
}

func mapSnapshotItemToDomain(item snapshotItem) (domain.CartItem, error) {
	if item.ID == "" {
		return domain.CartItem{}, fmt.Errorf("item id is empty: %w", ErrCorruptSnapshot)
	}
	if item.Quantity < 1 {
		return domain.CartItem{}, fmt.Errorf("item[%s] quantity[%d] is not positive: %w", item.ID, item.Quantity, ErrCorruptSnapshot)
	}

	out := domain.CartItem{
		ProductID: item.ID,
		Name:      item.Name,
		Brand:     item.Brand,
		Gallery:   item.Gallery,
		Selected:  domain.Selection(item.SelectedAttributes),
		Quantity:  item.Quantity,
	}
	if out.Selected == nil {
		out.Selected = domain.Selection{}
	}

	for _, p := range item.Prices {
		out.Prices = append(out.Prices, domain.Money{
			Amount:   p.Amount,
			Currency: domain.Currency{Label: p.Currency.Label, Symbol: p.Currency.Symbol},
		})
	}

	for _, a := range item.Attributes {
		da := domain.Attribute{ID: a.ID, Name: a.Name, Type: a.Type}
		for _, opt := range a.Items {
			da.Items = append(da.Items, domain.AttributeOption{
				ID:           opt.ID,
				Value:        opt.Value,
				DisplayValue: opt.DisplayValue,
			})
		}
		out.Attributes = append(out.Attributes, da)
	}

	return out, nil
}

func mapSnapshotItemsToDomain(items []snapshotItem) ([]domain.CartItem, error) {
	var out []domain.CartItem

	for _, item := range items {
		mapped, err := mapSnapshotItemToDomain(item)
		if err != nil {
			return nil, fmt.Errorf("mapSnapshotItemToDomain: %w", err)
		}

		out = append(out, mapped)
	}

	return out, nil
}
