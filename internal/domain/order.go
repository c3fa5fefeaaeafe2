package domain

import "github.com/shopspring/decimal"

type OrderItem struct {
	ProductID  string
	Quantity   int
	Attributes []OrderAttribute
}

type OrderAttribute struct {
	AttributeSetID  string
	AttributeItemID string
}

// OrderConfirmation is what the order service echoes back on success.
type OrderConfirmation struct {
	OrderID string
	Items   []ConfirmedItem
}

type ConfirmedItem struct {
	ProductID  string
	Quantity   int
	Price      decimal.Decimal
	Attributes []OrderAttribute
}

// BuildOrderItems flattens every line item into the order request shape.
// Selected values that no longer resolve against the item's attribute
// snapshot are dropped from that item.
func BuildOrderItems(c Cart) []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Attributes: resolveAttributes(item),
		})
	}
	return items
}

// resolveAttributes walks the attribute definitions so the output order is
// stable, unlike ranging over the selection map.
func resolveAttributes(item CartItem) []OrderAttribute {
	attrs := make([]OrderAttribute, 0, len(item.Selected))
	for _, a := range item.Attributes {
		value, ok := item.Selected[a.Name]
		if !ok {
			continue
		}
		opt, ok := a.Option(value)
		if !ok {
			continue
		}
		attrs = append(attrs, OrderAttribute{
			AttributeSetID:  a.ID,
			AttributeItemID: opt.ID,
		})
	}
	return attrs
}
