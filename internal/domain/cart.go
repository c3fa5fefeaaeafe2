package domain

type Cart struct {
	Items     []CartItem
	ModalOpen bool
}

// CartItem is a line item: a frozen copy of the product display fields
// taken when it was added, the chosen attribute values and a quantity.
type CartItem struct {
	ProductID  string
	Name       string
	Brand      string
	Prices     []Money
	Gallery    []string
	Attributes []Attribute

	Selected Selection
	Quantity int
}

func NewCartItem(p Product, sel Selection) CartItem {
	return CartItem{
		ProductID:  p.ID,
		Name:       p.Name,
		Brand:      p.Brand,
		Prices:     append([]Money(nil), p.Prices...),
		Gallery:    append([]string(nil), p.Gallery...),
		Attributes: cloneAttributes(p.Attributes),
		Selected:   sel.Clone(),
		Quantity:   1,
	}
}

// Matches applies the line-item identity rule.
func (i CartItem) Matches(productID string, sel Selection) bool {
	return i.ProductID == productID && i.Selected.Equal(sel)
}

func (i CartItem) Attribute(name string) (Attribute, bool) {
	return findAttribute(i.Attributes, name)
}

func (i CartItem) UnitPrice() (Money, bool) {
	if len(i.Prices) == 0 {
		return Money{}, false
	}
	return i.Prices[0], true
}

func (i CartItem) clone() CartItem {
	out := i
	out.Prices = append([]Money(nil), i.Prices...)
	out.Gallery = append([]string(nil), i.Gallery...)
	out.Attributes = cloneAttributes(i.Attributes)
	out.Selected = i.Selected.Clone()
	return out
}

func (c Cart) Len() int {
	return len(c.Items)
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy, so callers can hand out state without sharing
// the backing arrays.
func (c Cart) Clone() Cart {
	return Cart{
		Items:     cloneItems(c.Items),
		ModalOpen: c.ModalOpen,
	}
}

func cloneItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}

	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item.clone()
	}
	return out
}
