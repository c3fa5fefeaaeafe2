package domain

import "fmt"

// Command is a cart transition understood by Reduce.
type Command interface {
	command()
}

type AddItem struct {
	Product   Product
	Selection Selection
}

type RemoveItem struct {
	Index int
}

// SetQuantity sets an absolute quantity. Anything below 1 removes the item.
type SetQuantity struct {
	Index    int
	Quantity int
}

type SetAttribute struct {
	Index int
	Name  string
	Value string
}

type Clear struct{}

type SetModalOpen struct {
	Open bool
}

// Replace swaps the whole item sequence, used when rehydrating.
type Replace struct {
	Items []CartItem
}

func (AddItem) command()      {}
func (RemoveItem) command()   {}
func (SetQuantity) command()  {}
func (SetAttribute) command() {}
func (Clear) command()        {}
func (SetModalOpen) command() {}
func (Replace) command()      {}

// Reduce applies cmd to c and returns the next state. The input cart is
// never modified. On error the returned cart is c unchanged.
func Reduce(c Cart, cmd Command) (Cart, error) {
	switch cmd := cmd.(type) {
	case AddItem:
		return addItem(c, cmd)
	case RemoveItem:
		if !inRange(c, cmd.Index) {
			return c, fmt.Errorf("remove item %d of %d: %w", cmd.Index, c.Len(), ErrIndexOutOfRange)
		}
		return removeAt(c, cmd.Index), nil
	case SetQuantity:
		return setQuantity(c, cmd)
	case SetAttribute:
		return setAttribute(c, cmd), nil
	case Clear:
		return Cart{ModalOpen: c.ModalOpen}, nil
	case SetModalOpen:
		return Cart{Items: c.Items, ModalOpen: cmd.Open}, nil
	case Replace:
		return Cart{Items: cloneItems(cmd.Items), ModalOpen: c.ModalOpen}, nil
	default:
		return c, fmt.Errorf("%T: %w", cmd, ErrUnknownCommand)
	}
}

func addItem(c Cart, cmd AddItem) (Cart, error) {
	if !cmd.Product.InStock {
		return c, fmt.Errorf("product[%s]: %w", cmd.Product.ID, ErrOutOfStock)
	}
	if !SelectionComplete(cmd.Product, cmd.Selection) {
		return c, fmt.Errorf("product[%s]: %w", cmd.Product.ID, ErrIncompleteSelection)
	}

	items := make([]CartItem, len(c.Items), len(c.Items)+1)
	copy(items, c.Items)

	for i, item := range items {
		if item.Matches(cmd.Product.ID, cmd.Selection) {
			items[i].Quantity = item.Quantity + 1
			return Cart{Items: items, ModalOpen: c.ModalOpen}, nil
		}
	}

	items = append(items, NewCartItem(cmd.Product, cmd.Selection))
	return Cart{Items: items, ModalOpen: c.ModalOpen}, nil
}

func setQuantity(c Cart, cmd SetQuantity) (Cart, error) {
	if !inRange(c, cmd.Index) {
		return c, fmt.Errorf("set quantity of item %d of %d: %w", cmd.Index, c.Len(), ErrIndexOutOfRange)
	}
	if cmd.Quantity < 1 {
		return removeAt(c, cmd.Index), nil
	}

	items := append([]CartItem(nil), c.Items...)
	items[cmd.Index].Quantity = cmd.Quantity
	return Cart{Items: items, ModalOpen: c.ModalOpen}, nil
}

// setAttribute ignores requests that do not resolve against the item's
// attribute snapshot, leaving the cart as it was.
func setAttribute(c Cart, cmd SetAttribute) Cart {
	if !inRange(c, cmd.Index) {
		return c
	}

	item := c.Items[cmd.Index]
	attr, ok := item.Attribute(cmd.Name)
	if !ok {
		return c
	}
	if _, ok := attr.Option(cmd.Value); !ok {
		return c
	}

	items := append([]CartItem(nil), c.Items...)
	sel := item.Selected.Clone()
	sel[cmd.Name] = cmd.Value
	items[cmd.Index].Selected = sel

	return Cart{Items: items, ModalOpen: c.ModalOpen}
}

func removeAt(c Cart, index int) Cart {
	items := make([]CartItem, 0, len(c.Items)-1)
	items = append(items, c.Items[:index]...)
	items = append(items, c.Items[index+1:]...)
	return Cart{Items: items, ModalOpen: c.ModalOpen}
}

func inRange(c Cart, index int) bool {
	return index >= 0 && index < len(c.Items)
}
