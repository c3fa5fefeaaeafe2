package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nikolayk812/storefront-cart/internal/cart"
	"github.com/nikolayk812/storefront-cart/internal/catalog"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/order"
)

var errUsage = errors.New("invalid arguments, run storefront -h for usage")

type app struct {
	catalog *catalog.Store
	cart    *cart.Store
	orders  *order.Submitter
	out     io.Writer
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "products":
		return a.products(ctx, args)
	case "categories":
		return a.categories(ctx)
	case "add":
		return a.add(ctx, args)
	case "quick-add":
		return a.quickAdd(ctx, args)
	case "cart":
		return a.show()
	case "qty":
		return a.quantity(ctx, args)
	case "attr":
		return a.attribute(ctx, args)
	case "rm":
		return a.remove(ctx, args)
	case "clear":
		a.cart.ClearCart(ctx)
		return a.show()
	case "submit":
		return a.submit(ctx)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func (a *app) products(ctx context.Context, args []string) error {
	if err := a.catalog.Fetch(ctx); err != nil {
		return fmt.Errorf("catalog.Fetch: %w", err)
	}

	category := ""
	if len(args) > 0 {
		category = args[0]
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tATTRIBUTES")
	for _, p := range a.catalog.ByCategory(category) {
		stock := "in stock"
		if !p.InStock {
			stock = "out of stock"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, formatPrice(p.Prices), stock, formatAttributes(p.Attributes))
	}
	return w.Flush()
}

func (a *app) categories(ctx context.Context) error {
	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		return fmt.Errorf("catalog.Categories: %w", err)
	}

	for _, c := range categories {
		fmt.Fprintln(a.out, c.Name)
	}
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}

	p, err := a.product(ctx, args[0])
	if err != nil {
		return err
	}

	sel := domain.Selection{}
	for _, arg := range args[1:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("attribute %q is not Name=Value: %w", arg, errUsage)
		}
		sel[name] = value
	}

	if _, err := a.cart.AddToCart(ctx, p, sel); err != nil {
		return addError(p, sel, err)
	}
	return a.show()
}

func (a *app) quickAdd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	p, err := a.product(ctx, args[0])
	if err != nil {
		return err
	}

	if _, err := a.cart.QuickAdd(ctx, p); err != nil {
		return addError(p, domain.DefaultSelection(p), err)
	}
	return a.show()
}

func (a *app) quantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}

	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quantity %q: %w", args[1], errUsage)
	}

	if _, err := a.cart.UpdateQuantity(ctx, index, qty); err != nil {
		return err
	}
	return a.show()
}

func (a *app) attribute(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}

	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	a.cart.UpdateAttribute(ctx, index, args[1], args[2])
	return a.show()
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	if _, err := a.cart.RemoveFromCart(ctx, index); err != nil {
		return err
	}
	return a.show()
}

func (a *app) submit(ctx context.Context) error {
	conf, err := a.orders.Submit(ctx)
	if errors.Is(err, domain.ErrIncompleteSelection) {
		return errors.New("please select all required attributes for all items")
	}
	if err != nil {
		return fmt.Errorf("error placing order: %w", err)
	}

	fmt.Fprintf(a.out, "order %s placed\n", conf.OrderID)
	return nil
}

func (a *app) show() error {
	c := a.cart.Cart()

	if c.IsEmpty() {
		fmt.Fprintln(a.out, "Your cart is empty")
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	if !c.IsEmpty() {
		fmt.Fprintln(w, "#\tNAME\tQTY\tPRICE\tSELECTED\tMISSING")
	}
	for i, item := range c.Items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
			i, item.Name, item.Quantity, formatPrice(item.Prices),
			formatSelection(item.Selected), strings.Join(domain.MissingAttributes(item), ","))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "items: %d  total: %s\n", a.cart.TotalItemCount(), a.cart.TotalPrice())
	return nil
}

func (a *app) product(ctx context.Context, id string) (domain.Product, error) {
	if err := a.catalog.Fetch(ctx); err != nil {
		return domain.Product{}, fmt.Errorf("catalog.Fetch: %w", err)
	}

	p, ok := a.catalog.Product(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("product %q not found", id)
	}
	return p, nil
}

func addError(p domain.Product, sel domain.Selection, err error) error {
	if errors.Is(err, domain.ErrIncompleteSelection) {
		var missing []string
		for _, attr := range p.Attributes {
			if _, ok := sel[attr.Name]; !ok {
				missing = append(missing, attr.Name)
			}
		}
		return fmt.Errorf("please select %s for %s", strings.Join(missing, ", "), p.Name)
	}
	return err
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, errUsage)
	}
	return index, nil
}

func formatPrice(prices []domain.Money) string {
	if len(prices) == 0 {
		return "-"
	}
	return prices[0].Currency.Symbol + prices[0].Amount.StringFixed(2)
}

func formatAttributes(attrs []domain.Attribute) string {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		values := make([]string, 0, len(a.Items))
		for _, opt := range a.Items {
			values = append(values, opt.Value)
		}
		parts = append(parts, a.Name+"="+strings.Join(values, "|"))
	}
	return strings.Join(parts, " ")
}

func formatSelection(sel domain.Selection) string {
	names := make([]string, 0, len(sel))
	for name := range sel {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+sel[name])
	}
	return strings.Join(parts, " ")
}
