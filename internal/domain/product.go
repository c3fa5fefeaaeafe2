package domain

import "strings"

type Product struct {
	ID          string
	Name        string
	Description string
	InStock     bool
	Category    Category
	Brand       string
	Gallery     []string
	Prices      []Money
	Attributes  []Attribute
}

type Category struct {
	ID   string
	Name string
}

type AttributeKind int

const (
	AttributeKindText AttributeKind = iota
	AttributeKindSwatch
)

type Attribute struct {
	ID    string
	Name  string
	Type  string
	Items []AttributeOption
}

type AttributeOption struct {
	ID           string
	Value        string
	DisplayValue string
}

// Kind reports how the attribute is presented. Any attribute whose name
// mentions "color" is a swatch.
func (a Attribute) Kind() AttributeKind {
	if strings.Contains(strings.ToLower(a.Name), "color") {
		return AttributeKindSwatch
	}
	return AttributeKindText
}

func (a Attribute) Option(value string) (AttributeOption, bool) {
	for _, opt := range a.Items {
		if opt.Value == value {
			return opt, true
		}
	}
	return AttributeOption{}, false
}

func (p Product) Attribute(name string) (Attribute, bool) {
	return findAttribute(p.Attributes, name)
}

// DisplayPrice is the first listed price, the canonical one.
func (p Product) DisplayPrice() (Money, bool) {
	if len(p.Prices) == 0 {
		return Money{}, false
	}
	return p.Prices[0], true
}

func findAttribute(attrs []Attribute, name string) (Attribute, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

func cloneAttributes(attrs []Attribute) []Attribute {
	if attrs == nil {
		return nil
	}

	out := make([]Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = a
		if a.Items != nil {
			out[i].Items = append([]AttributeOption(nil), a.Items...)
		}
	}
	return out
}
