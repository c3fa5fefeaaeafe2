package domain

// SelectionComplete reports whether sel has an entry for every attribute of p.
func SelectionComplete(p Product, sel Selection) bool {
	return allSelected(p.Attributes, sel)
}

func AllAttributesSelected(item CartItem) bool {
	return allSelected(item.Attributes, item.Selected)
}

// CartIsSubmittable is true for a non-empty cart whose every item has a
// selection for each of its attributes.
func CartIsSubmittable(c Cart) bool {
	if c.IsEmpty() {
		return false
	}
	for _, item := range c.Items {
		if !AllAttributesSelected(item) {
			return false
		}
	}
	return true
}

// MissingAttributes lists the attribute names of item that have no selection,
// in definition order.
func MissingAttributes(item CartItem) []string {
	var missing []string
	for _, a := range item.Attributes {
		if _, ok := item.Selected[a.Name]; !ok {
			missing = append(missing, a.Name)
		}
	}
	return missing
}

func allSelected(attrs []Attribute, sel Selection) bool {
	for _, a := range attrs {
		if _, ok := sel[a.Name]; !ok {
			return false
		}
	}
	return true
}
