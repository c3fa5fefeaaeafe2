package domain

// Selection maps an attribute name to the chosen option value.
type Selection map[string]string

// Equal reports whether both selections hold the same keys with the same values.
// A nil selection equals an empty one.
func (s Selection) Equal(other Selection) bool {
	if len(s) != len(other) {
		return false
	}
	for name, value := range s {
		v, ok := other[name]
		if !ok || v != value {
			return false
		}
	}
	return true
}

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// DefaultSelection picks the first option of every attribute. Attributes
// without options are left unselected.
func DefaultSelection(p Product) Selection {
	sel := make(Selection, len(p.Attributes))
	for _, a := range p.Attributes {
		if len(a.Items) > 0 {
			sel[a.Name] = a.Items[0].Value
		}
	}
	return sel
}
