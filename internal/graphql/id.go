package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// flexibleID accepts both string and numeric ids, backends disagree on how
// they serialize the ID scalar.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id[%s] is neither string nor number: %w", data, err)
	}
	*id = flexibleID(n.String())
	return nil
}
