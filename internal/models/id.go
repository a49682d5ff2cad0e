package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StringID decodes a JSON string or number into a string id. The datasets
// mix numeric task ids (1, 2, ...) with string ids; both compare as strings.
type StringID string

func (id *StringID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = StringID(n.String())
	return nil
}
