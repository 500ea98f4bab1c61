package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yukikurage/mars-colony-api/internal/membership"
)

// membershipField accepts a membership list either as a JSON array of ids
// or as delimited text ("2, 3"). An absent or null field stays zero.
type membershipField struct {
	membership.Source
}

func (f *membershipField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		f.Source = membership.Source{}
		return nil
	}

	switch data[0] {
	case '[':
		var ids []uint64
		if err := json.Unmarshal(data, &ids); err != nil {
			return fmt.Errorf("member ids must be non-negative integers: %w", err)
		}
		f.Source = membership.FromIDs(ids)
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		f.Source = membership.FromText(text)
	default:
		return fmt.Errorf("member ids must be an array or a string")
	}
	return nil
}
