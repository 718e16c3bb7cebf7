package types

import (
	"encoding/json"
	"fmt"

	"github.com/roomfinder/roomfinder-api/internal/normalize"
)

// FlexInt is an int that can be unmarshaled from either a JSON number or a JSON string.
// Set is false when the field was null or omitted.
type FlexInt struct {
	Value int
	Set   bool
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = FlexInt{}
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if s, ok := raw.(string); ok && s == "" {
		*f = FlexInt{}
		return nil
	}

	n := normalize.ToInt(raw)
	if n == nil {
		return fmt.Errorf("FlexInt: expected number or numeric string, got %s", string(data))
	}
	*f = FlexInt{Value: *n, Set: true}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Int returns the value, or def when unset.
func (f FlexInt) Int(def int) int {
	if !f.Set {
		return def
	}
	return f.Value
}
