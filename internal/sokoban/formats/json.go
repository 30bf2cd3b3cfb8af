package formats

import (
	"encoding/json"
	"fmt"
)

// ParseJSON parses a pack of the form
// {"name": ..., "description": ..., "levels": [{"name": ..., "items": [...]}]}.
func ParseJSON(data []byte) (Pack, error) {
	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return Pack{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := checkLevels(p); err != nil {
		return Pack{}, err
	}
	return p, nil
}

// EncodeJSON writes p as indented JSON.
func EncodeJSON(p Pack) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(data, '\n'), nil
}
