// Package formats provides pluggable level pack readers and writers.
// Every format decodes into the same Pack structure; building playable
// levels from it is left to the levels package.
package formats

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no codec handles.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrNoLevels is returned when a file decodes to a pack without levels.
	ErrNoLevels = errors.New("pack has no levels")
)

// Pack is the format-neutral form of a level pack.
type Pack struct {
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Levels      []Level `json:"levels" yaml:"levels"`
}

// Level is one level of a pack. Items are the grid rows.
type Level struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Items       []string `json:"items" yaml:"items"`
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".sok", ".txt", ".json", ".yaml", ".yml"}
}

// IsSupported reports whether ext (with leading dot, any case) has a codec.
func IsSupported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Parse decodes data using the codec registered for ext.
func Parse(data []byte, ext string) (Pack, error) {
	switch strings.ToLower(ext) {
	case ".sok", ".txt":
		return ParseSOK(data)
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Pack{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes p using the codec registered for ext.
func Encode(p Pack, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".sok", ".txt":
		return EncodeSOK(p)
	case ".json":
		return EncodeJSON(p)
	case ".yaml", ".yml":
		return EncodeYAML(p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func checkLevels(p Pack) error {
	if len(p.Levels) == 0 {
		return ErrNoLevels
	}
	for i, lvl := range p.Levels {
		if len(lvl.Items) == 0 {
			return fmt.Errorf("level %d has no rows", i+1)
		}
	}
	return nil
}
