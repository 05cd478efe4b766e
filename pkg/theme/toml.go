package theme

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// thTOMLRegistry is the TOML-serializable representation of a Registry.
type thTOMLRegistry struct {
	Themes []thTOMLTheme `toml:"theme"`
}

type thTOMLTheme struct {
	ID         string `toml:"id"`
	Label      string `toml:"label"`
	Icon       string `toml:"icon,omitempty"`
	DarkFamily bool   `toml:"dark_family,omitempty"`
}

// LoadFromTOML parses a registry definition from raw bytes. Entries keep
// the order they appear in the document:
//
//	[[theme]]
//	id = "light"
//	label = "Light"
//	icon = "☀️"
func LoadFromTOML(data []byte) (*Registry, error) {
	var raw thTOMLRegistry
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("theme: parse TOML: %w", err)
	}

	descs := make([]Descriptor, len(raw.Themes))
	for i, t := range raw.Themes {
		descs[i] = Descriptor{
			ID:         ID(t.ID),
			Label:      t.Label,
			Icon:       t.Icon,
			DarkFamily: t.DarkFamily,
		}
	}
	return NewRegistry(descs...)
}

// LoadFromFile reads a TOML registry definition from path.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: read registry file: %w", err)
	}
	return LoadFromTOML(data)
}

// SaveToTOML serializes a registry to TOML bytes.
func SaveToTOML(r *Registry) ([]byte, error) {
	raw := thTOMLRegistry{Themes: make([]thTOMLTheme, 0, r.Len())}
	for _, d := range r.order {
		raw.Themes = append(raw.Themes, thTOMLTheme{
			ID:         string(d.ID),
			Label:      d.Label,
			Icon:       d.Icon,
			DarkFamily: d.DarkFamily,
		})
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}
