// Package theme defines the ordered registry of presentation modes and the
// pure resolver that turns a requested mode into the one actually rendered.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ID identifies a registered theme (e.g. "light", "dark", "auto").
type ID string

// Well-known identifiers. Auto is the only non-concrete id: it never
// appears as an effective theme.
const (
	Light        ID = "light"
	Dark         ID = "dark"
	Auto         ID = "auto"
	HighContrast ID = "high-contrast"
)

// String returns the identifier as a plain string.
func (id ID) String() string { return string(id) }

// Descriptor describes one registry entry. Descriptors are immutable once
// the registry is built.
type Descriptor struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`

	// DarkFamily classifies the theme as a dark presentation for callers
	// that only care about light versus dark.
	DarkFamily bool `json:"dark_family"`
}

// Registry is a fixed, ordered set of theme descriptors.
type Registry struct {
	order []Descriptor
	index map[ID]int
}

// NewRegistry builds a registry preserving the given order. Ids must be
// unique and non-empty, every entry needs a label, and a registry that
// offers Auto must also offer both Light and Dark for Auto to resolve to.
// Dark is always classified dark-family.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	if len(descs) == 0 {
		return nil, errors.New("theme: registry must contain at least one theme")
	}

	r := &Registry{
		order: make([]Descriptor, 0, len(descs)),
		index: make(map[ID]int, len(descs)),
	}
	for _, d := range descs {
		d.ID = ID(strings.TrimSpace(string(d.ID)))
		if d.ID == "" {
			return nil, errors.New("theme: descriptor with empty id")
		}
		if strings.TrimSpace(d.Label) == "" {
			return nil, fmt.Errorf("theme: descriptor %q has no label", d.ID)
		}
		if _, dup := r.index[d.ID]; dup {
			return nil, fmt.Errorf("theme: duplicate id %q", d.ID)
		}
		if d.ID == Dark {
			d.DarkFamily = true
		}
		r.index[d.ID] = len(r.order)
		r.order = append(r.order, d)
	}

	if r.Has(Auto) && (!r.Has(Light) || !r.Has(Dark)) {
		return nil, fmt.Errorf("theme: %q requires both %q and %q to be registered", Auto, Light, Dark)
	}
	if d, ok := r.Get(Auto); ok && d.DarkFamily {
		return nil, fmt.Errorf("theme: %q cannot be classified dark-family", Auto)
	}

	return r, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.index[id]
	return ok
}

// Get returns the descriptor for id.
func (r *Registry) Get(id ID) (Descriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.order[i], true
}

// Index returns the position of id in registry order, or -1.
func (r *Registry) Index(id ID) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// Len returns the number of registered themes.
func (r *Registry) Len() int { return len(r.order) }

// IDs returns all ids in registry order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, len(r.order))
	for i, d := range r.order {
		ids[i] = d.ID
	}
	return ids
}

// Descriptors returns a copy of all descriptors in registry order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.order))
	copy(out, r.order)
	return out
}

// Next returns the id following id in registry order, wrapping to the
// first entry after the last. An unregistered id yields the first entry.
func (r *Registry) Next(id ID) ID {
	i, ok := r.index[id]
	if !ok {
		return r.order[0].ID
	}
	return r.order[(i+1)%len(r.order)].ID
}

// IsDarkFamily reports whether id is registered and classified dark-family.
func (r *Registry) IsDarkFamily(id ID) bool {
	d, ok := r.Get(id)
	return ok && d.DarkFamily
}
