// Package document holds the global presentation attributes other parts of
// the application read to learn the active theme.
//
// Attribute writes are buffered in memory; Commit pushes the full attribute
// set to every configured Sink so processes outside this one (shell
// prompts, editors) can follow the effective theme.
package document

import (
	"errors"
	"log/slog"
	"sort"
)

// Well-known attribute names.
const (
	AttrTheme          = "data-theme"
	AttrEffectiveTheme = "data-effective-theme"
	// AttrHighlightTheme is "dark" or "light" by theme family, for syntax
	// highlighters that only ship two styles.
	AttrHighlightTheme = "data-hljs-theme"
)

// Sink receives a snapshot of the attributes on Commit.
type Sink interface {
	Write(attrs map[string]string) error
}

// Root is the document's attribute set. It is not safe for concurrent use.
type Root struct {
	attrs  map[string]string
	sinks  []Sink
	logger *slog.Logger
	dirty  bool
}

// NewRoot returns an empty document that commits to sinks.
func NewRoot(logger *slog.Logger, sinks ...Sink) *Root {
	if logger == nil {
		logger = slog.Default()
	}
	return &Root{
		attrs:  make(map[string]string),
		sinks:  sinks,
		logger: logger,
	}
}

// SetAttribute sets name to value.
func (r *Root) SetAttribute(name, value string) {
	if old, ok := r.attrs[name]; ok && old == value {
		return
	}
	r.attrs[name] = value
	r.dirty = true
}

// Attribute returns the value of name and whether it is set.
func (r *Root) Attribute(name string) (string, bool) {
	v, ok := r.attrs[name]
	return v, ok
}

// Attributes returns a copy of every attribute.
func (r *Root) Attributes() map[string]string {
	out := make(map[string]string, len(r.attrs))
	for k, v := range r.attrs {
		out[k] = v
	}
	return out
}

// Names returns the attribute names in sorted order.
func (r *Root) Names() []string {
	names := make([]string, 0, len(r.attrs))
	for k := range r.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Commit writes the attributes to every sink when they changed since the
// last successful commit. Sink failures are logged and joined into the
// returned error; the in-memory attributes stay authoritative either way.
func (r *Root) Commit() error {
	if !r.dirty || len(r.sinks) == 0 {
		r.dirty = false
		return nil
	}

	snapshot := r.Attributes()
	var errs []error
	for _, s := range r.sinks {
		if err := s.Write(snapshot); err != nil {
			r.logger.Warn("document sink write failed", "error", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	r.dirty = false
	return nil
}
