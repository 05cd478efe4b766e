package theme

import (
	"errors"
	"fmt"
)

// ErrUnknownTheme is matched by every UnknownThemeError.
var ErrUnknownTheme = errors.New("unknown theme")

// UnknownThemeError reports an id that is not in the registry.
type UnknownThemeError struct {
	ID ID
}

func (e *UnknownThemeError) Error() string {
	return fmt.Sprintf("theme: %v: %q", ErrUnknownTheme, string(e.ID))
}

// Is lets errors.Is(err, ErrUnknownTheme) match.
func (e *UnknownThemeError) Is(target error) bool {
	return target == ErrUnknownTheme
}

// Resolve returns the concrete theme to render for requested. Auto becomes
// Dark when environmentIsDark is set and Light otherwise; every other
// registered id is returned unchanged.
func (r *Registry) Resolve(requested ID, environmentIsDark bool) (ID, error) {
	if !r.Has(requested) {
		return "", &UnknownThemeError{ID: requested}
	}
	if requested != Auto {
		return requested, nil
	}
	if environmentIsDark {
		return Dark, nil
	}
	return Light, nil
}

// Resolve is the package-level form of (*Registry).Resolve.
func Resolve(reg *Registry, requested ID, environmentIsDark bool) (ID, error) {
	return reg.Resolve(requested, environmentIsDark)
}
