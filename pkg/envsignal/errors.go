package envsignal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is matched by errors reporting that no detector could
// produce a dark-mode preference.
var ErrUnavailable = errors.New("envsignal: environment signal unavailable")

// UnavailableError lists the detectors that were consulted.
type UnavailableError struct {
	Detectors []string
}

func (e *UnavailableError) Error() string {
	if len(e.Detectors) == 0 {
		return "envsignal: environment signal unavailable: no detectors configured"
	}
	return fmt.Sprintf("envsignal: environment signal unavailable: tried %s", strings.Join(e.Detectors, ", "))
}

// Is reports whether target is ErrUnavailable.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// UnknownDetectorError is returned by Detectors for a name that has no
// detector.
type UnknownDetectorError struct {
	Name string
}

func (e *UnknownDetectorError) Error() string {
	return fmt.Sprintf("envsignal: unknown detector %q", e.Name)
}
