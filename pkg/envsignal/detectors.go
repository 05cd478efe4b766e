package envsignal

import "log/slog"

// DefaultDetectorNames lists every detector in priority order.
var DefaultDetectorNames = []string{"override", "os", "gtk", "colorfgbg", "terminal"}

var detectorFactories = map[string]func() Detector{
	"override":  func() Detector { return NewOverrideDetector() },
	"os":        func() Detector { return NewOSDetector() },
	"gtk":       func() Detector { return NewGTKThemeDetector() },
	"colorfgbg": func() Detector { return NewColorFGBGDetector() },
	"terminal":  func() Detector { return NewTerminalDetector() },
}

// KnownDetector reports whether name is a valid detector name.
func KnownDetector(name string) bool {
	_, ok := detectorFactories[name]
	return ok
}

// Detectors builds detectors by name. An empty list selects all of them.
func Detectors(names []string) ([]Detector, error) {
	if len(names) == 0 {
		names = DefaultDetectorNames
	}
	ds := make([]Detector, 0, len(names))
	for _, name := range names {
		factory, ok := detectorFactories[name]
		if !ok {
			return nil, &UnknownDetectorError{Name: name}
		}
		ds = append(ds, factory())
	}
	return ds, nil
}

// FromNames builds a Signal from detector names.
func FromNames(logger *slog.Logger, names []string) (*Signal, error) {
	ds, err := Detectors(names)
	if err != nil {
		return nil, err
	}
	return New(logger, ds...), nil
}
