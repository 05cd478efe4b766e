// Package envsignal exposes the "prefers dark presentation" environment
// signal as a subscribable boolean.
//
// The value is computed from a set of prioritised detectors (an explicit
// override, the OS appearance setting, GTK_THEME, COLORFGBG and the
// terminal background). A Signal never polls on its own: the UI loop calls
// Refresh on a timer or when SIGUSR1 arrives, and observers registered
// with OnChange run synchronously inside that call.
package envsignal

import (
	"log/slog"
	"sort"
)

// Detector reports one source's view of the dark-mode preference.
type Detector interface {
	// Name identifies the detector in logs and configuration.
	Name() string
	// Priority orders detectors; higher values are consulted first.
	Priority() int
	// Available reports whether the detector can currently be used.
	Available() bool
	// Detect returns the preference and whether detection succeeded.
	Detect() (prefersDark, ok bool)
}

// Signal is the resolved environment signal. It is not safe for
// concurrent use; all calls are expected on the UI event loop.
type Signal struct {
	detectors []Detector
	logger    *slog.Logger

	value     bool
	available bool
	source    string

	observers []observer
	nextID    int
}

type observer struct {
	id int
	fn func(bool)
}

// New builds a signal from detectors and samples it once.
func New(logger *slog.Logger, detectors ...Detector) *Signal {
	if logger == nil {
		logger = slog.Default()
	}
	ds := make([]Detector, 0, len(detectors))
	for _, d := range detectors {
		if d != nil {
			ds = append(ds, d)
		}
	}
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Priority() > ds[j].Priority()
	})

	s := &Signal{detectors: ds, logger: logger}
	s.value, s.source, s.available = s.sample()
	if s.available {
		logger.Debug("environment signal sampled", "prefers_dark", s.value, "source", s.source)
	} else {
		logger.Debug("environment signal unavailable", "detectors", s.names())
	}
	return s
}

// Current returns the last sampled value. An unavailable signal reads false.
func (s *Signal) Current() bool {
	return s.available && s.value
}

// Available reports whether any detector produced a value on the last
// sample.
func (s *Signal) Available() bool {
	return s.available
}

// Source names the detector that produced the current value, or "" when
// the signal is unavailable.
func (s *Signal) Source() string {
	return s.source
}

// Unavailable returns an *UnavailableError when no detector can produce a
// value, and nil otherwise.
func (s *Signal) Unavailable() error {
	if s.available {
		return nil
	}
	return &UnavailableError{Detectors: s.names()}
}

// OnChange registers fn to run whenever Refresh or Set changes the value.
// The returned function removes the registration and may be called more
// than once.
func (s *Signal) OnChange(fn func(bool)) func() {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Refresh re-samples the detectors and notifies observers when the value
// changed. It returns the current value.
func (s *Signal) Refresh() bool {
	value, source, available := s.sample()
	if !available {
		if s.available {
			s.logger.Warn("environment signal lost; keeping last value", "source", s.source)
		}
		return s.Current()
	}

	changed := !s.available || value != s.value
	s.value, s.source, s.available = value, source, true
	if changed {
		s.logger.Debug("environment signal changed", "prefers_dark", value, "source", source)
		s.notify(value)
	}
	return value
}

// Set forces the signal to v, as if a detector had reported it, and
// notifies observers when the value changed.
func (s *Signal) Set(v bool) {
	changed := !s.available || v != s.value
	s.value, s.source, s.available = v, "manual", true
	if changed {
		s.notify(v)
	}
}

func (s *Signal) notify(v bool) {
	snapshot := make([]observer, len(s.observers))
	copy(snapshot, s.observers)
	for _, o := range snapshot {
		o.fn(v)
	}
}

func (s *Signal) sample() (value bool, source string, ok bool) {
	for _, d := range s.detectors {
		if !d.Available() {
			continue
		}
		if dark, ok := d.Detect(); ok {
			return dark, d.Name(), true
		}
	}
	return false, "", false
}

func (s *Signal) names() []string {
	names := make([]string, len(s.detectors))
	for i, d := range s.detectors {
		names[i] = d.Name()
	}
	return names
}
