// Package controller owns the requested theme for a session. It resolves
// the effective theme against the environment signal, persists the user's
// choice, writes the document presentation attributes and tells
// subscribers about every change.
//
// A Controller is not safe for concurrent use. Every call, including the
// environment signal callbacks, must happen on the UI event loop.
package controller

import (
	"errors"
	"log/slog"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/document"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/prefstore"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/theme"
)

// Signal is the environment "prefers dark" source.
type Signal interface {
	Current() bool
	Available() bool
	OnChange(func(bool)) func()
}

// Document receives the effective theme.
type Document interface {
	SetAttribute(name, value string)
}

// committer is implemented by documents that flush attribute writes.
type committer interface {
	Commit() error
}

// Deps are the collaborators of a Controller. Store, Signal and Document
// may be nil; Registry defaults to the built-in themes.
type Deps struct {
	Registry *theme.Registry
	Store    prefstore.Store
	Signal   Signal
	Document Document
	Logger   *slog.Logger
}

// Settings is the theme configuration read once by Initialize.
type Settings struct {
	Default      theme.ID
	Persist      bool
	FollowSystem bool
	AutoFallback theme.ID // "light" or "dark"; used when not following the signal
	StorageKey   string
}

// DefaultSettings follows the environment, persists, and defaults to auto.
func DefaultSettings() Settings {
	return Settings{
		Default:      theme.Auto,
		Persist:      true,
		FollowSystem: true,
		AutoFallback: theme.Light,
		StorageKey:   prefstore.DefaultKey,
	}
}

// Controller is the theme state machine.
type Controller struct {
	reg    *theme.Registry
	store  prefstore.Store
	signal Signal
	doc    Document
	logger *slog.Logger

	settings  Settings
	requested theme.ID
	applied   theme.ID
	envUnsub  func()
	closed    bool

	subscribers []subscriber
	nextSubID   int
}

// New returns a controller requesting the registry's default theme. Call
// Initialize before use.
func New(deps Deps) *Controller {
	reg := deps.Registry
	if reg == nil {
		reg = theme.Builtin()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		reg:      reg,
		store:    deps.Store,
		signal:   deps.Signal,
		doc:      deps.Document,
		logger:   logger,
		settings: DefaultSettings(),
	}
	c.requested = c.fallbackTheme()
	return c
}

// Initialize loads the persisted theme (when enabled and valid) or the
// configured default, subscribes to the environment signal and applies the
// effective theme. It emits no change event.
func (c *Controller) Initialize(s Settings) {
	if s.StorageKey == "" {
		s.StorageKey = prefstore.DefaultKey
	}
	if s.AutoFallback != theme.Dark {
		s.AutoFallback = theme.Light
	}
	c.settings = s
	c.closed = false

	requested := c.defaultTheme(s.Default)
	if persisted, ok := c.loadPersisted(); ok {
		requested = persisted
	}
	c.requested = requested

	c.subscribeSignal()
	effective := c.EffectiveTheme()
	c.apply(effective)
	c.logger.Debug("theme controller initialized",
		"requested", c.requested, "effective", effective, "follow_system", c.following())
}

// SetTheme requests id. An unregistered id is rejected with a
// *theme.UnknownThemeError and leaves state untouched. Otherwise the
// choice is persisted, applied and announced in that order; persistence
// failures are logged and do not stop the change.
func (c *Controller) SetTheme(id theme.ID) error {
	if !c.reg.Has(id) {
		c.logger.Warn("ignoring unknown theme", "theme", id)
		return &theme.UnknownThemeError{ID: id}
	}

	c.requested = id
	c.persist(id)
	effective := c.EffectiveTheme()
	c.apply(effective)
	c.notify(ChangeEvent{Theme: effective, Requested: id, Cause: CauseUser})
	return nil
}

// CycleTheme requests the next theme in registry order, wrapping.
func (c *Controller) CycleTheme() error {
	return c.SetTheme(c.reg.Next(c.requested))
}

// ToggleLightDark requests light when the effective theme is dark or
// dark-family and dark otherwise.
func (c *Controller) ToggleLightDark() error {
	if eff := c.EffectiveTheme(); eff == theme.Dark || c.reg.IsDarkFamily(eff) {
		return c.SetTheme(theme.Light)
	}
	return c.SetTheme(theme.Dark)
}

// CurrentTheme returns the requested theme, which may be "auto".
func (c *Controller) CurrentTheme() theme.ID {
	return c.requested
}

// EffectiveTheme returns the concrete theme for the requested theme and the
// current environment reading.
func (c *Controller) EffectiveTheme() theme.ID {
	effective, err := c.reg.Resolve(c.requested, c.environmentIsDark())
	if err != nil {
		// requested is always registered; keep it rather than fail.
		c.logger.Error("resolve requested theme", "theme", c.requested, "error", err)
		return c.requested
	}
	return effective
}

// IsDarkFamily reports whether the effective theme is classified dark.
func (c *Controller) IsDarkFamily() bool {
	return c.reg.IsDarkFamily(c.EffectiveTheme())
}

// Registry returns the theme registry.
func (c *Controller) Registry() *theme.Registry {
	return c.reg
}

// Settings returns the settings passed to Initialize.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Close drops the environment subscription and every subscriber. It is
// safe to call more than once.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.envUnsub != nil {
		c.envUnsub()
		c.envUnsub = nil
	}
	c.subscribers = nil
}

func (c *Controller) following() bool {
	return c.settings.FollowSystem && c.signal != nil && c.signal.Available()
}

func (c *Controller) environmentIsDark() bool {
	if c.following() {
		return c.signal.Current()
	}
	return c.settings.AutoFallback == theme.Dark
}

func (c *Controller) subscribeSignal() {
	if c.envUnsub != nil {
		c.envUnsub()
		c.envUnsub = nil
	}
	if !c.settings.FollowSystem || c.signal == nil {
		return
	}
	if !c.signal.Available() {
		// Stay subscribed: a later refresh may find a detector.
		c.logger.Info("environment signal unavailable; auto uses fallback until it appears",
			"fallback", c.settings.AutoFallback)
	}
	c.envUnsub = c.signal.OnChange(c.onEnvironmentChange)
}

func (c *Controller) onEnvironmentChange(prefersDark bool) {
	if c.closed || c.requested != theme.Auto {
		return
	}
	effective := c.EffectiveTheme()
	if effective == c.applied {
		return
	}
	c.logger.Debug("environment changed", "prefers_dark", prefersDark, "effective", effective)
	c.apply(effective)
	c.notify(ChangeEvent{Theme: effective, Requested: c.requested, Cause: CauseEnvironment})
}

// defaultTheme validates the configured default.
func (c *Controller) defaultTheme(id theme.ID) theme.ID {
	if c.reg.Has(id) {
		return id
	}
	fallback := c.fallbackTheme()
	c.logger.Warn("configured default theme not registered", "theme", id, "using", fallback)
	return fallback
}

func (c *Controller) fallbackTheme() theme.ID {
	if c.reg.Has(theme.Auto) {
		return theme.Auto
	}
	return c.reg.IDs()[0]
}

func (c *Controller) loadPersisted() (theme.ID, bool) {
	if !c.settings.Persist || c.store == nil {
		return "", false
	}
	v, err := c.store.Get(c.settings.StorageKey)
	switch {
	case errors.Is(err, prefstore.ErrNotFound):
		return "", false
	case err != nil:
		c.logger.Warn("preference store unavailable; using default theme", "error", err)
		return "", false
	}
	id := theme.ID(v)
	if !c.reg.Has(id) {
		c.logger.Warn("ignoring persisted theme not in registry", "theme", v)
		return "", false
	}
	return id, true
}

func (c *Controller) persist(id theme.ID) {
	if !c.settings.Persist || c.store == nil {
		return
	}
	if err := c.store.Set(c.settings.StorageKey, string(id)); err != nil {
		c.logger.Warn("persist theme failed; keeping it for this session only", "theme", id, "error", err)
	}
}

func (c *Controller) apply(effective theme.ID) {
	c.applied = effective
	if c.doc == nil {
		return
	}
	highlight := string(theme.Light)
	if c.reg.IsDarkFamily(effective) {
		highlight = string(theme.Dark)
	}
	c.doc.SetAttribute(document.AttrTheme, string(effective))
	c.doc.SetAttribute(document.AttrEffectiveTheme, string(effective))
	c.doc.SetAttribute(document.AttrHighlightTheme, highlight)
	if cm, ok := c.doc.(committer); ok {
		if err := cm.Commit(); err != nil {
			c.logger.Debug("document commit failed", "error", err)
		}
	}
}
