package app

import (
	"fmt"
	"log/slog"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/config"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/controller"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/document"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/envsignal"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/prefstore"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/theme"
)

// App owns one session's theme machinery.
type App struct {
	Config     *config.Config
	Registry   *theme.Registry
	Store      prefstore.Store
	Signal     *envsignal.Signal
	Document   *document.Root
	Controller *controller.Controller
	Logger     *slog.Logger
}

// Build wires every component from cfg and initializes the controller.
// Only an invalid configuration or an unreadable registry file is an
// error; storage and environment problems degrade and are logged.
func Build(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg := theme.Builtin()
	if cfg.Theme.RegistryFile != "" {
		loaded, err := theme.LoadFromFile(cfg.Theme.RegistryFile)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		reg = loaded
	}
	if err := cfg.ValidateThemes(reg); err != nil {
		logger.Warn("configuration names unregistered themes", "error", err)
	}

	var store prefstore.Store = prefstore.NewMemoryStore()
	if cfg.Theme.Persist {
		store = prefstore.NewFileStore(cfg.General.StateDir)
	}

	signal, err := envsignal.FromNames(logger, cfg.Environment.Detectors)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := signal.Unavailable(); err != nil {
		logger.Info("environment signal unavailable", "error", err)
	}

	var sinks []document.Sink
	if cfg.Theme.MirrorDocument {
		sinks = append(sinks, document.NewFileSink(cfg.General.StateDir))
	}
	doc := document.NewRoot(logger, sinks...)

	ctrl := controller.New(controller.Deps{
		Registry: reg,
		Store:    store,
		Signal:   signal,
		Document: doc,
		Logger:   logger,
	})
	ctrl.Initialize(Settings(cfg))

	return &App{
		Config:     cfg,
		Registry:   reg,
		Store:      store,
		Signal:     signal,
		Document:   doc,
		Controller: ctrl,
		Logger:     logger,
	}, nil
}

// Settings converts the theme configuration into controller settings.
func Settings(cfg *config.Config) controller.Settings {
	return controller.Settings{
		Default:      theme.ID(cfg.Theme.Default),
		Persist:      cfg.Theme.Persist,
		FollowSystem: cfg.Theme.FollowSystem,
		AutoFallback: theme.ID(cfg.Theme.AutoFallback),
		StorageKey:   cfg.Theme.StorageKey,
	}
}

// Close releases the controller's subscriptions.
func (a *App) Close() {
	a.Controller.Close()
}
