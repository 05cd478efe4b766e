// theme-pulse resolves, persists and propagates the colour theme of a
// terminal session.
//
// It keeps a requested theme (light, dark, auto, high-contrast or a theme
// from a registry file), resolves "auto" against the environment's
// dark-mode preference, and mirrors the result into a document file that
// other programs can watch.
//
// Usage:
//
//	theme-pulse [flags]
//
// Flags:
//
//	-get              Print the requested and effective theme
//	-set string       Request a theme by id
//	-cycle            Advance to the next registered theme
//	-toggle           Switch between light and dark
//	-list             List registered themes
//	-watch            Print change events until interrupted
//	-refresh          Ask running sessions to re-sample the environment
//	-starship         Output a one-line Starship segment for the mirrored theme
//	-json             Emit JSON for -get, -list and -watch
//	-config string    Path to configuration file (default: ~/.config/theme-pulse/config.toml)
//	-verbose          Enable verbose logging
//	-version          Print version and exit
//
// Without a command flag the interactive TUI is started.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/app"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/chrome"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/config"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/controller"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/envsignal"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/session"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/starship"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/terminal"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/theme"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code. Exiting
// happens only in main so deferred cleanup always runs.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("theme-pulse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath  = fs.String("config", "", "Path to configuration file")
		getTheme    = fs.Bool("get", false, "Print the requested and effective theme")
		setTheme    = fs.String("set", "", "Request a theme by id")
		cycleTheme  = fs.Bool("cycle", false, "Advance to the next registered theme")
		toggleTheme = fs.Bool("toggle", false, "Switch between light and dark")
		listThemes  = fs.Bool("list", false, "List registered themes")
		watch       = fs.Bool("watch", false, "Print change events until interrupted")
		refresh     = fs.Bool("refresh", false, "Ask running sessions to re-sample the environment")
		starshipOut = fs.Bool("starship", false, "Output a one-line Starship segment for the mirrored theme")
		jsonOut     = fs.Bool("json", false, "Emit JSON for -get, -list and -watch")
		verbose     = fs.Bool("verbose", false, "Enable verbose logging")
		showVersion = fs.Bool("version", false, "Print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "theme-pulse %s (%s) built %s\n", version, commit, date)
		return 0
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	// Prompt segments read the state directory only; no logging, no
	// detectors.
	if *starshipOut {
		runStarship(cfg, stdout)
		return 0
	}

	if *refresh {
		return runRefresh(cfg, stdout, stderr)
	}

	logFilePath := cfg.LogFilePath()
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err != nil {
		fmt.Fprintf(stderr, "failed to create log directory: %v\n", err)
		return 1
	}
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(stderr, "failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()

	interactive := !*getTheme && *setTheme == "" && !*cycleTheme && !*toggleTheme && !*listThemes && !*watch

	logLevel := cfg.SlogLevel()
	if *verbose {
		logLevel = slog.LevelDebug
	}
	// The TUI owns the terminal, so it logs to the file only.
	var logOut io.Writer = logFile
	if !interactive {
		logOut = io.MultiWriter(stderr, logFile)
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	a, err := app.Build(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "failed to start: %v\n", err)
		return 1
	}
	defer a.Close()

	switch {
	case *setTheme != "":
		err = a.Controller.SetTheme(theme.ID(*setTheme))
	case *cycleTheme:
		err = a.Controller.CycleTheme()
	case *toggleTheme:
		err = a.Controller.ToggleLightDark()
	case *listThemes:
		err = printList(a, stdout, *jsonOut)
		return exitCode(stderr, err)
	case *watch:
		return exitCode(stderr, runWatch(a, stdout, *jsonOut, logger))
	case interactive:
		return exitCode(stderr, runTUI(a, logger))
	}
	if err != nil {
		return exitCode(stderr, err)
	}
	return exitCode(stderr, printState(a, stdout, *jsonOut))
}

func runStarship(cfg *config.Config, w io.Writer) {
	var reg *theme.Registry
	if cfg.Theme.RegistryFile != "" {
		// A broken registry file still yields a segment, just with
		// builtin labels.
		reg, _ = theme.LoadFromFile(cfg.Theme.RegistryFile)
	}
	line := starship.Render(starship.Config{
		StateDir:      cfg.General.StateDir,
		StorageKey:    cfg.Theme.StorageKey,
		Registry:      reg,
		ShowRequested: true,
	})
	if line != "" {
		fmt.Fprintln(w, line)
	}
}

// runRefresh signals every registered session with the platform refresh
// signal (SIGUSR1 on unix).
func runRefresh(cfg *config.Config, stdout, stderr io.Writer) int {
	sigs := envsignal.RefreshSignals()
	if len(sigs) == 0 {
		fmt.Fprintln(stderr, "theme-pulse: refresh signals are not supported on this platform")
		return 1
	}
	sent, err := session.Notify(session.Dir(cfg.General.StateDir), sigs[0])
	fmt.Fprintf(stdout, "refreshed %d session(s)\n", len(sent))
	return exitCode(stderr, err)
}

// registerSession records this process so -refresh can reach it. Failure
// only costs the external wake-up, so it is logged.
func registerSession(a *app.App, logger *slog.Logger) func() {
	release, err := session.Register(session.Dir(a.Config.General.StateDir))
	if err != nil {
		logger.Warn("session registration failed", "error", err)
		return func() {}
	}
	return func() {
		if err := release(); err != nil {
			logger.Warn("session release failed", "error", err)
		}
	}
}

// exitCode reports err on w and maps it to an exit code.
func exitCode(w io.Writer, err error) int {
	if err != nil {
		fmt.Fprintf(w, "theme-pulse: %v\n", err)
		return 1
	}
	return 0
}

// stateJSON is the -json shape of -get and the mutating commands.
type stateJSON struct {
	Requested   theme.ID `json:"requested"`
	Effective   theme.ID `json:"effective"`
	DarkFamily  bool     `json:"dark_family"`
	Environment string   `json:"environment,omitempty"`
}

func printState(a *app.App, w io.Writer, asJSON bool) error {
	st := stateJSON{
		Requested:  a.Controller.CurrentTheme(),
		Effective:  a.Controller.EffectiveTheme(),
		DarkFamily: a.Controller.IsDarkFamily(),
	}
	if a.Signal.Available() {
		st.Environment = a.Signal.Source()
	}
	if asJSON {
		return writeJSON(w, st)
	}
	_, err := fmt.Fprintf(w, "%s\t%s\n", st.Requested, st.Effective)
	return err
}

func printList(a *app.App, w io.Writer, asJSON bool) error {
	descs := a.Registry.Descriptors()
	if asJSON {
		return writeJSON(w, descs)
	}
	current := a.Controller.CurrentTheme()
	for _, d := range descs {
		marker := " "
		if d.ID == current {
			marker = "*"
		}
		family := "light"
		if d.DarkFamily {
			family = "dark"
		}
		if _, err := fmt.Fprintf(w, "%s %-15s %-6s %s %s\n", marker, d.ID, family, d.Icon, d.Label); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// eventJSON is the -json shape of one -watch line.
type eventJSON struct {
	Time      time.Time `json:"time"`
	Theme     theme.ID  `json:"theme"`
	Requested theme.ID  `json:"requested"`
	Cause     string    `json:"cause"`
}

// runWatch prints change events while polling the environment signal.
// Refresh signals (SIGUSR1 on unix) force an immediate re-sample.
func runWatch(a *app.App, w io.Writer, asJSON bool, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	poke := make(chan os.Signal, 1)
	if sigs := envsignal.RefreshSignals(); len(sigs) > 0 {
		signal.Notify(poke, sigs...)
		defer signal.Stop(poke)
		defer registerSession(a, logger)()
	}

	// Events are only delivered from this goroutine: Refresh runs here.
	unsub := a.Controller.Subscribe(func(ev controller.ChangeEvent) {
		if asJSON {
			_ = json.NewEncoder(w).Encode(eventJSON{
				Time:      time.Now(),
				Theme:     ev.Theme,
				Requested: ev.Requested,
				Cause:     ev.Cause.String(),
			})
			return
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", ev.Cause, ev.Requested, ev.Theme)
	})
	defer unsub()

	if err := printState(a, w, asJSON); err != nil {
		return err
	}

	interval := a.Config.Environment.PollInterval.Duration
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			a.Signal.Refresh()
		case s := <-poke:
			logger.Debug("refresh requested", "signal", s)
			a.Signal.Refresh()
		}
	}
}

func runTUI(a *app.App, logger *slog.Logger) error {
	caps := terminal.DetectCapabilities()

	poke := make(chan os.Signal, 1)
	if sigs := envsignal.RefreshSignals(); len(sigs) > 0 {
		signal.Notify(poke, sigs...)
		defer signal.Stop(poke)
		defer registerSession(a, logger)()
	}

	model := tui.New(a, tui.Options{
		Chrome: chrome.Options{
			PollInterval: a.Config.Environment.PollInterval.Duration,
			Poke:         poke,
			Mouse:        caps.Mouse,
			Logger:       logger,
		},
	})
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if caps.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	logger.Info("starting TUI", "terminal", caps.Term, "mouse", caps.Mouse,
		"theme", a.Controller.CurrentTheme(), "effective", a.Controller.EffectiveTheme())

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}
