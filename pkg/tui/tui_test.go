package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/app"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/chrome"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/components"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/config"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/controller"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/envsignal"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/theme"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestApp builds an App on a private state dir with only the override
// detector, so the host environment cannot leak in.
func newTestApp(t *testing.T, prefersDark string, mutate func(*config.Config)) *app.App {
	t.Helper()
	t.Setenv(envsignal.OverrideEnv, prefersDark)
	cfg := config.DefaultConfig()
	cfg.General.StateDir = t.TempDir()
	cfg.Environment.Detectors = []string{"override"}
	if mutate != nil {
		mutate(cfg)
	}
	a, err := app.Build(cfg, discard)
	if err != nil {
		t.Fatalf("app.Build() error: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func newTestModel(t *testing.T, a *app.App) Model {
	t.Helper()
	m := New(a, Options{})
	t.Cleanup(m.Close)
	return m
}

// tuiUpdate sends msg through Update and returns the updated Model.
func tuiUpdate(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewInitialState(t *testing.T) {
	m := newTestModel(t, newTestApp(t, "true", nil))

	if m.Ready() {
		t.Error("expected ready=false before WindowSizeMsg")
	}
	if m.ShowHelp() {
		t.Error("expected help hidden")
	}
	if !m.ChromeEnabled() {
		t.Error("expected chrome enabled by default")
	}
	if len(m.History()) != 0 {
		t.Errorf("History() = %v, want empty", m.History())
	}
	if m.View() != "Initializing..." {
		t.Errorf("View() before size = %q", m.View())
	}
}

func TestWindowSizeMsgSetsReady(t *testing.T) {
	m := newTestModel(t, newTestApp(t, "true", nil))
	m, _ = tuiUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.Width() != 100 || m.Height() != 30 {
		t.Errorf("size = %dx%d, want 100x30", m.Width(), m.Height())
	}
	if !m.Ready() {
		t.Error("expected ready=true after WindowSizeMsg")
	}
}

func TestViewShowsThemeState(t *testing.T) {
	m := newTestModel(t, newTestApp(t, "true", nil))
	m, _ = tuiUpdate(m, tea.WindowSizeMsg{Width: 240, Height: 30})

	out := m.View()
	for _, want := range []string{
		"Requested", "auto (Auto)",
		"Effective", "dark",
		"prefers dark=true (override)",
		"data-theme", "data-effective-theme",
		"preferences.yaml",
		"Recent changes", "no changes yet",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if h := lipgloss.Height(out); h > 30 {
		t.Errorf("View() height = %d, want <= 30", h)
	}
}

func TestCycleShortcutUpdatesHistory(t *testing.T) {
	a := newTestApp(t, "false", nil)
	m := newTestModel(t, a)
	m, _ = tuiUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	// auto -> high-contrast
	m, cmd := tuiUpdate(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if cmd != nil {
		t.Error("cycle should not return a command")
	}
	if a.Controller.CurrentTheme() != theme.HighContrast {
		t.Fatalf("CurrentTheme() = %q, want high-contrast", a.Controller.CurrentTheme())
	}
	hist := m.History()
	if len(hist) != 1 || hist[0].Theme != theme.HighContrast || hist[0].Cause != controller.CauseUser {
		t.Fatalf("History() = %+v", hist)
	}
	if !strings.Contains(m.View(), "user        high-contrast") {
		t.Errorf("View() does not list the change:\n%s", m.View())
	}
}

func TestEnvironmentChangeAppearsInHistory(t *testing.T) {
	a := newTestApp(t, "false", nil)
	m := newTestModel(t, a)

	a.Signal.Set(true)

	hist := m.History()
	if len(hist) != 1 {
		t.Fatalf("History() len = %d, want 1", len(hist))
	}
	if hist[0].Cause != controller.CauseEnvironment || hist[0].Requested != theme.Auto || hist[0].Theme != theme.Dark {
		t.Errorf("event = %+v", hist[0])
	}
	if got := tuiFormatEvent(hist[0]); got != "environment auto → dark" {
		t.Errorf("tuiFormatEvent() = %q", got)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	a := newTestApp(t, "false", nil)
	m := newTestModel(t, a)
	for i := 0; i < historySize+5; i++ {
		if err := a.Controller.CycleTheme(); err != nil {
			t.Fatal(err)
		}
	}
	if len(m.History()) != historySize {
		t.Errorf("History() len = %d, want %d", len(m.History()), historySize)
	}
}

func TestQuestionMarkTogglesHelp(t *testing.T) {
	m := newTestModel(t, newTestApp(t, "false", nil))
	m, _ = tuiUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = tuiUpdate(m, runes("?"))
	if !m.ShowHelp() {
		t.Fatal("expected help visible after ?")
	}
	if !strings.Contains(m.View(), "cycle theme") {
		t.Error("help overlay should list the theme shortcuts")
	}
	m, _ = tuiUpdate(m, runes("?"))
	if m.ShowHelp() {
		t.Error("expected help hidden after second ?")
	}
}

func TestEscapeClosesHelp(t *testing.T) {
	m := newTestModel(t, newTestApp(t, "false", nil))
	m, _ = tuiUpdate(m, runes("?"))
	m, _ = tuiUpdate(m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.ShowHelp() {
		t.Error("expected help hidden after esc")
	}
}

func TestQQuits(t *testing.T) {
	a := newTestApp(t, "false", nil)
	m := newTestModel(t, a)
	before := a.Controller.Subscribers()

	_, cmd := tuiUpdate(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if got := a.Controller.Subscribers(); got != before-2 {
		t.Errorf("Subscribers() after quit = %d, want %d", got, before-2)
	}
}

func TestMenuKeyConsumedByChrome(t *testing.T) {
	a := newTestApp(t, "false", nil)
	m := newTestModel(t, a)

	m, _ = tuiUpdate(m, runes("t"))
	if !m.Chrome().Open() {
		t.Fatal("menu should open on t")
	}
	// Inside the menu, q is not a chrome key and still quits.
	_, cmd := tuiUpdate(m, runes("q"))
	if cmd == nil {
		t.Error("q should quit with the menu open")
	}
}

func TestChromeDisabledIgnoresShortcuts(t *testing.T) {
	a := newTestApp(t, "false", func(c *config.Config) { c.Theme.Enabled = false })
	m := newTestModel(t, a)
	m, _ = tuiUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.ChromeEnabled() {
		t.Fatal("chrome should be disabled")
	}
	m, _ = tuiUpdate(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if a.Controller.CurrentTheme() != theme.Auto {
		t.Errorf("CurrentTheme() = %q, shortcut should be ignored", a.Controller.CurrentTheme())
	}
	// The controller still applies the theme to the document.
	if !strings.Contains(m.View(), "data-effective-theme") {
		t.Error("document attributes should still render")
	}
	if strings.Contains(m.View(), "Auto\n") || strings.Contains(m.View(), "🔄") {
		t.Error("toggle button should not render")
	}
}

func TestStatusEventShownInStatusBar(t *testing.T) {
	m := newTestModel(t, newTestApp(t, "false", nil))
	m, _ = tuiUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = tuiUpdate(m, app.StatusEvent{Text: "saved"})

	if m.Status() != "saved" {
		t.Errorf("Status() = %q", m.Status())
	}
	if !strings.Contains(m.View(), "saved  |") {
		t.Error("status bar should show the status message")
	}
}

func TestInitWithoutPolling(t *testing.T) {
	m := newTestModel(t, newTestApp(t, "false", nil))
	if cmd := m.Init(); cmd != nil {
		t.Error("Init() without poll interval or poke channel should be nil")
	}
}

func TestRenderStatusBarFitsWidth(t *testing.T) {
	for _, w := range []int{10, 80} {
		bar := tuiRenderStatusBar("message", "?:help  q:quit", w)
		if got := components.VisibleLen(bar); got != w {
			t.Errorf("status bar width = %d, want %d", got, w)
		}
	}
	if tuiRenderStatusBar("x", "y", 0) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestRenderBodySize(t *testing.T) {
	fields := []components.Field{{Label: "Requested", Value: "dark"}}
	body := tuiRenderBody(fields, []string{"user        dark"}, chrome.Palette{}, 40, 10)
	if lipgloss.Height(body) != 10 {
		t.Errorf("body height = %d, want 10", lipgloss.Height(body))
	}
	if lipgloss.Width(body) != 40 {
		t.Errorf("body width = %d, want 40", lipgloss.Width(body))
	}
	if tuiRenderBody(fields, nil, chrome.Palette{}, 0, 10) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestRenderHelpIsCentered(t *testing.T) {
	help := tuiRenderHelp([]string{"theme-pulse"}, 120, 40)
	if lipgloss.Height(help) != 40 {
		t.Errorf("help height = %d, want 40", lipgloss.Height(help))
	}
	for _, line := range strings.Split(help, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed != "" {
			if len(line) == len(trimmed) {
				t.Error("expected help panel to be offset from the left edge")
			}
			return
		}
	}
	t.Error("help output has no content")
}
