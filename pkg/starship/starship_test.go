package starship

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/components"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/document"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/prefstore"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/theme"
)

// ssWriteState mirrors effective into dir and stores requested, the way
// a running session leaves its state directory.
func ssWriteState(t *testing.T, dir string, requested, effective theme.ID) {
	t.Helper()
	root := document.NewRoot(slog.New(slog.NewTextHandler(io.Discard, nil)), document.NewFileSink(dir))
	root.SetAttribute(document.AttrTheme, string(effective))
	root.SetAttribute(document.AttrEffectiveTheme, string(effective))
	if err := root.Commit(); err != nil {
		t.Fatalf("commit document: %v", err)
	}
	if requested != "" {
		if err := prefstore.NewFileStore(dir).Set(prefstore.DefaultKey, string(requested)); err != nil {
			t.Fatalf("store preference: %v", err)
		}
	}
}

func TestRenderEmptyStateDir(t *testing.T) {
	if got := Render(Config{StateDir: t.TempDir()}); got != "" {
		t.Errorf("Render() with no document = %q, want empty", got)
	}
}

func TestRenderEffectiveTheme(t *testing.T) {
	dir := t.TempDir()
	ssWriteState(t, dir, theme.Dark, theme.Dark)

	got := Render(Config{StateDir: dir})
	if !strings.Contains(got, "🌙 dark") {
		t.Errorf("Render() = %q, want the dark icon and id", got)
	}
	if !strings.HasPrefix(got, ssColorDark) {
		t.Errorf("Render() = %q, want dark-family colour", got)
	}
}

func TestRenderLightFamilyColour(t *testing.T) {
	dir := t.TempDir()
	ssWriteState(t, dir, theme.Light, theme.Light)

	if got := Render(Config{StateDir: dir}); !strings.HasPrefix(got, ssColorLight) {
		t.Errorf("Render() = %q, want light-family colour", got)
	}
}

func TestRenderShowsRequestedAuto(t *testing.T) {
	dir := t.TempDir()
	ssWriteState(t, dir, theme.Auto, theme.Light)

	got := Render(Config{StateDir: dir, ShowRequested: true})
	if !strings.Contains(got, "light") || !strings.Contains(got, "auto") {
		t.Errorf("Render() = %q, want effective and requested segments", got)
	}
	if !strings.Contains(got, "│") {
		t.Errorf("Render() = %q, want a separator", got)
	}

	// Requested equal to effective adds nothing.
	dir2 := t.TempDir()
	ssWriteState(t, dir2, theme.Dark, theme.Dark)
	if got := Render(Config{StateDir: dir2, ShowRequested: true}); strings.Contains(got, "│") {
		t.Errorf("Render() = %q, want a single segment", got)
	}
}

func TestRenderUnregisteredThemeUsesFallbackIcon(t *testing.T) {
	dir := t.TempDir()
	ssWriteState(t, dir, "", "solarized")

	if got := Render(Config{StateDir: dir}); !strings.Contains(got, "◐ solarized") {
		t.Errorf("Render() = %q", got)
	}
}

func TestFormatLineDropsSegmentsOverWidth(t *testing.T) {
	segs := []*Segment{
		{Icon: "a", Text: "first"},
		{Icon: "b", Text: "second"},
	}
	full := ssFormatLine(segs, 100)
	if components.VisibleLen(full) != len("a first")+3+len("b second") {
		t.Errorf("full line width = %d (%q)", components.VisibleLen(full), full)
	}

	narrow := ssFormatLine(segs, 10)
	if narrow != "a first" {
		t.Errorf("narrow line = %q, want only the first segment", narrow)
	}
	if ssFormatLine(nil, 10) != "" {
		t.Error("no segments should render empty")
	}
	if ssFormatLine(segs, 3) != "" {
		t.Error("nothing fits, want empty")
	}
}
