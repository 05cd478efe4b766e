package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/document"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/envsignal"
)

// writeTestConfig points the state dir and log file into a temp dir and
// limits detection to the override variable.
func writeTestConfig(t *testing.T) (configPath, stateDir string) {
	t.Helper()
	t.Setenv(envsignal.OverrideEnv, "true")
	for _, env := range []string{"THEME_PULSE_THEME", "THEME_PULSE_PERSIST", "THEME_PULSE_FOLLOW_SYSTEM", "THEME_PULSE_ENABLED"} {
		t.Setenv(env, "")
	}
	dir := t.TempDir()
	stateDir = filepath.Join(dir, "state")
	configPath = filepath.Join(dir, "config.toml")
	body := fmt.Sprintf(`[general]
state_dir = %q

[environment]
poll_interval = "off"
detectors = ["override"]
`, stateDir)
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath, stateDir
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(stdout.String(), "theme-pulse "+version) {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-no-such-flag"}, &stdout, &stderr); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRunMissingConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", filepath.Join(t.TempDir(), "missing.toml"), "-get"}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "failed to load config") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunUnknownThemeReturnsErrorCode(t *testing.T) {
	configPath, stateDir := writeTestConfig(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", configPath, "-set", "sepia"}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "theme-pulse: ") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing after a failed set", stdout.String())
	}

	// The error path still ran the deferred cleanup: the log file exists
	// and a following invocation can open the same state.
	if _, err := os.Stat(filepath.Join(stateDir, "theme-pulse.log")); err != nil {
		t.Errorf("log file: %v", err)
	}
	stdout.Reset()
	if code := run([]string{"-config", configPath, "-get"}, &stdout, &stderr); code != 0 {
		t.Fatalf("-get exit code = %d", code)
	}
	if got := stdout.String(); got != "auto\tdark\n" {
		t.Errorf("-get = %q, want auto/dark", got)
	}
}

func TestRunSetThenGetJSON(t *testing.T) {
	configPath, stateDir := writeTestConfig(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", configPath, "-set", "light"}, &stdout, &stderr); code != 0 {
		t.Fatalf("-set exit code = %d, stderr %q", code, stderr.String())
	}
	if got := stdout.String(); got != "light\tlight\n" {
		t.Errorf("-set output = %q", got)
	}

	stdout.Reset()
	if code := run([]string{"-config", configPath, "-get", "-json"}, &stdout, &stderr); code != 0 {
		t.Fatalf("-get exit code = %d", code)
	}
	var st stateJSON
	if err := json.Unmarshal(stdout.Bytes(), &st); err != nil {
		t.Fatalf("decode %q: %v", stdout.String(), err)
	}
	if st.Requested != "light" || st.Effective != "light" || st.DarkFamily {
		t.Errorf("state = %+v", st)
	}

	attrs, err := document.ReadFile(filepath.Join(stateDir, document.FileName))
	if err != nil {
		t.Fatalf("mirrored document: %v", err)
	}
	if attrs[document.AttrHighlightTheme] != "light" {
		t.Errorf("%s = %q, want light", document.AttrHighlightTheme, attrs[document.AttrHighlightTheme])
	}
}

func TestRunList(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", configPath, "-list"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), stdout.String())
	}
	// Builtin order is light, dark, auto, high-contrast; auto is requested.
	for i, line := range lines {
		if marked := strings.HasPrefix(line, "*"); marked != (i == 2) {
			t.Errorf("line %d %q: marked = %t", i, line, marked)
		}
	}
}
