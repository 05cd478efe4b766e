package document

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingSink struct {
	writes []map[string]string
	err    error
}

func (s *recordingSink) Write(attrs map[string]string) error {
	s.writes = append(s.writes, attrs)
	return s.err
}

func TestRootAttributes(t *testing.T) {
	r := NewRoot(discard)
	if _, ok := r.Attribute(AttrTheme); ok {
		t.Fatal("fresh root has data-theme set")
	}
	r.SetAttribute(AttrTheme, "dark")
	r.SetAttribute(AttrEffectiveTheme, "dark")

	if v, ok := r.Attribute(AttrTheme); !ok || v != "dark" {
		t.Errorf("Attribute(data-theme) = %q, %v", v, ok)
	}
	names := r.Names()
	if len(names) != 2 || names[0] != AttrEffectiveTheme || names[1] != AttrTheme {
		t.Errorf("Names() = %v", names)
	}

	attrs := r.Attributes()
	attrs[AttrTheme] = "mutated"
	if v, _ := r.Attribute(AttrTheme); v != "dark" {
		t.Error("Attributes() returned a live map")
	}
}

func TestRootCommitOnlyWhenDirty(t *testing.T) {
	sink := &recordingSink{}
	r := NewRoot(discard, sink)

	r.SetAttribute(AttrTheme, "light")
	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}
	r.SetAttribute(AttrTheme, "light")
	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}
	if len(sink.writes) != 1 {
		t.Fatalf("sink written %d times, want 1", len(sink.writes))
	}
	if sink.writes[0][AttrTheme] != "light" {
		t.Errorf("sink snapshot = %v", sink.writes[0])
	}

	r.SetAttribute(AttrTheme, "dark")
	_ = r.Commit()
	if len(sink.writes) != 2 {
		t.Errorf("sink written %d times after change, want 2", len(sink.writes))
	}
}

func TestRootCommitSinkFailure(t *testing.T) {
	boom := errors.New("disk full")
	failing := &recordingSink{err: boom}
	ok := &recordingSink{}
	r := NewRoot(discard, failing, ok)

	r.SetAttribute(AttrTheme, "dark")
	if err := r.Commit(); !errors.Is(err, boom) {
		t.Fatalf("Commit() error = %v, want %v", err, boom)
	}
	if len(ok.writes) != 1 {
		t.Error("healthy sink skipped after failing sink")
	}
	if v, _ := r.Attribute(AttrTheme); v != "dark" {
		t.Error("attribute lost after sink failure")
	}

	// A failed commit stays dirty and retries.
	failing.err = nil
	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}
	if len(failing.writes) != 2 {
		t.Errorf("failing sink written %d times, want 2", len(failing.writes))
	}
}

func TestFileSinkRoundTrip(t *testing.T) {
	sink := NewFileSink(t.TempDir() + "/state")
	r := NewRoot(discard, sink)
	r.SetAttribute(AttrTheme, "high-contrast")
	r.SetAttribute(AttrEffectiveTheme, "high-contrast")
	if err := r.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	attrs, err := ReadFile(sink.Path())
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if attrs[AttrTheme] != "high-contrast" || attrs[AttrEffectiveTheme] != "high-contrast" {
		t.Errorf("mirrored attributes = %v", attrs)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(t.TempDir() + "/nope.toml"); err == nil {
		t.Error("ReadFile() on missing file returned nil error")
	}
}
