package components

import (
	"strings"
	"testing"
)

func TestVisibleLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"dark", 4},
		{"\x1b[1mdark\x1b[22m", 4},
		{"🌙 Dark", 7},
	}
	for _, tt := range tests {
		if got := VisibleLen(tt.in); got != tt.want {
			t.Errorf("VisibleLen(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("high-contrast", 4); got != "high" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("light", 0); got != "" {
		t.Errorf("Truncate(0) = %q", got)
	}
	if got := Truncate("light", 10); got != "light" {
		t.Errorf("Truncate(wide) = %q", got)
	}
}

func TestTruncateWithTail(t *testing.T) {
	got := TruncateWithTail("high-contrast", 6, "…")
	if VisibleLen(got) != 6 || !strings.HasSuffix(got, "…") {
		t.Errorf("TruncateWithTail() = %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight() = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight(wider) = %q", got)
	}
}

func TestFitLine(t *testing.T) {
	for _, in := range []string{"short", "a line that is far too long"} {
		if got := FitLine(in, 10); VisibleLen(got) != 10 {
			t.Errorf("FitLine(%q, 10) width = %d", in, VisibleLen(got))
		}
	}
	if FitLine("x", 0) != "" {
		t.Error("FitLine(0) should be empty")
	}
}

func TestFields(t *testing.T) {
	rows := Fields([]Field{
		{Label: "requested", Value: "auto"},
		{Label: "effective", Value: "dark"},
		{Label: "env", Value: "true"},
	}, 0)
	if len(rows) != 3 {
		t.Fatalf("Fields() returned %d rows", len(rows))
	}
	if rows[2] != "env        true" {
		t.Errorf("row = %q, labels not aligned", rows[2])
	}

	fitted := Fields([]Field{{Label: "k", Value: "a very long value"}}, 8)
	if VisibleLen(fitted[0]) != 8 {
		t.Errorf("fitted row width = %d, want 8", VisibleLen(fitted[0]))
	}
	if !strings.Contains(FieldsString([]Field{{"a", "1"}, {"b", "2"}}, 0), "\n") {
		t.Error("FieldsString() not newline joined")
	}
}
