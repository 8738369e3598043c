package dateparse

import (
	"strings"
	"testing"
	"time"
)

// Fixed reference time: Tuesday, 2026-09-01 15:00:00 UTC
var testNow = time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

func TestParseDeadline_Passthrough(t *testing.T) {
	got, err := ParseDeadlineFrom("2026-09-15T17:00:00Z", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2026-09-15T17:00:00Z" {
		t.Errorf("got %q", got)
	}
}

func TestParseDeadline_Keywords(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"today", "2026-09-01T00:00:00Z"},
		{"tomorrow", "2026-09-02T00:00:00Z"},
		{"Tomorrow", "2026-09-02T00:00:00Z"},
	}
	for _, tt := range tests {
		got, err := ParseDeadlineFrom(tt.input, testNow)
		if err != nil {
			t.Errorf("ParseDeadlineFrom(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDeadlineFrom(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDeadline_RelativeOffsets(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+0d", "2026-09-01T00:00:00Z"},
		{"+3d", "2026-09-04T00:00:00Z"},
		{"+1w", "2026-09-08T00:00:00Z"},
		{"+2w", "2026-09-15T00:00:00Z"},
	}
	for _, tt := range tests {
		got, err := ParseDeadlineFrom(tt.input, testNow)
		if err != nil {
			t.Errorf("ParseDeadlineFrom(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDeadlineFrom(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDeadline_DayNames(t *testing.T) {
	// testNow is a Tuesday; "tuesday" must advance a full week.
	tests := []struct {
		input string
		want  string
	}{
		{"wednesday", "2026-09-02T00:00:00Z"},
		{"friday", "2026-09-04T00:00:00Z"},
		{"tuesday", "2026-09-08T00:00:00Z"},
	}
	for _, tt := range tests {
		got, err := ParseDeadlineFrom(tt.input, testNow)
		if err != nil {
			t.Errorf("ParseDeadlineFrom(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDeadlineFrom(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDeadline_ExactDate(t *testing.T) {
	got, err := ParseDeadlineFrom("2026-10-01", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "2026-10-01T00:00:00") {
		t.Errorf("got %q", got)
	}
}

func TestParseDeadline_Errors(t *testing.T) {
	for _, input := range []string{"", "  ", "someday", "+3x", "2026-13-45"} {
		if _, err := ParseDeadlineFrom(input, testNow); err == nil {
			t.Errorf("ParseDeadlineFrom(%q): expected error", input)
		}
	}
}
