package output

import (
	"strings"
	"testing"
	"time"

	"tdo/internal/models"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestShortID(t *testing.T) {
	if got := ShortID("abcdefghij"); got != "abcdefgh" {
		t.Errorf("ShortID long = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID short = %q", got)
	}
}

func TestFormatTimeAgo(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "1m ago"},
		{5 * time.Minute, "5m ago"},
		{time.Hour, "1h ago"},
		{3 * time.Hour, "3h ago"},
		{24 * time.Hour, "1d ago"},
		{3 * 24 * time.Hour, "3d ago"},
	}
	for _, tt := range tests {
		if got := FormatTimeAgo(testNow.Add(-tt.ago), testNow); got != tt.want {
			t.Errorf("FormatTimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
	// Older than a week falls back to a date.
	old := testNow.Add(-10 * 24 * time.Hour)
	if got := FormatTimeAgo(old, testNow); got != "2026-08-22" {
		t.Errorf("FormatTimeAgo old = %q", got)
	}
}

func TestFormatDeadline(t *testing.T) {
	if got := FormatDeadline("", testNow); got != "" {
		t.Errorf("empty deadline = %q", got)
	}
	if got := FormatDeadline("2026-08-30T00:00:00Z", testNow); !strings.Contains(got, "overdue") {
		t.Errorf("past deadline not marked overdue: %q", got)
	}
	if got := FormatDeadline("2026-09-20T00:00:00Z", testNow); strings.Contains(got, "overdue") {
		t.Errorf("future deadline marked overdue: %q", got)
	}
	// Unparsable values are passed through so they stay visible.
	if got := FormatDeadline("not-a-date", testNow); !strings.Contains(got, "not-a-date") {
		t.Errorf("malformed deadline dropped: %q", got)
	}
}

func TestFormatTaskShort(t *testing.T) {
	labels := LabelIndex([]models.Label{
		{ID: "l1", Name: "work", Color: "#3B82F6"},
	})
	task := &models.Task{
		ID:       "task-1234-5678",
		Title:    "Write report",
		Priority: models.PriorityHigh,
		LabelIDs: []string{"l1"},
	}
	line := FormatTaskShort(task, labels, testNow)
	for _, want := range []string{"Write report", "task-123", "High", "work", "[ ]"} {
		if !strings.Contains(line, want) {
			t.Errorf("short format missing %q: %q", want, line)
		}
	}

	task.IsCompleted = true
	line = FormatTaskShort(task, labels, testNow)
	if !strings.Contains(line, "[x]") {
		t.Errorf("completed task missing check mark: %q", line)
	}
}

func TestFormatTaskLong(t *testing.T) {
	completed := "2026-09-01T10:00:00Z"
	task := &models.Task{
		ID:          "t1",
		Title:       "Ship release",
		Priority:    models.PriorityMedium,
		Deadline:    "2026-09-15T00:00:00Z",
		IsCompleted: true,
		CompletedAt: &completed,
		LabelIDs:    []string{"l1", "missing"},
		CreatedAt:   "2026-08-01T09:00:00Z",
	}
	labels := LabelIndex([]models.Label{{ID: "l1", Name: "release", Color: "#EF4444"}})
	long := FormatTaskLong(task, labels, testNow)
	for _, want := range []string{"Ship release", "ID: t1", "Medium", "Done", "2026-09-15", "release", "missing"} {
		if !strings.Contains(long, want) {
			t.Errorf("long format missing %q:\n%s", want, long)
		}
	}
}

func TestFormatLabelLine(t *testing.T) {
	l := &models.Label{ID: "label-abc-def", Name: "urgent", Color: "#EF4444", Description: "drop everything"}
	line := FormatLabelLine(l)
	for _, want := range []string{"urgent", "label-ab", "#EF4444", "drop everything"} {
		if !strings.Contains(line, want) {
			t.Errorf("label line missing %q: %q", want, line)
		}
	}
}

func TestRenderDescriptionEmpty(t *testing.T) {
	out, err := RenderDescriptionWidth("   ", 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestRenderDescriptionClampsWidth(t *testing.T) {
	out, err := RenderDescriptionWidth("hello **world**", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("rendered description lost content: %q", out)
	}
}
