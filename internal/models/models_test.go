package models

import "testing"

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
	}{
		{"high", PriorityHigh},
		{"HIGH", PriorityHigh},
		{"h", PriorityHigh},
		{"medium", PriorityMedium},
		{"med", PriorityMedium},
		{"", PriorityMedium},
		{"low", PriorityLow},
		{"l", PriorityLow},
	}
	for _, tt := range tests {
		if got := NormalizePriority(tt.input); got != tt.want {
			t.Errorf("NormalizePriority(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValidColor(t *testing.T) {
	valid := []string{"#FF5733", "#3B82F6", "#abcdef", "#000000"}
	for _, c := range valid {
		if !IsValidColor(c) {
			t.Errorf("IsValidColor(%q) = false, want true", c)
		}
	}
	invalid := []string{"#ff00", "FF5733", "#GGGGGG", "#ff57331", "", "#fff"}
	for _, c := range invalid {
		if IsValidColor(c) {
			t.Errorf("IsValidColor(%q) = true, want false", c)
		}
	}
}

func TestValidateTaskCreate(t *testing.T) {
	in := &TaskCreate{Title: "Buy milk", Deadline: "2026-09-02T00:00:00Z"}
	if fe := ValidateTaskCreate(in); fe != nil {
		t.Errorf("valid input rejected: %v", fe)
	}

	in = &TaskCreate{Title: "  ", Deadline: ""}
	fe := ValidateTaskCreate(in)
	if fe == nil {
		t.Fatal("expected field errors")
	}
	if _, ok := fe["title"]; !ok {
		t.Error("missing title error")
	}
	if _, ok := fe["deadline"]; !ok {
		t.Error("missing deadline error")
	}
}

func TestValidateTaskPatch_NilFieldsPass(t *testing.T) {
	if fe := ValidateTaskPatch(&TaskPatch{}); fe != nil {
		t.Errorf("empty patch rejected: %v", fe)
	}
}

func TestValidateLabelCreate_BadColor(t *testing.T) {
	fe := ValidateLabelCreate(&LabelCreate{Name: "Work", Color: "#ff00"})
	if fe == nil {
		t.Fatal("expected color error")
	}
	if _, ok := fe["color"]; !ok {
		t.Errorf("expected color field error, got %v", fe)
	}
}

func TestTaskPatchLabelsOnly(t *testing.T) {
	p := &TaskPatch{LabelIDs: []string{"a", "b"}}
	if !p.LabelsOnly() {
		t.Error("labels-only patch not detected")
	}

	title := "New title"
	p = &TaskPatch{Title: &title, LabelIDs: []string{"a"}}
	if p.LabelsOnly() {
		t.Error("mixed patch reported as labels-only")
	}

	p = &TaskPatch{}
	if p.LabelsOnly() {
		t.Error("empty patch reported as labels-only")
	}
}

func TestHasLabel(t *testing.T) {
	task := &Task{LabelIDs: []string{"1", "2", "3"}}
	if !task.HasLabel("2") {
		t.Error("HasLabel(2) = false")
	}
	if task.HasLabel("4") {
		t.Error("HasLabel(4) = true")
	}
}
