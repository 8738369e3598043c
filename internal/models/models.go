package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Priority represents task priority
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium" // default
	PriorityLow    Priority = "Low"
)

// DefaultLabelColor is applied when a label is created without a color.
const DefaultLabelColor = "#3B82F6"

// Field length limits, matching the server's schemas.
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
	LabelNameMaxLength   = 50
	LabelDescMaxLength   = 200
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Task is a to-do item as exchanged with the server.
// Timestamps travel as RFC 3339 strings; the view layer parses Deadline
// at the point of use and treats unparsable values as never-due.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority"`
	Deadline    string   `json:"deadline"`
	IsCompleted bool     `json:"is_completed"`
	LabelIDs    []string `json:"label_ids"`
	UserID      string   `json:"user_id"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	CompletedAt *string  `json:"completed_at,omitempty"`
}

// HasLabel reports whether the task carries the given label id.
func (t *Task) HasLabel(labelID string) bool {
	for _, id := range t.LabelIDs {
		if id == labelID {
			return true
		}
	}
	return false
}

// Label categorizes tasks. A task may reference labels that have since
// been deleted; renderers skip unresolved ids rather than erroring.
type Label struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
	UserID      string `json:"user_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// User is the account that owns tasks and labels.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// TaskCreate carries the fields a client may set when creating a task.
type TaskCreate struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Deadline    string   `json:"deadline"`
	LabelIDs    []string `json:"label_ids,omitempty"`
}

// TaskPatch carries a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Deadline    *string   `json:"deadline,omitempty"`
	LabelIDs    []string  `json:"label_ids,omitempty"`
}

// LabelsOnly reports whether the patch touches nothing but the label set.
// Such patches route through the labels-specific endpoint.
func (p *TaskPatch) LabelsOnly() bool {
	return p.LabelIDs != nil && p.Title == nil && p.Description == nil &&
		p.Priority == nil && p.Deadline == nil
}

// LabelCreate carries the fields a client may set when creating a label.
type LabelCreate struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// LabelPatch carries a partial label update.
type LabelPatch struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsValidPriority reports whether p is one of the three known levels.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// NormalizePriority maps case-insensitive and single-letter spellings
// ("high", "h", "HIGH") onto the canonical priority values.
func NormalizePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return PriorityHigh
	case "medium", "med", "m", "":
		return PriorityMedium
	case "low", "l":
		return PriorityLow
	}
	return Priority(s)
}

// IsValidColor reports whether s is a 6-hex-digit color code like "#FF5733".
func IsValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

// FieldErrors maps field names to validation messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// ValidateTaskCreate checks task creation input at the client boundary.
// Returns nil when the input is acceptable.
func ValidateTaskCreate(in *TaskCreate) FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		fe["title"] = "title is required"
	} else if len(in.Title) > TitleMaxLength {
		fe["title"] = fmt.Sprintf("title must be at most %d characters", TitleMaxLength)
	}
	if len(in.Description) > DescriptionMaxLength {
		fe["description"] = fmt.Sprintf("description must be at most %d characters", DescriptionMaxLength)
	}
	if in.Deadline == "" {
		fe["deadline"] = "deadline is required"
	}
	if in.Priority != "" && !IsValidPriority(in.Priority) {
		fe["priority"] = "priority must be High, Medium, or Low"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateTaskPatch checks a partial task update.
func ValidateTaskPatch(p *TaskPatch) FieldErrors {
	fe := FieldErrors{}
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			fe["title"] = "title cannot be empty"
		} else if len(*p.Title) > TitleMaxLength {
			fe["title"] = fmt.Sprintf("title must be at most %d characters", TitleMaxLength)
		}
	}
	if p.Description != nil && len(*p.Description) > DescriptionMaxLength {
		fe["description"] = fmt.Sprintf("description must be at most %d characters", DescriptionMaxLength)
	}
	if p.Priority != nil && !IsValidPriority(*p.Priority) {
		fe["priority"] = "priority must be High, Medium, or Low"
	}
	if p.Deadline != nil && *p.Deadline == "" {
		fe["deadline"] = "deadline cannot be empty"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateLabelCreate checks label creation input. The color check runs
// here, before any network call is made.
func ValidateLabelCreate(in *LabelCreate) FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fe["name"] = "name is required"
	} else if len(in.Name) > LabelNameMaxLength {
		fe["name"] = fmt.Sprintf("name must be at most %d characters", LabelNameMaxLength)
	}
	if in.Color != "" && !IsValidColor(in.Color) {
		fe["color"] = "color must be a 6-hex-digit code like #FF5733"
	}
	if len(in.Description) > LabelDescMaxLength {
		fe["description"] = fmt.Sprintf("description must be at most %d characters", LabelDescMaxLength)
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateLabelPatch checks a partial label update.
func ValidateLabelPatch(p *LabelPatch) FieldErrors {
	fe := FieldErrors{}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			fe["name"] = "name cannot be empty"
		} else if len(*p.Name) > LabelNameMaxLength {
			fe["name"] = fmt.Sprintf("name must be at most %d characters", LabelNameMaxLength)
		}
	}
	if p.Color != nil && !IsValidColor(*p.Color) {
		fe["color"] = "color must be a 6-hex-digit code like #FF5733"
	}
	if p.Description != nil && len(*p.Description) > LabelDescMaxLength {
		fe["description"] = fmt.Sprintf("description must be at most %d characters", LabelDescMaxLength)
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}
