// Package taskview derives the visible task list from a collection and
// the active filter criteria. Pure functions only: no I/O, no clocks of
// its own, no mutation of inputs.
package taskview

import (
	"math"
	"time"

	"tdo/internal/models"
)

// Criteria is the ephemeral, client-only filter state.
type Criteria struct {
	// SelectedLabelIDs uses AND semantics: a task matches only if it
	// carries every selected label.
	SelectedLabelIDs []string
	UrgentOnly       bool
	DueToday         bool
	DueTomorrow      bool
}

// Empty reports whether no criterion is active.
func (c Criteria) Empty() bool {
	return len(c.SelectedLabelIDs) == 0 && !c.UrgentOnly && !c.DueToday && !c.DueTomorrow
}

// Visible returns the tasks matching every active criterion, in input
// order. Calling it twice with the same inputs yields identical output.
//
// DueToday and DueTomorrow enabled together yield an empty result for
// well-formed tasks: a single deadline cannot be both 0 and 1 days out.
// That interaction is specified behavior, kept as-is.
func Visible(tasks []models.Task, c Criteria, now time.Time) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(&t, c, now) {
			out = append(out, t)
		}
	}
	return out
}

// Matches reports whether a single task passes every active criterion.
func Matches(t *models.Task, c Criteria, now time.Time) bool {
	for _, id := range c.SelectedLabelIDs {
		if !t.HasLabel(id) {
			return false
		}
	}
	if c.UrgentOnly && t.Priority != models.PriorityHigh {
		return false
	}
	if c.DueToday || c.DueTomorrow {
		offset, ok := DayOffset(t.Deadline, now)
		if !ok {
			// Unparsable deadline fails closed.
			return false
		}
		if c.DueToday && offset != 0 {
			return false
		}
		if c.DueTomorrow && offset != 1 {
			return false
		}
	}
	return true
}

// DayOffset returns the whole calendar days between now's local midnight
// and the deadline's local midnight. Evaluation happens in now's
// location. ok is false when the deadline does not parse.
func DayOffset(deadline string, now time.Time) (int, bool) {
	d, err := parseDeadline(deadline)
	if err != nil {
		return 0, false
	}
	loc := now.Location()
	dm := midnight(d.In(loc))
	nm := midnight(now)
	// Rounding absorbs DST-shortened or -lengthened days.
	return int(math.Round(dm.Sub(nm).Hours() / 24)), true
}

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	// Date-only deadlines are taken at local midnight.
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
