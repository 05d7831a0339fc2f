package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"studiodesk/pkg/model"
)

var ErrInvalidRange = errors.New("end time must be after start time")

// ValidationError is raised for a candidate range that cannot be checked
// for conflicts at all.
type ValidationError struct {
	Start time.Time
	End   time.Time
}

func (e *ValidationError) Error() string { return ErrInvalidRange.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalidRange }

// ConflictError lists the existing entries of one category that overlap a
// candidate range.
type ConflictError struct {
	Kind      Kind
	Conflicts []TimedItem
}

func (e *ConflictError) Error() string {
	noun := "availability(s)"
	if e.Kind == KindClass {
		noun = "class(es)"
	}
	return fmt.Sprintf("This availability overlaps with existing %s: %s", noun, strings.Join(e.Ranges(), ", "))
}

// Ranges renders each conflict as "HH:MM - HH:MM".
func (e *ConflictError) Ranges() []string {
	out := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		out = append(out, FormatRange(c.Start(), c.End()))
	}
	return out
}

func FormatRange(start, end time.Time) string {
	return start.Format(model.ClockLayout) + " - " + end.Format(model.ClockLayout)
}

// Overlaps uses half-open intervals: a range ending exactly when another
// starts does not overlap it.
func Overlaps(start, end time.Time, item TimedItem) bool {
	return start.Before(item.End()) && end.After(item.Start())
}

// FindConflicts returns every existing item overlapping [start, end), in
// input order.
func FindConflicts[T TimedItem](start, end time.Time, existing []T) []T {
	var out []T
	for _, e := range existing {
		if isNil(e) {
			continue
		}
		if Overlaps(start, end, e) {
			out = append(out, e)
		}
	}
	return out
}

// ValidateRange must pass before any conflict check runs.
func ValidateRange(start, end time.Time) error {
	if !end.After(start) {
		return &ValidationError{Start: start, End: end}
	}
	return nil
}

// Candidate is a proposed availability slot together with the day's
// existing entries it must not collide with.
type Candidate struct {
	Start   time.Time
	End     time.Time
	Slots   []TimedItem
	Classes []TimedItem
	// ExcludeID skips the slot being edited.
	ExcludeID string
}

// CheckCandidate validates the range, then checks same-kind slots, then
// classes. The first failing step is returned.
func CheckCandidate(c Candidate) error {
	if err := ValidateRange(c.Start, c.End); err != nil {
		return err
	}
	if conflicts := FindConflicts(c.Start, c.End, exclude(c.Slots, c.ExcludeID)); len(conflicts) > 0 {
		return &ConflictError{Kind: KindAvailability, Conflicts: conflicts}
	}
	if conflicts := FindConflicts(c.Start, c.End, c.Classes); len(conflicts) > 0 {
		return &ConflictError{Kind: KindClass, Conflicts: conflicts}
	}
	return nil
}

func exclude(items []TimedItem, id string) []TimedItem {
	if id == "" {
		return items
	}
	out := make([]TimedItem, 0, len(items))
	for _, item := range items {
		if isNil(item) || item.ItemID() == id {
			continue
		}
		out = append(out, item)
	}
	return out
}

// AsTimed widens a typed slice for use in a Candidate.
func AsTimed[T TimedItem](items []T) []TimedItem {
	out := make([]TimedItem, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
