package calendar

import (
	"errors"
	"strings"
	"testing"

	"studiodesk/pkg/model"
)

func TestFindConflicts(t *testing.T) {
	tests := []struct {
		name     string
		existing []*model.AvailabilitySlot
		want     []string
	}{
		{
			name:     "touching boundary",
			existing: []*model.AvailabilitySlot{slot("a", at(15, 9, 0), at(15, 10, 0))},
			want:     []string{},
		},
		{
			name:     "touching end boundary",
			existing: []*model.AvailabilitySlot{slot("a", at(15, 12, 0), at(15, 13, 0))},
			want:     []string{},
		},
		{
			name:     "partial overlap",
			existing: []*model.AvailabilitySlot{slot("a", at(15, 11, 0), at(15, 13, 0))},
			want:     []string{"a"},
		},
		{
			name:     "fully contained",
			existing: []*model.AvailabilitySlot{slot("a", at(15, 10, 30), at(15, 11, 30))},
			want:     []string{"a"},
		},
		{
			name:     "fully containing",
			existing: []*model.AvailabilitySlot{slot("a", at(15, 8, 0), at(15, 18, 0))},
			want:     []string{"a"},
		},
		{
			name: "several in input order",
			existing: []*model.AvailabilitySlot{
				slot("b", at(15, 11, 0), at(15, 13, 0)),
				slot("x", at(15, 13, 0), at(15, 14, 0)),
				slot("a", at(15, 9, 0), at(15, 10, 30)),
			},
			want: []string{"b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindConflicts(at(15, 10, 0), at(15, 12, 0), tt.existing)
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("FindConflicts = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(at(15, 10, 0), at(15, 12, 0)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for _, end := range []int{10, 9} {
		err := ValidateRange(at(15, 10, 0), at(15, end, 0))
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("end %d:00: error = %v, want *ValidationError", end, err)
		}
		if !errors.Is(err, ErrInvalidRange) {
			t.Errorf("end %d:00: error does not wrap ErrInvalidRange", end)
		}
	}
}

func TestCheckCandidate(t *testing.T) {
	slots := AsTimed([]*model.AvailabilitySlot{slot("s1", at(15, 8, 0), at(15, 9, 30))})
	classes := AsTimed([]*model.EventSchedule{class("c1", at(15, 11, 0), at(15, 12, 0))})

	t.Run("invalid range is rejected before conflicts", func(t *testing.T) {
		// Would overlap both categories if the range were checked.
		err := CheckCandidate(Candidate{Start: at(15, 12, 0), End: at(15, 8, 0), Slots: slots, Classes: classes})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("availability conflict", func(t *testing.T) {
		err := CheckCandidate(Candidate{Start: at(15, 9, 0), End: at(15, 10, 0), Slots: slots, Classes: classes})
		var cErr *ConflictError
		if !errors.As(err, &cErr) {
			t.Fatalf("error = %v, want *ConflictError", err)
		}
		if cErr.Kind != KindAvailability {
			t.Errorf("Kind = %s, want availability", cErr.Kind)
		}
		want := "This availability overlaps with existing availability(s): 08:00 - 09:30"
		if cErr.Error() != want {
			t.Errorf("Error() = %q, want %q", cErr.Error(), want)
		}
	})

	t.Run("class conflict", func(t *testing.T) {
		err := CheckCandidate(Candidate{Start: at(15, 10, 0), End: at(15, 11, 30), Slots: slots, Classes: classes})
		var cErr *ConflictError
		if !errors.As(err, &cErr) {
			t.Fatalf("error = %v, want *ConflictError", err)
		}
		if cErr.Kind != KindClass {
			t.Errorf("Kind = %s, want class", cErr.Kind)
		}
		if !strings.Contains(cErr.Error(), "class(es): 11:00 - 12:00") {
			t.Errorf("Error() = %q", cErr.Error())
		}
	})

	t.Run("excluded slot is ignored", func(t *testing.T) {
		err := CheckCandidate(Candidate{Start: at(15, 8, 30), End: at(15, 10, 0), Slots: slots, Classes: classes, ExcludeID: "s1"})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("free range", func(t *testing.T) {
		err := CheckCandidate(Candidate{Start: at(15, 9, 30), End: at(15, 11, 0), Slots: slots, Classes: classes})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
