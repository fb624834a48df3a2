package assessment

import (
	"testing"

	"github.com/trezcool/shule/core"
)

func newMarked(obtained, max float64) NewAssessment {
	return NewAssessment{
		StudentID:     1,
		Subject:       "Mathematics",
		ClassName:     "12A",
		Term:          "Term 1",
		AcademicYear:  "2024-25",
		Kind:          "test",
		Name:          "Unit Test 1",
		Date:          "2024-03-01",
		MaxMarks:      max,
		MarksObtained: obtained,
	}
}

func TestNewAssessment_Validate_strictMarks(t *testing.T) {
	defer func() { core.Conf.StrictMarks = false }()

	tests := []struct {
		name          string
		strict        bool
		obtained, max float64
		wantField     string
		wantError     string
	}{
		{"negative marks accepted by default", false, -10, 100, "", ""},
		{"excess marks accepted by default", false, 110, 100, "", ""},
		{"strict rejects negative marks", true, -10, 100, "marks_obtained", "cannot be negative"},
		{"strict rejects marks above max", true, 110, 100, "marks_obtained", "cannot exceed max_marks"},
		{"strict accepts marks in range", true, 90, 100, "", ""},
		{"strict accepts full marks", true, 100, 100, "", ""},
		{"strict accepts zero marks", true, 0, 100, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core.Conf.StrictMarks = tt.strict
			na := newMarked(tt.obtained, tt.max)
			err := na.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() failed: %v", err)
				}
				return
			}
			vErr, ok := err.(*core.ValidationError)
			if !ok {
				t.Fatalf("Validate() error = %v; want *core.ValidationError", err)
			}
			if len(vErr.Fields) != 1 || vErr.Fields[0].Field != tt.wantField {
				t.Fatalf("fields = %+v; want one error on %q", vErr.Fields, tt.wantField)
			}
			if vErr.Fields[0].Error != tt.wantError {
				t.Errorf("field error = %q; want %q", vErr.Fields[0].Error, tt.wantError)
			}
		})
	}
}

// With the strict policy off, out-of-range marks still flow through to an
// out-of-range percentage.
func TestNewAssessment_Validate_outOfRangePercentage(t *testing.T) {
	core.Conf.StrictMarks = false

	na := newMarked(110, 100)
	if err := na.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	pct, letter, err := ComputeGrade(na.MarksObtained, na.MaxMarks)
	if err != nil {
		t.Fatalf("ComputeGrade() failed: %v", err)
	}
	if pct != 110 {
		t.Errorf("percentage = %v; want 110", pct)
	}
	if letter != "A+" {
		t.Errorf("grade = %s; want A+", letter)
	}
}
