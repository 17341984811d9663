package results

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core/marks"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		rows        []marks.StudentMark
		wantCGPA    float64
		wantCredits int
		wantPassed  bool
		wantErr     error
	}{
		{
			name:    "no marks",
			wantErr: ErrNoResults,
		},
		{
			name: "invalid max marks",
			rows: []marks.StudentMark{
				{SubjectCode: "cs101", MarksObtained: 50, Credits: 3, MaxMarks: 0, PassingMarks: 40},
			},
			wantErr: ErrInvalidMaxMarks,
		},
		{
			name: "two subjects passed",
			// (80/100×10×4 + 60/100×10×3) / 7 = (32 + 18) / 7 = 7.142857.. -> 7.14
			rows: []marks.StudentMark{
				{SubjectCode: "cs101", MarksObtained: 80, Credits: 4, MaxMarks: 100, PassingMarks: 40},
				{SubjectCode: "ma102", MarksObtained: 60, Credits: 3, MaxMarks: 100, PassingMarks: 40},
			},
			wantCGPA:    7.14,
			wantCredits: 7,
			wantPassed:  true,
		},
		{
			name: "one failing subject fails the result",
			rows: []marks.StudentMark{
				{SubjectCode: "cs101", MarksObtained: 80, Credits: 4, MaxMarks: 100, PassingMarks: 40},
				{SubjectCode: "ma102", MarksObtained: 35, Credits: 3, MaxMarks: 100, PassingMarks: 40},
			},
			wantCGPA:    6.07, // (32 + 10.5) / 7
			wantCredits: 7,
			wantPassed:  false,
		},
		{
			name: "boundary mark passes",
			rows: []marks.StudentMark{
				{SubjectCode: "cs101", MarksObtained: 40, Credits: 3, MaxMarks: 100, PassingMarks: 40},
			},
			wantCGPA:    4,
			wantCredits: 3,
			wantPassed:  true,
		},
		{
			name: "non-default max marks",
			rows: []marks.StudentMark{
				{SubjectCode: "ph103", MarksObtained: 25, Credits: 2, MaxMarks: 50, PassingMarks: 20},
			},
			wantCGPA:    5,
			wantCredits: 2,
			wantPassed:  true,
		},
		{
			name: "zero total credits",
			rows: []marks.StudentMark{
				{SubjectCode: "xx000", MarksObtained: 10, Credits: 0, MaxMarks: 100, PassingMarks: 0},
			},
			wantCGPA:    0,
			wantCredits: 0,
			wantPassed:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, err := Compute(tt.rows)
			if errors.Cause(err) != tt.wantErr {
				t.Fatalf("Compute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if comp.CGPA != tt.wantCGPA {
				t.Errorf("Compute() CGPA = %v, want %v", comp.CGPA, tt.wantCGPA)
			}
			if comp.TotalCredits != tt.wantCredits {
				t.Errorf("Compute() TotalCredits = %v, want %v", comp.TotalCredits, tt.wantCredits)
			}
			if comp.Passed != tt.wantPassed {
				t.Errorf("Compute() Passed = %v, want %v", comp.Passed, tt.wantPassed)
			}
			if len(comp.Subjects) != len(tt.rows) {
				t.Errorf("Compute() returned %d subjects, want %d", len(comp.Subjects), len(tt.rows))
			}
		})
	}
}

func TestComputeRoundsOnce(t *testing.T) {
	// grade points per subject are left unrounded; only the final CGPA is.
	rows := []marks.StudentMark{
		{SubjectCode: "a", MarksObtained: 33, Credits: 1, MaxMarks: 100, PassingMarks: 0}, // 3.3
		{SubjectCode: "b", MarksObtained: 33, Credits: 1, MaxMarks: 100, PassingMarks: 0},
		{SubjectCode: "c", MarksObtained: 34, Credits: 1, MaxMarks: 100, PassingMarks: 0}, // 3.4
	}
	comp, err := Compute(rows)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if want := 3.33; comp.CGPA != want {
		t.Errorf("Compute() CGPA = %v, want %v", comp.CGPA, want)
	}
	if gp := comp.Subjects[0].GradePoints; math.Abs(gp-3.3) > 1e-9 {
		t.Errorf("Compute() GradePoints = %v, want 3.3", gp)
	}
}
