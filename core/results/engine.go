package results

import (
	"math"

	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core/marks"
)

var (
	// errors
	ErrNoResults = errors.New("no results found")
	// ErrInvalidMaxMarks flags a catalog integrity violation (max_marks <= 0);
	// the engine must never divide by it.
	ErrInvalidMaxMarks = errors.New("subject has invalid max marks")
)

// SubjectResult is the per-subject breakdown of a computed result.
type SubjectResult struct {
	SubjectCode   string  `json:"subject_code"`
	SubjectName   string  `json:"subject_name"`
	MarksObtained float64 `json:"marks_obtained"`
	ExamType      string  `json:"exam_type"`
	Credits       int     `json:"credits"`
	MaxMarks      int     `json:"max_marks"`
	PassingMarks  int     `json:"passing_marks"`
	GradePoints   float64 `json:"grade_points"`
	Passed        bool    `json:"passed"`
}

// Computation is a derived academic result: credit-weighted CGPA on a 10-point
// scale and pass/fail per subject and overall.
type Computation struct {
	Subjects     []SubjectResult
	CGPA         float64
	TotalCredits int
	Passed       bool
}

// Compute derives a Computation from a student's marks joined with their
// subject definitions. It is pure and deterministic: the same rows always
// produce the same result.
//
// grade_points = marks/max × 10 × credits; CGPA = Σ grade_points / Σ credits,
// rounded to 2 decimal places once at the end (intermediate sums are not
// rounded); overall pass requires every subject mark to reach its passing
// marks. Zero total credits yields a CGPA of 0, not a division fault.
func Compute(rows []marks.StudentMark) (Computation, error) {
	if len(rows) == 0 {
		return Computation{}, ErrNoResults
	}

	var (
		totalCredits     int
		totalGradePoints float64
	)
	comp := Computation{
		Subjects: make([]SubjectResult, 0, len(rows)),
		Passed:   true,
	}

	for _, row := range rows {
		if row.MaxMarks <= 0 {
			return Computation{}, errors.Wrapf(ErrInvalidMaxMarks, "subject %s", row.SubjectCode)
		}

		gradePoints := row.MarksObtained / float64(row.MaxMarks) * 10 * float64(row.Credits)
		passed := row.MarksObtained >= float64(row.PassingMarks)

		totalCredits += row.Credits
		totalGradePoints += gradePoints
		comp.Passed = comp.Passed && passed

		comp.Subjects = append(comp.Subjects, SubjectResult{
			SubjectCode:   row.SubjectCode,
			SubjectName:   row.SubjectName,
			MarksObtained: row.MarksObtained,
			ExamType:      row.ExamType,
			Credits:       row.Credits,
			MaxMarks:      row.MaxMarks,
			PassingMarks:  row.PassingMarks,
			GradePoints:   gradePoints,
			Passed:        passed,
		})
	}

	comp.TotalCredits = totalCredits
	if totalCredits > 0 {
		comp.CGPA = round2(totalGradePoints / float64(totalCredits))
	}
	return comp, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
