package marks

import "time"

// Exam types
const (
	ExamTypeInternal  = "internal"
	ExamTypeExternal  = "external"
	ExamTypePractical = "practical"
)

// Mark is one score record, unique per (student, subject, academic year, exam type).
type Mark struct {
	ID            string    `json:"mark_id"`
	StudentID     string    `json:"student_id"`
	SubjectID     string    `json:"subject_id"`
	MarksObtained float64   `json:"marks_obtained"`
	AcademicYear  string    `json:"academic_year"`
	ExamType      string    `json:"exam_type"`
	UpdatedBy     string    `json:"updated_by"`
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

// MarkUpsert is one item of a marks submission batch.
type MarkUpsert struct {
	MarkID        string  `json:"mark_id,omitempty"`
	StudentID     string  `json:"student_id" validate:"required"`
	SubjectID     string  `json:"subject_id" validate:"required"`
	MarksObtained float64 `json:"marks_obtained" validate:"gte=0"`
	AcademicYear  string  `json:"academic_year" validate:"omitempty,academic_year"`
}

// TeacherMarkRow is a mark joined with student and subject info,
// as listed on the teacher portal.
type TeacherMarkRow struct {
	MarkID        string  `json:"mark_id" db:"mark_id"`
	StudentID     string  `json:"student_id" db:"student_id"`
	SubjectID     string  `json:"subject_id" db:"subject_id"`
	MarksObtained float64 `json:"marks_obtained" db:"marks_obtained"`
	AcademicYear  string  `json:"academic_year" db:"academic_year"`
	ExamType      string  `json:"exam_type" db:"exam_type"`
	StudentName   string  `json:"student_name" db:"student_name"`
	SubjectName   string  `json:"subject_name" db:"subject_name"`
	SubjectCode   string  `json:"subject_code" db:"subject_code"`
	MaxMarks      int     `json:"max_marks" db:"max_marks"`
	PassingMarks  int     `json:"passing_marks" db:"passing_marks"`
}

// StudentMark is a mark joined with its subject definition,
// the input row of the result engine.
type StudentMark struct {
	SubjectCode   string  `json:"subject_code" db:"subject_code"`
	SubjectName   string  `json:"subject_name" db:"subject_name"`
	MarksObtained float64 `json:"marks_obtained" db:"marks_obtained"`
	ExamType      string  `json:"exam_type" db:"exam_type"`
	Credits       int     `json:"credits" db:"credits"`
	MaxMarks      int     `json:"max_marks" db:"max_marks"`
	PassingMarks  int     `json:"passing_marks" db:"passing_marks"`
}

// BatchFailure reports one failed item of a marks submission batch.
type BatchFailure struct {
	Index     int    `json:"index"`
	StudentID string `json:"student_id"`
	SubjectID string `json:"subject_id"`
	Error     string `json:"error"`
}

// BatchResult reports the outcome of a marks submission batch, item by item.
type BatchResult struct {
	Created  int            `json:"created"`
	Updated  int            `json:"updated"`
	Failures []BatchFailure `json:"failures,omitempty"`
}

func (br BatchResult) Success() bool {
	return len(br.Failures) == 0
}
