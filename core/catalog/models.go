package catalog

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/matokeo/core"
)

// DefaultAcademicYear is used when an operation does not name a year.
const DefaultAcademicYear = "2024-25"

// Subject defaults applied when the corresponding field is omitted.
const (
	defaultCredits      = 3
	defaultMaxMarks     = 100
	defaultPassingMarks = 40
)

type Subject struct {
	ID           string `json:"subject_id"`
	Code         string `json:"subject_code"`
	Name         string `json:"subject_name"`
	Semester     int    `json:"semester"`
	Credits      int    `json:"credits"`
	MaxMarks     int    `json:"max_marks"`
	PassingMarks int    `json:"passing_marks"`
}

// Assignment grants a teacher write visibility over a subject's marks for an academic year.
type Assignment struct {
	ID           string `json:"assignment_id"`
	TeacherID    string `json:"teacher_id"`
	SubjectID    string `json:"subject_id"`
	AcademicYear string `json:"academic_year"`
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Code         string `json:"subject_code" validate:"required"`
	Name         string `json:"subject_name" validate:"required"`
	Semester     int    `json:"semester" validate:"required,gt=0"`
	Credits      int    `json:"credits" validate:"gt=0"`
	MaxMarks     int    `json:"max_marks" validate:"gt=0"`
	PassingMarks int    `json:"passing_marks" validate:"gte=0,ltefield=MaxMarks"`
}

func (ns *NewSubject) Validate(validate *validator.Validate, svc ServiceInterface) error {
	ns.Code = core.CleanString(ns.Code, true /* lower */)
	ns.Name = core.CleanString(ns.Name)

	// defaults
	if ns.Credits == 0 {
		ns.Credits = defaultCredits
	}
	if ns.MaxMarks == 0 {
		ns.MaxMarks = defaultMaxMarks
	}
	if ns.PassingMarks == 0 {
		ns.PassingMarks = defaultPassingMarks
	}

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckSubjectCodeUniqueness(ns.Code)
}
