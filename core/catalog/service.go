package catalog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core"
)

var (
	// errors
	ErrNotFound          = errors.New("subject not found")
	ErrSubjectCodeExists = errors.New("a subject with this code already exists")
)

type (
	Repository interface {
		CreateSubject(ctx context.Context, sub Subject) (Subject, error)
		QuerySubjects(ctx context.Context) ([]Subject, error)
		GetSubjectByID(ctx context.Context, id string) (Subject, error)
		CountSubjects(ctx context.Context) (int, error)
		// CheckSubjectCodeUniqueness returns ErrSubjectCodeExists on conflict.
		CheckSubjectCodeUniqueness(ctx context.Context, code string) error
		CreateAssignment(ctx context.Context, asg Assignment) (Assignment, error)
	}

	ServiceInterface interface {
		CheckSubjectCodeUniqueness(code string) error
		CreateSubject(ctx context.Context, ns NewSubject) (Subject, error)
		QuerySubjects(ctx context.Context) ([]Subject, error)
		// AssignTeacher authorizes a teacher on a subject for an academic year
		// (DefaultAcademicYear when year is empty).
		AssignTeacher(ctx context.Context, teacherID, subjectID, year string) (Assignment, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) CheckSubjectCodeUniqueness(code string) error {
	if err := svc.repo.CheckSubjectCodeUniqueness(context.Background(), code); err != nil {
		if errors.Cause(err) == ErrSubjectCodeExists {
			return core.NewValidationError(err, core.FieldError{Field: "subject_code", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) CreateSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	sub := Subject{
		Code:         ns.Code,
		Name:         ns.Name,
		Semester:     ns.Semester,
		Credits:      ns.Credits,
		MaxMarks:     ns.MaxMarks,
		PassingMarks: ns.PassingMarks,
	}
	return svc.repo.CreateSubject(ctx, sub)
}

func (svc *service) QuerySubjects(ctx context.Context) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx)
}

func (svc *service) AssignTeacher(ctx context.Context, teacherID, subjectID, year string) (Assignment, error) {
	if year == "" {
		year = DefaultAcademicYear
	}
	// the subject must exist; the FK on teacher_id catches a bad teacher
	if _, err := svc.repo.GetSubjectByID(ctx, subjectID); err != nil {
		return Assignment{}, err
	}
	asg := Assignment{
		TeacherID:    teacherID,
		SubjectID:    subjectID,
		AcademicYear: year,
	}
	return svc.repo.CreateAssignment(ctx, asg)
}
