package results

import (
	"context"

	"github.com/trezcool/matokeo/core/account"
	"github.com/trezcool/matokeo/core/catalog"
	"github.com/trezcool/matokeo/core/marks"
)

type (
	// StudentResult is a student's full academic standing.
	StudentResult struct {
		Student      account.Student `json:"student"`
		Marks        []SubjectResult `json:"marks"`
		CGPA         float64         `json:"cgpa"`
		TotalCredits int             `json:"total_credits"`
		Passed       bool            `json:"passed"`
	}

	// Summary is the admin dashboard aggregate. Students with no recorded
	// marks count towards the total but neither passed nor failed.
	Summary struct {
		TotalStudents  int `json:"total_students"`
		TotalTeachers  int `json:"total_teachers"`
		TotalSubjects  int `json:"total_subjects"`
		PassedStudents int `json:"passed_students"`
		FailedStudents int `json:"failed_students"`
	}

	ServiceInterface interface {
		// StudentResult computes the result for one student; returns ErrNoResults
		// when they have no marks recorded.
		StudentResult(ctx context.Context, studentID string) (StudentResult, error)
		Summary(ctx context.Context) (Summary, error)
	}

	service struct {
		accountRepo account.Repository
		catalogRepo catalog.Repository
		marksRepo   marks.Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(accountRepo account.Repository, catalogRepo catalog.Repository, marksRepo marks.Repository) *service {
	return &service{
		accountRepo: accountRepo,
		catalogRepo: catalogRepo,
		marksRepo:   marksRepo,
	}
}

func (svc *service) StudentResult(ctx context.Context, studentID string) (StudentResult, error) {
	std, err := svc.accountRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return StudentResult{}, err
	}
	rows, err := svc.marksRepo.QueryStudentMarks(ctx, studentID)
	if err != nil {
		return StudentResult{}, err
	}
	comp, err := Compute(rows)
	if err != nil {
		return StudentResult{}, err
	}
	return StudentResult{
		Student:      std,
		Marks:        comp.Subjects,
		CGPA:         comp.CGPA,
		TotalCredits: comp.TotalCredits,
		Passed:       comp.Passed,
	}, nil
}

func (svc *service) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	var err error

	if sum.TotalTeachers, err = svc.accountRepo.CountTeachers(ctx); err != nil {
		return Summary{}, err
	}
	if sum.TotalSubjects, err = svc.catalogRepo.CountSubjects(ctx); err != nil {
		return Summary{}, err
	}

	students, err := svc.accountRepo.QueryStudents(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum.TotalStudents = len(students)

	for _, std := range students {
		rows, err := svc.marksRepo.QueryStudentMarks(ctx, std.ID)
		if err != nil {
			return Summary{}, err
		}
		comp, err := Compute(rows)
		if err != nil {
			if err == ErrNoResults {
				continue
			}
			return Summary{}, err
		}
		if comp.Passed {
			sum.PassedStudents++
		} else {
			sum.FailedStudents++
		}
	}
	return sum, nil
}
