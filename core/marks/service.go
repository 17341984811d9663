package marks

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core"
	"github.com/trezcool/matokeo/core/catalog"
)

var (
	// errors
	ErrNotFound = errors.New("mark not found")
)

type (
	Repository interface {
		// GetMarkByKey looks a mark up by its natural key; returns ErrNotFound when absent.
		GetMarkByKey(ctx context.Context, studentID, subjectID, year string) (Mark, error)
		CreateMark(ctx context.Context, mrk Mark) (Mark, error)
		UpdateMark(ctx context.Context, mrk Mark) (Mark, error)
		QueryTeacherMarks(ctx context.Context, teacherID string) ([]TeacherMarkRow, error)
		QueryStudentMarks(ctx context.Context, studentID string) ([]StudentMark, error)
	}

	ServiceInterface interface {
		QueryTeacherMarks(ctx context.Context, teacherID string) ([]TeacherMarkRow, error)
		// BulkUpsert applies each item of the batch independently: an existing
		// (student, subject, year) record is overwritten in place, a missing one is
		// created with the default exam type. Item failures are collected in the
		// result, never silently swallowed; each item is applied exactly once.
		BulkUpsert(ctx context.Context, items []MarkUpsert, updatedBy string) (BatchResult, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) QueryTeacherMarks(ctx context.Context, teacherID string) ([]TeacherMarkRow, error) {
	return svc.repo.QueryTeacherMarks(ctx, teacherID)
}

func (svc *service) BulkUpsert(ctx context.Context, items []MarkUpsert, updatedBy string) (BatchResult, error) {
	var res BatchResult
	now := time.Now().UTC()

	for i, item := range items {
		year := core.CleanString(item.AcademicYear)
		if year == "" {
			year = catalog.DefaultAcademicYear
		}

		created, err := svc.upsert(ctx, item, year, updatedBy, now)
		if err != nil {
			res.Failures = append(res.Failures, BatchFailure{
				Index:     i,
				StudentID: item.StudentID,
				SubjectID: item.SubjectID,
				Error:     err.Error(),
			})
			continue
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	return res, nil
}

func (svc *service) upsert(ctx context.Context, item MarkUpsert, year, updatedBy string, now time.Time) (created bool, err error) {
	mrk, err := svc.repo.GetMarkByKey(ctx, item.StudentID, item.SubjectID, year)
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			return false, err
		}
		mrk = Mark{
			StudentID:     item.StudentID,
			SubjectID:     item.SubjectID,
			MarksObtained: item.MarksObtained,
			AcademicYear:  year,
			ExamType:      ExamTypeExternal,
			UpdatedBy:     updatedBy,
			UpdatedAt:     now,
		}
		if _, err = svc.repo.CreateMark(ctx, mrk); err != nil {
			return false, err
		}
		return true, nil
	}

	mrk.MarksObtained = item.MarksObtained
	mrk.UpdatedBy = updatedBy
	mrk.UpdatedAt = now
	if _, err = svc.repo.UpdateMark(ctx, mrk); err != nil {
		return false, err
	}
	return false, nil
}
