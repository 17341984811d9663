package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core/marks"
)

type markRepository struct {
	db *DB
}

var _ marks.Repository = (*markRepository)(nil) // interface compliance check

func NewMarkRepository(db *DB) *markRepository {
	return &markRepository{db: db}
}

func (repo *markRepository) GetMarkByKey(_ context.Context, studentID, subjectID, year string) (marks.Mark, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, mrk := range repo.db.marks {
		if mrk.StudentID == studentID && mrk.SubjectID == subjectID && mrk.AcademicYear == year {
			return *mrk, nil
		}
	}
	return marks.Mark{}, marks.ErrNotFound
}

func (repo *markRepository) CreateMark(_ context.Context, mrk marks.Mark) (marks.Mark, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// mimic the FK constraints
	if _, ok := repo.db.students[mrk.StudentID]; !ok {
		return marks.Mark{}, errors.Errorf("unknown student %q", mrk.StudentID)
	}
	if _, ok := repo.db.subjects[mrk.SubjectID]; !ok {
		return marks.Mark{}, errors.Errorf("unknown subject %q", mrk.SubjectID)
	}

	mrk.ID = uuid.New().String()
	repo.db.marks[mrk.ID] = &mrk
	return mrk, nil
}

func (repo *markRepository) UpdateMark(_ context.Context, mrk marks.Mark) (marks.Mark, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	existing, ok := repo.db.marks[mrk.ID]
	if !ok {
		return marks.Mark{}, marks.ErrNotFound
	}
	existing.MarksObtained = mrk.MarksObtained
	existing.UpdatedBy = mrk.UpdatedBy
	existing.UpdatedAt = mrk.UpdatedAt
	return *existing, nil
}

func (repo *markRepository) QueryTeacherMarks(_ context.Context, teacherID string) ([]marks.TeacherMarkRow, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subjectIDs := make(map[string]bool)
	for _, asg := range repo.db.assignments {
		if asg.TeacherID == teacherID {
			subjectIDs[asg.SubjectID] = true
		}
	}

	var rows []marks.TeacherMarkRow
	for _, mrk := range repo.db.marks {
		if !subjectIDs[mrk.SubjectID] {
			continue
		}
		std, ok := repo.db.students[mrk.StudentID]
		if !ok {
			continue
		}
		sub, ok := repo.db.subjects[mrk.SubjectID]
		if !ok {
			continue
		}
		rows = append(rows, marks.TeacherMarkRow{
			MarkID:        mrk.ID,
			StudentID:     mrk.StudentID,
			SubjectID:     mrk.SubjectID,
			MarksObtained: mrk.MarksObtained,
			AcademicYear:  mrk.AcademicYear,
			ExamType:      mrk.ExamType,
			StudentName:   std.FullName,
			SubjectName:   sub.Name,
			SubjectCode:   sub.Code,
			MaxMarks:      sub.MaxMarks,
			PassingMarks:  sub.PassingMarks,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SubjectCode != rows[j].SubjectCode {
			return rows[i].SubjectCode < rows[j].SubjectCode
		}
		return rows[i].StudentName < rows[j].StudentName
	})
	return rows, nil
}

func (repo *markRepository) QueryStudentMarks(_ context.Context, studentID string) ([]marks.StudentMark, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var rows []marks.StudentMark
	for _, mrk := range repo.db.marks {
		if mrk.StudentID != studentID {
			continue
		}
		sub, ok := repo.db.subjects[mrk.SubjectID]
		if !ok {
			continue
		}
		rows = append(rows, marks.StudentMark{
			SubjectCode:   sub.Code,
			SubjectName:   sub.Name,
			MarksObtained: mrk.MarksObtained,
			ExamType:      mrk.ExamType,
			Credits:       sub.Credits,
			MaxMarks:      sub.MaxMarks,
			PassingMarks:  sub.PassingMarks,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SubjectCode < rows[j].SubjectCode })
	return rows, nil
}
