package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core/marks"
)

type markRepository struct {
	db *sqlx.DB
}

var _ marks.Repository = (*markRepository)(nil) // interface compliance check

func NewMarkRepository(db *sqlx.DB) *markRepository {
	return &markRepository{db: db}
}

type markRow struct {
	ID            string    `db:"id"`
	StudentID     string    `db:"student_id"`
	SubjectID     string    `db:"subject_id"`
	MarksObtained float64   `db:"marks_obtained"`
	AcademicYear  string    `db:"academic_year"`
	ExamType      string    `db:"exam_type"`
	UpdatedBy     string    `db:"updated_by"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r markRow) mark() marks.Mark {
	return marks.Mark{
		ID:            r.ID,
		StudentID:     r.StudentID,
		SubjectID:     r.SubjectID,
		MarksObtained: r.MarksObtained,
		AcademicYear:  r.AcademicYear,
		ExamType:      r.ExamType,
		UpdatedBy:     r.UpdatedBy,
		UpdatedAt:     r.UpdatedAt,
	}
}

// trapNoRowsErr maps psql "no rows" err to marks.ErrNotFound
func (repo markRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return marks.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo markRepository) GetMarkByKey(ctx context.Context, studentID, subjectID, year string) (marks.Mark, error) {
	var row markRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM marks WHERE student_id = $1 AND subject_id = $2 AND academic_year = $3
		 ORDER BY exam_type LIMIT 1`,
		studentID, subjectID, year,
	)
	if err != nil {
		return marks.Mark{}, repo.trapNoRowsErr(err, "getting mark")
	}
	return row.mark(), nil
}

func (repo markRepository) CreateMark(ctx context.Context, mrk marks.Mark) (marks.Mark, error) {
	mrk.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO marks (id, student_id, subject_id, marks_obtained, academic_year, exam_type, updated_by, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		mrk.ID, mrk.StudentID, mrk.SubjectID, mrk.MarksObtained, mrk.AcademicYear, mrk.ExamType, mrk.UpdatedBy, mrk.UpdatedAt.UTC(),
	)
	if err != nil {
		return marks.Mark{}, errors.Wrap(err, "inserting mark")
	}
	return mrk, nil
}

func (repo markRepository) UpdateMark(ctx context.Context, mrk marks.Mark) (marks.Mark, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE marks SET marks_obtained = $1, updated_by = $2, updated_at = $3 WHERE id = $4`,
		mrk.MarksObtained, mrk.UpdatedBy, mrk.UpdatedAt.UTC(), mrk.ID,
	)
	if err != nil {
		return marks.Mark{}, errors.Wrap(err, "updating mark")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return marks.Mark{}, marks.ErrNotFound
	}
	return mrk, nil
}

// QueryTeacherMarks lists marks of the subjects assigned to a teacher,
// regardless of academic year.
func (repo markRepository) QueryTeacherMarks(ctx context.Context, teacherID string) ([]marks.TeacherMarkRow, error) {
	var rows []marks.TeacherMarkRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT DISTINCT m.id AS mark_id, m.student_id, m.subject_id, m.marks_obtained, m.academic_year, m.exam_type,
		        st.full_name AS student_name, su.name AS subject_name, su.code AS subject_code,
		        su.max_marks, su.passing_marks
		 FROM marks m
		 JOIN teacher_subjects ts ON ts.subject_id = m.subject_id
		 JOIN students st ON st.id = m.student_id
		 JOIN subjects su ON su.id = m.subject_id
		 WHERE ts.teacher_id = $1
		 ORDER BY su.code, st.full_name`,
		teacherID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying teacher marks")
	}
	return rows, nil
}

func (repo markRepository) QueryStudentMarks(ctx context.Context, studentID string) ([]marks.StudentMark, error) {
	var rows []marks.StudentMark
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT su.code AS subject_code, su.name AS subject_name, m.marks_obtained, m.exam_type,
		        su.credits, su.max_marks, su.passing_marks
		 FROM marks m
		 JOIN subjects su ON su.id = m.subject_id
		 WHERE m.student_id = $1
		 ORDER BY su.code`,
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying student marks")
	}
	return rows, nil
}
