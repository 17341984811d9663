package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core/catalog"
)

type catalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

type subjectRow struct {
	ID           string `db:"id"`
	Code         string `db:"code"`
	Name         string `db:"name"`
	Semester     int    `db:"semester"`
	Credits      int    `db:"credits"`
	MaxMarks     int    `db:"max_marks"`
	PassingMarks int    `db:"passing_marks"`
}

func (r subjectRow) subject() catalog.Subject {
	return catalog.Subject{
		ID:           r.ID,
		Code:         r.Code,
		Name:         r.Name,
		Semester:     r.Semester,
		Credits:      r.Credits,
		MaxMarks:     r.MaxMarks,
		PassingMarks: r.PassingMarks,
	}
}

// trapNoRowsErr maps psql "no rows" err to catalog.ErrNotFound
func (repo catalogRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return catalog.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo catalogRepository) CreateSubject(ctx context.Context, sub catalog.Subject) (catalog.Subject, error) {
	sub.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO subjects (id, code, name, semester, credits, max_marks, passing_marks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.Code, sub.Name, sub.Semester, sub.Credits, sub.MaxMarks, sub.PassingMarks,
	)
	if err != nil {
		return catalog.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return sub, nil
}

func (repo catalogRepository) QuerySubjects(ctx context.Context) ([]catalog.Subject, error) {
	var rows []subjectRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM subjects ORDER BY semester, code`); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subjects := make([]catalog.Subject, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, row.subject())
	}
	return subjects, nil
}

func (repo catalogRepository) GetSubjectByID(ctx context.Context, id string) (catalog.Subject, error) {
	var row subjectRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM subjects WHERE id = $1`, id); err != nil {
		return catalog.Subject{}, repo.trapNoRowsErr(err, "getting subject by id")
	}
	return row.subject(), nil
}

func (repo catalogRepository) CountSubjects(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM subjects`); err != nil {
		return 0, errors.Wrap(err, "counting subjects")
	}
	return count, nil
}

func (repo catalogRepository) CheckSubjectCodeUniqueness(ctx context.Context, code string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM subjects WHERE code = $1)`, code)
	if err != nil {
		return errors.Wrap(err, "checking subject code uniqueness")
	}
	if exists {
		return catalog.ErrSubjectCodeExists
	}
	return nil
}

func (repo catalogRepository) CreateAssignment(ctx context.Context, asg catalog.Assignment) (catalog.Assignment, error) {
	asg.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO teacher_subjects (id, teacher_id, subject_id, academic_year) VALUES ($1, $2, $3, $4)`,
		asg.ID, asg.TeacherID, asg.SubjectID, asg.AcademicYear,
	)
	if err != nil {
		return catalog.Assignment{}, errors.Wrap(err, "inserting teacher assignment")
	}
	return asg, nil
}
