package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/matokeo/core/account"
)

type accountRepository struct {
	db *sqlx.DB
}

var _ account.Repository = (*accountRepository)(nil) // interface compliance check

func NewAccountRepository(db *sqlx.DB) *accountRepository {
	return &accountRepository{db: db}
}

type identityRow struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	FullName     string    `db:"full_name"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r identityRow) identity() account.Identity {
	return account.Identity{
		ID:           r.ID,
		Username:     r.Username,
		FullName:     r.FullName,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

type teacherRow struct {
	identityRow
	Phone      null.String `db:"phone"`
	Department string      `db:"department"`
}

func (r teacherRow) teacher() account.Teacher {
	return account.Teacher{
		Identity:   r.identity(),
		Phone:      r.Phone.String,
		Department: r.Department,
	}
}

type studentRow struct {
	identityRow
	Phone      null.String `db:"phone"`
	RollNumber string      `db:"roll_number"`
	Semester   int         `db:"semester"`
	Department string      `db:"department"`
}

func (r studentRow) student() account.Student {
	return account.Student{
		Identity:   r.identity(),
		Phone:      r.Phone.String,
		RollNumber: r.RollNumber,
		Semester:   r.Semester,
		Department: r.Department,
	}
}

// trapNoRowsErr maps psql "no rows" err to account.ErrNotFound
func (repo accountRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return account.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo accountRepository) CreateAdmin(ctx context.Context, adm account.Admin) (account.Admin, error) {
	adm.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO admins (id, username, full_name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		adm.ID, adm.Username, adm.FullName, adm.Email, adm.PasswordHash, adm.CreatedAt.UTC(),
	)
	if err != nil {
		return account.Admin{}, errors.Wrap(err, "inserting admin")
	}
	return adm, nil
}

func (repo accountRepository) CreateTeacher(ctx context.Context, tch account.Teacher) (account.Teacher, error) {
	tch.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO teachers (id, username, full_name, email, password_hash, phone, department, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tch.ID, tch.Username, tch.FullName, tch.Email, tch.PasswordHash,
		null.NewString(tch.Phone, tch.Phone != ""), tch.Department, tch.CreatedAt.UTC(),
	)
	if err != nil {
		return account.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	return tch, nil
}

func (repo accountRepository) CreateStudent(ctx context.Context, std account.Student) (account.Student, error) {
	std.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO students (id, username, full_name, email, password_hash, phone, roll_number, semester, department, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		std.ID, std.Username, std.FullName, std.Email, std.PasswordHash,
		null.NewString(std.Phone, std.Phone != ""), std.RollNumber, std.Semester, std.Department, std.CreatedAt.UTC(),
	)
	if err != nil {
		return account.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo accountRepository) GetAdminByUsername(ctx context.Context, username string) (account.Admin, error) {
	var row identityRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM admins WHERE username = $1`, username)
	if err != nil {
		return account.Admin{}, repo.trapNoRowsErr(err, "getting admin by username")
	}
	return account.Admin{Identity: row.identity()}, nil
}

func (repo accountRepository) GetTeacherByUsername(ctx context.Context, username string) (account.Teacher, error) {
	var row teacherRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM teachers WHERE username = $1`, username)
	if err != nil {
		return account.Teacher{}, repo.trapNoRowsErr(err, "getting teacher by username")
	}
	return row.teacher(), nil
}

func (repo accountRepository) GetStudentByUsername(ctx context.Context, username string) (account.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM students WHERE username = $1`, username)
	if err != nil {
		return account.Student{}, repo.trapNoRowsErr(err, "getting student by username")
	}
	return row.student(), nil
}

func (repo accountRepository) GetStudentByID(ctx context.Context, id string) (account.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM students WHERE id = $1`, id)
	if err != nil {
		return account.Student{}, repo.trapNoRowsErr(err, "getting student by id")
	}
	return row.student(), nil
}

func (repo accountRepository) QueryTeachers(ctx context.Context) ([]account.Teacher, error) {
	var rows []teacherRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM teachers ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	teachers := make([]account.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, row.teacher())
	}
	return teachers, nil
}

func (repo accountRepository) QueryStudents(ctx context.Context) ([]account.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM students ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]account.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.student())
	}
	return students, nil
}

func (repo accountRepository) CountTeachers(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM teachers`); err != nil {
		return 0, errors.Wrap(err, "counting teachers")
	}
	return count, nil
}

func (repo accountRepository) CountStudents(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return count, nil
}

func (repo accountRepository) CheckTeacherUniqueness(ctx context.Context, username, email string) error {
	var taken struct {
		Username bool `db:"username_taken"`
		Email    bool `db:"email_taken"`
	}
	err := repo.db.GetContext(ctx, &taken,
		`SELECT EXISTS (SELECT 1 FROM teachers WHERE username = $1) AS username_taken,
		        EXISTS (SELECT 1 FROM teachers WHERE email = $2) AS email_taken`,
		username, email,
	)
	if err != nil {
		return errors.Wrap(err, "checking teacher uniqueness")
	}
	if taken.Username {
		return account.ErrUsernameExists
	}
	if taken.Email {
		return account.ErrEmailExists
	}
	return nil
}

func (repo accountRepository) CheckStudentUniqueness(ctx context.Context, username, email, rollNumber string) error {
	var taken struct {
		Username   bool `db:"username_taken"`
		Email      bool `db:"email_taken"`
		RollNumber bool `db:"roll_number_taken"`
	}
	err := repo.db.GetContext(ctx, &taken,
		`SELECT EXISTS (SELECT 1 FROM students WHERE username = $1) AS username_taken,
		        EXISTS (SELECT 1 FROM students WHERE email = $2) AS email_taken,
		        EXISTS (SELECT 1 FROM students WHERE roll_number = $3) AS roll_number_taken`,
		username, email, rollNumber,
	)
	if err != nil {
		return errors.Wrap(err, "checking student uniqueness")
	}
	if taken.Username {
		return account.ErrUsernameExists
	}
	if taken.Email {
		return account.ErrEmailExists
	}
	if taken.RollNumber {
		return account.ErrRollNumberExists
	}
	return nil
}

func (repo accountRepository) UpdateAdminPassword(ctx context.Context, id string, hash []byte) error {
	res, err := repo.db.ExecContext(ctx, `UPDATE admins SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return errors.Wrap(err, "updating admin password")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}
	return nil
}
