package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/matokeo/core/account"
)

type accountRepository struct {
	db *DB
}

var _ account.Repository = (*accountRepository)(nil) // interface compliance check

func NewAccountRepository(db *DB) *accountRepository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) CreateAdmin(_ context.Context, adm account.Admin) (account.Admin, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	adm.ID = uuid.New().String()
	repo.db.admins[adm.ID] = &adm
	return adm, nil
}

func (repo *accountRepository) CreateTeacher(_ context.Context, tch account.Teacher) (account.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tch.ID = uuid.New().String()
	repo.db.teachers[tch.ID] = &tch
	return tch, nil
}

func (repo *accountRepository) CreateStudent(_ context.Context, std account.Student) (account.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	std.ID = uuid.New().String()
	repo.db.students[std.ID] = &std
	return std, nil
}

func (repo *accountRepository) GetAdminByUsername(_ context.Context, username string) (account.Admin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, adm := range repo.db.admins {
		if adm.Username == username {
			return *adm, nil
		}
	}
	return account.Admin{}, account.ErrNotFound
}

func (repo *accountRepository) GetTeacherByUsername(_ context.Context, username string) (account.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, tch := range repo.db.teachers {
		if tch.Username == username {
			return *tch, nil
		}
	}
	return account.Teacher{}, account.ErrNotFound
}

func (repo *accountRepository) GetStudentByUsername(_ context.Context, username string) (account.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, std := range repo.db.students {
		if std.Username == username {
			return *std, nil
		}
	}
	return account.Student{}, account.ErrNotFound
}

func (repo *accountRepository) GetStudentByID(_ context.Context, id string) (account.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if std, ok := repo.db.students[id]; ok {
		return *std, nil
	}
	return account.Student{}, account.ErrNotFound
}

func (repo *accountRepository) QueryTeachers(_ context.Context) ([]account.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	teachers := make([]account.Teacher, 0, len(repo.db.teachers))
	for _, tch := range repo.db.teachers {
		teachers = append(teachers, *tch)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].CreatedAt.Before(teachers[j].CreatedAt) })
	return teachers, nil
}

func (repo *accountRepository) QueryStudents(_ context.Context) ([]account.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]account.Student, 0, len(repo.db.students))
	for _, std := range repo.db.students {
		students = append(students, *std)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].CreatedAt.Before(students[j].CreatedAt) })
	return students, nil
}

func (repo *accountRepository) CountTeachers(_ context.Context) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return len(repo.db.teachers), nil
}

func (repo *accountRepository) CountStudents(_ context.Context) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return len(repo.db.students), nil
}

func (repo *accountRepository) CheckTeacherUniqueness(_ context.Context, username, email string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, tch := range repo.db.teachers {
		if tch.Username == username {
			return account.ErrUsernameExists
		}
		if tch.Email == email {
			return account.ErrEmailExists
		}
	}
	return nil
}

func (repo *accountRepository) CheckStudentUniqueness(_ context.Context, username, email, rollNumber string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, std := range repo.db.students {
		if std.Username == username {
			return account.ErrUsernameExists
		}
		if std.Email == email {
			return account.ErrEmailExists
		}
		if std.RollNumber == rollNumber {
			return account.ErrRollNumberExists
		}
	}
	return nil
}

func (repo *accountRepository) UpdateAdminPassword(_ context.Context, id string, hash []byte) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	adm, ok := repo.db.admins[id]
	if !ok {
		return account.ErrNotFound
	}
	adm.PasswordHash = hash
	return nil
}
