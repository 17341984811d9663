package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/matokeo/core/catalog"
)

type catalogRepository struct {
	db *DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) CreateSubject(_ context.Context, sub catalog.Subject) (catalog.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sub.ID = uuid.New().String()
	repo.db.subjects[sub.ID] = &sub
	return sub, nil
}

func (repo *catalogRepository) QuerySubjects(_ context.Context) ([]catalog.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subjects := make([]catalog.Subject, 0, len(repo.db.subjects))
	for _, sub := range repo.db.subjects {
		subjects = append(subjects, *sub)
	}
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Semester != subjects[j].Semester {
			return subjects[i].Semester < subjects[j].Semester
		}
		return subjects[i].Code < subjects[j].Code
	})
	return subjects, nil
}

func (repo *catalogRepository) GetSubjectByID(_ context.Context, id string) (catalog.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sub, ok := repo.db.subjects[id]; ok {
		return *sub, nil
	}
	return catalog.Subject{}, catalog.ErrNotFound
}

func (repo *catalogRepository) CountSubjects(_ context.Context) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return len(repo.db.subjects), nil
}

func (repo *catalogRepository) CheckSubjectCodeUniqueness(_ context.Context, code string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, sub := range repo.db.subjects {
		if sub.Code == code {
			return catalog.ErrSubjectCodeExists
		}
	}
	return nil
}

func (repo *catalogRepository) CreateAssignment(_ context.Context, asg catalog.Assignment) (catalog.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	asg.ID = uuid.New().String()
	repo.db.assignments[asg.ID] = &asg
	return asg, nil
}
