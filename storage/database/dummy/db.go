// Package dummydb provides an in-memory database for tests and local hacking.
package dummydb

import (
	"sync"

	"github.com/trezcool/matokeo/core/account"
	"github.com/trezcool/matokeo/core/catalog"
	"github.com/trezcool/matokeo/core/marks"
)

type (
	DB struct {
		sync.RWMutex
		admins      map[string]*account.Admin
		teachers    map[string]*account.Teacher
		students    map[string]*account.Student
		subjects    map[string]*catalog.Subject
		assignments map[string]*catalog.Assignment
		marks       map[string]*marks.Mark
	}
)

func Open() (*DB, error) {
	db := &DB{
		admins:      make(map[string]*account.Admin),
		teachers:    make(map[string]*account.Teacher),
		students:    make(map[string]*account.Student),
		subjects:    make(map[string]*catalog.Subject),
		assignments: make(map[string]*catalog.Assignment),
		marks:       make(map[string]*marks.Mark),
	}
	return db, nil
}
