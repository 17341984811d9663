package account

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/matokeo/core"
)

// UserType partitions accounts into the three portals.
type UserType string

const (
	TypeAdmin   UserType = "admin"
	TypeTeacher UserType = "teacher"
	TypeStudent UserType = "student"
)

var AllUserTypes = []UserType{TypeAdmin, TypeTeacher, TypeStudent}

func (t UserType) Valid() bool {
	for _, ut := range AllUserTypes {
		if t == ut {
			return true
		}
	}
	return false
}

// ParseUserType maps a raw query/claim value to a UserType.
func ParseUserType(s string) (UserType, error) {
	t := UserType(core.CleanString(s, true /* lower */))
	if !t.Valid() {
		return "", ErrUnknownUserType
	}
	return t, nil
}

// Identity carries the fields shared by all account kinds.
type Identity struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
}

func (i *Identity) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	i.PasswordHash = hash
	return nil
}

func (i *Identity) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(i.PasswordHash, []byte(pwd))
}

type Admin struct {
	Identity
}

type Teacher struct {
	Identity
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department"`
}

type Student struct {
	Identity
	Phone      string `json:"phone,omitempty"`
	RollNumber string `json:"roll_number"`
	Semester   int    `json:"semester"`
	Department string `json:"department"`
}

// Principal identifies an authenticated account; it is what ends up in token claims.
type Principal struct {
	ID       string
	UserType UserType
	FullName string
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Username   string `json:"username" validate:"required,min=4,alphanum_"`
	Password   string `json:"password" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Department string `json:"department" validate:"required"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nt.Username = core.CleanString(nt.Username, true /* lower */)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.FullName = core.CleanString(nt.FullName)
	nt.Phone = core.CleanString(nt.Phone)
	nt.Department = core.CleanString(nt.Department)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return svc.CheckTeacherUniqueness(nt.Username, nt.Email)
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Username   string `json:"username" validate:"required,min=4,alphanum_"`
	Password   string `json:"password" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	RollNumber string `json:"roll_number" validate:"required"`
	Semester   int    `json:"semester" validate:"required,gt=0"`
	Department string `json:"department" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, svc ServiceInterface) error {
	ns.Username = core.CleanString(ns.Username, true /* lower */)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.FullName = core.CleanString(ns.FullName)
	ns.Phone = core.CleanString(ns.Phone)
	ns.RollNumber = core.CleanString(ns.RollNumber)
	ns.Department = core.CleanString(ns.Department)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckStudentUniqueness(ns.Username, ns.Email, ns.RollNumber)
}
