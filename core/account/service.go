package account

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/matokeo/core"
)

var (
	// errors
	ErrNotFound             = errors.New("account not found")
	ErrUsernameExists       = errors.New("an account with this username already exists")
	ErrEmailExists          = errors.New("an account with this email already exists")
	ErrRollNumberExists     = errors.New("a student with this roll number already exists")
	ErrUnknownUserType      = errors.New("unknown user type")
	ErrAuthenticationFailed = errors.New("invalid credentials")
)

type (
	Repository interface {
		CreateAdmin(ctx context.Context, adm Admin) (Admin, error)
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		CreateStudent(ctx context.Context, std Student) (Student, error)
		GetAdminByUsername(ctx context.Context, username string) (Admin, error)
		GetTeacherByUsername(ctx context.Context, username string) (Teacher, error)
		GetStudentByUsername(ctx context.Context, username string) (Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		QueryTeachers(ctx context.Context) ([]Teacher, error)
		QueryStudents(ctx context.Context) ([]Student, error)
		CountTeachers(ctx context.Context) (int, error)
		CountStudents(ctx context.Context) (int, error)
		// CheckTeacherUniqueness returns ErrUsernameExists or ErrEmailExists on conflict.
		CheckTeacherUniqueness(ctx context.Context, username, email string) error
		// CheckStudentUniqueness additionally returns ErrRollNumberExists on a roll number conflict.
		CheckStudentUniqueness(ctx context.Context, username, email, rollNumber string) error
		UpdateAdminPassword(ctx context.Context, id string, hash []byte) error
	}

	ServiceInterface interface {
		CheckTeacherUniqueness(username, email string) error
		CheckStudentUniqueness(username, email, rollNumber string) error
		CreateTeacher(ctx context.Context, nt NewTeacher) (Teacher, error)
		CreateStudent(ctx context.Context, ns NewStudent) (Student, error)
		QueryTeachers(ctx context.Context) ([]Teacher, error)
		QueryStudents(ctx context.Context) ([]Student, error)
		GetStudent(ctx context.Context, id string) (Student, error)
		// Authenticate verifies a username/password pair against the accounts of
		// the claimed user type. All failure modes collapse to ErrAuthenticationFailed.
		Authenticate(ctx context.Context, typ UserType, username, password string) (Principal, error)
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *service) checkUniqueness(err error) error {
	var field string
	switch errors.Cause(err) {
	case nil:
		return nil
	case ErrUsernameExists:
		field = "username"
	case ErrEmailExists:
		field = "email"
	case ErrRollNumberExists:
		field = "roll_number"
	default:
		return err
	}
	return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
}

func (svc *service) CheckTeacherUniqueness(uname, email string) error {
	return svc.checkUniqueness(svc.repo.CheckTeacherUniqueness(context.Background(), uname, email))
}

func (svc *service) CheckStudentUniqueness(uname, email, rollNumber string) error {
	return svc.checkUniqueness(svc.repo.CheckStudentUniqueness(context.Background(), uname, email, rollNumber))
}

func (svc *service) CreateTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	tch := Teacher{
		Identity: Identity{
			Username:  nt.Username,
			FullName:  nt.FullName,
			Email:     nt.Email,
			CreatedAt: time.Now().UTC(),
		},
		Phone:      nt.Phone,
		Department: nt.Department,
	}
	if err := tch.SetPassword(nt.Password); err != nil {
		return Teacher{}, errors.Wrap(err, "setting password")
	}
	tch, err := svc.repo.CreateTeacher(ctx, tch)
	if err != nil {
		return Teacher{}, err
	}
	svc.sendWelcomeEmail(tch.Identity)
	return tch, nil
}

func (svc *service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	std := Student{
		Identity: Identity{
			Username:  ns.Username,
			FullName:  ns.FullName,
			Email:     ns.Email,
			CreatedAt: time.Now().UTC(),
		},
		Phone:      ns.Phone,
		RollNumber: ns.RollNumber,
		Semester:   ns.Semester,
		Department: ns.Department,
	}
	if err := std.SetPassword(ns.Password); err != nil {
		return Student{}, errors.Wrap(err, "setting password")
	}
	std, err := svc.repo.CreateStudent(ctx, std)
	if err != nil {
		return Student{}, err
	}
	svc.sendWelcomeEmail(std.Identity)
	return std, nil
}

func (svc *service) QueryTeachers(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryTeachers(ctx)
}

func (svc *service) QueryStudents(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryStudents(ctx)
}

func (svc *service) GetStudent(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *service) Authenticate(ctx context.Context, typ UserType, uname, pwd string) (Principal, error) {
	uname = core.CleanString(uname, true /* lower */)

	var ident Identity
	var err error
	switch typ {
	case TypeAdmin:
		var adm Admin
		if adm, err = svc.repo.GetAdminByUsername(ctx, uname); err == nil {
			ident = adm.Identity
		}
	case TypeTeacher:
		var tch Teacher
		if tch, err = svc.repo.GetTeacherByUsername(ctx, uname); err == nil {
			ident = tch.Identity
		}
	case TypeStudent:
		var std Student
		if std, err = svc.repo.GetStudentByUsername(ctx, uname); err == nil {
			ident = std.Identity
		}
	default:
		return Principal{}, ErrAuthenticationFailed
	}

	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Principal{}, ErrAuthenticationFailed
		}
		return Principal{}, errors.Wrap(err, "finding account by username")
	}
	if err = ident.CheckPassword(pwd); err != nil {
		return Principal{}, ErrAuthenticationFailed
	}

	return Principal{ID: ident.ID, UserType: typ, FullName: ident.FullName}, nil
}

func (svc *service) sendWelcomeEmail(ident Identity) {
	if ident.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: ident.FullName, Address: ident.Email}},
		Subject: "Your account is ready",
		Body: fmt.Sprintf(
			"Hi %s,\n\nAn account has been created for you on %s.\nUsername: %s\n\nPlease log in and keep your credentials safe.\n",
			ident.FullName, svc.conf.AppName, ident.Username,
		),
	})
}
