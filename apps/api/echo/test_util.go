package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/matokeo/core"
	"github.com/trezcool/matokeo/core/account"
	"github.com/trezcool/matokeo/core/catalog"
	"github.com/trezcool/matokeo/core/marks"
	"github.com/trezcool/matokeo/core/results"
	emailsvc "github.com/trezcool/matokeo/services/email"
	dummydb "github.com/trezcool/matokeo/storage/database/dummy"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

type testApp struct {
	server      *server
	conf        *core.Config
	accountRepo account.Repository
	catalogRepo catalog.Repository
	markRepo    marks.Repository
	accountSvc  account.ServiceInterface
	catalogSvc  catalog.ServiceInterface
	marksSvc    marks.ServiceInterface
}

func newTestApp(t *testing.T) *testApp {
	conf := &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "Matokeo",
		SecretKey: "secret",
		Server: core.ServerConfig{
			JWTExpirationDelta: 10 * time.Minute,
		},
	}

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("newTestApp() failed: %v", err)
	}
	accountRepo := dummydb.NewAccountRepository(db)
	catalogRepo := dummydb.NewCatalogRepository(db)
	markRepo := dummydb.NewMarkRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	accountSvc := account.NewService(accountRepo, mailSvc, conf)
	catalogSvc := catalog.NewService(catalogRepo)
	marksSvc := marks.NewService(markRepo)
	resultsSvc := results.NewService(accountRepo, catalogRepo, markRepo)

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	account.InitValidators(validate, translator)

	s := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         testLogger{},
		AccountSvc:     accountSvc,
		CatalogSvc:     catalogSvc,
		MarksSvc:       marksSvc,
		ResultsSvc:     resultsSvc,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	}).(*server)

	return &testApp{
		server:      s,
		conf:        conf,
		accountRepo: accountRepo,
		catalogRepo: catalogRepo,
		markRepo:    markRepo,
		accountSvc:  accountSvc,
		catalogSvc:  catalogSvc,
		marksSvc:    marksSvc,
	}
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, app *testApp, p account.Principal) string {
	claims := app.server.auth.getClaims(p)
	token, err := app.server.auth.generateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func getExpiredToken(t *testing.T, app *testApp, p account.Principal) string {
	claims := app.server.auth.getClaims(p)
	claims.IssuedAt = time.Now().Add(-1 * time.Hour).Unix()
	claims.ExpiresAt = time.Now().Add(-30 * time.Minute).Unix()
	token, err := app.server.auth.generateToken(claims)
	if err != nil {
		t.Fatalf("getExpiredToken() failed: %v", err)
	}
	return token
}

func createAdmin(t *testing.T, app *testApp, uname, pwd string) account.Admin {
	adm := account.Admin{
		Identity: account.Identity{
			Username:  uname,
			FullName:  uname,
			Email:     uname + "@test.cd",
			CreatedAt: time.Now().UTC(),
		},
	}
	if err := adm.SetPassword(pwd); err != nil {
		t.Fatalf("createAdmin() failed: %v", err)
	}
	adm, err := app.accountRepo.CreateAdmin(context.TODO(), adm)
	if err != nil {
		t.Fatalf("createAdmin() failed: %v", err)
	}
	return adm
}

func createTeacher(t *testing.T, app *testApp, uname, pwd string) account.Teacher {
	tch := account.Teacher{
		Identity: account.Identity{
			Username:  uname,
			FullName:  uname,
			Email:     uname + "@test.cd",
			CreatedAt: time.Now().UTC(),
		},
		Department: "Science",
	}
	if err := tch.SetPassword(pwd); err != nil {
		t.Fatalf("createTeacher() failed: %v", err)
	}
	tch, err := app.accountRepo.CreateTeacher(context.TODO(), tch)
	if err != nil {
		t.Fatalf("createTeacher() failed: %v", err)
	}
	return tch
}

func createStudent(t *testing.T, app *testApp, uname, pwd, rollNumber string) account.Student {
	std := account.Student{
		Identity: account.Identity{
			Username:  uname,
			FullName:  uname,
			Email:     uname + "@test.cd",
			CreatedAt: time.Now().UTC(),
		},
		RollNumber: rollNumber,
		Semester:   1,
		Department: "Science",
	}
	if err := std.SetPassword(pwd); err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	std, err := app.accountRepo.CreateStudent(context.TODO(), std)
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

func createSubject(t *testing.T, app *testApp, code string, credits, maxMarks, passingMarks int) catalog.Subject {
	sub, err := app.catalogRepo.CreateSubject(context.TODO(), catalog.Subject{
		Code:         code,
		Name:         "Subject " + code,
		Semester:     1,
		Credits:      credits,
		MaxMarks:     maxMarks,
		PassingMarks: passingMarks,
	})
	if err != nil {
		t.Fatalf("createSubject() failed: %v", err)
	}
	return sub
}

func createAssignment(t *testing.T, app *testApp, teacherID, subjectID string) catalog.Assignment {
	asg, err := app.catalogRepo.CreateAssignment(context.TODO(), catalog.Assignment{
		TeacherID:    teacherID,
		SubjectID:    subjectID,
		AcademicYear: catalog.DefaultAcademicYear,
	})
	if err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return asg
}

func createMark(t *testing.T, app *testApp, studentID, subjectID string, obtained float64) marks.Mark {
	mrk, err := app.markRepo.CreateMark(context.TODO(), marks.Mark{
		StudentID:     studentID,
		SubjectID:     subjectID,
		MarksObtained: obtained,
		AcademicYear:  catalog.DefaultAcademicYear,
		ExamType:      marks.ExamTypeExternal,
		UpdatedBy:     "test",
		UpdatedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createMark() failed: %v", err)
	}
	return mrk
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
