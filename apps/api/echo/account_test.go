package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/matokeo/core/account"
	emailsvc "github.com/trezcool/matokeo/services/email"
)

func Test_accountApi_login(t *testing.T) {
	app := newTestApp(t)

	createAdmin(t, app, "boss", "v3ryS3cr3t!")
	createTeacher(t, app, "mwalimu", "v3ryS3cr3t!")
	createStudent(t, app, "mwanafunzi", "v3ryS3cr3t!", "R001")

	body := func(uname, pwd string) []byte {
		return marchallObj(t, LoginRequest{Username: uname, Password: pwd})
	}

	tests := []httpTest{
		{name: "missing user_type", path: "/v1/login", body: body("boss", "v3ryS3cr3t!"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "unknown user type"})},
		{name: "unknown user_type", path: "/v1/login?user_type=hacker", body: body("boss", "v3ryS3cr3t!"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "unknown user type"})},
		{name: "wrong password", path: "/v1/login?user_type=admin", body: body("boss", "lol"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid credentials"})},
		{name: "unknown username", path: "/v1/login?user_type=admin", body: body("lol", "v3ryS3cr3t!"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid credentials"})},
		{name: "wrong portal", path: "/v1/login?user_type=teacher", body: body("boss", "v3ryS3cr3t!"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid credentials"})},
		{name: "admin ok", path: "/v1/login?user_type=admin", body: body("boss", "v3ryS3cr3t!"),
			wantCode: http.StatusOK, extra: account.TypeAdmin},
		{name: "teacher ok", path: "/v1/login?user_type=teacher", body: body("mwalimu", "v3ryS3cr3t!"),
			wantCode: http.StatusOK, extra: account.TypeTeacher},
		{name: "student ok", path: "/v1/login?user_type=student", body: body("mwanafunzi", "v3ryS3cr3t!"),
			wantCode: http.StatusOK, extra: account.TypeStudent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, tt.path, tt.body)
			app.server.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var res LoginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("unmarshalling LoginResponse: %v", err)
			}
			if res.AccessToken == "" {
				t.Error("expected a non-empty access_token")
			}
			if res.TokenType != "bearer" {
				t.Errorf("token_type = %q; want %q", res.TokenType, "bearer")
			}
			if typ, _ := tt.extra.(account.UserType); res.UserType != string(typ) {
				t.Errorf("user_type = %q; want %q", res.UserType, typ)
			}
		})
	}
}

func Test_accountApi_portalGuards(t *testing.T) {
	app := newTestApp(t)

	tch := createTeacher(t, app, "mwalimu", "v3ryS3cr3t!")
	tchPrincipal := account.Principal{ID: tch.ID, UserType: account.TypeTeacher, FullName: tch.FullName}
	tchToken := getToken(t, app, tchPrincipal)
	expiredToken := getExpiredToken(t, app, tchPrincipal)

	tests := []httpTest{
		{name: "missing token", path: "/v1/admin/students",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "expired token", path: "/v1/teacher/marks", token: expiredToken,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"})},
		{name: "teacher token on admin portal", path: "/v1/admin/students", token: tchToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})},
		{name: "teacher token on student portal", path: "/v1/student/results", token: tchToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_accountApi_createStudent(t *testing.T) {
	app := newTestApp(t)
	emailsvc.ClearSentMessages()

	adm := createAdmin(t, app, "boss", "v3ryS3cr3t!")
	createStudent(t, app, "taken", "v3ryS3cr3t!", "R001")
	admToken := getToken(t, app, account.Principal{ID: adm.ID, UserType: account.TypeAdmin, FullName: adm.FullName})

	newStudent := func(uname, pwd, roll string) []byte {
		return marchallObj(t, account.NewStudent{
			Username:   uname,
			Password:   pwd,
			FullName:   "Neo Anderson",
			Email:      uname + "@test.cd",
			RollNumber: roll,
			Semester:   2,
			Department: "Science",
		})
	}

	tests := []httpTest{
		{name: "password too short", body: newStudent("neo", "lol", "R002"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password must contain at least 8 characters"})},
		{name: "username taken", body: newStudent("taken", "v3ryS3cr3t!", "R002"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "an account with this username already exists"})},
		{name: "roll number taken", body: newStudent("neo", "v3ryS3cr3t!", "R001"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"roll_number": "a student with this roll number already exists"})},
		{name: "ok", body: newStudent("neo", "v3ryS3cr3t!", "R002"), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/admin/students", admToken, tt.body)
			app.server.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var std account.Student
			if err := json.Unmarshal(rec.Body.Bytes(), &std); err != nil {
				t.Fatalf("unmarshalling Student: %v", err)
			}
			if std.ID == "" {
				t.Error("expected a non-empty student id")
			}
			if std.Username != "neo" {
				t.Errorf("username = %q; want %q", std.Username, "neo")
			}

			// a welcome email goes out
			if len(emailsvc.SentMessages) != 1 {
				t.Fatalf("SentMessages = %d; want 1", len(emailsvc.SentMessages))
			}
			if to := emailsvc.SentMessages[0].To[0].Address; to != "neo@test.cd" {
				t.Errorf("welcome email sent to %q; want %q", to, "neo@test.cd")
			}
		})
	}
}

func Test_accountApi_queryAccounts(t *testing.T) {
	app := newTestApp(t)

	adm := createAdmin(t, app, "boss", "v3ryS3cr3t!")
	tch := createTeacher(t, app, "mwalimu", "v3ryS3cr3t!")
	std1 := createStudent(t, app, "neo", "v3ryS3cr3t!", "R001")
	std2 := createStudent(t, app, "trinity", "v3ryS3cr3t!", "R002")
	admToken := getToken(t, app, account.Principal{ID: adm.ID, UserType: account.TypeAdmin, FullName: adm.FullName})

	tests := []httpTest{
		{name: "students", path: "/v1/admin/students",
			wantCode: http.StatusOK, wantData: marchallObj(t, []account.Student{std1, std2})},
		{name: "teachers", path: "/v1/admin/teachers",
			wantCode: http.StatusOK, wantData: marchallObj(t, []account.Teacher{tch})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, admToken)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
