package echoapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/trezcool/matokeo/core/account"
	"github.com/trezcool/matokeo/core/catalog"
)

func Test_catalogApi_subjects(t *testing.T) {
	app := newTestApp(t)

	adm := createAdmin(t, app, "boss", "v3ryS3cr3t!")
	admToken := getToken(t, app, account.Principal{ID: adm.ID, UserType: account.TypeAdmin, FullName: adm.FullName})
	taken := createSubject(t, app, "cs101", 4, 100, 40)

	newSubject := func(code string, credits, maxMarks, passingMarks int) []byte {
		return marchallObj(t, catalog.NewSubject{
			Code:         code,
			Name:         "Subject " + code,
			Semester:     1,
			Credits:      credits,
			MaxMarks:     maxMarks,
			PassingMarks: passingMarks,
		})
	}

	tests := []httpTest{
		{name: "missing code", method: http.MethodPost, path: "/v1/admin/subjects",
			body:     marchallObj(t, catalog.NewSubject{Name: "Maths", Semester: 1}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"subject_code": "this field is required"})},
		{name: "code taken", method: http.MethodPost, path: "/v1/admin/subjects",
			body:     newSubject("cs101", 0, 0, 0),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"subject_code": "a subject with this code already exists"})},
		{name: "passing above max", method: http.MethodPost, path: "/v1/admin/subjects",
			body:     newSubject("ma102", 3, 50, 60),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"passing_marks": "passing_marks must be less than or equal to MaxMarks"})},
		{name: "defaults applied", method: http.MethodPost, path: "/v1/admin/subjects",
			body: newSubject("ma102", 0, 0, 0), wantCode: http.StatusCreated},
		{name: "list", method: http.MethodGet, path: "/v1/admin/subjects", wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, admToken, tt.body)
			app.server.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}

			switch tt.name {
			case "defaults applied":
				var sub catalog.Subject
				if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
					t.Fatalf("unmarshalling Subject: %v", err)
				}
				if sub.Credits != 3 || sub.MaxMarks != 100 || sub.PassingMarks != 40 {
					t.Errorf("defaults = (%d, %d, %d); want (3, 100, 40)", sub.Credits, sub.MaxMarks, sub.PassingMarks)
				}
			case "list":
				var subjects []catalog.Subject
				if err := json.Unmarshal(rec.Body.Bytes(), &subjects); err != nil {
					t.Fatalf("unmarshalling subjects: %v", err)
				}
				if len(subjects) != 2 {
					t.Errorf("len(subjects) = %d; want 2", len(subjects))
				}
				if subjects[0].ID != taken.ID {
					t.Errorf("subjects[0].ID = %q; want %q", subjects[0].ID, taken.ID)
				}
			}
		})
	}
}

func Test_catalogApi_assignTeacher(t *testing.T) {
	app := newTestApp(t)

	adm := createAdmin(t, app, "boss", "v3ryS3cr3t!")
	admToken := getToken(t, app, account.Principal{ID: adm.ID, UserType: account.TypeAdmin, FullName: adm.FullName})
	tch := createTeacher(t, app, "mwalimu", "v3ryS3cr3t!")
	sub := createSubject(t, app, "cs101", 4, 100, 40)

	path := func(teacherID, subjectID, year string) string {
		v := make(url.Values)
		if teacherID != "" {
			v.Add("teacher_id", teacherID)
		}
		if subjectID != "" {
			v.Add("subject_id", subjectID)
		}
		if year != "" {
			v.Add("academic_year", year)
		}
		return "/v1/admin/assign-teacher?" + v.Encode()
	}

	tests := []httpTest{
		{name: "missing params", path: path("", "", ""),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "teacher_id and subject_id are required"})},
		{name: "unknown subject", path: path(tch.ID, "lol", ""),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "subject not found"})},
		{name: "default year", path: path(tch.ID, sub.ID, ""), wantCode: http.StatusCreated, extra: catalog.DefaultAcademicYear},
		{name: "explicit year", path: path(tch.ID, sub.ID, "2025-26"), wantCode: http.StatusCreated, extra: "2025-26"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, tt.path, admToken)
			app.server.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			var asg catalog.Assignment
			if err := json.Unmarshal(rec.Body.Bytes(), &asg); err != nil {
				t.Fatalf("unmarshalling Assignment: %v", err)
			}
			if asg.TeacherID != tch.ID || asg.SubjectID != sub.ID {
				t.Errorf("assignment = (%q, %q); want (%q, %q)", asg.TeacherID, asg.SubjectID, tch.ID, sub.ID)
			}
			if wantYear := tt.extra.(string); asg.AcademicYear != wantYear {
				t.Errorf("academic_year = %q; want %q", asg.AcademicYear, wantYear)
			}
		})
	}
}
