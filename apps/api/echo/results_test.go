package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/matokeo/core/account"
	"github.com/trezcool/matokeo/core/results"
)

func Test_resultsApi_studentResults(t *testing.T) {
	app := newTestApp(t)

	std := createStudent(t, app, "neo", "v3ryS3cr3t!", "R001")
	stdToken := getToken(t, app, account.Principal{ID: std.ID, UserType: account.TypeStudent, FullName: std.FullName})

	t.Run("no marks", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/student/results", stdToken)
		app.server.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "no results found"})}
		checkCodeAndData(t, tt, rec)
	})

	cs := createSubject(t, app, "cs101", 4, 100, 40)
	ma := createSubject(t, app, "ma102", 3, 100, 40)
	createMark(t, app, std.ID, cs.ID, 80)
	createMark(t, app, std.ID, ma.ID, 60)

	t.Run("computed result", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/student/results", stdToken)
		app.server.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var res results.StudentResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling StudentResult: %v", err)
		}
		// (80/100×10×4 + 60/100×10×3) / 7 = 7.14
		if res.CGPA != 7.14 {
			t.Errorf("cgpa = %v; want 7.14", res.CGPA)
		}
		if res.TotalCredits != 7 {
			t.Errorf("total_credits = %v; want 7", res.TotalCredits)
		}
		if !res.Passed {
			t.Error("expected an overall pass")
		}
		if len(res.Marks) != 2 {
			t.Fatalf("len(marks) = %d; want 2", len(res.Marks))
		}
		if res.Student.ID != std.ID {
			t.Errorf("student.id = %q; want %q", res.Student.ID, std.ID)
		}
	})
}

func Test_resultsApi_summary(t *testing.T) {
	app := newTestApp(t)

	adm := createAdmin(t, app, "boss", "v3ryS3cr3t!")
	admToken := getToken(t, app, account.Principal{ID: adm.ID, UserType: account.TypeAdmin, FullName: adm.FullName})

	createTeacher(t, app, "mwalimu", "v3ryS3cr3t!")
	passed := createStudent(t, app, "neo", "v3ryS3cr3t!", "R001")
	failed := createStudent(t, app, "cypher", "v3ryS3cr3t!", "R002")
	createStudent(t, app, "noMarks", "v3ryS3cr3t!", "R003")

	cs := createSubject(t, app, "cs101", 4, 100, 40)
	createSubject(t, app, "ma102", 3, 100, 40)
	createMark(t, app, passed.ID, cs.ID, 80)
	createMark(t, app, failed.ID, cs.ID, 20)

	req, rec := newAuthRequest(http.MethodGet, "/v1/admin/summary", admToken)
	app.server.ServeHTTP(rec, req)

	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, results.Summary{
			TotalStudents:  3,
			TotalTeachers:  1,
			TotalSubjects:  2,
			PassedStudents: 1,
			FailedStudents: 1,
		}),
	}
	checkCodeAndData(t, tt, rec)
}
