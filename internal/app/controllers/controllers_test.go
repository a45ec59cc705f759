package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/repositories"
	"github.com/yigit/uniadmin/internal/app/repositories/memory"
	"github.com/yigit/uniadmin/internal/bootstrap"
	"github.com/yigit/uniadmin/internal/config"
	"github.com/yigit/uniadmin/internal/middleware"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/seed"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var tokenPattern = regexp.MustCompile(`name="` + middleware.CSRFFormField + `" value="([^"]+)"`)

// client keeps the session cookie between requests like a browser would.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, store repositories.Store) *client {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Session.Name = "uniadmin_test"
	cfg.Session.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Session.MaxAge = 3600

	deps := bootstrap.BuildDependencies(store, zerolog.Nop())
	router, err := bootstrap.SetupRouter(cfg, deps, zerolog.Nop())
	require.NoError(t, err)
	return &client{t: t, handler: router, cookies: map[string]*http.Cookie{}}
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, seed.CreateDefaultData(context.Background(), store, zerolog.Nop()))
	return store
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post submits form together with the anti-forgery token of the page at formPath.
func (c *client) post(formPath, action string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	page := c.get(formPath)
	require.Equal(c.t, http.StatusOK, page.Code, formPath)
	match := tokenPattern.FindStringSubmatch(page.Body.String())
	require.Len(c.t, match, 2, "no anti-forgery token on %s", formPath)

	if form == nil {
		form = url.Values{}
	}
	form.Set(middleware.CSRFFormField, match[1])
	req := httptest.NewRequest(http.MethodPost, action, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func TestPages_render(t *testing.T) {
	c := newClient(t, seededStore(t))

	paths := []string{
		"/", "/Home", "/Home/Index", "/Home/About",
		"/Students", "/Students/Index", "/Students?sortOrder=date_desc&searchString=a&page=2",
		"/Students/Details/1", "/Students/Create", "/Students/Edit/1", "/Students/Delete/1",
		"/Courses", "/Courses/Index", "/Courses/Details/1050", "/Courses/Create", "/Courses/Edit/1050", "/Courses/Delete/1050",
		"/Departments", "/Departments/Details/1", "/Departments/Create", "/Departments/Edit/1", "/Departments/Delete/1",
		"/Enrollments", "/Enrollments/Details/1", "/Enrollments/Create", "/Enrollments/Edit/1", "/Enrollments/Delete/1",
		"/Instructors", "/Instructors/Index", "/Instructors/Index/3", "/Instructors/Index/3?courseID=1050",
		"/Instructors/Details/1", "/Instructors/Create", "/Instructors/Edit/3", "/Instructors/Delete/1",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := c.get(path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "</html>")
		})
	}
}

func TestPages_content(t *testing.T) {
	c := newClient(t, seededStore(t))

	body := c.get("/Students").Body.String()
	assert.Contains(t, body, "Alexander")
	assert.NotContains(t, body, "Barzdukas", "second page")
	assert.Contains(t, body, "Page 1 of 3")

	w := c.get("/Students?page=4611686018427387905&size=3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Olivetto")
	assert.Contains(t, w.Body.String(), "Page 3 of 3")

	body = c.get("/Students/Details/1").Body.String()
	assert.Contains(t, body, "Chemistry")
	assert.Contains(t, body, "01-09-2010")

	body = c.get("/Home/About").Body.String()
	assert.Contains(t, body, "01-09-2012")

	body = c.get("/Departments").Body.String()
	assert.Contains(t, body, "$350,000.00")
	assert.Contains(t, body, "Abercrombie")

	body = c.get("/Instructors/Index/3?courseID=1050").Body.String()
	assert.Contains(t, body, "Students Enrolled in Selected Course")
	assert.Contains(t, body, "Alexander, Carson")
	assert.Contains(t, body, "No grade")

	body = c.get("/Students/Delete/1?saveChangesError=true").Body.String()
	assert.Contains(t, body, "Delete failed. Try again")
}

func TestPages_errors(t *testing.T) {
	c := newClient(t, seededStore(t))

	tests := []struct {
		path   string
		status int
	}{
		{"/Students/Details/999", http.StatusNotFound},
		{"/Students/Details/abc", http.StatusNotFound},
		{"/Students/Edit/0", http.StatusNotFound},
		{"/Courses/Details/9999", http.StatusNotFound},
		{"/Departments/Delete/42", http.StatusNotFound},
		{"/Enrollments/Edit/500", http.StatusNotFound},
		{"/Instructors/Index/999", http.StatusNotFound},
		{"/Instructors/Index/3?courseID=4022", http.StatusNotFound},
		{"/Instructors/Index/3?courseID=abc", http.StatusNotFound},
		{"/Instructors?courseID=1050", http.StatusNotFound},
		{"/Students?page=abc", http.StatusBadRequest},
		{"/no/such/page", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := c.get(tt.path)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "Error code:")
		})
	}
}

func TestHealth(t *testing.T) {
	c := newClient(t, memory.NewStore())

	w := c.get("/health")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"status": "ok", "database": "up"}, body)
}

func TestStudents_createEditDelete(t *testing.T) {
	store := seededStore(t)
	c := newClient(t, store)

	w := c.post("/Students/Create", "/Students/Create", url.Values{
		"LastName":       {"Smith"},
		"FirstMidName":   {"John"},
		"EnrollmentDate": {"2024-09-01"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/Students", w.Header().Get("Location"))
	assert.Contains(t, c.get("/Students?searchString=Smith").Body.String(), "Student Smith, John was created.")

	count, err := store.Students().Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(9), count)

	w = c.post("/Students/Edit/9", "/Students/Edit/9", url.Values{
		"LastName":       {"Smythe"},
		"FirstMidName":   {"John"},
		"EnrollmentDate": {"02-09-2024"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	student, err := store.Students().GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Smythe", student.LastName)
	assert.Equal(t, "02-09-2024", models.FormatDate(student.EnrollmentDate))

	w = c.post("/Students/Delete/9", "/Students/Delete/9", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, c.get("/Students").Body.String(), "Student deleted.")
	assert.Equal(t, http.StatusNotFound, c.get("/Students/Details/9").Code)
}

func TestStudents_invalidFormStaysOpen(t *testing.T) {
	c := newClient(t, seededStore(t))

	w := c.post("/Students/Create", "/Students/Create", url.Values{
		"LastName":       {"smith"},
		"FirstMidName":   {"John"},
		"EnrollmentDate": {"someday"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "LastName must start with an uppercase letter and contain only letters")
	assert.Contains(t, body, "EnrollmentDate must be a date in yyyy-MM-dd or dd-MM-yyyy format")
	assert.Contains(t, body, `value="smith"`)
}

func TestPost_requiresAntiForgeryToken(t *testing.T) {
	store := seededStore(t)
	c := newClient(t, store)

	form := url.Values{"LastName": {"Smith"}, "FirstMidName": {"John"}, "EnrollmentDate": {"2024-09-01"}}
	req := httptest.NewRequest(http.MethodPost, "/Students/Create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := c.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	count, err := store.Students().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), count)
}

func TestInstructors_editAssignments(t *testing.T) {
	store := seededStore(t)
	c := newClient(t, store)
	ctx := context.Background()

	// Harui teaches 1050 and 3141.
	w := c.post("/Instructors/Edit/3", "/Instructors/Edit/3", url.Values{
		"LastName":        {"Harui"},
		"FirstMidName":    {"Roger"},
		"HireDate":        {"1998-07-01"},
		"OfficeLocation":  {""},
		"selectedCourses": {"3141", "4022"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	assignments, err := store.CourseAssignments().ListByInstructor(ctx, 3)
	require.NoError(t, err)
	var ids []int64
	for _, a := range assignments {
		ids = append(ids, a.CourseID)
	}
	assert.Equal(t, []int64{3141, 4022}, ids)

	inst, err := store.Instructors().GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, inst.OfficeAssignment)

	body := c.get("/Instructors/Edit/3").Body.String()
	assert.Regexp(t, `value="4022"\s+checked`, body)
	assert.NotRegexp(t, `value="1050"\s+checked`, body)
}

func TestInstructors_createAndDeleteAdministrator(t *testing.T) {
	store := seededStore(t)
	c := newClient(t, store)
	ctx := context.Background()

	w := c.post("/Instructors/Create", "/Instructors/Create", url.Values{
		"LastName":        {"Nguyen"},
		"FirstMidName":    {"Ann"},
		"HireDate":        {"2020-01-15"},
		"OfficeLocation":  {"Gowan 12"},
		"selectedCourses": {"2042"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	// Abercrombie administers English.
	w = c.post("/Instructors/Delete/1", "/Instructors/Delete/1", nil)
	require.Equal(t, http.StatusFound, w.Code)

	dept, err := store.Departments().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, dept.InstructorID)

	body := c.get("/Instructors").Body.String()
	assert.Contains(t, body, "Nguyen")
	assert.Contains(t, body, "Gowan 12")
	assert.NotContains(t, body, "Abercrombie")
}

func TestCourses_duplicateNumber(t *testing.T) {
	c := newClient(t, seededStore(t))

	w := c.post("/Courses/Create", "/Courses/Create", url.Values{
		"CourseID":     {"1050"},
		"Title":        {"Organic Chemistry"},
		"Credits":      {"4"},
		"DepartmentID": {"3"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A course with this number already exists")
}

// failingStudents rejects every write and can pretend the database is down.
type failingStudents struct {
	repositories.StudentRepository
	err error
}

func (f failingStudents) Update(context.Context, *models.Student) error { return f.err }
func (f failingStudents) Delete(context.Context, int64) error           { return f.err }

type failingStore struct {
	*memory.Store
	err error
}

func (f failingStore) Students() repositories.StudentRepository {
	return failingStudents{StudentRepository: f.Store.Students(), err: f.err}
}

func TestStudents_storeFailures(t *testing.T) {
	t.Run("conflict on edit keeps the form open", func(t *testing.T) {
		c := newClient(t, failingStore{Store: seededStore(t), err: apperrors.NewStorageConflictError("rejected", nil)})

		w := c.post("/Students/Edit/1", "/Students/Edit/1", url.Values{
			"LastName":       {"Alexander"},
			"FirstMidName":   {"Carson"},
			"EnrollmentDate": {"2010-09-01"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Unable to save changes. Try again")
	})

	t.Run("conflict on delete returns to the confirmation", func(t *testing.T) {
		c := newClient(t, failingStore{Store: seededStore(t), err: apperrors.NewStorageConflictError("rejected", nil)})

		w := c.post("/Students/Delete/1", "/Students/Delete/1", nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/Students/Delete/1?saveChangesError=true", w.Header().Get("Location"))
	})

	t.Run("unavailable store", func(t *testing.T) {
		c := newClient(t, failingStore{Store: seededStore(t), err: apperrors.NewStorageUnavailableError("down", nil)})

		w := c.post("/Students/Edit/1", "/Students/Edit/1", url.Values{
			"LastName":       {"Alexander"},
			"FirstMidName":   {"Carson"},
			"EnrollmentDate": {"2010-09-01"},
		})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
