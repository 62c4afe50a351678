package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/services"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

func TestHealthzAndFallbackRoutes(t *testing.T) {
	h := newHarness(t)

	rec := h.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.serve(httptest.NewRequest(http.MethodGet, "/nope", nil), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.False(t, decode[envelope](t, rec).Success)

	rec = h.serve(httptest.NewRequest(http.MethodPost, "/healthz", nil), "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, decode[envelope](t, rec).Success)
}

func TestHandlerPanicAnswersJSON(t *testing.T) {
	h := newHarness(t)
	mux, ok := h.handler.(*chi.Mux)
	require.True(t, ok)
	mux.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := h.serve(httptest.NewRequest(http.MethodGet, "/boom", nil), "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode[envelope](t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error", body.Message)

	rec = h.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSAllowsCredentialedOrigin(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodOptions, apiPrefix+"/jobs/get", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := h.serve(req, "")

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRegisterAndLogin(t *testing.T) {
	h := newHarness(t)
	h.signup("ana@example.com", types.RoleStudent)

	t.Run("duplicate email", func(t *testing.T) {
		rec := h.form(http.MethodPost, "/users/register", "", url.Values{
			"fullname": {"Ana"}, "email": {"ana@example.com"}, "phoneNumber": {"1"},
			"password": {"x"}, "role": {"student"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "User already exists with this email.", decode[envelope](t, rec).Message)
	})

	t.Run("missing field", func(t *testing.T) {
		rec := h.form(http.MethodPost, "/users/register", "", url.Values{
			"fullname": {"Bo"}, "email": {"bo@example.com"}, "password": {"x"}, "role": {"student"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Something is missing.", decode[envelope](t, rec).Message)
	})

	t.Run("invalid role", func(t *testing.T) {
		rec := h.form(http.MethodPost, "/users/register", "", url.Values{
			"fullname": {"Bo"}, "email": {"bo@example.com"}, "phoneNumber": {"1"},
			"password": {"x"}, "role": {"admin"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	tests := []struct {
		name     string
		password string
		role     string
		status   int
	}{
		{name: "all match", password: testPassword, role: "student", status: http.StatusOK},
		{name: "role mismatch", password: testPassword, role: "recruiter", status: http.StatusBadRequest},
		{name: "wrong password", password: "nope", role: "student", status: http.StatusBadRequest},
		{name: "missing role", password: testPassword, role: "", status: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := h.request(http.MethodPost, "/users/login", "", map[string]string{
				"email": "ana@example.com", "password": tc.password, "role": tc.role,
			})
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			if tc.status != http.StatusOK {
				return
			}
			body := decode[userBody](t, rec)
			assert.Equal(t, types.RoleStudent, body.User.Role)

			var session *http.Cookie
			for _, c := range rec.Result().Cookies() {
				if c.Name == "token" {
					session = c
				}
			}
			require.NotNil(t, session)
			assert.True(t, session.HttpOnly)
			assert.NotEmpty(t, session.Value)
		})
	}

	rec := h.request(http.MethodPost, "/users/login", "", map[string]string{
		"email": "  ana@example.com ", "password": testPassword, "role": " student",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.request(http.MethodPost, "/users/login", "", map[string]string{
		"email": "ana@example.com", "password": testPassword, "role": "recruiter",
	})
	assert.Equal(t, "Incorrect email, password or role.", decode[envelope](t, rec).Message)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestSessionRequiredAndLogoutRevokes(t *testing.T) {
	h := newHarness(t)

	rec := h.request(http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not authenticated", decode[envelope](t, rec).Message)

	token := h.signup("cy@example.com", types.RoleStudent)
	rec = h.request(http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cy@example.com", decode[userBody](t, rec).User.Email)

	rec = h.request(http.MethodGet, "/users/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.request(http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileUploads(t *testing.T) {
	h := newHarness(t, func(d *Dependencies) { d.Uploader = fakeUploader{} })

	rec := h.multipart(http.MethodPost, "/users/register", "", map[string]string{
		"fullname": "Dee", "email": "dee@example.com", "phoneNumber": "1",
		"password": testPassword, "role": "student",
	}, "me.png", []byte("\x89PNG\r\n\x1a\n"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "https://cdn.test/me.png", decode[userBody](t, rec).User.Profile.ProfilePhoto)

	rec = h.request(http.MethodPost, "/users/login", "", map[string]string{
		"email": "dee@example.com", "password": testPassword, "role": "student",
	})
	token := decode[struct {
		Token string `json:"token"`
	}](t, rec).Token

	rec = h.multipart(http.MethodPost, "/users/profile/update", token, map[string]string{
		"bio": "Gopher", "skills": "Go, SQL ,",
	}, "cv.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decode[userBody](t, rec).User
	assert.Equal(t, "Dee", user.Fullname)
	assert.Equal(t, "Gopher", user.Profile.Bio)
	assert.Equal(t, []string{"Go", "SQL"}, user.Profile.Skills)
	assert.Equal(t, "https://cdn.test/cv.pdf", user.Profile.Resume)
	assert.Equal(t, "cv.pdf", user.Profile.ResumeOriginalName)
}

func TestUploadWithoutBackendFails(t *testing.T) {
	h := newHarness(t)

	rec := h.multipart(http.MethodPost, "/users/register", "", map[string]string{
		"fullname": "Eve", "email": "eve@example.com", "phoneNumber": "1",
		"password": testPassword, "role": "student",
	}, "me.png", []byte("png"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, decode[envelope](t, rec).Success)
}

func TestCompanyOwnership(t *testing.T) {
	h := newHarness(t)
	alice := h.signup("alice@example.com", types.RoleRecruiter)
	bob := h.signup("bob@example.com", types.RoleRecruiter)
	acme := h.registerCompany(alice, "Acme")

	rec := h.request(http.MethodGet, "/companies/get/"+acme.ID.String(), bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.request(http.MethodGet, "/companies/get/"+acme.ID.String(), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme", decode[companyBody](t, rec).Company.Name)

	rec = h.request(http.MethodGet, "/companies/get/missing", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.request(http.MethodPost, "/companies/register", bob, map[string]string{"companyName": "Acme"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.request(http.MethodGet, "/companies/getall", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[companyBody](t, rec).Companies, 1)

	rec = h.form(http.MethodPut, "/companies/update/"+acme.ID.String(), bob, url.Values{"name": {"Hijacked"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.request(http.MethodDelete, "/companies/delete/"+acme.ID.String(), bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.request(http.MethodGet, "/companies/get/"+acme.ID.String(), alice, nil)
	assert.Equal(t, "Acme", decode[companyBody](t, rec).Company.Name)

	rec = h.form(http.MethodPut, "/companies/update/"+acme.ID.String(), alice, url.Values{
		"description": {"Anvils"}, "website": {"https://acme.test"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[companyBody](t, rec).Company
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "Anvils", updated.Description)

	rec = h.request(http.MethodGet, "/companies/get", alice, nil)
	assert.Len(t, decode[companyBody](t, rec).Companies, 1)
	rec = h.request(http.MethodGet, "/companies/get", bob, nil)
	assert.Empty(t, decode[companyBody](t, rec).Companies)

	rec = h.request(http.MethodDelete, "/companies/delete/"+acme.ID.String(), alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = h.request(http.MethodGet, "/companies/get/"+acme.ID.String(), alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompanyRegisterRequiresRecruiter(t *testing.T) {
	h := newHarness(t)
	student := h.signup("stu@example.com", types.RoleStudent)

	rec := h.request(http.MethodPost, "/companies/register", student, map[string]string{"companyName": "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	recruiter := h.signup("rec@example.com", types.RoleRecruiter)
	rec = h.request(http.MethodPost, "/companies/register", recruiter, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.request(http.MethodPost, "/companies/register", recruiter, map[string]string{"companyName": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Company name is required.", decode[envelope](t, rec).Message)

	globex := h.registerCompany(recruiter, "  Globex ")
	assert.Equal(t, "Globex", globex.Name)

	rec = h.request(http.MethodGet, "/companies/get", recruiter, nil)
	assert.Len(t, decode[companyBody](t, rec).Companies, 1)
}

func TestPostJobRequiresEveryField(t *testing.T) {
	h := newHarness(t)
	recruiter := h.signup("rec@example.com", types.RoleRecruiter)
	company := h.registerCompany(recruiter, "Initech")

	fields := []string{"title", "description", "requirements", "salary", "salaryType",
		"location", "jobType", "experience", "position", "companyId"}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			body := newJob(company.ID, "Backend Engineer", "Build APIs")
			delete(body, field)
			rec := h.request(http.MethodPost, "/jobs/post", recruiter, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Something is missing.", decode[envelope](t, rec).Message)
		})
	}

	rec := h.request(http.MethodGet, "/jobs/get", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[jobBody](t, rec).Jobs)

	rec = h.request(http.MethodPost, "/jobs/post", recruiter, newJob("missing", "Backend Engineer", "Build APIs"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := newJob(company.ID, "Backend Engineer", "Build APIs")
	body["salaryType"] = "hourly"
	rec = h.request(http.MethodPost, "/jobs/post", recruiter, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = newJob(company.ID, "Backend Engineer", "Build APIs")
	body["salary"] = "twelve"
	rec = h.request(http.MethodPost, "/jobs/post", recruiter, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = newJob(company.ID, "Backend Engineer", "Build APIs")
	body["salary"] = "12.5"
	body["position"] = "2"
	job := h.postJob(recruiter, body)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, job.Requirements)
	assert.Equal(t, 12.5, job.Salary)
	assert.Equal(t, 2, job.Position)
	assert.Equal(t, company.ID, job.CompanyID)

	student := h.signup("stu@example.com", types.RoleStudent)
	rec = h.request(http.MethodPost, "/jobs/post", student, newJob(company.ID, "Nope", "Nope"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJobKeywordSearch(t *testing.T) {
	h := newHarness(t)
	recruiter := h.signup("rec@example.com", types.RoleRecruiter)
	company := h.registerCompany(recruiter, "Initech")
	backend := h.postJob(recruiter, newJob(company.ID, "Backend Engineer", "Build APIs"))
	frontend := h.postJob(recruiter, newJob(company.ID, "Frontend Engineer", "Build UIs"))

	rec := h.request(http.MethodGet, "/jobs/get?keyword=backend", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	jobs := decode[jobBody](t, rec).Jobs
	require.Len(t, jobs, 1)
	assert.Equal(t, backend.ID, jobs[0].ID)
	require.NotNil(t, jobs[0].Company)
	assert.Equal(t, "Initech", jobs[0].Company.Name)

	rec = h.request(http.MethodGet, "/jobs/get?keyword=PUNE", "", nil)
	assert.Len(t, decode[jobBody](t, rec).Jobs, 2)

	rec = h.request(http.MethodGet, "/jobs/get?keyword=.*", "", nil)
	assert.Empty(t, decode[jobBody](t, rec).Jobs)

	rec = h.request(http.MethodGet, "/jobs/get", "", nil)
	jobs = decode[jobBody](t, rec).Jobs
	require.Len(t, jobs, 2)
	assert.Equal(t, frontend.ID, jobs[0].ID)
	assert.Equal(t, backend.ID, jobs[1].ID)

	rec = h.request(http.MethodGet, "/jobs/getadminjobs", recruiter, nil)
	assert.Len(t, decode[jobBody](t, rec).Jobs, 2)
}

type stalledJobs struct {
	services.JobRepository
}

func (stalledJobs) List(ctx context.Context, keyword string) ([]types.Job, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestJobListTimesOut(t *testing.T) {
	h := newHarness(t, func(d *Dependencies) {
		d.Repos.Jobs = stalledJobs{JobRepository: d.Repos.Jobs}
		d.JobListTimeout = 20 * time.Millisecond
	})

	start := time.Now()
	rec := h.request(http.MethodGet, "/jobs/get", "", nil)
	assert.Less(t, time.Since(start), 5*time.Second)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode[jobBody](t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Error fetching jobs", body.Message)
	assert.NotNil(t, body.Jobs)
	assert.Empty(t, body.Jobs)
}

func TestUpdateJob(t *testing.T) {
	h := newHarness(t)
	owner := h.signup("owner@example.com", types.RoleRecruiter)
	other := h.signup("other@example.com", types.RoleRecruiter)
	company := h.registerCompany(owner, "Initech")
	job := h.postJob(owner, newJob(company.ID, "Backend Engineer", "Build APIs"))
	path := "/jobs/update/" + job.ID.String()

	base := func(requirements any) map[string]any {
		return map[string]any{
			"title":        "Senior Backend Engineer",
			"description":  "Own APIs",
			"salary":       "20",
			"location":     "Remote",
			"requirements": requirements,
		}
	}

	rec := h.request(http.MethodPut, path, owner, base("Go , Kubernetes,, gRPC"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[jobBody](t, rec).Job
	assert.Equal(t, []string{"Go", "Kubernetes", "gRPC"}, updated.Requirements)
	assert.Equal(t, "Senior Backend Engineer", updated.Title)
	assert.Equal(t, types.SalaryLPA, updated.SalaryType)

	rec = h.request(http.MethodPut, path, owner, base([]string{" Go ", "Rust"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{" Go ", "Rust"}, decode[jobBody](t, rec).Job.Requirements)

	missing := base(nil)
	delete(missing, "title")
	rec = h.request(http.MethodPut, path, owner, missing)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.request(http.MethodPut, path, other, base("Cobol"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.request(http.MethodDelete, "/jobs/delete/"+job.ID.String(), other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.request(http.MethodGet, "/jobs/get/"+job.ID.String(), other, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Senior Backend Engineer", decode[jobBody](t, rec).Job.Title)

	rec = h.request(http.MethodGet, "/jobs/admin/get/"+job.ID.String(), other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.request(http.MethodGet, "/jobs/admin/get/missing", owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.request(http.MethodGet, "/jobs/admin/get/"+job.ID.String(), owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	admin := decode[jobBody](t, rec).Job
	require.NotNil(t, admin.Company)
	assert.Equal(t, company.ID, admin.Company.ID)
	assert.NotNil(t, admin.Applications)

	rec = h.request(http.MethodDelete, "/jobs/delete/"+job.ID.String(), owner, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = h.request(http.MethodGet, "/jobs/get/"+job.ID.String(), owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleSavedJobTwiceRestoresSet(t *testing.T) {
	h := newHarness(t)
	recruiter := h.signup("rec@example.com", types.RoleRecruiter)
	company := h.registerCompany(recruiter, "Initech")
	job := h.postJob(recruiter, newJob(company.ID, "Backend Engineer", "Build APIs"))
	student := h.signup("stu@example.com", types.RoleStudent)

	type toggleBody struct {
		envelope
		Saved     bool       `json:"saved"`
		SavedJobs []types.ID `json:"savedJobs"`
	}

	rec := h.request(http.MethodGet, "/users/toggle-saved-job/"+job.ID.String(), student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[toggleBody](t, rec)
	assert.True(t, first.Saved)
	assert.Equal(t, []types.ID{job.ID}, first.SavedJobs)

	rec = h.request(http.MethodGet, "/users/saved-jobs", student, nil)
	saved := decode[struct {
		SavedJobs []types.Job `json:"savedJobs"`
	}](t, rec).SavedJobs
	require.Len(t, saved, 1)
	require.NotNil(t, saved[0].Company)
	assert.Equal(t, "Initech", saved[0].Company.Name)

	rec = h.request(http.MethodGet, "/users/toggle-saved-job/"+job.ID.String(), student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[toggleBody](t, rec)
	assert.False(t, second.Saved)
	assert.Empty(t, second.SavedJobs)

	rec = h.request(http.MethodGet, "/users/toggle-saved-job/missing", student, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnsaveAfterJobDeleted(t *testing.T) {
	h := newHarness(t)
	recruiter := h.signup("rec@example.com", types.RoleRecruiter)
	company := h.registerCompany(recruiter, "Initech")
	job := h.postJob(recruiter, newJob(company.ID, "Backend Engineer", "Build APIs"))
	student := h.signup("stu@example.com", types.RoleStudent)

	type toggleBody struct {
		envelope
		Saved     bool       `json:"saved"`
		SavedJobs []types.ID `json:"savedJobs"`
	}

	rec := h.request(http.MethodGet, "/users/toggle-saved-job/"+job.ID.String(), student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []types.ID{job.ID}, decode[toggleBody](t, rec).SavedJobs)

	rec = h.request(http.MethodDelete, "/jobs/delete/"+job.ID.String(), recruiter, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.request(http.MethodGet, "/users/toggle-saved-job/"+job.ID.String(), student, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[toggleBody](t, rec)
	assert.False(t, body.Saved)
	require.NotNil(t, body.SavedJobs)
	assert.Empty(t, body.SavedJobs)

	rec = h.request(http.MethodGet, "/users/me", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[userBody](t, rec).User.SavedJobs)

	// A deleted job cannot be saved again.
	rec = h.request(http.MethodGet, "/users/toggle-saved-job/"+job.ID.String(), student, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplicationLifecycle(t *testing.T) {
	h := newHarness(t)
	recruiter := h.signup("rec@example.com", types.RoleRecruiter)
	other := h.signup("other@example.com", types.RoleRecruiter)
	company := h.registerCompany(recruiter, "Initech")
	job := h.postJob(recruiter, newJob(company.ID, "Backend Engineer", "Build APIs"))
	student := h.signup("stu@example.com", types.RoleStudent)

	rec := h.request(http.MethodGet, "/applications/apply/"+job.ID.String(), recruiter, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.request(http.MethodGet, "/applications/apply/missing", student, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.request(http.MethodGet, "/applications/apply/"+job.ID.String(), student, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	application := decode[applicationBody](t, rec).Application
	assert.Equal(t, types.StatusPending, application.Status)

	rec = h.request(http.MethodGet, "/applications/apply/"+job.ID.String(), student, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already applied for this job", decode[envelope](t, rec).Message)

	statusPath := fmt.Sprintf("/applications/status/%s/update", application.ID)
	rec = h.request(http.MethodPost, statusPath, recruiter, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = h.request(http.MethodPost, statusPath, other, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.request(http.MethodPost, "/applications/status/missing/update", recruiter, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.request(http.MethodPost, statusPath, recruiter, map[string]string{"status": "Accepted"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, types.StatusAccepted, decode[applicationBody](t, rec).Application.Status)

	rec = h.request(http.MethodGet, "/applications/"+job.ID.String()+"/applicants", other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.request(http.MethodGet, "/applications/"+job.ID.String()+"/applicants", recruiter, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	applicants := decode[jobBody](t, rec).Job.Applications
	require.Len(t, applicants, 1)
	assert.Equal(t, types.StatusAccepted, applicants[0].Status)
	require.NotNil(t, applicants[0].Applicant)
	assert.Equal(t, "stu@example.com", applicants[0].Applicant.Email)

	rec = h.request(http.MethodGet, "/applications/get", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[struct {
		Applications []types.Application `json:"application"`
	}](t, rec).Applications
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Job)
	assert.Equal(t, job.ID, mine[0].Job.ID)

	rec = h.request(http.MethodGet, "/jobs/get/"+job.ID.String(), student, nil)
	assert.Len(t, decode[jobBody](t, rec).Job.Applications, 1)

	assert.Equal(t, []types.EventType{
		types.EventJobPosted,
		types.EventApplicationSubmitted,
		types.EventApplicationStatusChanged,
	}, h.events.eventTypes())
}
