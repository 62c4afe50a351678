package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/services"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

var errInvalidRequirements = errors.New("requirements must be a string or a list of strings")

// JobHandler provides HTTP handlers for jobs.
type JobHandler struct {
	jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// JobRouter registers job routes on the given router.
func JobRouter(r chi.Router, jobs *services.JobService, auth *Authenticator) {
	handler := NewJobHandler(jobs)

	r.Get("/get", handler.List)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.With(auth.RequireRole(types.RoleRecruiter)).Post("/post", handler.Post)
		r.Get("/getadminjobs", handler.ListMine)
		r.Get("/get/{jobID}", handler.Get)
		r.Get("/admin/get/{jobID}", handler.GetAdmin)
		r.Put("/update/{jobID}", handler.Update)
		r.Delete("/delete/{jobID}", handler.Delete)
	})
}

type PostJobRequest struct {
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description" validate:"required"`
	Requirements string     `json:"requirements" validate:"required"`
	Salary       flexNumber `json:"salary" validate:"required"`
	SalaryType   string     `json:"salaryType" validate:"required,oneof=lpa monthly"`
	Location     string     `json:"location" validate:"required"`
	JobType      string     `json:"jobType" validate:"required"`
	Experience   string     `json:"experience" validate:"required"`
	Position     flexNumber `json:"position" validate:"required"`
	CompanyID    string     `json:"companyId" validate:"required"`
}

// UpdateJobRequest validates only the fields every update must carry.
// Requirements may be a comma-joined string or a list.
type UpdateJobRequest struct {
	Title        string          `json:"title" validate:"required"`
	Description  string          `json:"description" validate:"required"`
	Requirements json.RawMessage `json:"requirements"`
	Salary       flexNumber      `json:"salary" validate:"required"`
	SalaryType   string          `json:"salaryType" validate:"omitempty,oneof=lpa monthly"`
	Location     string          `json:"location" validate:"required"`
	JobType      string          `json:"jobType"`
	Experience   string          `json:"experience"`
	Position     flexNumber      `json:"position"`
	CompanyID    string          `json:"companyId"`
}

type JobResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Job     types.Job `json:"job"`
}

type JobListResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Jobs    []types.Job `json:"jobs"`
}

func (h *JobHandler) Post(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req PostJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	trimFields(&req.Title, &req.Description, &req.Requirements, &req.Location, &req.JobType, &req.Experience, &req.CompanyID)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, msgSomethingMissed))
		return
	}

	salary, err := req.Salary.Float()
	if err != nil || salary < 0 {
		writeError(w, http.StatusBadRequest, "Salary must be a number")
		return
	}
	position, err := req.Position.Int()
	if err != nil || position < 0 {
		writeError(w, http.StatusBadRequest, "Position must be a whole number")
		return
	}
	if salary == 0 || position == 0 {
		writeError(w, http.StatusBadRequest, msgSomethingMissed)
		return
	}

	job, err := h.jobs.Post(r.Context(), userID, services.JobPosting{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Salary:          salary,
		SalaryType:      types.SalaryType(req.SalaryType),
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.Experience,
		Position:        position,
		CompanyID:       types.ID(req.CompanyID),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCompanyNotFound):
			writeError(w, http.StatusNotFound, "Company not found")
		case errors.Is(err, services.ErrInvalidSalaryType):
			writeError(w, http.StatusBadRequest, "Invalid salaryType")
		default:
			writeInternalError(w, r, "Error posting job", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, JobResponse{
		Success: true,
		Message: "New job created successfully.",
		Job:     job,
	})
}

// List returns the public job list, optionally filtered by keyword.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))

	jobs, err := h.jobs.List(r.Context(), keyword)
	if err != nil {
		logInternal(r, "Error fetching jobs", err)
		writeJSON(w, http.StatusInternalServerError, JobListResponse{
			Success: false,
			Message: "Error fetching jobs",
			Jobs:    []types.Job{},
		})
		return
	}
	if jobs == nil {
		jobs = []types.Job{}
	}
	writeJSON(w, http.StatusOK, JobListResponse{Success: true, Jobs: jobs})
}

// ListMine returns the jobs posted by the caller.
func (h *JobHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	jobs, err := h.jobs.ListByCreator(r.Context(), userID)
	if err != nil {
		writeInternalError(w, r, "Error fetching jobs", err)
		return
	}
	writeJSON(w, http.StatusOK, JobListResponse{Success: true, Jobs: jobs})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), pathID(r, "jobID"))
	if err != nil {
		writeJobError(w, r, err, "", "Error fetching job details")
		return
	}
	writeJSON(w, http.StatusOK, JobResponse{Success: true, Job: job})
}

// GetAdmin returns an owned job with its applications and company.
func (h *JobHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	job, err := h.jobs.GetOwned(r.Context(), pathID(r, "jobID"), userID)
	if err != nil {
		writeJobError(w, r, err, "You are not authorized to access this job", "Error fetching job details")
		return
	}
	writeJSON(w, http.StatusOK, JobResponse{Success: true, Job: job})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req UpdateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	trimFields(&req.Title, &req.Description, &req.Location, &req.JobType, &req.Experience, &req.CompanyID)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, "Required fields are missing"))
		return
	}

	salary, err := req.Salary.Float()
	if err != nil || salary < 0 {
		writeError(w, http.StatusBadRequest, "Salary must be a number")
		return
	}
	var position int
	if req.Position != "" {
		if position, err = req.Position.Int(); err != nil || position < 0 {
			writeError(w, http.StatusBadRequest, "Position must be a whole number")
			return
		}
	}
	requirements, requirementsSet, err := parseRequirements(req.Requirements)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid requirements")
		return
	}

	job, err := h.jobs.Update(r.Context(), pathID(r, "jobID"), userID, services.JobUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    requirements,
		RequirementsSet: requirementsSet,
		Salary:          salary,
		SalaryType:      types.SalaryType(req.SalaryType),
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.Experience,
		Position:        position,
		CompanyID:       types.ID(req.CompanyID),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCompanyNotFound):
			writeError(w, http.StatusNotFound, "Company not found")
		case errors.Is(err, services.ErrInvalidSalaryType):
			writeError(w, http.StatusBadRequest, "Invalid salaryType")
		default:
			writeJobError(w, r, err, "You are not authorized to update this job", "Error updating job")
		}
		return
	}

	writeJSON(w, http.StatusOK, JobResponse{
		Success: true,
		Message: "Job updated successfully",
		Job:     job,
	})
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	if err := h.jobs.Delete(r.Context(), pathID(r, "jobID"), userID); err != nil {
		writeJobError(w, r, err, "You are not authorized to delete this job", "Error deleting job")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Job deleted successfully"})
}

func writeJobError(w http.ResponseWriter, r *http.Request, err error, forbidden, internal string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Job not found")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, forbidden)
	default:
		writeInternalError(w, r, internal, err)
	}
}

// parseRequirements accepts a comma-joined string, which is split, or a list,
// which is kept as sent. Absent or null leaves the requirements unchanged.
func parseRequirements(raw json.RawMessage) ([]string, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false, nil
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return services.SplitRequirements(joined), true, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			list = []string{}
		}
		return list, true, nil
	}
	return nil, false, errInvalidRequirements
}
