package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/services"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// ApplicationHandler provides HTTP handlers for job applications.
type ApplicationHandler struct {
	applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// ApplicationRouter registers application routes on the given router. Every
// route needs a session.
func ApplicationRouter(r chi.Router, applications *services.ApplicationService, auth *Authenticator) {
	handler := NewApplicationHandler(applications)

	r.Use(auth.RequireAuth)
	r.With(auth.RequireRole(types.RoleStudent)).Get("/apply/{jobID}", handler.Apply)
	r.Get("/get", handler.ListMine)
	r.Get("/{jobID}/applicants", handler.Applicants)
	r.Post("/status/{applicationID}/update", handler.UpdateStatus)
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ApplicationResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	Application types.Application `json:"application"`
}

type ApplicationListResponse struct {
	Success      bool                `json:"success"`
	Applications []types.Application `json:"application"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	application, err := h.applications.Apply(r.Context(), userID, pathID(r, "jobID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Job not found")
		case errors.Is(err, services.ErrAlreadyApplied):
			writeError(w, http.StatusBadRequest, "You have already applied for this job")
		default:
			writeInternalError(w, r, "Error applying for job", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, ApplicationResponse{
		Success:     true,
		Message:     "Job applied successfully.",
		Application: application,
	})
}

// ListMine returns the caller's applications with their jobs.
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	applications, err := h.applications.ListByApplicant(r.Context(), userID)
	if err != nil {
		writeInternalError(w, r, "Error fetching applications", err)
		return
	}
	writeJSON(w, http.StatusOK, ApplicationListResponse{Success: true, Applications: applications})
}

// Applicants returns an owned job with its applications and applicants.
func (h *ApplicationHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	job, err := h.applications.Applicants(r.Context(), pathID(r, "jobID"), userID)
	if err != nil {
		writeJobError(w, r, err, "You are not authorized to view these applicants", "Error fetching applicants")
		return
	}
	writeJSON(w, http.StatusOK, JobResponse{Success: true, Job: job})
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Status is required")
		return
	}

	application, err := h.applications.UpdateStatus(r.Context(), pathID(r, "applicationID"), userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Application not found")
		case errors.Is(err, services.ErrForbidden):
			writeError(w, http.StatusForbidden, "You are not authorized to update this application")
		default:
			writeInternalError(w, r, "Error updating status", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, ApplicationResponse{
		Success:     true,
		Message:     "Status updated successfully.",
		Application: application,
	})
}
