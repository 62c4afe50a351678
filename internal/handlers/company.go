package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/services"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// CompanyHandler provides HTTP handlers for companies.
type CompanyHandler struct {
	companies *services.CompanyService
}

func NewCompanyHandler(companies *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// CompanyRouter registers company routes on the given router.
func CompanyRouter(r chi.Router, companies *services.CompanyService, auth *Authenticator) {
	handler := NewCompanyHandler(companies)

	r.Get("/getall", handler.ListAll)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.With(auth.RequireRole(types.RoleRecruiter)).Post("/register", handler.Register)
		r.Get("/get", handler.ListMine)
		r.Get("/get/{companyID}", handler.Get)
		r.Put("/update/{companyID}", handler.Update)
		r.Delete("/delete/{companyID}", handler.Delete)
	})
}

type RegisterCompanyRequest struct {
	CompanyName string `json:"companyName" validate:"required"`
}

type CompanyResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Company types.Company `json:"company"`
}

type CompanyListResponse struct {
	Success   bool            `json:"success"`
	Companies []types.Company `json:"companies"`
}

func (h *CompanyHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req RegisterCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	trimFields(&req.CompanyName)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Company name is required.")
		return
	}

	company, err := h.companies.Register(r.Context(), userID, req.CompanyName)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateCompany) {
			writeError(w, http.StatusBadRequest, "Company already registered you can't register same company twice")
			return
		}
		writeInternalError(w, r, "Error registering company", err)
		return
	}

	writeJSON(w, http.StatusCreated, CompanyResponse{
		Success: true,
		Message: "Company registered successfully",
		Company: company,
	})
}

// ListMine returns the companies registered by the caller.
func (h *CompanyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	companies, err := h.companies.ListByUser(r.Context(), userID)
	if err != nil {
		writeInternalError(w, r, "Error fetching companies", err)
		return
	}
	writeJSON(w, http.StatusOK, CompanyListResponse{Success: true, Companies: companies})
}

// ListAll returns every company. It needs no session.
func (h *CompanyHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companies.List(r.Context())
	if err != nil {
		writeInternalError(w, r, "Error fetching companies", err)
		return
	}
	writeJSON(w, http.StatusOK, CompanyListResponse{Success: true, Companies: companies})
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	company, err := h.companies.GetOwned(r.Context(), pathID(r, "companyID"), userID)
	if err != nil {
		h.writeCompanyError(w, r, err, "You are not authorized to access this company", "Error fetching company")
		return
	}
	writeJSON(w, http.StatusOK, CompanyResponse{Success: true, Company: company})
}

// Update merges the submitted form fields into an owned company. An optional
// file replaces the logo.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	if err := parseForm(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := services.CompanyUpdate{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
		Website:     formValue(r, "website"),
		Location:    formValue(r, "location"),
	}
	if update.Logo, err = formFile(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	company, err := h.companies.Update(r.Context(), pathID(r, "companyID"), userID, update)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateCompany) {
			writeError(w, http.StatusBadRequest, "A company with this name already exists")
			return
		}
		h.writeCompanyError(w, r, err, "You are not authorized to update this company", "Error updating company")
		return
	}

	writeJSON(w, http.StatusOK, CompanyResponse{
		Success: true,
		Message: "Company information updated",
		Company: company,
	})
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	if err := h.companies.Delete(r.Context(), pathID(r, "companyID"), userID); err != nil {
		h.writeCompanyError(w, r, err, "You are not authorized to delete this company", "Error deleting company")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Company deleted successfully"})
}

func (h *CompanyHandler) writeCompanyError(w http.ResponseWriter, r *http.Request, err error, forbidden, internal string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Company not found")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, forbidden)
	default:
		writeInternalError(w, r, internal, err)
	}
}
