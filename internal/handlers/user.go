package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/services"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// UserHandler provides account, profile and saved-job endpoints.
type UserHandler struct {
	users *services.UserService
	auth  *Authenticator
}

func NewUserHandler(users *services.UserService, auth *Authenticator) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, users *services.UserService, auth *Authenticator) {
	handler := NewUserHandler(users, auth)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Get("/logout", handler.Logout)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/me", handler.Me)
		r.Post("/profile/update", handler.UpdateProfile)
		r.Get("/saved-jobs", handler.SavedJobs)
		r.Get("/toggle-saved-job/{jobID}", handler.ToggleSavedJob)
	})
}

type RegisterRequest struct {
	Fullname    string `form:"fullname" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	PhoneNumber string `form:"phoneNumber" validate:"required"`
	Password    string `form:"password" validate:"required"`
	Role        string `form:"role" validate:"required,oneof=student recruiter"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type UserResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	User    types.User `json:"user"`
	Token   string     `json:"token,omitempty"`
}

type SavedJobsResponse struct {
	Success   bool        `json:"success"`
	SavedJobs []types.Job `json:"savedJobs"`
}

type ToggleSavedJobResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Saved     bool       `json:"saved"`
	SavedJobs []types.ID `json:"savedJobs"`
}

// Register creates an account from a multipart form. An optional file
// becomes the profile photo.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := RegisterRequest{
		Fullname:    formValue(r, "fullname"),
		Email:       formValue(r, "email"),
		PhoneNumber: formValue(r, "phoneNumber"),
		Password:    r.FormValue("password"),
		Role:        formValue(r, "role"),
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, msgSomethingMissed))
		return
	}

	photo, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Register(r.Context(), services.Registration{
		Fullname:    req.Fullname,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        types.Role(req.Role),
		Photo:       photo,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "User already exists with this email.")
		case errors.Is(err, services.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "Invalid role")
		default:
			writeInternalError(w, r, "Failed to create account", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{
		Success: true,
		Message: "Account created successfully.",
		User:    user,
	})
}

// Login checks email, password and role and starts a session.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	trimFields(&req.Email, &req.Role)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, msgSomethingMissed))
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.Password, types.Role(req.Role))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Incorrect email, password or role.")
			return
		}
		writeInternalError(w, r, "Failed to log in", err)
		return
	}

	token, err := h.auth.startSession(w, user.ID)
	if err != nil {
		writeInternalError(w, r, "Failed to create session", err)
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{
		Success: true,
		Message: "Welcome back " + user.Fullname,
		User:    user,
		Token:   token,
	})
}

// Logout clears the session cookie. It succeeds with or without a session.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.endSession(w, r)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out successfully."})
}

// Me returns the current authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		writeInternalError(w, r, "Failed to load user", err)
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: user})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	if err := parseForm(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := services.ProfileUpdate{
		Fullname:    formValue(r, "fullname"),
		Email:       formValue(r, "email"),
		PhoneNumber: formValue(r, "phoneNumber"),
		Bio:         formValue(r, "bio"),
		Skills:      formValue(r, "skills"),
	}
	if update.Email != "" {
		if err := validate.Var(update.Email, "email"); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid email")
			return
		}
	}
	if update.Resume, err = formFile(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found.")
		case errors.Is(err, services.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "Email is already in use.")
		default:
			writeInternalError(w, r, "Failed to update profile", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{
		Success: true,
		Message: "Profile updated successfully.",
		User:    user,
	})
}

func (h *UserHandler) SavedJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	jobs, err := h.users.SavedJobs(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		writeInternalError(w, r, "Failed to fetch saved jobs", err)
		return
	}

	writeJSON(w, http.StatusOK, SavedJobsResponse{Success: true, SavedJobs: jobs})
}

// ToggleSavedJob saves the job if it is not saved yet, otherwise unsaves it.
func (h *UserHandler) ToggleSavedJob(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	user, saved, err := h.users.ToggleSavedJob(r.Context(), userID, pathID(r, "jobID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Job not found.")
			return
		}
		writeInternalError(w, r, "Failed to update saved jobs", err)
		return
	}

	message := "Job removed from saved jobs."
	if saved {
		message = "Job saved successfully."
	}
	writeJSON(w, http.StatusOK, ToggleSavedJobResponse{
		Success:   true,
		Message:   message,
		Saved:     saved,
		SavedJobs: user.SavedJobs,
	})
}
