package types

import "time"

// Role gates which actions a user may perform. It is fixed at registration.
type Role string

// Supported roles.
const (
	// RoleStudent can browse, save and apply to jobs.
	RoleStudent Role = "student"

	// RoleRecruiter can register companies, post jobs and review applicants.
	RoleRecruiter Role = "recruiter"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleRecruiter
}

// User represents an account in the job board.
// It contains identity, role, profile, and the user's saved jobs.
type User struct {
	// ID is the unique identifier of the user.
	ID ID `json:"_id"`

	// Fullname is the user's display name.
	Fullname string `json:"fullname"`

	// Email is the user's unique login address.
	Email string `json:"email"`

	// PhoneNumber is the user's contact number.
	PhoneNumber string `json:"phoneNumber"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-"`

	// Role indicates whether the user is a student or a recruiter.
	Role Role `json:"role"`

	// Profile holds the optional, user-editable profile details.
	Profile Profile `json:"profile"`

	// SavedJobs lists the jobs bookmarked by the user, in the order
	// they were saved.
	SavedJobs []ID `json:"savedJobs"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the most recent update to the account.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile contains the editable profile of a user.
type Profile struct {
	// Bio is a short free-form description.
	Bio string `json:"bio"`

	// Skills are free-form skill labels.
	Skills []string `json:"skills"`

	// Resume is the hosted URL of the uploaded resume.
	Resume string `json:"resume"`

	// ResumeOriginalName is the filename the resume was uploaded with,
	// kept for display.
	ResumeOriginalName string `json:"resumeOriginalName"`

	// ProfilePhoto is the hosted URL of the profile photo.
	ProfilePhoto string `json:"profilePhoto"`
}

// HasSavedJob reports whether jobID is in the user's saved jobs.
func (u User) HasSavedJob(jobID ID) bool {
	for _, id := range u.SavedJobs {
		if id == jobID {
			return true
		}
	}
	return false
}
