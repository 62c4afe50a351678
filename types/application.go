package types

import (
	"strings"
	"time"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

// Supported application statuses. Values are persisted in lowercase.
const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus normalises raw to its canonical lowercase form.
// It returns false when raw is not a known status.
func ParseApplicationStatus(raw string) (ApplicationStatus, bool) {
	status := ApplicationStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case StatusPending, StatusAccepted, StatusRejected:
		return status, true
	default:
		return "", false
	}
}

// Application links a student to a job they applied to.
type Application struct {
	ID          ID                `json:"_id"`
	JobID       ID                `json:"job"`
	ApplicantID ID                `json:"applicantId"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	// Applicant is the populated applicant, set for recruiter views.
	Applicant *User `json:"applicant,omitempty"`

	// Job is the populated job, set when listing a student's applications.
	Job *Job `json:"jobDetails,omitempty"`
}
