package types

import "time"

// SalaryType is the unit a job's salary is expressed in.
type SalaryType string

// Supported salary types.
const (
	SalaryLPA     SalaryType = "lpa"
	SalaryMonthly SalaryType = "monthly"
)

// Valid reports whether t is a supported salary type.
func (t SalaryType) Valid() bool {
	return t == SalaryLPA || t == SalaryMonthly
}

// Job represents a vacancy posted by a recruiter for one company.
type Job struct {
	// ID is the unique identifier of the job.
	ID ID `json:"_id"`

	// Title is the headline of the vacancy.
	Title string `json:"title"`

	// Description is the full job description.
	Description string `json:"description"`

	// Requirements are the individual requirement lines.
	Requirements []string `json:"requirements"`

	// Salary is the numeric salary, interpreted according to SalaryType.
	Salary float64 `json:"salary"`

	// SalaryType is either "lpa" or "monthly".
	SalaryType SalaryType `json:"salaryType"`

	// Location is where the job is based.
	Location string `json:"location"`

	// JobType describes the engagement, e.g. "Full Time".
	JobType string `json:"jobType"`

	// ExperienceLevel is the expected experience, as entered by the recruiter.
	ExperienceLevel string `json:"experienceLevel"`

	// Position is the number of open positions.
	Position int `json:"position"`

	// CompanyID references the company the job belongs to.
	CompanyID ID `json:"companyId"`

	// Company is the populated company. It is only set on endpoints that
	// embed it.
	Company *Company `json:"company,omitempty"`

	// CreatedBy references the recruiter who posted the job.
	CreatedBy ID `json:"created_by"`

	// Applications are the applications received for this job. They are
	// only populated on endpoints that embed them.
	Applications []Application `json:"applications"`

	// CreatedAt is the timestamp at which the job was posted.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the most recent update to the job.
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the job was posted by userID.
func (j Job) OwnedBy(userID ID) bool {
	return !userID.IsZero() && j.CreatedBy == userID
}
