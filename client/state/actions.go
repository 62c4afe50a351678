package state

import "github.com/yogesh1825/CareerConnect-Job-Portal/types"

// Action is a state transition request handled by Reduce.
type Action interface {
	slice() string
}

type (
	SetUser    struct{ User *types.User }
	SetLoading struct{ Loading bool }
)

func (SetUser) slice() string    { return "auth" }
func (SetLoading) slice() string { return "auth" }

type (
	SetAllJobs         struct{ Jobs []types.Job }
	SetAllJobsError    struct{ Message string }
	SetAllAdminJobs    struct{ Jobs []types.Job }
	RemoveAdminJob     struct{ JobID types.ID }
	SetSingleJob       struct{ Job *types.Job }
	SetSearchJobByText struct{ Text string }
	SetAllAppliedJobs  struct{ Applications []types.Application }
	SetSearchedQuery   struct{ Query string }
	SetFilterCriteria  struct{ Criteria FilterCriteria }
	SetSavedJobs       struct{ Jobs []types.Job }
	ResetSavedJobs     struct{}
)

// ToggleSavedJob flips Job's membership in the saved-jobs slice.
// Dispatching it twice restores the original slice.
type ToggleSavedJob struct{ Job types.Job }

func (SetAllJobs) slice() string         { return "job" }
func (SetAllJobsError) slice() string    { return "job" }
func (SetAllAdminJobs) slice() string    { return "job" }
func (RemoveAdminJob) slice() string     { return "job" }
func (SetSingleJob) slice() string       { return "job" }
func (SetSearchJobByText) slice() string { return "job" }
func (SetAllAppliedJobs) slice() string  { return "job" }
func (SetSearchedQuery) slice() string   { return "job" }
func (SetFilterCriteria) slice() string  { return "job" }
func (SetSavedJobs) slice() string       { return "job" }
func (ResetSavedJobs) slice() string     { return "job" }
func (ToggleSavedJob) slice() string     { return "job" }

type (
	SetSingleCompany       struct{ Company *types.Company }
	SetCompanies           struct{ Companies []types.Company }
	SetPublicCompanies     struct{ Companies []types.Company }
	RemoveCompany          struct{ CompanyID types.ID }
	SetSearchCompanyByText struct{ Text string }
)

func (SetSingleCompany) slice() string       { return "company" }
func (SetCompanies) slice() string           { return "company" }
func (SetPublicCompanies) slice() string     { return "company" }
func (RemoveCompany) slice() string          { return "company" }
func (SetSearchCompanyByText) slice() string { return "company" }

type SetApplicants struct{ Job *types.Job }

// SetApplicationStatus updates one application inside Applicants.
type SetApplicationStatus struct {
	ApplicationID types.ID
	Status        types.ApplicationStatus
}

func (SetApplicants) slice() string        { return "application" }
func (SetApplicationStatus) slice() string { return "application" }
