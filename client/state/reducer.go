package state

import (
	"slices"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// Reduce returns the state after action. It never mutates s.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case SetUser:
		s.Auth.User = a.User
	case SetLoading:
		s.Auth.Loading = a.Loading

	case SetAllJobs:
		s.Job.AllJobs = orEmpty(a.Jobs)
		s.Job.AllJobsError = ""
	case SetAllJobsError:
		s.Job.AllJobsError = a.Message
	case SetAllAdminJobs:
		s.Job.AllAdminJobs = orEmpty(a.Jobs)
	case RemoveAdminJob:
		s.Job.AllAdminJobs = slices.DeleteFunc(slices.Clone(s.Job.AllAdminJobs), func(j types.Job) bool {
			return j.ID == a.JobID
		})
	case SetSingleJob:
		s.Job.SingleJob = a.Job
	case SetSearchJobByText:
		s.Job.SearchJobByText = a.Text
	case SetAllAppliedJobs:
		s.Job.AllAppliedJobs = orEmpty(a.Applications)
	case SetSearchedQuery:
		s.Job.SearchedQuery = a.Query
	case SetFilterCriteria:
		s.Job.Filter = a.Criteria
	case SetSavedJobs:
		s.Job.SavedJobs = orEmpty(a.Jobs)
	case ResetSavedJobs:
		s.Job.SavedJobs = []types.Job{}
	case ToggleSavedJob:
		s.Job.SavedJobs = toggleSaved(s.Job.SavedJobs, a.Job)

	case SetSingleCompany:
		s.Company.SingleCompany = a.Company
	case SetCompanies:
		s.Company.Companies = orEmpty(a.Companies)
	case SetPublicCompanies:
		s.Company.PublicCompanies = orEmpty(a.Companies)
	case RemoveCompany:
		s.Company.Companies = slices.DeleteFunc(slices.Clone(s.Company.Companies), func(c types.Company) bool {
			return c.ID == a.CompanyID
		})
	case SetSearchCompanyByText:
		s.Company.SearchCompanyByText = a.Text

	case SetApplicants:
		s.Application.Applicants = a.Job
	case SetApplicationStatus:
		s.Application.Applicants = withStatus(s.Application.Applicants, a.ApplicationID, a.Status)
	}
	return s
}

// toggleSaved removes job when present and appends it otherwise.
func toggleSaved(saved []types.Job, job types.Job) []types.Job {
	if job.ID.IsZero() {
		return saved
	}
	idx := slices.IndexFunc(saved, func(j types.Job) bool { return j.ID == job.ID })
	if idx >= 0 {
		return slices.Delete(slices.Clone(saved), idx, idx+1)
	}
	return append(slices.Clone(saved), job)
}

func withStatus(job *types.Job, applicationID types.ID, status types.ApplicationStatus) *types.Job {
	if job == nil {
		return nil
	}
	updated := *job
	updated.Applications = slices.Clone(job.Applications)
	for i := range updated.Applications {
		if updated.Applications[i].ID == applicationID {
			updated.Applications[i].Status = status
		}
	}
	return &updated
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
