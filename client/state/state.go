// Package state holds the client application's view of the job board: four
// independent slices updated only through typed actions and a pure reducer.
package state

import (
	"slices"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

type AuthState struct {
	User    *types.User
	Loading bool
}

// FilterCriteria narrows the public job list on the client.
type FilterCriteria struct {
	Location string
	Industry string
}

type JobState struct {
	AllJobs         []types.Job
	AllJobsError    string
	AllAdminJobs    []types.Job
	SingleJob       *types.Job
	SearchJobByText string
	AllAppliedJobs  []types.Application
	SearchedQuery   string
	SavedJobs       []types.Job
	Filter          FilterCriteria
}

type CompanyState struct {
	SingleCompany       *types.Company
	Companies           []types.Company
	PublicCompanies     []types.Company
	SearchCompanyByText string
}

type ApplicationState struct {
	// Applicants is the job whose applications are under review.
	Applicants *types.Job
}

// State is the whole client store. Slices are not kept in sync with each
// other; for example Job.SavedJobs may differ from Auth.User.SavedJobs.
type State struct {
	Auth        AuthState
	Job         JobState
	Company     CompanyState
	Application ApplicationState
}

// Initial returns the empty store with non-nil collections.
func Initial() State {
	return State{
		Job: JobState{
			AllJobs:        []types.Job{},
			AllAdminJobs:   []types.Job{},
			AllAppliedJobs: []types.Application{},
			SavedJobs:      []types.Job{},
		},
		Company: CompanyState{
			Companies:       []types.Company{},
			PublicCompanies: []types.Company{},
		},
	}
}

// IsSaved reports whether jobID is in the saved-jobs slice.
func (s JobState) IsSaved(jobID types.ID) bool {
	return slices.ContainsFunc(s.SavedJobs, func(j types.Job) bool { return j.ID == jobID })
}
