package state

import (
	"context"
	"net/http"

	"github.com/yogesh1825/CareerConnect-Job-Portal/client"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// API is the subset of *client.Client the loader drives.
type API interface {
	Login(ctx context.Context, email, password string, role types.Role) (types.User, error)
	Logout(ctx context.Context) error
	Jobs(ctx context.Context, keyword string) ([]types.Job, error)
	Job(ctx context.Context, id types.ID) (types.Job, error)
	AdminJob(ctx context.Context, id types.ID) (types.Job, error)
	AdminJobs(ctx context.Context) ([]types.Job, error)
	DeleteJob(ctx context.Context, id types.ID) error
	SavedJobs(ctx context.Context) ([]types.Job, error)
	ToggleSavedJob(ctx context.Context, jobID types.ID) (bool, []types.ID, error)
	Companies(ctx context.Context) ([]types.Company, error)
	PublicCompanies(ctx context.Context) ([]types.Company, error)
	Company(ctx context.Context, id types.ID) (types.Company, error)
	DeleteCompany(ctx context.Context, id types.ID) error
	AppliedJobs(ctx context.Context) ([]types.Application, error)
	Applicants(ctx context.Context, jobID types.ID) (types.Job, error)
	UpdateApplicationStatus(ctx context.Context, id types.ID, status types.ApplicationStatus) (types.Application, error)
}

// Loader fetches data into the store. Failed list reads leave an empty
// collection rather than stale data.
type Loader struct {
	api        API
	store      *Store
	notify     Notifier
	processing *Processing
}

func NewLoader(api API, store *Store, notify Notifier) *Loader {
	return &Loader{api: api, store: store, notify: notify, processing: NewProcessing()}
}

// Processing exposes the per-row guard used by status changes and deletes.
func (l *Loader) Processing() *Processing {
	return l.processing
}

func (l *Loader) Login(ctx context.Context, email, password string, role types.Role) error {
	l.store.Dispatch(SetLoading{Loading: true})
	defer l.store.Dispatch(SetLoading{Loading: false})

	user, err := l.api.Login(ctx, email, password, role)
	if err != nil {
		l.notify.Error(ErrorMessage(err, "Login failed"))
		return err
	}
	l.store.Dispatch(SetUser{User: &user})
	l.notify.Success("Welcome back " + user.Fullname)
	return nil
}

func (l *Loader) Logout(ctx context.Context) error {
	if err := l.api.Logout(ctx); err != nil {
		l.notify.Error(ErrorMessage(err, "Logout failed"))
		return err
	}
	l.store.Dispatch(SetUser{User: nil})
	l.notify.Success("Logged out successfully.")
	return nil
}

// LoadJobs fetches the public list for the current search query. After a
// failure it tries once more without the keyword; if that fails too the list
// is emptied and the first error is recorded and returned.
func (l *Loader) LoadJobs(ctx context.Context) error {
	keyword := l.store.State().Job.SearchedQuery
	jobs, err := l.api.Jobs(ctx, keyword)
	if err == nil {
		l.store.Dispatch(SetAllJobs{Jobs: jobs})
		return nil
	}

	fallback, fallbackErr := l.api.Jobs(ctx, "")
	if fallbackErr == nil {
		l.store.Dispatch(SetAllJobs{Jobs: fallback})
		return nil
	}

	l.store.Dispatch(SetAllJobs{Jobs: nil})
	l.store.Dispatch(SetAllJobsError{Message: ErrorMessage(err, "Error fetching jobs")})
	return err
}

// Search sets the query and reloads the public list.
func (l *Loader) Search(ctx context.Context, query string) error {
	l.store.Dispatch(SetSearchedQuery{Query: query})
	return l.LoadJobs(ctx)
}

func (l *Loader) LoadJob(ctx context.Context, id types.ID) error {
	job, err := l.api.Job(ctx, id)
	if err != nil {
		l.store.Dispatch(SetSingleJob{Job: nil})
		return err
	}
	l.store.Dispatch(SetSingleJob{Job: &job})
	return nil
}

func (l *Loader) LoadAdminJob(ctx context.Context, id types.ID) error {
	if id.IsZero() {
		l.store.Dispatch(SetSingleJob{Job: nil})
		return nil
	}
	job, err := l.api.AdminJob(ctx, id)
	if err != nil {
		l.store.Dispatch(SetSingleJob{Job: nil})
		if client.IsStatus(err, http.StatusForbidden) {
			l.notify.Error("You are not authorized to access this job")
		} else {
			l.notify.Error(ErrorMessage(err, "Error loading job details"))
		}
		return err
	}
	l.store.Dispatch(SetSingleJob{Job: &job})
	return nil
}

func (l *Loader) LoadAdminJobs(ctx context.Context) error {
	jobs, err := l.api.AdminJobs(ctx)
	l.store.Dispatch(SetAllAdminJobs{Jobs: jobs})
	return err
}

// LoadSavedJobs is a no-op until a user is logged in.
func (l *Loader) LoadSavedJobs(ctx context.Context) error {
	if l.store.State().Auth.User == nil {
		return nil
	}
	jobs, err := l.api.SavedJobs(ctx)
	l.store.Dispatch(SetSavedJobs{Jobs: jobs})
	return err
}

func (l *Loader) LoadAppliedJobs(ctx context.Context) error {
	applications, err := l.api.AppliedJobs(ctx)
	l.store.Dispatch(SetAllAppliedJobs{Applications: applications})
	return err
}

func (l *Loader) LoadCompanies(ctx context.Context) error {
	companies, err := l.api.Companies(ctx)
	l.store.Dispatch(SetCompanies{Companies: companies})
	return err
}

func (l *Loader) LoadPublicCompanies(ctx context.Context) error {
	companies, err := l.api.PublicCompanies(ctx)
	l.store.Dispatch(SetPublicCompanies{Companies: companies})
	return err
}

func (l *Loader) LoadCompany(ctx context.Context, id types.ID) error {
	company, err := l.api.Company(ctx, id)
	if err != nil {
		l.store.Dispatch(SetSingleCompany{Company: nil})
		return err
	}
	l.store.Dispatch(SetSingleCompany{Company: &company})
	return nil
}

func (l *Loader) LoadApplicants(ctx context.Context, jobID types.ID) error {
	job, err := l.api.Applicants(ctx, jobID)
	if err != nil {
		l.store.Dispatch(SetApplicants{Job: nil})
		return err
	}
	l.store.Dispatch(SetApplicants{Job: &job})
	return nil
}

// ToggleSavedJob flips job in the saved list before the server confirms it.
// On failure the same transition is applied again to revert it.
func (l *Loader) ToggleSavedJob(ctx context.Context, job types.Job) error {
	l.store.Dispatch(ToggleSavedJob{Job: job})

	saved, _, err := l.api.ToggleSavedJob(ctx, job.ID)
	if err != nil {
		l.store.Dispatch(ToggleSavedJob{Job: job})
		l.notify.Error(ErrorMessage(err, "Failed to update saved jobs"))
		return err
	}
	if saved {
		l.notify.Success("Job saved successfully")
	} else {
		l.notify.Success("Job removed from saved jobs")
	}
	return nil
}

// UpdateStatus changes an application's status. Concurrent calls for the
// same application return ErrBusy.
func (l *Loader) UpdateStatus(ctx context.Context, applicationID types.ID, status types.ApplicationStatus) error {
	if !l.processing.Begin(applicationID) {
		return ErrBusy
	}
	defer l.processing.End(applicationID)

	application, err := l.api.UpdateApplicationStatus(ctx, applicationID, status)
	if err != nil {
		l.notify.Error(ErrorMessage(err, "Failed to update status"))
		return err
	}
	l.store.Dispatch(SetApplicationStatus{ApplicationID: applicationID, Status: application.Status})
	l.notify.Success("Status updated to " + StatusLabel(application.Status))
	return nil
}

func (l *Loader) DeleteJob(ctx context.Context, id types.ID) error {
	if !l.processing.Begin(id) {
		return ErrBusy
	}
	defer l.processing.End(id)

	if err := l.api.DeleteJob(ctx, id); err != nil {
		l.notify.Error(ErrorMessage(err, "Failed to delete job"))
		return err
	}
	l.store.Dispatch(RemoveAdminJob{JobID: id})
	l.notify.Success("Job deleted successfully")
	return nil
}

func (l *Loader) DeleteCompany(ctx context.Context, id types.ID) error {
	if !l.processing.Begin(id) {
		return ErrBusy
	}
	defer l.processing.End(id)

	if err := l.api.DeleteCompany(ctx, id); err != nil {
		l.notify.Error(ErrorMessage(err, "Failed to delete company"))
		return err
	}
	l.store.Dispatch(RemoveCompany{CompanyID: id})
	l.notify.Success("Company deleted successfully")
	return nil
}
