package state

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogesh1825/CareerConnect-Job-Portal/client"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

type recordedNotifier struct {
	successes []string
	errors    []string
}

func (n *recordedNotifier) Success(message string) {
	n.successes = append(n.successes, message)
}

func (n *recordedNotifier) Error(message string) {
	n.errors = append(n.errors, message)
}

// fakeAPI implements only what a test sets; other calls panic on the nil
// embedded interface.
type fakeAPI struct {
	API
	jobs        func(keyword string) ([]types.Job, error)
	jobCalls    []string
	toggle      func(id types.ID) (bool, []types.ID, error)
	adminJob    func(id types.ID) (types.Job, error)
	setStatus   func(id types.ID, status types.ApplicationStatus) (types.Application, error)
	savedJobs   func() ([]types.Job, error)
	deleteJob   func(id types.ID) error
	savedCalled int
}

func (f *fakeAPI) Jobs(ctx context.Context, keyword string) ([]types.Job, error) {
	f.jobCalls = append(f.jobCalls, keyword)
	return f.jobs(keyword)
}

func (f *fakeAPI) ToggleSavedJob(ctx context.Context, id types.ID) (bool, []types.ID, error) {
	return f.toggle(id)
}

func (f *fakeAPI) AdminJob(ctx context.Context, id types.ID) (types.Job, error) {
	return f.adminJob(id)
}

func (f *fakeAPI) UpdateApplicationStatus(ctx context.Context, id types.ID, status types.ApplicationStatus) (types.Application, error) {
	return f.setStatus(id, status)
}

func (f *fakeAPI) SavedJobs(ctx context.Context) ([]types.Job, error) {
	f.savedCalled++
	return f.savedJobs()
}

func (f *fakeAPI) DeleteJob(ctx context.Context, id types.ID) error {
	return f.deleteJob(id)
}

func newTestLoader(api API) (*Loader, *Store, *recordedNotifier) {
	store := NewStore()
	notify := &recordedNotifier{}
	return NewLoader(api, store, notify), store, notify
}

func TestReduceToggleSavedJobTwiceRestores(t *testing.T) {
	s := Initial()
	s = Reduce(s, SetSavedJobs{Jobs: []types.Job{{ID: "a"}}})
	before := s.Job.SavedJobs

	once := Reduce(s, ToggleSavedJob{Job: types.Job{ID: "b"}})
	assert.True(t, once.Job.IsSaved("b"))
	assert.Len(t, before, 1)

	twice := Reduce(once, ToggleSavedJob{Job: types.Job{ID: "b"}})
	assert.Equal(t, before, twice.Job.SavedJobs)

	ignored := Reduce(s, ToggleSavedJob{Job: types.Job{}})
	assert.Equal(t, before, ignored.Job.SavedJobs)
}

func TestReduceKeepsCollectionsNonNil(t *testing.T) {
	s := Reduce(Initial(), SetAllJobsError{Message: "boom"})
	s = Reduce(s, SetAllJobs{Jobs: nil})
	assert.NotNil(t, s.Job.AllJobs)
	assert.Empty(t, s.Job.AllJobsError)

	s = Reduce(s, SetCompanies{Companies: nil})
	assert.NotNil(t, s.Company.Companies)
	s = Reduce(s, ResetSavedJobs{})
	assert.NotNil(t, s.Job.SavedJobs)
}

func TestReduceSetApplicationStatus(t *testing.T) {
	job := &types.Job{ID: "j1", Applications: []types.Application{
		{ID: "a1", Status: types.StatusPending},
		{ID: "a2", Status: types.StatusPending},
	}}
	s := Reduce(Initial(), SetApplicants{Job: job})
	s = Reduce(s, SetApplicationStatus{ApplicationID: "a2", Status: types.StatusAccepted})

	assert.Equal(t, types.StatusAccepted, s.Application.Applicants.Applications[1].Status)
	assert.Equal(t, types.StatusPending, s.Application.Applicants.Applications[0].Status)
	assert.Equal(t, types.StatusPending, job.Applications[1].Status)
}

func TestReduceRemoveRows(t *testing.T) {
	s := Reduce(Initial(), SetAllAdminJobs{Jobs: []types.Job{{ID: "a"}, {ID: "b"}}})
	s = Reduce(s, RemoveAdminJob{JobID: "a"})
	require.Len(t, s.Job.AllAdminJobs, 1)
	assert.Equal(t, types.ID("b"), s.Job.AllAdminJobs[0].ID)

	s = Reduce(s, SetCompanies{Companies: []types.Company{{ID: "c1"}}})
	s = Reduce(s, RemoveCompany{CompanyID: "c1"})
	assert.Empty(t, s.Company.Companies)
}

func TestStoreSubscribe(t *testing.T) {
	store := NewStore()
	var seen []string
	unsubscribe := store.Subscribe(func(s State) { seen = append(seen, s.Job.SearchedQuery) })

	store.Dispatch(SetSearchedQuery{Query: "go"})
	unsubscribe()
	store.Dispatch(SetSearchedQuery{Query: "rust"})

	assert.Equal(t, []string{"go"}, seen)
	assert.Equal(t, "rust", store.State().Job.SearchedQuery)
}

func TestFilterJobs(t *testing.T) {
	jobs := []types.Job{
		{ID: "1", Title: "Backend Developer", Location: "Pune"},
		{ID: "2", Title: "Frontend Developer", Location: "Delhi NCR", Description: "React"},
		{ID: "3", Title: "Data Scientist", Location: "pune"},
	}

	ids := func(jobs []types.Job) []types.ID {
		out := []types.ID{}
		for _, j := range jobs {
			out = append(out, j.ID)
		}
		return out
	}

	assert.Equal(t, []types.ID{"1", "2", "3"}, ids(FilterJobs(jobs, "", FilterCriteria{})))
	assert.Equal(t, []types.ID{"2"}, ids(FilterJobs(jobs, "react", FilterCriteria{})))
	assert.Equal(t, []types.ID{"1", "3"}, ids(FilterJobs(jobs, "", FilterCriteria{Location: "PUNE"})))
	assert.Equal(t, []types.ID{"1"}, ids(FilterJobs(jobs, "", FilterCriteria{Location: "Pune", Industry: "backend developer"})))
	assert.Empty(t, FilterJobs(jobs, "", FilterCriteria{Location: "Delhi"}))
}

func TestFilterCompaniesSkipsUnnamed(t *testing.T) {
	companies := []types.Company{{ID: "1", Name: "Acme"}, {ID: "2"}, {ID: "3", Name: "Initech"}}
	assert.Len(t, FilterCompanies(companies, ""), 2)
	assert.Len(t, FilterCompanies(companies, "acm"), 1)

	jobs := []types.Job{{Title: "Backend", Company: &companies[2]}, {Title: "Ops"}}
	assert.Len(t, FilterAdminJobs(jobs, "initech"), 1)
	assert.Len(t, FilterAdminJobs(jobs, "ops"), 1)
}

func TestStatusLabelAndEmptyMessage(t *testing.T) {
	assert.Equal(t, "Pending", StatusLabel(""))
	assert.Equal(t, "Accepted", StatusLabel(types.StatusAccepted))

	assert.Equal(t, "No jobs found", EmptyJobsMessage(FilterCriteria{}))
	assert.Equal(t, "No jobs found in Pune", EmptyJobsMessage(FilterCriteria{Location: "Pune"}))
	assert.Equal(t, "No jobs found for Backend positions in Pune",
		EmptyJobsMessage(FilterCriteria{Location: "Pune", Industry: "Backend"}))
}

func TestErrorMessage(t *testing.T) {
	unreachable := fmt.Errorf("%w: dial tcp", client.ErrServerUnreachable)
	assert.Equal(t, UnreachableMessage, ErrorMessage(unreachable, "fallback"))
	assert.Equal(t, "Job not found", ErrorMessage(&client.APIError{StatusCode: 404, Message: "Job not found"}, "fallback"))
	assert.Equal(t, "fallback", ErrorMessage(errors.New("decode"), "fallback"))
}

func TestLoadJobsFallsBackOnce(t *testing.T) {
	first := &client.APIError{StatusCode: http.StatusInternalServerError, Message: "Error fetching jobs"}
	api := &fakeAPI{jobs: func(keyword string) ([]types.Job, error) {
		if keyword != "" {
			return nil, first
		}
		return []types.Job{{ID: "all"}}, nil
	}}
	loader, store, _ := newTestLoader(api)

	require.NoError(t, loader.Search(context.Background(), "golang"))
	assert.Equal(t, []string{"golang", ""}, api.jobCalls)
	assert.Equal(t, []types.Job{{ID: "all"}}, store.State().Job.AllJobs)
	assert.Equal(t, "golang", store.State().Job.SearchedQuery)
}

func TestLoadJobsEmptiesListWhenFallbackFails(t *testing.T) {
	first := &client.APIError{StatusCode: http.StatusInternalServerError, Message: "Error fetching jobs"}
	api := &fakeAPI{jobs: func(keyword string) ([]types.Job, error) {
		if keyword != "" {
			return nil, first
		}
		return nil, fmt.Errorf("%w: refused", client.ErrServerUnreachable)
	}}
	loader, store, _ := newTestLoader(api)
	store.Dispatch(SetAllJobs{Jobs: []types.Job{{ID: "stale"}}})

	err := loader.Search(context.Background(), "golang")
	assert.Equal(t, first, err)
	assert.Len(t, api.jobCalls, 2)
	assert.Empty(t, store.State().Job.AllJobs)
	assert.Equal(t, "Error fetching jobs", store.State().Job.AllJobsError)
}

func TestToggleSavedJobRollsBack(t *testing.T) {
	api := &fakeAPI{toggle: func(id types.ID) (bool, []types.ID, error) {
		return false, nil, fmt.Errorf("%w: refused", client.ErrServerUnreachable)
	}}
	loader, store, notify := newTestLoader(api)

	err := loader.ToggleSavedJob(context.Background(), types.Job{ID: "j1"})
	assert.ErrorIs(t, err, client.ErrServerUnreachable)
	assert.Empty(t, store.State().Job.SavedJobs)
	assert.Equal(t, []string{UnreachableMessage}, notify.errors)
}

func TestToggleSavedJobKeepsOptimisticState(t *testing.T) {
	api := &fakeAPI{toggle: func(id types.ID) (bool, []types.ID, error) {
		return true, []types.ID{id}, nil
	}}
	loader, store, notify := newTestLoader(api)

	require.NoError(t, loader.ToggleSavedJob(context.Background(), types.Job{ID: "j1"}))
	assert.True(t, store.State().Job.IsSaved("j1"))
	assert.Equal(t, []string{"Job saved successfully"}, notify.successes)
}

func TestLoadAdminJobForbidden(t *testing.T) {
	api := &fakeAPI{adminJob: func(id types.ID) (types.Job, error) {
		return types.Job{}, &client.APIError{StatusCode: http.StatusForbidden, Message: "nope"}
	}}
	loader, store, notify := newTestLoader(api)
	store.Dispatch(SetSingleJob{Job: &types.Job{ID: "old"}})

	err := loader.LoadAdminJob(context.Background(), "j1")
	assert.True(t, client.IsStatus(err, http.StatusForbidden))
	assert.Nil(t, store.State().Job.SingleJob)
	assert.Equal(t, []string{"You are not authorized to access this job"}, notify.errors)

	require.NoError(t, loader.LoadAdminJob(context.Background(), ""))
}

func TestLoadSavedJobsNeedsUser(t *testing.T) {
	api := &fakeAPI{savedJobs: func() ([]types.Job, error) {
		return nil, errors.New("boom")
	}}
	loader, store, _ := newTestLoader(api)

	require.NoError(t, loader.LoadSavedJobs(context.Background()))
	assert.Zero(t, api.savedCalled)

	store.Dispatch(SetUser{User: &types.User{ID: "u1"}})
	store.Dispatch(SetSavedJobs{Jobs: []types.Job{{ID: "stale"}}})
	assert.Error(t, loader.LoadSavedJobs(context.Background()))
	assert.Equal(t, 1, api.savedCalled)
	assert.Empty(t, store.State().Job.SavedJobs)
}

func TestUpdateStatusRejectsConcurrentCalls(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &fakeAPI{setStatus: func(id types.ID, status types.ApplicationStatus) (types.Application, error) {
		close(started)
		<-release
		return types.Application{ID: id, Status: status}, nil
	}}
	loader, store, notify := newTestLoader(api)
	store.Dispatch(SetApplicants{Job: &types.Job{ID: "j1", Applications: []types.Application{{ID: "a1"}}}})

	done := make(chan error, 1)
	go func() {
		done <- loader.UpdateStatus(context.Background(), "a1", types.StatusAccepted)
	}()
	<-started

	assert.True(t, loader.Processing().Active("a1"))
	assert.ErrorIs(t, loader.UpdateStatus(context.Background(), "a1", types.StatusRejected), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, loader.Processing().Active("a1"))
	assert.Equal(t, types.StatusAccepted, store.State().Application.Applicants.Applications[0].Status)
	assert.Equal(t, []string{"Status updated to Accepted"}, notify.successes)
}

func TestDeleteJobRemovesRow(t *testing.T) {
	api := &fakeAPI{deleteJob: func(id types.ID) error { return nil }}
	loader, store, _ := newTestLoader(api)
	store.Dispatch(SetAllAdminJobs{Jobs: []types.Job{{ID: "a"}, {ID: "b"}}})

	require.NoError(t, loader.DeleteJob(context.Background(), "a"))
	require.Len(t, store.State().Job.AllAdminJobs, 1)
	assert.Equal(t, types.ID("b"), store.State().Job.AllAdminJobs[0].ID)
}
