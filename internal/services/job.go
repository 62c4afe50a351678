package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// DefaultJobListTimeout bounds the public job list when none is configured.
const DefaultJobListTimeout = 5 * time.Second

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Get(ctx context.Context, id types.ID) (types.Job, error)
	List(ctx context.Context, keyword string) ([]types.Job, error)
	ListByCreator(ctx context.Context, userID types.ID) ([]types.Job, error)
	ListByIDs(ctx context.Context, ids []types.ID) ([]types.Job, error)
	Create(ctx context.Context, job types.Job) (types.Job, error)
	Update(ctx context.Context, job types.Job) (types.Job, error)
	Delete(ctx context.Context, id types.ID) error
}

// JobService encapsulates job use-cases.
type JobService struct {
	repo         JobRepository
	companies    CompanyRepository
	applications ApplicationRepository
	events       EventPublisher
	listTimeout  time.Duration
}

func NewJobService(
	repo JobRepository,
	companies CompanyRepository,
	applications ApplicationRepository,
	events EventPublisher,
	listTimeout time.Duration,
) *JobService {
	if listTimeout <= 0 {
		listTimeout = DefaultJobListTimeout
	}
	return &JobService{
		repo:         repo,
		companies:    companies,
		applications: applications,
		events:       events,
		listTimeout:  listTimeout,
	}
}

// JobPosting is the input of Post.
type JobPosting struct {
	Title           string
	Description     string
	Requirements    string
	Salary          float64
	SalaryType      types.SalaryType
	Location        string
	JobType         string
	ExperienceLevel string
	Position        int
	CompanyID       types.ID
}

// JobUpdate carries the fields of a job update. Title, Description, Salary
// and Location are always applied; the rest keep their current value when
// zero. Requirements are replaced only when RequirementsSet is true.
type JobUpdate struct {
	Title           string
	Description     string
	Requirements    []string
	RequirementsSet bool
	Salary          float64
	SalaryType      types.SalaryType
	Location        string
	JobType         string
	ExperienceLevel string
	Position        int
	CompanyID       types.ID
}

// Post creates a job for an existing company.
func (s *JobService) Post(ctx context.Context, userID types.ID, posting JobPosting) (types.Job, error) {
	if !posting.SalaryType.Valid() {
		return types.Job{}, ErrInvalidSalaryType
	}
	company, err := s.companies.Get(ctx, posting.CompanyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Job{}, ErrCompanyNotFound
		}
		return types.Job{}, err
	}

	job, err := s.repo.Create(ctx, types.Job{
		Title:           posting.Title,
		Description:     posting.Description,
		Requirements:    SplitRequirements(posting.Requirements),
		Salary:          posting.Salary,
		SalaryType:      posting.SalaryType,
		Location:        posting.Location,
		JobType:         posting.JobType,
		ExperienceLevel: posting.ExperienceLevel,
		Position:        posting.Position,
		CompanyID:       company.ID,
		CreatedBy:       userID,
	})
	if err != nil {
		return types.Job{}, err
	}
	job.Applications = []types.Application{}

	publish(ctx, s.events, types.Event{
		Type:      types.EventJobPosted,
		ActorID:   userID,
		JobID:     job.ID,
		CompanyID: job.CompanyID,
	})
	return job, nil
}

// List returns the public job list with companies, newest first. The query
// gets a single bounded wait; on expiry ErrListTimeout is returned.
func (s *JobService) List(ctx context.Context, keyword string) ([]types.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, s.listTimeout)
	defer cancel()

	type result struct {
		jobs []types.Job
		err  error
	}
	done := make(chan result, 1)
	go func() {
		jobs, err := s.repo.List(ctx, keyword)
		if err == nil {
			err = attachCompanies(ctx, s.companies, jobs)
		}
		done <- result{jobs: jobs, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && errors.Is(res.err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrListTimeout, res.err)
		}
		return res.jobs, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrListTimeout, ctx.Err())
	}
}

// Get returns a job with its applications.
func (s *JobService) Get(ctx context.Context, id types.ID) (types.Job, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Job{}, err
	}
	if job.Applications, err = s.applications.ListByJob(ctx, job.ID); err != nil {
		return types.Job{}, err
	}
	return job, nil
}

// GetOwned returns a job owned by userID with its applications and company.
func (s *JobService) GetOwned(ctx context.Context, id, userID types.ID) (types.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return types.Job{}, err
	}
	if !job.OwnedBy(userID) {
		return types.Job{}, ErrForbidden
	}
	if err := attachCompany(ctx, s.companies, &job); err != nil {
		return types.Job{}, err
	}
	return job, nil
}

// ListByCreator returns the jobs posted by userID with their companies.
func (s *JobService) ListByCreator(ctx context.Context, userID types.ID) ([]types.Job, error) {
	jobs, err := s.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := attachCompanies(ctx, s.companies, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) Update(ctx context.Context, id, userID types.ID, update JobUpdate) (types.Job, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Job{}, err
	}
	if !job.OwnedBy(userID) {
		return types.Job{}, ErrForbidden
	}
	if update.SalaryType != "" && !update.SalaryType.Valid() {
		return types.Job{}, ErrInvalidSalaryType
	}

	job.Title = update.Title
	job.Description = update.Description
	job.Salary = update.Salary
	job.Location = update.Location
	if update.RequirementsSet {
		job.Requirements = update.Requirements
	}
	if update.SalaryType != "" {
		job.SalaryType = update.SalaryType
	}
	if update.JobType != "" {
		job.JobType = update.JobType
	}
	if update.ExperienceLevel != "" {
		job.ExperienceLevel = update.ExperienceLevel
	}
	if update.Position > 0 {
		job.Position = update.Position
	}
	if !update.CompanyID.IsZero() && update.CompanyID != job.CompanyID {
		if _, err := s.companies.Get(ctx, update.CompanyID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return types.Job{}, ErrCompanyNotFound
			}
			return types.Job{}, err
		}
		job.CompanyID = update.CompanyID
	}

	return s.repo.Update(ctx, job)
}

// Delete removes an owned job. Its applications are left in place.
func (s *JobService) Delete(ctx context.Context, id, userID types.ID) error {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !job.OwnedBy(userID) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// attachCompanies populates Job.Company, loading each company once. Jobs
// whose company no longer exists keep a nil Company.
func attachCompanies(ctx context.Context, companies CompanyRepository, jobs []types.Job) error {
	loaded := make(map[types.ID]*types.Company)
	for i := range jobs {
		id := jobs[i].CompanyID
		company, ok := loaded[id]
		if !ok {
			found, err := companies.Get(ctx, id)
			switch {
			case err == nil:
				company = &found
			case errors.Is(err, store.ErrNotFound):
			default:
				return err
			}
			loaded[id] = company
		}
		jobs[i].Company = company
	}
	return nil
}

func attachCompany(ctx context.Context, companies CompanyRepository, job *types.Job) error {
	jobs := []types.Job{*job}
	if err := attachCompanies(ctx, companies, jobs); err != nil {
		return err
	}
	*job = jobs[0]
	return nil
}
