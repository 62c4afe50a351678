package services

import (
	"context"
	"errors"

	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Get(ctx context.Context, id types.ID) (types.Application, error)
	GetByJobAndApplicant(ctx context.Context, jobID, applicantID types.ID) (types.Application, error)
	ListByJob(ctx context.Context, jobID types.ID) ([]types.Application, error)
	ListByApplicant(ctx context.Context, applicantID types.ID) ([]types.Application, error)
	Create(ctx context.Context, application types.Application) (types.Application, error)
	UpdateStatus(ctx context.Context, id types.ID, status types.ApplicationStatus) (types.Application, error)
}

// ApplicationService encapsulates application use-cases.
type ApplicationService struct {
	repo      ApplicationRepository
	jobs      JobRepository
	users     UserRepository
	companies CompanyRepository
	events    EventPublisher
}

func NewApplicationService(
	repo ApplicationRepository,
	jobs JobRepository,
	users UserRepository,
	companies CompanyRepository,
	events EventPublisher,
) *ApplicationService {
	return &ApplicationService{
		repo:      repo,
		jobs:      jobs,
		users:     users,
		companies: companies,
		events:    events,
	}
}

// Apply records userID's application to jobID. A user applies to a job at
// most once.
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID types.ID) (types.Application, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return types.Application{}, err
	}

	if _, err := s.repo.GetByJobAndApplicant(ctx, job.ID, userID); err == nil {
		return types.Application{}, ErrAlreadyApplied
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.Application{}, err
	}

	application, err := s.repo.Create(ctx, types.Application{
		JobID:       job.ID,
		ApplicantID: userID,
		Status:      types.StatusPending,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.Application{}, ErrAlreadyApplied
		}
		return types.Application{}, err
	}

	publish(ctx, s.events, types.Event{
		Type:          types.EventApplicationSubmitted,
		ActorID:       userID,
		JobID:         job.ID,
		CompanyID:     job.CompanyID,
		ApplicationID: application.ID,
		Status:        application.Status,
	})
	return application, nil
}

// ListByApplicant returns the user's applications, each with its job and
// the job's company.
func (s *ApplicationService) ListByApplicant(ctx context.Context, userID types.ID) ([]types.Application, error) {
	applications, err := s.repo.ListByApplicant(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range applications {
		job, err := s.jobs.Get(ctx, applications[i].JobID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := attachCompany(ctx, s.companies, &job); err != nil {
			return nil, err
		}
		applications[i].Job = &job
	}
	return applications, nil
}

// Applicants returns an owned job with its applications and their applicants.
func (s *ApplicationService) Applicants(ctx context.Context, jobID, userID types.ID) (types.Job, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return types.Job{}, err
	}
	if !job.OwnedBy(userID) {
		return types.Job{}, ErrForbidden
	}

	applications, err := s.repo.ListByJob(ctx, job.ID)
	if err != nil {
		return types.Job{}, err
	}
	for i := range applications {
		applicant, err := s.users.GetByID(ctx, applications[i].ApplicantID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return types.Job{}, err
		}
		applications[i].Applicant = &applicant
	}
	job.Applications = applications
	return job, nil
}

// UpdateStatus sets an application's status on behalf of the job owner.
// Only accepted and rejected may be set; raw is matched case-insensitively.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, userID types.ID, raw string) (types.Application, error) {
	status, ok := types.ParseApplicationStatus(raw)
	if !ok || status == types.StatusPending {
		return types.Application{}, ErrInvalidStatus
	}

	application, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Application{}, err
	}
	job, err := s.jobs.Get(ctx, application.JobID)
	if err != nil {
		return types.Application{}, err
	}
	if !job.OwnedBy(userID) {
		return types.Application{}, ErrForbidden
	}

	updated, err := s.repo.UpdateStatus(ctx, application.ID, status)
	if err != nil {
		return types.Application{}, err
	}

	publish(ctx, s.events, types.Event{
		Type:          types.EventApplicationStatusChanged,
		ActorID:       userID,
		JobID:         job.ID,
		CompanyID:     job.CompanyID,
		ApplicationID: updated.ID,
		Status:        updated.Status,
	})
	return updated, nil
}
