package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// Memory is a process-local store for development and tests. It enforces the
// same uniqueness rules as the database-backed stores.
type Memory struct {
	mu           sync.RWMutex
	users        []types.User
	companies    []types.Company
	jobs         []types.Job
	applications []types.Application
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Users() *MemoryUserRepository {
	return &MemoryUserRepository{m: m}
}

func (m *Memory) Companies() *MemoryCompanyRepository {
	return &MemoryCompanyRepository{m: m}
}

func (m *Memory) Jobs() *MemoryJobRepository {
	return &MemoryJobRepository{m: m}
}

func (m *Memory) Applications() *MemoryApplicationRepository {
	return &MemoryApplicationRepository{m: m}
}

func indexOf[T any](items []T, match func(T) bool) int {
	return slices.IndexFunc(items, match)
}

// newestFirstCopy returns matching items, most recently inserted first.
func newestFirstCopy[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0)
	for i := len(items) - 1; i >= 0; i-- {
		if match(items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

type MemoryUserRepository struct{ m *Memory }

func (r *MemoryUserRepository) GetByID(ctx context.Context, id types.ID) (types.User, error) {
	return r.find(func(u types.User) bool { return u.ID == id })
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return r.find(func(u types.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) find(match func(types.User) bool) (types.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	i := indexOf(r.m.users, match)
	if i < 0 {
		return types.User{}, ErrNotFound
	}
	return cloneUser(r.m.users[i]), nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if indexOf(r.m.users, func(u types.User) bool { return u.Email == user.Email }) >= 0 {
		return types.User{}, ErrDuplicate
	}
	now := time.Now().UTC()
	user.ID = newUUID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.m.users = append(r.m.users, cloneUser(user))
	return cloneUser(user), nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user types.User) (types.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	i := indexOf(r.m.users, func(u types.User) bool { return u.ID == user.ID })
	if i < 0 {
		return types.User{}, ErrNotFound
	}
	if indexOf(r.m.users, func(u types.User) bool { return u.Email == user.Email && u.ID != user.ID }) >= 0 {
		return types.User{}, ErrDuplicate
	}
	current := r.m.users[i]
	user.PasswordHash = current.PasswordHash
	user.Role = current.Role
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.m.users[i] = cloneUser(user)
	return cloneUser(user), nil
}

func cloneUser(u types.User) types.User {
	u.Profile.Skills = slices.Clone(u.Profile.Skills)
	if u.Profile.Skills == nil {
		u.Profile.Skills = []string{}
	}
	u.SavedJobs = slices.Clone(u.SavedJobs)
	if u.SavedJobs == nil {
		u.SavedJobs = []types.ID{}
	}
	return u
}

type MemoryCompanyRepository struct{ m *Memory }

func (r *MemoryCompanyRepository) Get(ctx context.Context, id types.ID) (types.Company, error) {
	return r.find(func(c types.Company) bool { return c.ID == id })
}

func (r *MemoryCompanyRepository) GetByName(ctx context.Context, name string) (types.Company, error) {
	return r.find(func(c types.Company) bool { return c.Name == name })
}

func (r *MemoryCompanyRepository) find(match func(types.Company) bool) (types.Company, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	i := indexOf(r.m.companies, match)
	if i < 0 {
		return types.Company{}, ErrNotFound
	}
	return r.m.companies[i], nil
}

func (r *MemoryCompanyRepository) ListByUser(ctx context.Context, userID types.ID) ([]types.Company, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []types.Company{}
	for _, c := range r.m.companies {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MemoryCompanyRepository) List(ctx context.Context) ([]types.Company, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return append([]types.Company{}, r.m.companies...), nil
}

func (r *MemoryCompanyRepository) Create(ctx context.Context, company types.Company) (types.Company, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if indexOf(r.m.companies, func(c types.Company) bool { return c.Name == company.Name }) >= 0 {
		return types.Company{}, ErrDuplicate
	}
	now := time.Now().UTC()
	company.ID = newUUID()
	company.CreatedAt = now
	company.UpdatedAt = now
	r.m.companies = append(r.m.companies, company)
	return company, nil
}

func (r *MemoryCompanyRepository) Update(ctx context.Context, company types.Company) (types.Company, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	i := indexOf(r.m.companies, func(c types.Company) bool { return c.ID == company.ID })
	if i < 0 {
		return types.Company{}, ErrNotFound
	}
	if indexOf(r.m.companies, func(c types.Company) bool { return c.Name == company.Name && c.ID != company.ID }) >= 0 {
		return types.Company{}, ErrDuplicate
	}
	company.UserID = r.m.companies[i].UserID
	company.CreatedAt = r.m.companies[i].CreatedAt
	company.UpdatedAt = time.Now().UTC()
	r.m.companies[i] = company
	return company, nil
}

func (r *MemoryCompanyRepository) Delete(ctx context.Context, id types.ID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	i := indexOf(r.m.companies, func(c types.Company) bool { return c.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	r.m.companies = slices.Delete(r.m.companies, i, i+1)
	return nil
}

type MemoryJobRepository struct{ m *Memory }

func (r *MemoryJobRepository) Get(ctx context.Context, id types.ID) (types.Job, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	i := indexOf(r.m.jobs, func(j types.Job) bool { return j.ID == id })
	if i < 0 {
		return types.Job{}, ErrNotFound
	}
	return cloneJob(r.m.jobs[i]), nil
}

func (r *MemoryJobRepository) List(ctx context.Context, keyword string) ([]types.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	jobs := newestFirstCopy(r.m.jobs, func(j types.Job) bool { return MatchesKeyword(j, keyword) })
	return cloneJobs(jobs), nil
}

func (r *MemoryJobRepository) ListByCreator(ctx context.Context, userID types.ID) ([]types.Job, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	jobs := newestFirstCopy(r.m.jobs, func(j types.Job) bool { return j.CreatedBy == userID })
	return cloneJobs(jobs), nil
}

func (r *MemoryJobRepository) ListByIDs(ctx context.Context, ids []types.ID) ([]types.Job, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	jobs := newestFirstCopy(r.m.jobs, func(j types.Job) bool { return slices.Contains(ids, j.ID) })
	return cloneJobs(orderByIDs(jobs, ids)), nil
}

func (r *MemoryJobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := time.Now().UTC()
	job.ID = newUUID()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.Applications = nil
	job.Company = nil
	r.m.jobs = append(r.m.jobs, cloneJob(job))
	return cloneJob(job), nil
}

func (r *MemoryJobRepository) Update(ctx context.Context, job types.Job) (types.Job, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	i := indexOf(r.m.jobs, func(j types.Job) bool { return j.ID == job.ID })
	if i < 0 {
		return types.Job{}, ErrNotFound
	}
	job.CreatedBy = r.m.jobs[i].CreatedBy
	job.CreatedAt = r.m.jobs[i].CreatedAt
	job.UpdatedAt = time.Now().UTC()
	job.Applications = nil
	job.Company = nil
	r.m.jobs[i] = cloneJob(job)
	return cloneJob(job), nil
}

func (r *MemoryJobRepository) Delete(ctx context.Context, id types.ID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	i := indexOf(r.m.jobs, func(j types.Job) bool { return j.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	r.m.jobs = slices.Delete(r.m.jobs, i, i+1)
	return nil
}

func cloneJob(j types.Job) types.Job {
	j.Requirements = slices.Clone(j.Requirements)
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	return j
}

func cloneJobs(jobs []types.Job) []types.Job {
	for i := range jobs {
		jobs[i] = cloneJob(jobs[i])
	}
	return jobs
}

type MemoryApplicationRepository struct{ m *Memory }

func (r *MemoryApplicationRepository) Get(ctx context.Context, id types.ID) (types.Application, error) {
	return r.find(func(a types.Application) bool { return a.ID == id })
}

func (r *MemoryApplicationRepository) GetByJobAndApplicant(ctx context.Context, jobID, applicantID types.ID) (types.Application, error) {
	return r.find(func(a types.Application) bool { return a.JobID == jobID && a.ApplicantID == applicantID })
}

func (r *MemoryApplicationRepository) find(match func(types.Application) bool) (types.Application, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	i := indexOf(r.m.applications, match)
	if i < 0 {
		return types.Application{}, ErrNotFound
	}
	return r.m.applications[i], nil
}

func (r *MemoryApplicationRepository) ListByJob(ctx context.Context, jobID types.ID) ([]types.Application, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return newestFirstCopy(r.m.applications, func(a types.Application) bool { return a.JobID == jobID }), nil
}

func (r *MemoryApplicationRepository) ListByApplicant(ctx context.Context, applicantID types.ID) ([]types.Application, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return newestFirstCopy(r.m.applications, func(a types.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *MemoryApplicationRepository) Create(ctx context.Context, application types.Application) (types.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	exists := indexOf(r.m.applications, func(a types.Application) bool {
		return a.JobID == application.JobID && a.ApplicantID == application.ApplicantID
	})
	if exists >= 0 {
		return types.Application{}, ErrDuplicate
	}
	now := time.Now().UTC()
	application.ID = newUUID()
	application.CreatedAt = now
	application.UpdatedAt = now
	if application.Status == "" {
		application.Status = types.StatusPending
	}
	application.Applicant = nil
	application.Job = nil
	r.m.applications = append(r.m.applications, application)
	return application, nil
}

func (r *MemoryApplicationRepository) UpdateStatus(ctx context.Context, id types.ID, status types.ApplicationStatus) (types.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	i := indexOf(r.m.applications, func(a types.Application) bool { return a.ID == id })
	if i < 0 {
		return types.Application{}, ErrNotFound
	}
	r.m.applications[i].Status = status
	r.m.applications[i].UpdatedAt = time.Now().UTC()
	return r.m.applications[i], nil
}
