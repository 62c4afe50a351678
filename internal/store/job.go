package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

const jobColumns = `id, title, description, requirements, salary, salary_type, location,
	job_type, experience_level, position, company_id, created_by, created_at, updated_at`

// JobRepository handles persistence for jobs.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Get(ctx context.Context, id types.ID) (types.Job, error) {
	key, err := parseUUID(id)
	if err != nil {
		return types.Job{}, err
	}
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(r.db.QueryRowContext(ctx, query, key))
}

// List returns jobs whose title, description or location contains keyword,
// newest first.
// An empty keyword matches every job.
func (r *JobRepository) List(ctx context.Context, keyword string) ([]types.Job, error) {
	if keyword == "" {
		query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`
		return r.list(ctx, query)
	}
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE title ILIKE $1 ESCAPE '\'
			OR description ILIKE $1 ESCAPE '\'
			OR location ILIKE $1 ESCAPE '\'
		ORDER BY created_at DESC`
	return r.list(ctx, query, likePattern(keyword))
}

func (r *JobRepository) ListByCreator(ctx context.Context, userID types.ID) ([]types.Job, error) {
	key, err := parseUUID(userID)
	if err != nil {
		return []types.Job{}, nil
	}
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE created_by = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, key)
}

// ListByIDs returns the jobs in ids, in the order given. Unknown ids are skipped.
func (r *JobRepository) ListByIDs(ctx context.Context, ids []types.ID) ([]types.Job, error) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if key, err := parseUUID(id); err == nil {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return []types.Job{}, nil
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ANY($1)`
	jobs, err := r.list(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	return orderByIDs(jobs, ids), nil
}

func (r *JobRepository) list(ctx context.Context, query string, args ...any) ([]types.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []types.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	now := time.Now().UTC()
	job.ID = newUUID()
	job.CreatedAt = now
	job.UpdatedAt = now

	requirementsJSON, err := marshalList(job.Requirements)
	if err != nil {
		return types.Job{}, err
	}

	const query = `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.db.ExecContext(
		ctx,
		query,
		job.ID.String(),
		job.Title,
		job.Description,
		requirementsJSON,
		job.Salary,
		string(job.SalaryType),
		job.Location,
		job.JobType,
		job.ExperienceLevel,
		job.Position,
		job.CompanyID.String(),
		job.CreatedBy.String(),
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return types.Job{}, mapPostgresError(err)
	}
	return job, nil
}

func (r *JobRepository) Update(ctx context.Context, job types.Job) (types.Job, error) {
	key, err := parseUUID(job.ID)
	if err != nil {
		return types.Job{}, err
	}
	job.UpdatedAt = time.Now().UTC()

	requirementsJSON, err := marshalList(job.Requirements)
	if err != nil {
		return types.Job{}, err
	}

	const query = `
		UPDATE jobs
		SET title = $1,
			description = $2,
			requirements = $3,
			salary = $4,
			salary_type = $5,
			location = $6,
			job_type = $7,
			experience_level = $8,
			position = $9,
			company_id = $10,
			updated_at = $11
		WHERE id = $12`
	result, err := r.db.ExecContext(
		ctx,
		query,
		job.Title,
		job.Description,
		requirementsJSON,
		job.Salary,
		string(job.SalaryType),
		job.Location,
		job.JobType,
		job.ExperienceLevel,
		job.Position,
		job.CompanyID.String(),
		job.UpdatedAt,
		key,
	)
	if err != nil {
		return types.Job{}, mapPostgresError(err)
	}
	if err := expectAffected(result); err != nil {
		return types.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) Delete(ctx context.Context, id types.ID) error {
	key, err := parseUUID(id)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, key)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func scanJob(row scanner) (types.Job, error) {
	var job types.Job
	var salaryType string
	var requirementsJSON []byte
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&requirementsJSON,
		&job.Salary,
		&salaryType,
		&job.Location,
		&job.JobType,
		&job.ExperienceLevel,
		&job.Position,
		&job.CompanyID,
		&job.CreatedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Job{}, ErrNotFound
		}
		return types.Job{}, err
	}

	job.SalaryType = types.SalaryType(salaryType)
	job.Requirements = unmarshalList[string](requirementsJSON)
	return job, nil
}

func orderByIDs(jobs []types.Job, ids []types.ID) []types.Job {
	byID := make(map[types.ID]types.Job, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}
	ordered := make([]types.Job, 0, len(jobs))
	for _, id := range ids {
		if job, ok := byID[id]; ok {
			ordered = append(ordered, job)
			delete(byID, id)
		}
	}
	return ordered
}
