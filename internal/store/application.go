package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

const applicationColumns = `id, job_id, applicant_id, status, created_at, updated_at`

// ApplicationRepository handles persistence for applications.
type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Get(ctx context.Context, id types.ID) (types.Application, error) {
	key, err := parseUUID(id)
	if err != nil {
		return types.Application{}, err
	}
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return scanApplication(r.db.QueryRowContext(ctx, query, key))
}

func (r *ApplicationRepository) GetByJobAndApplicant(ctx context.Context, jobID, applicantID types.ID) (types.Application, error) {
	jobKey, err := parseUUID(jobID)
	if err != nil {
		return types.Application{}, err
	}
	applicantKey, err := parseUUID(applicantID)
	if err != nil {
		return types.Application{}, err
	}
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 AND applicant_id = $2`
	return scanApplication(r.db.QueryRowContext(ctx, query, jobKey, applicantKey))
}

// ListByJob returns the applications for a job, newest first.
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID types.ID) ([]types.Application, error) {
	key, err := parseUUID(jobID)
	if err != nil {
		return []types.Application{}, nil
	}
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, key)
}

// ListByApplicant returns the applications submitted by a user, newest first.
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID types.ID) ([]types.Application, error) {
	key, err := parseUUID(applicantID)
	if err != nil {
		return []types.Application{}, nil
	}
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE applicant_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, key)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]types.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []types.Application{}
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return applications, nil
}

// Create inserts an application. A second application by the same user for
// the same job yields ErrDuplicate.
func (r *ApplicationRepository) Create(ctx context.Context, application types.Application) (types.Application, error) {
	now := time.Now().UTC()
	application.ID = newUUID()
	application.CreatedAt = now
	application.UpdatedAt = now
	if application.Status == "" {
		application.Status = types.StatusPending
	}

	const query = `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		application.ID.String(),
		application.JobID.String(),
		application.ApplicantID.String(),
		string(application.Status),
		application.CreatedAt,
		application.UpdatedAt,
	)
	if err != nil {
		return types.Application{}, mapPostgresError(err)
	}
	return application, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id types.ID, status types.ApplicationStatus) (types.Application, error) {
	key, err := parseUUID(id)
	if err != nil {
		return types.Application{}, err
	}
	query := `
		UPDATE applications SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + applicationColumns
	return scanApplication(r.db.QueryRowContext(ctx, query, string(status), time.Now().UTC(), key))
}

func scanApplication(row scanner) (types.Application, error) {
	var application types.Application
	var status string
	err := row.Scan(
		&application.ID,
		&application.JobID,
		&application.ApplicantID,
		&status,
		&application.CreatedAt,
		&application.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Application{}, ErrNotFound
		}
		return types.Application{}, err
	}
	application.Status = types.ApplicationStatus(status)
	return application, nil
}
