package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

const companyColumns = `id, name, description, website, location, logo, user_id, created_at, updated_at`

// CompanyRepository handles persistence for companies.
type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Get(ctx context.Context, id types.ID) (types.Company, error) {
	key, err := parseUUID(id)
	if err != nil {
		return types.Company{}, err
	}
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.db.QueryRowContext(ctx, query, key))
}

func (r *CompanyRepository) GetByName(ctx context.Context, name string) (types.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE name = $1`
	return scanCompany(r.db.QueryRowContext(ctx, query, name))
}

// ListByUser returns the companies registered by userID, oldest first.
func (r *CompanyRepository) ListByUser(ctx context.Context, userID types.ID) ([]types.Company, error) {
	key, err := parseUUID(userID)
	if err != nil {
		return []types.Company{}, nil
	}
	query := `SELECT ` + companyColumns + ` FROM companies WHERE user_id = $1 ORDER BY created_at`
	return r.list(ctx, query, key)
}

func (r *CompanyRepository) List(ctx context.Context) ([]types.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at`
	return r.list(ctx, query)
}

func (r *CompanyRepository) list(ctx context.Context, query string, args ...any) ([]types.Company, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []types.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) Create(ctx context.Context, company types.Company) (types.Company, error) {
	now := time.Now().UTC()
	company.ID = newUUID()
	company.CreatedAt = now
	company.UpdatedAt = now

	const query = `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		company.ID.String(),
		company.Name,
		company.Description,
		company.Website,
		company.Location,
		company.Logo,
		company.UserID.String(),
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		return types.Company{}, mapPostgresError(err)
	}
	return company, nil
}

func (r *CompanyRepository) Update(ctx context.Context, company types.Company) (types.Company, error) {
	key, err := parseUUID(company.ID)
	if err != nil {
		return types.Company{}, err
	}
	company.UpdatedAt = time.Now().UTC()

	const query = `
		UPDATE companies
		SET name = $1, description = $2, website = $3, location = $4, logo = $5, updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		company.Name,
		company.Description,
		company.Website,
		company.Location,
		company.Logo,
		company.UpdatedAt,
		key,
	)
	if err != nil {
		return types.Company{}, mapPostgresError(err)
	}
	if err := expectAffected(result); err != nil {
		return types.Company{}, err
	}
	return company, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id types.ID) error {
	key, err := parseUUID(id)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, key)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func scanCompany(row scanner) (types.Company, error) {
	var company types.Company
	err := row.Scan(
		&company.ID,
		&company.Name,
		&company.Description,
		&company.Website,
		&company.Location,
		&company.Logo,
		&company.UserID,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Company{}, ErrNotFound
		}
		return types.Company{}, err
	}
	return company, nil
}

func expectAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
