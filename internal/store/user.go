package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

const userColumns = `id, fullname, email, phone_number, password_hash, role, bio, skills,
	resume, resume_original_name, profile_photo, saved_jobs, created_at, updated_at`

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id types.ID) (types.User, error) {
	key, err := parseUUID(id)
	if err != nil {
		return types.User{}, err
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, key))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now().UTC()
	user.ID = newUUID()
	user.CreatedAt = now
	user.UpdatedAt = now

	skillsJSON, err := marshalList(user.Profile.Skills)
	if err != nil {
		return types.User{}, err
	}
	savedJSON, err := marshalList(user.SavedJobs)
	if err != nil {
		return types.User{}, err
	}

	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.db.ExecContext(
		ctx,
		query,
		user.ID.String(),
		user.Fullname,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		string(user.Role),
		user.Profile.Bio,
		skillsJSON,
		user.Profile.Resume,
		user.Profile.ResumeOriginalName,
		user.Profile.ProfilePhoto,
		savedJSON,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return types.User{}, mapPostgresError(err)
	}
	return user, nil
}

// Update persists the mutable user fields. Role and password are immutable here.
func (r *UserRepository) Update(ctx context.Context, user types.User) (types.User, error) {
	key, err := parseUUID(user.ID)
	if err != nil {
		return types.User{}, err
	}
	user.UpdatedAt = time.Now().UTC()

	skillsJSON, err := marshalList(user.Profile.Skills)
	if err != nil {
		return types.User{}, err
	}
	savedJSON, err := marshalList(user.SavedJobs)
	if err != nil {
		return types.User{}, err
	}

	const query = `
		UPDATE users
		SET fullname = $1,
			email = $2,
			phone_number = $3,
			bio = $4,
			skills = $5,
			resume = $6,
			resume_original_name = $7,
			profile_photo = $8,
			saved_jobs = $9,
			updated_at = $10
		WHERE id = $11`
	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Fullname,
		user.Email,
		user.PhoneNumber,
		user.Profile.Bio,
		skillsJSON,
		user.Profile.Resume,
		user.Profile.ResumeOriginalName,
		user.Profile.ProfilePhoto,
		savedJSON,
		user.UpdatedAt,
		key,
	)
	if err != nil {
		return types.User{}, mapPostgresError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.User{}, err
	}
	if affected == 0 {
		return types.User{}, ErrNotFound
	}
	return user, nil
}

func scanUser(row scanner) (types.User, error) {
	var user types.User
	var role string
	var skillsJSON, savedJSON []byte
	err := row.Scan(
		&user.ID,
		&user.Fullname,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&role,
		&user.Profile.Bio,
		&skillsJSON,
		&user.Profile.Resume,
		&user.Profile.ResumeOriginalName,
		&user.Profile.ProfilePhoto,
		&savedJSON,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}

	user.Role = types.Role(role)
	user.Profile.Skills = unmarshalList[string](skillsJSON)
	user.SavedJobs = unmarshalList[types.ID](savedJSON)
	return user, nil
}
