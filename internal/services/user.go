package services

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/storage"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id types.ID) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
}

// UserService encapsulates account, profile and saved-job use-cases.
type UserService struct {
	repo      UserRepository
	jobs      JobRepository
	companies CompanyRepository
	uploader  Uploader
}

func NewUserService(repo UserRepository, jobs JobRepository, companies CompanyRepository, uploader Uploader) *UserService {
	return &UserService{
		repo:      repo,
		jobs:      jobs,
		companies: companies,
		uploader:  uploader,
	}
}

// Registration is the input of Register.
type Registration struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Password    string
	Role        types.Role
	Photo       *storage.File
}

// ProfileUpdate carries the fields of a profile update. Empty fields keep
// their current value.
type ProfileUpdate struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Bio         string
	Skills      string
	Resume      *storage.File
}

func (s *UserService) GetByID(ctx context.Context, id types.ID) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, reg Registration) (types.User, error) {
	if !reg.Role.Valid() {
		return types.User{}, ErrInvalidRole
	}
	if _, err := s.repo.GetByEmail(ctx, reg.Email); err == nil {
		return types.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	photo, err := upload(ctx, s.uploader, reg.Photo)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Fullname:     reg.Fullname,
		Email:        reg.Email,
		PhoneNumber:  reg.PhoneNumber,
		PasswordHash: string(hashed),
		Role:         reg.Role,
		Profile: types.Profile{
			Skills:       []string{},
			ProfilePhoto: photo.URL,
		},
		SavedJobs: []types.ID{},
	})
	if err != nil {
		discard(ctx, s.uploader, photo)
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, ErrDuplicateEmail
		}
		return types.User{}, err
	}
	return user, nil
}

// Login returns the user only if email, password and role all match. Every
// mismatch yields ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string, role types.Role) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	if user.Role != role {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile merges update into the user's record.
func (s *UserService) UpdateProfile(ctx context.Context, userID types.ID, update ProfileUpdate) (types.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return types.User{}, err
	}

	if update.Email != "" && update.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, update.Email); err == nil {
			return types.User{}, ErrDuplicateEmail
		} else if !errors.Is(err, store.ErrNotFound) {
			return types.User{}, err
		}
		user.Email = update.Email
	}
	if update.Fullname != "" {
		user.Fullname = update.Fullname
	}
	if update.PhoneNumber != "" {
		user.PhoneNumber = update.PhoneNumber
	}
	if update.Bio != "" {
		user.Profile.Bio = update.Bio
	}
	if strings.TrimSpace(update.Skills) != "" {
		user.Profile.Skills = SplitSkills(update.Skills)
	}

	resume, err := upload(ctx, s.uploader, update.Resume)
	if err != nil {
		return types.User{}, err
	}
	if update.Resume != nil {
		user.Profile.Resume = resume.URL
		user.Profile.ResumeOriginalName = update.Resume.Name
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		discard(ctx, s.uploader, resume)
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, ErrDuplicateEmail
		}
		return types.User{}, err
	}
	return updated, nil
}

// SavedJobs returns the user's saved jobs with their companies, in the order
// they were saved. Jobs deleted since are skipped.
func (s *UserService) SavedJobs(ctx context.Context, userID types.ID) ([]types.Job, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByIDs(ctx, user.SavedJobs)
	if err != nil {
		return nil, err
	}
	if err := attachCompanies(ctx, s.companies, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ToggleSavedJob flips jobID's membership in the user's saved jobs and
// reports whether the job is now saved. Only adding requires the job to
// exist, so ids of deleted jobs can still be removed.
func (s *UserService) ToggleSavedJob(ctx context.Context, userID, jobID types.ID) (types.User, bool, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return types.User{}, false, err
	}
	if !slices.Contains(user.SavedJobs, jobID) {
		if _, err := s.jobs.Get(ctx, jobID); err != nil {
			return types.User{}, false, err
		}
	}

	var saved bool
	user.SavedJobs, saved = ToggleID(user.SavedJobs, jobID)
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return types.User{}, false, err
	}
	return updated, saved, nil
}

// ToggleID removes id from ids if present, otherwise appends it. It reports
// whether id is present afterwards. The input slice is not modified.
func ToggleID(ids []types.ID, id types.ID) ([]types.ID, bool) {
	out := make([]types.ID, 0, len(ids)+1)
	removed := false
	for _, existing := range ids {
		if existing == id {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	if removed {
		return out, false
	}
	return append(out, id), true
}
