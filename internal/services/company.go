package services

import (
	"context"
	"errors"

	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/storage"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	Get(ctx context.Context, id types.ID) (types.Company, error)
	GetByName(ctx context.Context, name string) (types.Company, error)
	ListByUser(ctx context.Context, userID types.ID) ([]types.Company, error)
	List(ctx context.Context) ([]types.Company, error)
	Create(ctx context.Context, company types.Company) (types.Company, error)
	Update(ctx context.Context, company types.Company) (types.Company, error)
	Delete(ctx context.Context, id types.ID) error
}

// CompanyService encapsulates company use-cases.
type CompanyService struct {
	repo     CompanyRepository
	uploader Uploader
}

func NewCompanyService(repo CompanyRepository, uploader Uploader) *CompanyService {
	return &CompanyService{repo: repo, uploader: uploader}
}

// CompanyUpdate carries the fields of a company update. Empty fields keep
// their current value.
type CompanyUpdate struct {
	Name        string
	Description string
	Website     string
	Location    string
	Logo        *storage.File
}

// Register creates a company owned by userID. Names are unique.
func (s *CompanyService) Register(ctx context.Context, userID types.ID, name string) (types.Company, error) {
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return types.Company{}, ErrDuplicateCompany
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.Company{}, err
	}

	company, err := s.repo.Create(ctx, types.Company{Name: name, UserID: userID})
	if errors.Is(err, store.ErrDuplicate) {
		return types.Company{}, ErrDuplicateCompany
	}
	return company, err
}

func (s *CompanyService) ListByUser(ctx context.Context, userID types.ID) ([]types.Company, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CompanyService) List(ctx context.Context) ([]types.Company, error) {
	return s.repo.List(ctx)
}

// GetOwned loads a company and checks that userID owns it. Existence is
// checked before ownership.
func (s *CompanyService) GetOwned(ctx context.Context, id, userID types.ID) (types.Company, error) {
	company, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Company{}, err
	}
	if !company.OwnedBy(userID) {
		return types.Company{}, ErrForbidden
	}
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, id, userID types.ID, update CompanyUpdate) (types.Company, error) {
	company, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return types.Company{}, err
	}

	if update.Name != "" && update.Name != company.Name {
		if other, err := s.repo.GetByName(ctx, update.Name); err == nil && other.ID != company.ID {
			return types.Company{}, ErrDuplicateCompany
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return types.Company{}, err
		}
		company.Name = update.Name
	}
	if update.Description != "" {
		company.Description = update.Description
	}
	if update.Website != "" {
		company.Website = update.Website
	}
	if update.Location != "" {
		company.Location = update.Location
	}

	logo, err := upload(ctx, s.uploader, update.Logo)
	if err != nil {
		return types.Company{}, err
	}
	if logo.URL != "" {
		company.Logo = logo.URL
	}

	updated, err := s.repo.Update(ctx, company)
	if err != nil {
		discard(ctx, s.uploader, logo)
		if errors.Is(err, store.ErrDuplicate) {
			return types.Company{}, ErrDuplicateCompany
		}
		return types.Company{}, err
	}
	return updated, nil
}

// Delete removes an owned company. Jobs referencing it are left in place.
func (s *CompanyService) Delete(ctx context.Context, id, userID types.ID) error {
	if _, err := s.GetOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
