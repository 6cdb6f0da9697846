package service

import (
	"context"

	"github.com/forgo/foundry/api/internal/model"
)

// InvestorRepository defines the interface for the investor capability
// extension stored alongside user data.
type InvestorRepository interface {
	GetByID(ctx context.Context, id string) (*model.Investor, error)
	SaveStartup(ctx context.Context, id, startupID string) (*model.Investor, error)
	UnsaveStartup(ctx context.Context, id, startupID string) (*model.Investor, error)
	SetInterests(ctx context.Context, id string, interests []string) (*model.Investor, error)
	SetNotifications(ctx context.Context, id string, enabled bool) (*model.Investor, error)
}

// InvestorService handles investor-only operations: the saved-startup set,
// interest list, and notification preference.
type InvestorService struct {
	repo InvestorRepository
}

// InvestorServiceConfig holds configuration for the investor service
type InvestorServiceConfig struct {
	InvestorRepo InvestorRepository
}

// NewInvestorService creates a new investor service
func NewInvestorService(cfg InvestorServiceConfig) *InvestorService {
	return &InvestorService{repo: cfg.InvestorRepo}
}

// Get retrieves an investor by user id
func (s *InvestorService) Get(ctx context.Context, id string) (*model.Investor, error) {
	investor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, ErrInvestorNotFound
	}
	return investor, nil
}

// SaveStartup adds a startup to the investor's saved set. The saved id is a
// weak reference; the startup may be deleted independently.
func (s *InvestorService) SaveStartup(ctx context.Context, id, startupID string) (*model.Investor, error) {
	investor, err := s.repo.SaveStartup(ctx, id, startupID)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, ErrInvestorNotFound
	}
	return investor, nil
}

// UnsaveStartup removes a startup from the investor's saved set
func (s *InvestorService) UnsaveStartup(ctx context.Context, id, startupID string) (*model.Investor, error) {
	investor, err := s.repo.UnsaveStartup(ctx, id, startupID)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, ErrInvestorNotFound
	}
	return investor, nil
}

// SetInterests replaces the investor's interest list
func (s *InvestorService) SetInterests(ctx context.Context, id string, interests []string) (*model.Investor, error) {
	if interests == nil {
		interests = []string{}
	}
	investor, err := s.repo.SetInterests(ctx, id, interests)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, ErrInvestorNotFound
	}
	return investor, nil
}

// SetNotifications toggles the investor's notification preference
func (s *InvestorService) SetNotifications(ctx context.Context, id string, enabled bool) (*model.Investor, error) {
	investor, err := s.repo.SetNotifications(ctx, id, enabled)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, ErrInvestorNotFound
	}
	return investor, nil
}
