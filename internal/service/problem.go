package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/foundry/api/internal/model"
)

// ProblemRepository defines the interface for problem storage
type ProblemRepository interface {
	Create(ctx context.Context, problem *model.Problem) error
	GetByID(ctx context.Context, id string) (*model.Problem, error)
	List(ctx context.Context, filter *model.ProblemFilter) ([]*model.Problem, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Problem, error)
	AttachStartup(ctx context.Context, problemID, startupID string) (*model.Problem, error)
	DetachStartup(ctx context.Context, problemID, startupID string) (*model.Problem, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ProblemService handles problem business logic
type ProblemService struct {
	repo ProblemRepository
}

// ProblemServiceConfig holds configuration for the problem service
type ProblemServiceConfig struct {
	ProblemRepo ProblemRepository
}

// NewProblemService creates a new problem service
func NewProblemService(cfg ProblemServiceConfig) *ProblemService {
	return &ProblemService{repo: cfg.ProblemRepo}
}

// CreateProblemRequest describes a new problem statement.
type CreateProblemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create validates and persists a new problem
func (s *ProblemService) Create(ctx context.Context, req CreateProblemRequest) (*model.Problem, error) {
	now := time.Now().UTC()
	problem := &model.Problem{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Startups:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if violations := problem.ValidateRequiredFields(); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	if err := s.repo.Create(ctx, problem); err != nil {
		return nil, err
	}
	return problem, nil
}

// Get retrieves a problem by id
func (s *ProblemService) Get(ctx context.Context, id string) (*model.Problem, error) {
	problem, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, ErrProblemNotFound
	}
	return problem, nil
}

// List retrieves problems matching the filter
func (s *ProblemService) List(ctx context.Context, filter *model.ProblemFilter) ([]*model.Problem, error) {
	problems, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if problems == nil {
		problems = []*model.Problem{}
	}
	return problems, nil
}

// Update applies a partial patch with tri-state pointer semantics
func (s *ProblemService) Update(ctx context.Context, id string, patch *model.ProblemPatch) (*model.Problem, error) {
	updates := make(map[string]interface{})
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Startups != nil {
		updates["startups"] = *patch.Startups
	}

	problem, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, ErrProblemNotFound
	}
	return problem, nil
}

// AttachStartup records a startup against the problem. The link is a weak
// back-reference: the startup id is not checked for existence.
func (s *ProblemService) AttachStartup(ctx context.Context, problemID, startupID string) (*model.Problem, error) {
	problem, err := s.repo.AttachStartup(ctx, problemID, startupID)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, ErrProblemNotFound
	}
	return problem, nil
}

// DetachStartup removes a startup back-reference from the problem.
func (s *ProblemService) DetachStartup(ctx context.Context, problemID, startupID string) (*model.Problem, error) {
	problem, err := s.repo.DetachStartup(ctx, problemID, startupID)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, ErrProblemNotFound
	}
	return problem, nil
}

// Delete removes a problem by id
func (s *ProblemService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrProblemNotFound
	}
	return nil
}
