package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/foundry/api/internal/model"
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UserService handles user business logic
type UserService struct {
	repo UserRepository
}

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	UserRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{repo: cfg.UserRepo}
}

// CreateUserRequest describes a new directory account.
type CreateUserRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Bio       *string `json:"bio,omitempty"`
	AvatarUrl *string `json:"avatarUrl,omitempty"`
}

// Create validates and persists a new user. Email uniqueness is a
// convention only; the storage layer does not enforce it.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      model.UserRole(req.Role),
		Bio:       req.Bio,
		AvatarUrl: req.AvatarUrl,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if violations := user.ValidateRequiredFields(); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	if !model.IsValidUserRole(req.Role) {
		return nil, ErrInvalidRole
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a user by id
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List retrieves users matching the filter
func (s *UserService) List(ctx context.Context, filter *model.UserFilter) ([]*model.User, error) {
	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*model.User{}
	}
	return users, nil
}

// Update applies a partial patch with tri-state pointer semantics
func (s *UserService) Update(ctx context.Context, id string, patch *model.UserPatch) (*model.User, error) {
	if patch.Role != nil && *patch.Role != "" && !model.IsValidUserRole(*patch.Role) {
		return nil, ErrInvalidRole
	}

	updates := make(map[string]interface{})
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.AvatarUrl != nil {
		updates["avatarUrl"] = *patch.AvatarUrl
	}

	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete removes a user by id
func (s *UserService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrUserNotFound
	}
	return nil
}
