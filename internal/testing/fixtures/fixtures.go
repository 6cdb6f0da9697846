// Package fixtures provides test data factories for e2e testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories insert through the real
// repositories and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	founder := f.CreateFounder(t)
//	problem := f.CreateProblem(t)
//	startup := f.CreateStartup(t, founder, problem)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/foundry/api/internal/database"
	"github.com/forgo/foundry/api/internal/model"
	"github.com/forgo/foundry/api/internal/repository"
)

// Factory creates test entities in the database
type Factory struct {
	startups  *repository.StartupRepository
	users     *repository.UserRepository
	problems  *repository.ProblemRepository
	investors *repository.InvestorRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		startups:  repository.NewStartupRepository(db),
		users:     repository.NewUserRepository(db),
		problems:  repository.NewProblemRepository(db),
		investors: repository.NewInvestorRepository(db),
	}
}

// randomID generates a random hex suffix for unique test values
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	_ = cancel
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Name  string
	Email string
	Role  model.UserRole
	Bio   *string
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	o := &UserOpts{
		Name:  fmt.Sprintf("User %s", randomID()),
		Email: fmt.Sprintf("user_%s@test.local", randomID()),
		Role:  model.UserRoleFounder,
	}
	for _, fn := range opts {
		fn(o)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.New().String(),
		Name:      o.Name,
		Email:     o.Email,
		Role:      o.Role,
		Bio:       o.Bio,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := f.users.Create(ctx(), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// CreateFounder creates a founder user
func (f *Factory) CreateFounder(t *testing.T) *model.User {
	return f.CreateUser(t, func(o *UserOpts) {
		o.Role = model.UserRoleFounder
	})
}

// CreateInvestor creates an investor user and returns the investor view
func (f *Factory) CreateInvestor(t *testing.T) *model.Investor {
	t.Helper()

	user := f.CreateUser(t, func(o *UserOpts) {
		o.Role = model.UserRoleInvestor
	})

	inv, err := f.investors.GetByID(ctx(), user.ID)
	if err != nil {
		t.Fatalf("fixtures: failed to read back investor: %v", err)
	}
	if inv == nil {
		t.Fatalf("fixtures: investor %s not found after create", user.ID)
	}
	return inv
}

// ============================================================================
// Problem Fixtures
// ============================================================================

// ProblemOpts customizes problem creation
type ProblemOpts struct {
	Title       string
	Description string
}

// CreateProblem creates a problem with optional customizations
func (f *Factory) CreateProblem(t *testing.T, opts ...func(*ProblemOpts)) *model.Problem {
	t.Helper()

	o := &ProblemOpts{
		Title:       fmt.Sprintf("Problem %s", randomID()),
		Description: "A problem worth solving.",
	}
	for _, fn := range opts {
		fn(o)
	}

	now := time.Now().UTC()
	problem := &model.Problem{
		ID:          uuid.New().String(),
		Title:       o.Title,
		Description: o.Description,
		Startups:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := f.problems.Create(ctx(), problem); err != nil {
		t.Fatalf("fixtures: failed to create problem: %v", err)
	}
	return problem
}

// ============================================================================
// Startup Fixtures
// ============================================================================

// StartupOpts customizes startup creation
type StartupOpts struct {
	Name       string
	Stage      model.Stage
	Categories []string
	Team       []model.TeamMember
}

// CreateStartup creates a complete startup owned by the given user and
// referencing the given problem.
func (f *Factory) CreateStartup(t *testing.T, owner *model.User, problem *model.Problem, opts ...func(*StartupOpts)) *model.Startup {
	t.Helper()

	o := &StartupOpts{
		Name:       fmt.Sprintf("Startup %s", randomID()),
		Stage:      model.StageIdea,
		Categories: []string{"fintech"},
		Team: []model.TeamMember{
			{Name: "Test Founder", Role: "CEO"},
		},
	}
	for _, fn := range opts {
		fn(o)
	}

	now := time.Now().UTC()
	startup := &model.Startup{
		ID:          uuid.New().String(),
		Name:        o.Name,
		Description: "A startup created by the fixture factory.",
		Categories:  o.Categories,
		Problems:    []string{problem.ID},
		Stage:       o.Stage,
		Team:        o.Team,
		CreatedBy:   owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := f.startups.Create(ctx(), startup); err != nil {
		t.Fatalf("fixtures: failed to create startup: %v", err)
	}
	return startup
}
