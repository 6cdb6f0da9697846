package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/foundry/api/internal/model"
)

type mockProblemRepo struct {
	createFunc        func(ctx context.Context, problem *model.Problem) error
	getByIDFunc       func(ctx context.Context, id string) (*model.Problem, error)
	listFunc          func(ctx context.Context, filter *model.ProblemFilter) ([]*model.Problem, error)
	updateFunc        func(ctx context.Context, id string, updates map[string]interface{}) (*model.Problem, error)
	attachStartupFunc func(ctx context.Context, problemID, startupID string) (*model.Problem, error)
	detachStartupFunc func(ctx context.Context, problemID, startupID string) (*model.Problem, error)
	deleteFunc        func(ctx context.Context, id string) (bool, error)
}

func (m *mockProblemRepo) Create(ctx context.Context, problem *model.Problem) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, problem)
	}
	return nil
}

func (m *mockProblemRepo) GetByID(ctx context.Context, id string) (*model.Problem, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProblemRepo) List(ctx context.Context, filter *model.ProblemFilter) ([]*model.Problem, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockProblemRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Problem, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, updates)
	}
	return nil, nil
}

func (m *mockProblemRepo) AttachStartup(ctx context.Context, problemID, startupID string) (*model.Problem, error) {
	if m.attachStartupFunc != nil {
		return m.attachStartupFunc(ctx, problemID, startupID)
	}
	return nil, nil
}

func (m *mockProblemRepo) DetachStartup(ctx context.Context, problemID, startupID string) (*model.Problem, error) {
	if m.detachStartupFunc != nil {
		return m.detachStartupFunc(ctx, problemID, startupID)
	}
	return nil, nil
}

func (m *mockProblemRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return false, nil
}

func TestCreateProblemStartsWithEmptyStartupList(t *testing.T) {
	var stored *model.Problem
	repo := &mockProblemRepo{
		createFunc: func(ctx context.Context, problem *model.Problem) error {
			stored = problem
			return nil
		},
	}
	svc := NewProblemService(ProblemServiceConfig{ProblemRepo: repo})

	problem, err := svc.Create(context.Background(), CreateProblemRequest{
		Title:       "Last-mile delivery",
		Description: "Rural delivery is slow and expensive.",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, problem.ID)
	assert.Equal(t, []string{}, problem.Startups)
}

func TestCreateProblemReportsAllViolations(t *testing.T) {
	repo := &mockProblemRepo{}
	svc := NewProblemService(ProblemServiceConfig{ProblemRepo: repo})

	_, err := svc.Create(context.Background(), CreateProblemRequest{})
	require.Error(t, err)

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, verr.Violations, 2)
}

func TestAttachStartupSentinelWhenMissing(t *testing.T) {
	repo := &mockProblemRepo{}
	svc := NewProblemService(ProblemServiceConfig{ProblemRepo: repo})

	_, err := svc.AttachStartup(context.Background(), "missing", "s1")
	assert.ErrorIs(t, err, ErrProblemNotFound)
}

func TestDetachStartupPassesThrough(t *testing.T) {
	repo := &mockProblemRepo{
		detachStartupFunc: func(ctx context.Context, problemID, startupID string) (*model.Problem, error) {
			return &model.Problem{ID: problemID, Startups: []string{}}, nil
		},
	}
	svc := NewProblemService(ProblemServiceConfig{ProblemRepo: repo})

	problem, err := svc.DetachStartup(context.Background(), "p1", "s1")
	require.NoError(t, err)
	assert.Empty(t, problem.Startups)
}
