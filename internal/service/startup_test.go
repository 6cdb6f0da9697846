package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/foundry/api/internal/model"
)

// mockStartupRepo implements StartupRepository with overridable funcs
type mockStartupRepo struct {
	createFunc  func(ctx context.Context, startup *model.Startup) error
	getByIDFunc func(ctx context.Context, id string) (*model.Startup, error)
	listFunc    func(ctx context.Context, filter *model.StartupFilter) ([]*model.Startup, error)
	updateFunc  func(ctx context.Context, id string, updates map[string]interface{}) (*model.Startup, error)
	deleteFunc  func(ctx context.Context, id string) (bool, error)
}

func (m *mockStartupRepo) Create(ctx context.Context, startup *model.Startup) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, startup)
	}
	return nil
}

func (m *mockStartupRepo) GetByID(ctx context.Context, id string) (*model.Startup, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStartupRepo) List(ctx context.Context, filter *model.StartupFilter) ([]*model.Startup, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockStartupRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Startup, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, updates)
	}
	return nil, nil
}

func (m *mockStartupRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return false, nil
}

func TestSubmitDefaultsEveryAbsentField(t *testing.T) {
	var stored *model.Startup
	repo := &mockStartupRepo{
		createFunc: func(ctx context.Context, startup *model.Startup) error {
			stored = startup
			return nil
		},
	}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	startup, err := svc.Submit(context.Background(), url.Values{}, "")
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.NotEmpty(t, startup.ID)
	assert.Equal(t, "", startup.Name)
	assert.Equal(t, []string{}, startup.Categories)
	assert.Equal(t, []string{}, startup.Problems)
	assert.Equal(t, []model.TeamMember{}, startup.Team)
	assert.Equal(t, "", startup.ImageUrl)
	assert.Equal(t, "", startup.CreatedBy)
	assert.Equal(t, startup.CreatedAt, startup.UpdatedAt)
	assert.Same(t, stored, startup)
}

func TestSubmitCoercesScalarsToLists(t *testing.T) {
	repo := &mockStartupRepo{}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	form := url.Values{}
	form.Set("category", "fintech")
	form.Set("problems", "p1")

	startup, err := svc.Submit(context.Background(), form, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"fintech"}, startup.Categories)
	assert.Equal(t, []string{"p1"}, startup.Problems)
}

func TestSubmitPassesListsThrough(t *testing.T) {
	repo := &mockStartupRepo{}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	form := url.Values{"problems": {"p1", "p2"}}

	startup, err := svc.Submit(context.Background(), form, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, startup.Problems)
}

func TestSubmitParsesTeamEntries(t *testing.T) {
	repo := &mockStartupRepo{}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	form := url.Values{"team": {"Jane/CEO", "Sam"}}

	startup, err := svc.Submit(context.Background(), form, "")
	require.NoError(t, err)
	require.Len(t, startup.Team, 2)
	assert.Equal(t, "Jane", startup.Team[0].Name)
	assert.Equal(t, "CEO", startup.Team[0].Role)
	assert.Equal(t, "Sam", startup.Team[1].Name)
	assert.Equal(t, "", startup.Team[1].Role)
}

func TestSubmitTrimsNameAndKeepsImageURL(t *testing.T) {
	repo := &mockStartupRepo{}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	form := url.Values{}
	form.Set("name", "  Acme  ")
	form.Set("stage", "idea")

	startup, err := svc.Submit(context.Background(), form, "/uploads/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "Acme", startup.Name)
	assert.Equal(t, model.StageIdea, startup.Stage)
	assert.Equal(t, "/uploads/abc.png", startup.ImageUrl)
}

func TestSubmitStrictModeRejectsIncompleteForms(t *testing.T) {
	repo := &mockStartupRepo{
		createFunc: func(ctx context.Context, startup *model.Startup) error {
			t.Fatal("create should not be reached")
			return nil
		},
	}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo, StrictValidation: true})

	_, err := svc.Submit(context.Background(), url.Values{}, "")
	require.Error(t, err)

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, verr.Violations, 7)
}

func TestCreateAlwaysValidates(t *testing.T) {
	repo := &mockStartupRepo{}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	_, err := svc.Create(context.Background(), &model.Startup{})
	require.Error(t, err)
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestGetReturnsSentinelWhenMissing(t *testing.T) {
	repo := &mockStartupRepo{}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrStartupNotFound)
}

func TestUpdateRejectsUnknownStage(t *testing.T) {
	repo := &mockStartupRepo{
		updateFunc: func(ctx context.Context, id string, updates map[string]interface{}) (*model.Startup, error) {
			t.Fatal("update should not be reached")
			return nil, nil
		},
	}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	stage := "unicorn"
	_, err := svc.Update(context.Background(), "s1", &model.StartupPatch{Stage: &stage})
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestUpdateLowersOnlyProvidedFields(t *testing.T) {
	var gotUpdates map[string]interface{}
	repo := &mockStartupRepo{
		updateFunc: func(ctx context.Context, id string, updates map[string]interface{}) (*model.Startup, error) {
			gotUpdates = updates
			return &model.Startup{ID: id}, nil
		},
	}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	name := "  NewName "
	empty := ""
	_, err := svc.Update(context.Background(), "s1", &model.StartupPatch{
		Name:     &name,
		ImageUrl: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"name":     "NewName",
		"imageUrl": "",
	}, gotUpdates)
}

func TestDeleteReturnsSentinelWhenMissing(t *testing.T) {
	repo := &mockStartupRepo{
		deleteFunc: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrStartupNotFound)
}

func TestSearchFiltersAndPaginates(t *testing.T) {
	all := []*model.Startup{
		{ID: "1", Name: "Acme Robotics", Description: "robots"},
		{ID: "2", Name: "Beta Labs", Description: "acme-adjacent tools"},
		{ID: "3", Name: "Gamma", Description: "unrelated"},
	}
	repo := &mockStartupRepo{
		listFunc: func(ctx context.Context, filter *model.StartupFilter) ([]*model.Startup, error) {
			return all, nil
		},
	}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	result, err := svc.Search(context.Background(), model.StartupSearchRequest{
		Query:    "ACME",
		Page:     1,
		PageSize: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Startups, 1)
	assert.Equal(t, "1", result.Startups[0].ID)
}

func TestSearchPageBeyondEndIsEmpty(t *testing.T) {
	repo := &mockStartupRepo{
		listFunc: func(ctx context.Context, filter *model.StartupFilter) ([]*model.Startup, error) {
			return []*model.Startup{{ID: "1", Name: "Solo"}}, nil
		},
	}
	svc := NewStartupService(StartupServiceConfig{StartupRepo: repo})

	result, err := svc.Search(context.Background(), model.StartupSearchRequest{Page: 5, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Empty(t, result.Startups)
}
