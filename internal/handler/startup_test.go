package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/foundry/api/internal/model"
	"github.com/forgo/foundry/api/internal/service"
	"github.com/forgo/foundry/api/internal/upload"
)

// memStartupRepo is an in-memory StartupRepository for handler tests
type memStartupRepo struct {
	mu       sync.Mutex
	startups []*model.Startup
	failAll  bool
}

var errStorageDown = errors.New("storage unreachable")

func (m *memStartupRepo) Create(ctx context.Context, startup *model.Startup) error {
	if m.failAll {
		return errStorageDown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startups = append(m.startups, startup)
	return nil
}

func (m *memStartupRepo) GetByID(ctx context.Context, id string) (*model.Startup, error) {
	if m.failAll {
		return nil, errStorageDown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.startups {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memStartupRepo) List(ctx context.Context, filter *model.StartupFilter) ([]*model.Startup, error) {
	if m.failAll {
		return nil, errStorageDown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.Startup(nil), m.startups...), nil
}

func (m *memStartupRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Startup, error) {
	if m.failAll {
		return nil, errStorageDown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.startups {
		if s.ID == id {
			if name, ok := updates["name"].(string); ok {
				s.Name = name
			}
			return s, nil
		}
	}
	return nil, nil
}

func (m *memStartupRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.failAll {
		return false, errStorageDown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.startups {
		if s.ID == id {
			m.startups = append(m.startups[:i], m.startups[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newStartupTestHandler(t *testing.T, repo *memStartupRepo, strict bool) *StartupHandler {
	t.Helper()
	store, err := upload.NewStore(upload.Config{
		Dir:       t.TempDir(),
		URLPrefix: "/uploads",
		MaxBytes:  5 << 20,
	})
	require.NoError(t, err)

	svc := service.NewStartupService(service.StartupServiceConfig{
		StartupRepo:      repo,
		StrictValidation: strict,
	})
	return NewStartupHandler(svc, store, 5<<20)
}

func multipartBody(t *testing.T, fields map[string][]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, writer.WriteField(key, v))
		}
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSubmitThenListRoundTrip(t *testing.T) {
	repo := &memStartupRepo{}
	h := newStartupTestHandler(t, repo, false)

	body, contentType := multipartBody(t, map[string][]string{
		"name":        {"Acme"},
		"description": {"desc"},
		"category":    {"AI"},
		"stage":       {"idea"},
		"team":        {"Jane/CEO"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/startups", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.SubmitStartup(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Success bool          `json:"success"`
		Startup model.Startup `json:"startup"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "Acme", created.Startup.Name)
	assert.Equal(t, model.StageIdea, created.Startup.Stage)
	assert.Equal(t, "", created.Startup.ImageUrl)
	require.Len(t, created.Startup.Team, 1)
	assert.Equal(t, "Jane", created.Startup.Team[0].Name)
	assert.Equal(t, "CEO", created.Startup.Team[0].Role)

	listReq := httptest.NewRequest(http.MethodGet, "/api/startups", nil)
	listRec := httptest.NewRecorder()
	h.ListStartups(listRec, listReq)

	require.Equal(t, http.StatusOK, listRec.Code)

	var listed struct {
		Startups []model.Startup `json:"startups"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listed))
	require.Len(t, listed.Startups, 1)
	assert.Equal(t, created.Startup.ID, listed.Startups[0].ID)
}

func TestSubmitEmptyFormIsAcceptedByDefault(t *testing.T) {
	repo := &memStartupRepo{}
	h := newStartupTestHandler(t, repo, false)

	body, contentType := multipartBody(t, map[string][]string{})

	req := httptest.NewRequest(http.MethodPost, "/api/startups", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.SubmitStartup(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.startups, 1)
}

func TestSubmitStrictModeReturnsViolationList(t *testing.T) {
	repo := &memStartupRepo{}
	h := newStartupTestHandler(t, repo, true)

	body, contentType := multipartBody(t, map[string][]string{})

	req := httptest.NewRequest(http.MethodPost, "/api/startups", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.SubmitStartup(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var pd model.ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pd))
	assert.Len(t, pd.Errors, 7)
	assert.Empty(t, repo.startups)
}

func TestSubmitStorageFailureReturnsFlatError(t *testing.T) {
	repo := &memStartupRepo{failAll: true}
	h := newStartupTestHandler(t, repo, false)

	body, contentType := multipartBody(t, map[string][]string{"name": {"Acme"}})

	req := httptest.NewRequest(http.MethodPost, "/api/startups", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.SubmitStartup(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to create startup", resp["error"])
	// backend detail must not leak
	assert.NotContains(t, rec.Body.String(), errStorageDown.Error())
}

func TestListStorageFailureReturnsFlatError(t *testing.T) {
	repo := &memStartupRepo{failAll: true}
	h := newStartupTestHandler(t, repo, false)

	req := httptest.NewRequest(http.MethodGet, "/api/startups", nil)
	rec := httptest.NewRecorder()
	h.ListStartups(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to fetch startups", resp["error"])
}

func TestGetStartupNotFound(t *testing.T) {
	repo := &memStartupRepo{}
	h := newStartupTestHandler(t, repo, false)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/startups/{id}", h.GetStartup)

	req := httptest.NewRequest(http.MethodGet, "/api/startups/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var pd model.ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pd))
	assert.Equal(t, http.StatusNotFound, pd.Status)
}

func TestPatchStartupRejectsUnknownStage(t *testing.T) {
	repo := &memStartupRepo{startups: []*model.Startup{{ID: "s1", Name: "Acme"}}}
	h := newStartupTestHandler(t, repo, false)

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/startups/{id}", h.PatchStartup)

	req := httptest.NewRequest(http.MethodPatch, "/api/startups/s1",
		bytes.NewBufferString(`{"stage":"unicorn"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteStartup(t *testing.T) {
	repo := &memStartupRepo{startups: []*model.Startup{{ID: "s1"}}}
	h := newStartupTestHandler(t, repo, false)

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/startups/{id}", h.DeleteStartup)

	req := httptest.NewRequest(http.MethodDelete, "/api/startups/s1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	again := httptest.NewRequest(http.MethodDelete, "/api/startups/s1", nil)
	againRec := httptest.NewRecorder()
	mux.ServeHTTP(againRec, again)
	assert.Equal(t, http.StatusNotFound, againRec.Code)
}

func TestSearchStartups(t *testing.T) {
	repo := &memStartupRepo{startups: []*model.Startup{
		{ID: "1", Name: "Acme Robotics", Description: "robots"},
		{ID: "2", Name: "Other", Description: "unrelated"},
	}}
	h := newStartupTestHandler(t, repo, false)

	req := httptest.NewRequest(http.MethodGet, "/api/startups/search?q=acme", nil)
	rec := httptest.NewRecorder()
	h.SearchStartups(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.StartupSearchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Total)
}
