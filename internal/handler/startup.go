package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/forgo/foundry/api/internal/metrics"
	"github.com/forgo/foundry/api/internal/model"
	"github.com/forgo/foundry/api/internal/service"
	"github.com/forgo/foundry/api/internal/upload"
)

// StartupHandler handles startup endpoints
type StartupHandler struct {
	startupService *service.StartupService
	uploads        *upload.Store
	maxUploadBytes int64
}

// NewStartupHandler creates a new startup handler
func NewStartupHandler(startupService *service.StartupService, uploads *upload.Store, maxUploadBytes int64) *StartupHandler {
	return &StartupHandler{
		startupService: startupService,
		uploads:        uploads,
		maxUploadBytes: maxUploadBytes,
	}
}

// submitResponse is the public submission body: {success: true, startup: {...}}
type submitResponse struct {
	Success bool           `json:"success"`
	Startup *model.Startup `json:"startup"`
}

// listResponse is the public listing body: {startups: [...]}
type listResponse struct {
	Startups []*model.Startup `json:"startups"`
}

// SubmitStartup handles POST /api/startups - the public submission endpoint.
//
// The body is multipart form data with an optional single "image" file. This
// endpoint predates the problem-details convention and keeps its original
// contract: 201 {success:true, startup} on success, 500 {error} on failure,
// and no 400 for incomplete forms.
func (h *StartupHandler) SubmitStartup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		slog.Error("failed to parse submission form", "error", err)
		WriteLegacyError(w, http.StatusInternalServerError, "Failed to create startup")
		return
	}

	imageURL := ""
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err = h.uploads.Save(file, header.Filename)
		if err != nil {
			slog.Error("failed to store submission image", "error", err)
			metrics.StartupSubmissionFailures.Inc()
			WriteLegacyError(w, http.StatusInternalServerError, "Failed to create startup")
			return
		}
		metrics.ImageUploads.Inc()
	}

	startup, err := h.startupService.Submit(r.Context(), url.Values(r.MultipartForm.Value), imageURL)
	if err != nil {
		// Strict mode is the one path that reports a non-500: the full
		// violation list goes back as problem details.
		if _, ok := service.AsValidationError(err); ok {
			if imageURL != "" {
				_ = h.uploads.Remove(imageURL)
			}
			WriteError(w, MapServiceError(err))
			return
		}
		slog.Error("failed to persist startup submission", "error", err)
		metrics.StartupSubmissionFailures.Inc()
		metrics.StorageErrors.Inc()
		WriteLegacyError(w, http.StatusInternalServerError, "Failed to create startup")
		return
	}

	metrics.StartupSubmissions.Inc()
	WriteJSON(w, http.StatusCreated, submitResponse{Success: true, Startup: startup})
}

// ListStartups handles GET /api/startups - the public listing endpoint.
// No filter or pagination parameters are accepted; the full snapshot comes
// back as {startups: [...]}.
func (h *StartupHandler) ListStartups(w http.ResponseWriter, r *http.Request) {
	startups, err := h.startupService.List(r.Context(), nil)
	if err != nil {
		slog.Error("failed to list startups", "error", err)
		metrics.StorageErrors.Inc()
		WriteLegacyError(w, http.StatusInternalServerError, "Failed to fetch startups")
		return
	}

	WriteJSON(w, http.StatusOK, listResponse{Startups: startups})
}

// GetStartup handles GET /api/startups/{id}
func (h *StartupHandler) GetStartup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("startup ID required"))
		return
	}

	startup, err := h.startupService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, startup, map[string]string{
		"self": "/api/startups/" + id,
	})
}

// PatchStartup handles PATCH /api/startups/{id} - partial update.
// Absent fields are left untouched; explicit empty values clear.
func (h *StartupHandler) PatchStartup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("startup ID required"))
		return
	}

	var patch model.StartupPatch
	if err := DecodeJSON(r, &patch); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	startup, err := h.startupService.Update(r.Context(), id, &patch)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, startup, map[string]string{
		"self": "/api/startups/" + id,
	})
}

// DeleteStartup handles DELETE /api/startups/{id}
func (h *StartupHandler) DeleteStartup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("startup ID required"))
		return
	}

	if err := h.startupService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrStartupNotFound) {
			WriteError(w, model.NewNotFoundError("startup"))
			return
		}
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// SearchStartups handles GET /api/startups/search - free-text query over
// name and description plus exact-match filters, with offset pagination.
func (h *StartupHandler) SearchStartups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := model.StartupSearchRequest{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Problem:  q.Get("problem"),
		Stage:    q.Get("stage"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		req.Page = page
	}
	if pageSize, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		req.PageSize = pageSize
	}

	result, err := h.startupService.Search(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"self": "/api/startups/search",
	})
}
