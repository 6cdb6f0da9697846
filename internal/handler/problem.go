package handler

import (
	"net/http"

	"github.com/forgo/foundry/api/internal/model"
	"github.com/forgo/foundry/api/internal/service"
)

// ProblemHandler handles problem endpoints
type ProblemHandler struct {
	problemService *service.ProblemService
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problemService *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: problemService}
}

// CreateProblem handles POST /api/problems
func (h *ProblemHandler) CreateProblem(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProblemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	problem, err := h.problemService.Create(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, problem, map[string]string{
		"self": "/api/problems/" + problem.ID,
	})
}

// ListProblems handles GET /api/problems
func (h *ProblemHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	filter := &model.ProblemFilter{}
	if title := r.URL.Query().Get("title"); title != "" {
		filter.Title = &title
	}
	if startup := r.URL.Query().Get("startup"); startup != "" {
		filter.Startup = &startup
	}

	problems, err := h.problemService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, problems, map[string]string{
		"self": "/api/problems",
	})
}

// GetProblem handles GET /api/problems/{id}
func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("problem ID required"))
		return
	}

	problem, err := h.problemService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, problem, map[string]string{
		"self": "/api/problems/" + id,
	})
}

// PatchProblem handles PATCH /api/problems/{id}
func (h *ProblemHandler) PatchProblem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("problem ID required"))
		return
	}

	var patch model.ProblemPatch
	if err := DecodeJSON(r, &patch); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	problem, err := h.problemService.Update(r.Context(), id, &patch)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, problem, map[string]string{
		"self": "/api/problems/" + id,
	})
}

// DeleteProblem handles DELETE /api/problems/{id}
func (h *ProblemHandler) DeleteProblem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("problem ID required"))
		return
	}

	if err := h.problemService.Delete(r.Context(), id); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// AttachStartup handles PUT /api/problems/{id}/startups/{startupId} -
// records a startup as addressing this problem. Idempotent.
func (h *ProblemHandler) AttachStartup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	startupID := r.PathValue("startupId")
	if id == "" || startupID == "" {
		WriteError(w, model.NewBadRequestError("problem ID and startup ID required"))
		return
	}

	problem, err := h.problemService.AttachStartup(r.Context(), id, startupID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, problem, map[string]string{
		"self": "/api/problems/" + id,
	})
}

// DetachStartup handles DELETE /api/problems/{id}/startups/{startupId}
func (h *ProblemHandler) DetachStartup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	startupID := r.PathValue("startupId")
	if id == "" || startupID == "" {
		WriteError(w, model.NewBadRequestError("problem ID and startup ID required"))
		return
	}

	problem, err := h.problemService.DetachStartup(r.Context(), id, startupID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, problem, map[string]string{
		"self": "/api/problems/" + id,
	})
}
