package handler

import (
	"net/http"

	"github.com/forgo/foundry/api/internal/model"
	"github.com/forgo/foundry/api/internal/service"
)

// InvestorHandler handles investor endpoints
type InvestorHandler struct {
	investorService *service.InvestorService
}

// NewInvestorHandler creates a new investor handler
func NewInvestorHandler(investorService *service.InvestorService) *InvestorHandler {
	return &InvestorHandler{investorService: investorService}
}

// GetInvestor handles GET /api/investors/{id}
func (h *InvestorHandler) GetInvestor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("investor ID required"))
		return
	}

	investor, err := h.investorService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, investor, map[string]string{
		"self": "/api/investors/" + id,
	})
}

// SaveStartup handles PUT /api/investors/{id}/saved/{startupId} - adds a
// startup to the investor's saved set. Idempotent.
func (h *InvestorHandler) SaveStartup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	startupID := r.PathValue("startupId")
	if id == "" || startupID == "" {
		WriteError(w, model.NewBadRequestError("investor ID and startup ID required"))
		return
	}

	investor, err := h.investorService.SaveStartup(r.Context(), id, startupID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, investor, map[string]string{
		"self": "/api/investors/" + id,
	})
}

// UnsaveStartup handles DELETE /api/investors/{id}/saved/{startupId}
func (h *InvestorHandler) UnsaveStartup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	startupID := r.PathValue("startupId")
	if id == "" || startupID == "" {
		WriteError(w, model.NewBadRequestError("investor ID and startup ID required"))
		return
	}

	investor, err := h.investorService.UnsaveStartup(r.Context(), id, startupID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, investor, map[string]string{
		"self": "/api/investors/" + id,
	})
}

// interestsRequest replaces the investor's interest list wholesale.
type interestsRequest struct {
	Interests []string `json:"interests"`
}

// SetInterests handles PUT /api/investors/{id}/interests
func (h *InvestorHandler) SetInterests(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("investor ID required"))
		return
	}

	var req interestsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	investor, err := h.investorService.SetInterests(r.Context(), id, req.Interests)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, investor, map[string]string{
		"self": "/api/investors/" + id,
	})
}

// notificationsRequest toggles the notification preference.
type notificationsRequest struct {
	Enabled bool `json:"enabled"`
}

// SetNotifications handles PUT /api/investors/{id}/notifications
func (h *InvestorHandler) SetNotifications(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("investor ID required"))
		return
	}

	var req notificationsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	investor, err := h.investorService.SetNotifications(r.Context(), id, req.Enabled)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, investor, map[string]string{
		"self": "/api/investors/" + id,
	})
}
