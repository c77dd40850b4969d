package handler

import (
	"log/slog"
	"net/http"

	"docshare/internal/domain/models"
	"docshare/internal/domain/services"
	"docshare/internal/httputil"
)

// ViewStateHandler handles the caller's saved browsing state
type ViewStateHandler struct {
	service services.ViewStateService
	logger  *slog.Logger
}

// NewViewStateHandler creates a new view state handler
func NewViewStateHandler(service services.ViewStateService, logger *slog.Logger) *ViewStateHandler {
	return &ViewStateHandler{
		service: service,
		logger:  logger,
	}
}

// updateViewStateBody distinguishes an absent currentFolder from an explicit null
type updateViewStateBody struct {
	CurrentFolder   httputil.OptionalString `json:"currentFolder"`
	CurrentFilter   *models.DocumentFilter  `json:"currentFilter"`
	ExpandedFolders []string                `json:"expandedFolders"`
}

// GetViewState retrieves the caller's view state
// GET /api/users/me/view-state
func (h *ViewStateHandler) GetViewState(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	state, err := h.service.GetViewState(r.Context(), viewer.UserID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, state)
}

// UpdateViewState applies a partial update
// PATCH /api/users/me/view-state
func (h *ViewStateHandler) UpdateViewState(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	var body updateViewStateBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	folder := body.CurrentFolder.Value
	if body.CurrentFolder.Clears() {
		folder = nil
	}

	req := models.UpdateViewStateRequest{
		CurrentFolder: models.OptionalFolder{
			Present: body.CurrentFolder.Present,
			Value:   folder,
		},
		CurrentFilter:   body.CurrentFilter,
		ExpandedFolders: body.ExpandedFolders,
	}

	state, err := h.service.UpdateViewState(r.Context(), viewer.UserID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, state)
}

// ToggleExpanded opens or closes one folder in the sidebar
// POST /api/users/me/view-state/expanded/{id}
func (h *ViewStateHandler) ToggleExpanded(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	state, err := h.service.ToggleExpanded(r.Context(), viewer.UserID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, state)
}
