package handler

import (
	"log/slog"
	"net/http"

	"docshare/internal/domain/services"
	"docshare/internal/httputil"
	"docshare/internal/sharing"
)

// ShareHandler serves the sharing dialogs. Every PUT replaces the whole
// selection and responds with the selection the backend now holds.
type ShareHandler struct {
	shareService services.ShareService
	logger       *slog.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService services.ShareService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		logger:       logger,
	}
}

// GetFolderDepartments returns the folder's department selection
// GET /api/folders/{id}/share/departments
func (h *ShareHandler) GetFolderDepartments(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	share, err := h.shareService.GetFolderDepartments(r.Context(), viewer, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, share)
}

// ShareFolderWithDepartments replaces the folder's department selection
// PUT /api/folders/{id}/share/departments
func (h *ShareHandler) ShareFolderWithDepartments(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req sharing.DepartmentShare
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	share, err := h.shareService.ShareFolderWithDepartments(r.Context(), viewer, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, share)
}

// GetFolderUsers returns the folder's user selection
// GET /api/folders/{id}/share/users
func (h *ShareHandler) GetFolderUsers(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	share, err := h.shareService.GetFolderUsers(r.Context(), viewer, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, share)
}

// ShareFolderWithUsers replaces the folder's user selection
// PUT /api/folders/{id}/share/users
func (h *ShareHandler) ShareFolderWithUsers(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req sharing.UserShare
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	share, err := h.shareService.ShareFolderWithUsers(r.Context(), viewer, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, share)
}

// GetDocumentShare returns the document's users and permission triple
// GET /api/documents/{id}/share
func (h *ShareHandler) GetDocumentShare(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	share, err := h.shareService.GetDocumentShare(r.Context(), viewer, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, share)
}

// ShareDocument replaces the document's users and permission triple
// PUT /api/documents/{id}/share
func (h *ShareHandler) ShareDocument(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req sharing.DocumentShare
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	share, err := h.shareService.ShareDocument(r.Context(), viewer, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, share)
}

// ListUsers returns the user directory
// GET /api/users
func (h *ShareHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	users, err := h.shareService.ListUsers(r.Context(), viewer)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, users)
}

// Candidates lists the users a resource can be shared with
// GET /api/share/candidates?owner=
func (h *ShareHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	users, err := h.shareService.Candidates(r.Context(), viewer, r.URL.Query().Get("owner"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, users)
}
