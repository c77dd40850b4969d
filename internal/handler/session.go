package handler

import (
	"net/http"

	"docshare/internal/access"
	"docshare/internal/domain/models"
	"docshare/internal/httputil"
)

// SessionHandler describes the authenticated caller to the frontend
type SessionHandler struct {
	resolver *access.Resolver
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(resolver *access.Resolver) *SessionHandler {
	return &SessionHandler{resolver: resolver}
}

// sessionCapabilities tells the frontend which panels and dialogs to offer.
// The backend still enforces every action.
type sessionCapabilities struct {
	UserID       string                  `json:"userId"`
	Email        string                  `json:"email"`
	Role         models.Role             `json:"role"`
	DepartmentID string                  `json:"departmentId,omitempty"`
	Capabilities access.RoleCapabilities `json:"capabilities"`
}

// GetCapabilities returns the caller's identity and role capabilities
// GET /api/users/me/capabilities
func (h *SessionHandler) GetCapabilities(w http.ResponseWriter, r *http.Request) {
	viewer, ok := requireViewer(w, r)
	if !ok {
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sessionCapabilities{
		UserID:       viewer.UserID,
		Email:        viewer.Email,
		Role:         viewer.Role,
		DepartmentID: viewer.DepartmentID,
		Capabilities: h.resolver.Capabilities(viewer),
	})
}
