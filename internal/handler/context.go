package handler

import (
	"net/http"

	"docshare/internal/domain/models"
	"docshare/internal/httputil"
)

// requireViewer returns the authenticated caller, writing a 401 when absent
func requireViewer(w http.ResponseWriter, r *http.Request) (*models.Viewer, bool) {
	viewer := httputil.GetViewer(r)
	if viewer == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return viewer, true
}

// pathID reads a required path parameter
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, name+" is required")
		return "", false
	}
	return id, true
}
