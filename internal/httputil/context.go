package httputil

import (
	"context"
	"net/http"

	"docshare/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	viewerKey    contextKey = "viewer"
	requestIDKey contextKey = "requestID"
)

// WithViewer adds the authenticated caller to the request context
func WithViewer(r *http.Request, viewer *models.Viewer) *http.Request {
	ctx := context.WithValue(r.Context(), viewerKey, viewer)
	return r.WithContext(ctx)
}

// GetViewer retrieves the caller from context, nil if the request is unauthenticated
func GetViewer(r *http.Request) *models.Viewer {
	viewer, _ := r.Context().Value(viewerKey).(*models.Viewer)
	return viewer
}

// WithRequestID stores the request id used to correlate backend calls
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id, or "" if none was set
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
