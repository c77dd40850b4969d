package middleware

import (
	"log/slog"
	"net/http"

	"docshare/internal/httputil"
)

// Limiter decides whether a keyed request may proceed
type Limiter interface {
	Allow(key string) bool
}

// RateLimit rejects callers that exceed their request budget with 429.
// Requests are keyed by user id; unauthenticated requests pass through.
func RateLimit(limiter Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := httputil.GetViewer(r)
			if viewer == nil {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(viewer.UserID) {
				logger.Warn("rate limit exceeded", "user_id", viewer.UserID, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				httputil.RespondError(w, http.StatusTooManyRequests, "too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
