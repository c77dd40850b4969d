package middleware

import (
	"net/http"

	"docshare/internal/httputil"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id between frontend, gateway and backend
const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's request id or assigns a new one, and echoes it in the response
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > 128 {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(httputil.WithRequestID(r.Context(), id)))
		})
	}
}
