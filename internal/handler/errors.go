package handler

import (
	"errors"
	"net/http"

	"docshare/internal/domain"
	"docshare/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Backend failures keep the backend's status and message so users see its wording.
func handleError(w http.ResponseWriter, err error) {
	var remoteErr *domain.RemoteError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &remoteErr):
		httputil.RespondError(w, remoteErr.StatusCode(), remoteErr.Message)
	case errors.As(err, &tooLarge):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "file is too large")
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		httputil.RespondError(w, http.StatusTooManyRequests, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
