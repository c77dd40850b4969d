package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("rate limited")

	// ErrRestricted marks a folder that is visible but whose contents may not be listed
	ErrRestricted = errors.New("folder content is restricted")
)

// RemoteError is a failure reported by the document backend.
// Message is the backend's own text and is shown to users unmodified.
type RemoteError struct {
	Kind    RemoteErrorKind
	Status  int
	Message string
}

// RemoteErrorKind classifies backend failures for propagation
type RemoteErrorKind string

const (
	RemoteTransport    RemoteErrorKind = "transport"
	RemoteUnauthorized RemoteErrorKind = "unauthorized"
	RemoteForbidden    RemoteErrorKind = "forbidden"
	RemoteNotFound     RemoteErrorKind = "not_found"
	RemoteValidation   RemoteErrorKind = "validation"
	RemoteServer       RemoteErrorKind = "server"
)

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// StatusCode implements the HTTPError interface
func (e *RemoteError) StatusCode() int {
	switch e.Kind {
	case RemoteValidation:
		if e.Status >= 400 && e.Status < 500 {
			return e.Status
		}
		return http.StatusBadRequest
	case RemoteUnauthorized:
		return http.StatusUnauthorized
	case RemoteForbidden:
		return http.StatusForbidden
	case RemoteNotFound:
		return http.StatusNotFound
	case RemoteTransport:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// Is lets errors.Is match backend denials against the domain sentinels
func (e *RemoteError) Is(target error) bool {
	switch e.Kind {
	case RemoteUnauthorized:
		return target == ErrUnauthorized
	case RemoteForbidden:
		return target == ErrForbidden
	case RemoteNotFound:
		return target == ErrNotFound
	}
	return false
}

// ClassifyStatus maps a backend HTTP status to an error kind
func ClassifyStatus(status int) RemoteErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return RemoteUnauthorized
	case status == http.StatusForbidden:
		return RemoteForbidden
	case status == http.StatusNotFound:
		return RemoteNotFound
	case status >= 400 && status < 500:
		return RemoteValidation
	default:
		return RemoteServer
	}
}
