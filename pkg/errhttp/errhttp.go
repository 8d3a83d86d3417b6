// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to Status for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/ecoleta/pkg/httpx"
	"github.com/ghuser/ecoleta/pkg/logger"
	pointdomain "github.com/ghuser/ecoleta/services/point/domain"
)

// Status returns the HTTP status code for err.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func Status(err error) int {
	switch {
	case errors.Is(err, pointdomain.ErrPointNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, pointdomain.ErrInvalidItemIDs),
		errors.Is(err, pointdomain.ErrImageRequired):
		return http.StatusBadRequest // 400
	case errors.Is(err, pointdomain.ErrInvalidPoint):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Messages of 5xx errors are replaced by the status text.
func WriteError(w http.ResponseWriter, err error) {
	status := Status(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status))
}

// Respond logs err and writes the mapped response. Server errors are logged
// at error level, client errors at debug.
func Respond(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		log.DebugContext(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status))
}
