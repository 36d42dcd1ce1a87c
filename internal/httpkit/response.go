// Package httpkit holds the response helpers and middleware shared by every
// feature's routes.
package httpkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/richmanstudio/studio/internal/apperr"
	"github.com/richmanstudio/studio/internal/logger"
)

// MaxBodyBytes bounds every decoded request body.
const MaxBodyBytes = 1 << 20

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes an error response with the given status code and message.
func Error(w http.ResponseWriter, status int, message string, details any) {
	JSON(w, status, ErrorResponse{Error: message, Details: details})
}

// HandleError maps err to an HTTP response. Typed *apperr.Error values use
// their Kind; anything else is reported as an internal error without
// leaking its message.
func HandleError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	if domainErr, ok := apperr.As(err); ok {
		status := domainErr.HTTPStatus()
		if status >= http.StatusInternalServerError && log != nil {
			log.WithContext(r.Context()).HTTPError(r.Method, r.URL.Path, status, err)
		}
		Error(w, status, domainErr.Message, domainErr.Details)
		return
	}

	if log != nil {
		log.WithContext(r.Context()).HTTPError(r.Method, r.URL.Path, http.StatusInternalServerError, err)
	}
	Error(w, http.StatusInternalServerError, "internal error", nil)
}

// DecodeJSON reads a single JSON object from the request body into dst.
// Unknown fields are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.BadRequest("request body is empty")
		case errors.As(err, &maxErr):
			return apperr.BadRequest("request body too large")
		default:
			return apperr.Wrap(apperr.KindBadRequest, fmt.Sprintf("invalid JSON: %v", err), err)
		}
	}
	if dec.More() {
		return apperr.BadRequest("request body must contain a single JSON object")
	}
	return nil
}

// IsJSON reports whether the request declares a JSON body.
func IsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
