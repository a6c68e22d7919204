// Package response writes the unitmap API envelope: every body is
// {"data": ..., "error": ...} with exactly one of the two set.
package response

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/agentstation/unitmap/pkg/errors"
)

// Response is the envelope written by every endpoint.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is the machine-readable failure carried in the envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// JSON writes resp with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// headers are already sent, nothing useful to do with an encode error
	_ = json.NewEncoder(w).Encode(resp)
}

func fail(w http.ResponseWriter, status int, code, message, details string) {
	JSON(w, status, Response{Error: &Error{Code: code, Message: message, Details: details}})
}

// OK writes data with status 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Response{Data: data})
}

// BadRequest writes a 400.
func BadRequest(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusUnauthorized, "UNAUTHORIZED", message, details)
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusNotFound, "NOT_FOUND", message, details)
}

// RateLimited writes a 429.
func RateLimited(w http.ResponseWriter, details string) {
	fail(w, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded", details)
}

// InternalError writes a 500. The error itself is never sent to the client.
func InternalError(w http.ResponseWriter, _ error) {
	fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", "An unexpected error occurred")
}

// ServiceUnavailable writes a 503, used when the catalog or the staff
// directory cannot serve.
func ServiceUnavailable(w http.ResponseWriter, details string) {
	fail(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service unavailable", details)
}

// BadGateway writes a 502 for staff directory failures that are not 5xx.
func BadGateway(w http.ResponseWriter, details string) {
	fail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Upstream request failed", details)
}

// GatewayTimeout writes a 504.
func GatewayTimeout(w http.ResponseWriter, details string) {
	fail(w, http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", "Upstream request timed out", details)
}

// ErrorFromType maps the unitmap error taxonomy onto a response.
func ErrorFromType(w http.ResponseWriter, err error) {
	var (
		notFound   *errors.NotFoundError
		validation *errors.ValidationError
		apiErr     *errors.APIError
	)
	switch {
	case errors.As(err, &notFound):
		NotFound(w, notFound.Error(), "")
	case errors.As(err, &validation):
		BadRequest(w, validation.Error(), "")
	case errors.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		GatewayTimeout(w, err.Error())
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= http.StatusInternalServerError {
			ServiceUnavailable(w, apiErr.Error())
		} else {
			BadGateway(w, apiErr.Error())
		}
	default:
		InternalError(w, err)
	}
}
