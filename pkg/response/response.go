// Package response centralizes HTTP error shapes for the catalog handlers and the dev proxy.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/maxviazov/chat-endpoints/internal/endpoints"
)

// ErrUpstream marks a dev proxy request that could not reach the backend.
var ErrUpstream = errors.New("upstream unavailable")

// ErrNotProxied marks a request that fell outside the proxy prefix.
var ErrNotProxied = errors.New("not proxied")

// ErrorPayload is the canonical error envelope.
type ErrorPayload struct {
	Error       string                 `json:"error"`
	Message     string                 `json:"message,omitempty"`
	FieldErrors []endpoints.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain error into an HTTP status and payload.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	switch {
	case errors.Is(err, endpoints.ErrInvalidInput):
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more identifiers are invalid",
			FieldErrors: endpoints.FieldErrors(err),
		}
	case errors.Is(err, endpoints.ErrUnknownRoute):
		return http.StatusNotFound, ErrorPayload{Error: "unknown_route", Message: err.Error()}
	case errors.Is(err, ErrNotProxied):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway, ErrorPayload{Error: "upstream_unavailable"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// WriteHTTPError is WriteError for plain net/http handlers such as the reverse proxy.
func WriteHTTPError(w http.ResponseWriter, err error) {
	status, payload := MapError(err)
	r := render.JSON{Data: payload}
	r.WriteContentType(w)
	w.WriteHeader(status)
	_ = r.Render(w)
}
