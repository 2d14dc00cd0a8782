// Package server provides the HTTP REST API for the buffet strategist.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/buffet-strategist/internal/pipeline"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *pipeline.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
