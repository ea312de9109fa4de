// Package handler contains the HTTP handlers. Handlers bind and
// validate request DTOs, delegate to the services and translate the
// typed service errors into exactly one status code each.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviemetrics/movie-metrics/internal/errs"
)

// dbTimeout bounds every storage call made on behalf of a request.
const dbTimeout = 5 * time.Second

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, &errs.ValidationError{Fields: map[string]string{name: "must be a positive number"}}
	}
	return id, nil
}

// respondError maps a service error onto the response contract:
// NotFound 404, Conflict 409, Permission 403, Validation 400 with the
// field map as body, everything else a logged bodyless 500.
func respondError(c echo.Context, err error) error {
	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Message})
	}
	var cf *errs.ConflictError
	if errors.As(err, &cf) {
		return c.JSON(http.StatusConflict, echo.Map{"error": cf.Message})
	}
	var pe *errs.PermissionError
	if errors.As(err, &pe) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": pe.Message})
	}
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, ve.Fields)
	}
	// Unexpected errors are logged but never leak to the client.
	log.Printf("internal error: %v", err)
	return c.NoContent(http.StatusInternalServerError)
}
