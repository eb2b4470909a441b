package handlers

import (
	"errors"
	"net/http"

	"github.com/sgallard/picstream/internal/models"
	"github.com/sgallard/picstream/internal/repositories"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext extracts the authenticated user's ID from the
// JWT claims stored by the auth middleware. Returns 0 when the request
// is anonymous.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// repoHTTPError maps repository sentinel errors to HTTP errors.
func repoHTTPError(err error, msg string) *echo.HTTPError {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, msg)
	case errors.Is(err, repositories.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, msg)
	case errors.Is(err, repositories.ErrInvalidReference):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, msg)
	case errors.Is(err, repositories.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, msg)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
