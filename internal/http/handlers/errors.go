package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/http/middleware"
	"storefront/internal/repo"
	"storefront/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// respondError maps service and repository errors to JSON error responses.
func respondError(c echo.Context, err error, msg string) error {
	switch {
	case errors.Is(err, repo.ErrShopNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Shop not found"})
	case errors.Is(err, repo.ErrZoneNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Delivery zone not found"})
	case errors.Is(err, repo.ErrHolidayNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Holiday not found"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	middleware.Logger(c).Error().Err(err).Str("path", c.Path()).Msg(msg)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg})
}

// parseUUIDParam returns a 400 HTTP error when the path param is not a UUID.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
