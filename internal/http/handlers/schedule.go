package handlers

import (
	"net/http"
	"time"

	"storefront/internal/availability"
	"storefront/internal/services"
	"storefront/pkg/models"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

// ScheduleHandler serves the owner endpoints that edit hours, closures, settings and holidays
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// UpdateBusinessHoursRequest represents the weekly schedule of a shop
type UpdateBusinessHoursRequest struct {
	BusinessHours []availability.BusinessHoursRecord `json:"business_hours" validate:"required,dive"`
}

// UpdateTemporaryClosureRequest represents an owner opening or closing the shop outside its hours
type UpdateTemporaryClosureRequest struct {
	IsClosed    bool       `json:"is_closed"`
	ClosedUntil *time.Time `json:"closed_until,omitempty"`
	ReopenTime  string     `json:"reopen_time,omitempty"`
}

// AddHolidayRequest represents a whole-day closure range
type AddHolidayRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Reason    string `json:"reason" validate:"max=255"`
}

// UpdateBusinessHours godoc
// @Summary Replace the weekly schedule
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "Shop ID"
// @Param request body UpdateBusinessHoursRequest true "Business hours"
// @Success 200 {object} models.ShopStatus
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shops/{id}/business-hours [put]
// @Security BearerAuth
func (h *ScheduleHandler) UpdateBusinessHours(c echo.Context) error {
	shopID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateBusinessHoursRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	status, err := h.scheduleService.UpdateBusinessHours(c.Request().Context(), shopID, req.BusinessHours)
	if err != nil {
		return respondError(c, err, "Failed to update business hours")
	}

	log.Info().Str("shop_id", shopID.String()).Int("days", len(req.BusinessHours)).Msg("Business hours updated")
	return c.JSON(http.StatusOK, status)
}

// UpdateTemporaryClosure godoc
// @Summary Close or reopen the shop temporarily
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "Shop ID"
// @Param request body UpdateTemporaryClosureRequest true "Closure"
// @Success 200 {object} models.ShopStatus
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shops/{id}/temporary-closure [put]
// @Security BearerAuth
func (h *ScheduleHandler) UpdateTemporaryClosure(c echo.Context) error {
	shopID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTemporaryClosureRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	closure := availability.TemporaryClosure{
		IsClosed:    req.IsClosed,
		ClosedUntil: req.ClosedUntil,
		ReopenTime:  req.ReopenTime,
	}
	status, err := h.scheduleService.UpdateTemporaryClosure(c.Request().Context(), shopID, closure)
	if err != nil {
		return respondError(c, err, "Failed to update temporary closure")
	}

	log.Info().Str("shop_id", shopID.String()).Bool("is_closed", req.IsClosed).Msg("Temporary closure updated")
	return c.JSON(http.StatusOK, status)
}

// UpdateSettings godoc
// @Summary Replace delivery pricing and auto-accept settings
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "Shop ID"
// @Param request body models.ShopSettings true "Settings"
// @Success 200 {object} models.ShopStatus
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shops/{id}/settings [put]
// @Security BearerAuth
func (h *ScheduleHandler) UpdateSettings(c echo.Context) error {
	shopID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.ShopSettings
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	status, err := h.scheduleService.UpdateSettings(c.Request().Context(), shopID, req)
	if err != nil {
		return respondError(c, err, "Failed to update settings")
	}

	return c.JSON(http.StatusOK, status)
}

// ListHolidays godoc
// @Summary List special holidays
// @Tags schedule
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {array} models.SpecialHoliday
// @Failure 404 {object} map[string]string
// @Router /shops/{id}/holidays [get]
// @Security BearerAuth
func (h *ScheduleHandler) ListHolidays(c echo.Context) error {
	shopID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	holidays, err := h.scheduleService.ListHolidays(c.Request().Context(), shopID)
	if err != nil {
		return respondError(c, err, "Failed to list holidays")
	}

	return c.JSON(http.StatusOK, holidays)
}

// AddHoliday godoc
// @Summary Add a special holiday
// @Tags schedule
// @Accept json
// @Produce json
// @Param id path string true "Shop ID"
// @Param request body AddHolidayRequest true "Holiday dates (YYYY-MM-DD)"
// @Success 201 {object} models.SpecialHoliday
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shops/{id}/holidays [post]
// @Security BearerAuth
func (h *ScheduleHandler) AddHoliday(c echo.Context) error {
	shopID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req AddHolidayRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "end_date must be YYYY-MM-DD"})
	}

	holiday, err := h.scheduleService.AddHoliday(c.Request().Context(), shopID, start, end, req.Reason)
	if err != nil {
		return respondError(c, err, "Failed to add holiday")
	}

	return c.JSON(http.StatusCreated, holiday)
}

// DeleteHoliday godoc
// @Summary Delete a special holiday
// @Tags schedule
// @Param id path string true "Shop ID"
// @Param holiday_id path string true "Holiday ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /shops/{id}/holidays/{holiday_id} [delete]
// @Security BearerAuth
func (h *ScheduleHandler) DeleteHoliday(c echo.Context) error {
	shopID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	holidayID, err := parseUUIDParam(c, "holiday_id")
	if err != nil {
		return err
	}

	if err := h.scheduleService.DeleteHoliday(c.Request().Context(), shopID, holidayID); err != nil {
		return respondError(c, err, "Failed to delete holiday")
	}

	return c.NoContent(http.StatusNoContent)
}
