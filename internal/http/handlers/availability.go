package handlers

import (
	"net/http"

	"storefront/internal/availability"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

// AvailabilityHandler serves the public shop status and delivery quote endpoints
type AvailabilityHandler struct {
	availabilityService *services.AvailabilityService
	deliveryService     *services.DeliveryService
}

func NewAvailabilityHandler(availabilityService *services.AvailabilityService, deliveryService *services.DeliveryService) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
		deliveryService:     deliveryService,
	}
}

// DeliveryQuoteRequest represents the request to quote a delivery
type DeliveryQuoteRequest struct {
	Lat      *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon      *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
	Subtotal float64  `json:"subtotal" validate:"gte=0"`
}

// GetAvailability godoc
// @Summary Get shop availability
// @Description Whether the shop can take orders now, evaluated in the shop's timezone
// @Tags availability
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} models.ShopStatus
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shops/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	shopID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	status, err := h.availabilityService.GetStatus(c.Request().Context(), shopID)
	if err != nil {
		return respondError(c, err, "Failed to evaluate shop availability")
	}

	return c.JSON(http.StatusOK, status)
}

// QuoteDelivery godoc
// @Summary Quote a delivery
// @Description Distance, fee and feasibility of delivering to a coordinate
// @Tags availability
// @Accept json
// @Produce json
// @Param id path string true "Shop ID"
// @Param request body DeliveryQuoteRequest true "Customer location and order subtotal"
// @Success 200 {object} models.DeliveryQuote
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shops/{id}/delivery-quote [post]
func (h *AvailabilityHandler) QuoteDelivery(c echo.Context) error {
	shopID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req DeliveryQuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	customer := availability.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	quote, err := h.deliveryService.Quote(c.Request().Context(), shopID, customer, req.Subtotal)
	if err != nil {
		return respondError(c, err, "Failed to quote delivery")
	}

	return c.JSON(http.StatusOK, quote)
}
