package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront/internal/availability"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ZoneHandler serves the admin delivery zone endpoints
type ZoneHandler struct {
	zoneService *services.ZoneService
}

func NewZoneHandler(zoneService *services.ZoneService) *ZoneHandler {
	return &ZoneHandler{
		zoneService: zoneService,
	}
}

// CreateZoneRequest represents a new delivery zone. Geometry is a GeoJSON Polygon or Point,
// sent either as an object or as a string; Polygon is an alternative list of vertices.
type CreateZoneRequest struct {
	Name     string                    `json:"name" validate:"required,max=255"`
	Geometry json.RawMessage           `json:"geometry,omitempty" swaggertype:"object"`
	Polygon  []availability.Coordinate `json:"polygon,omitempty"`
	RadiusKm float64                   `json:"radius_km" validate:"gte=0"`
}

// ContainsRequest represents a point to test against a zone
type ContainsRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

// CreateZone godoc
// @Summary Create a delivery zone
// @Tags zones
// @Accept json
// @Produce json
// @Param request body CreateZoneRequest true "Zone"
// @Success 201 {object} models.DeliveryZone
// @Failure 400 {object} map[string]string
// @Router /admin/zones [post]
// @Security BearerAuth
func (h *ZoneHandler) CreateZone(c echo.Context) error {
	var req CreateZoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	geometry, err := geometryText(req.Geometry)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "geometry must be a GeoJSON object or string"})
	}

	zone, err := h.zoneService.Create(c.Request().Context(), services.CreateZoneInput{
		Name:     req.Name,
		Geometry: geometry,
		Polygon:  req.Polygon,
		RadiusKm: req.RadiusKm,
	})
	if err != nil {
		return respondError(c, err, "Failed to create delivery zone")
	}

	log.Info().Str("zone_id", zone.ID.String()).Str("name", zone.Name).Msg("Delivery zone created")
	return c.JSON(http.StatusCreated, zone)
}

// ListZones godoc
// @Summary List delivery zones
// @Tags zones
// @Produce json
// @Param active query bool false "Only active zones"
// @Success 200 {array} models.DeliveryZone
// @Router /admin/zones [get]
// @Security BearerAuth
func (h *ZoneHandler) ListZones(c echo.Context) error {
	activeOnly := false
	if raw := c.QueryParam("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid active filter")
		}
		activeOnly = parsed
	}

	zones, err := h.zoneService.List(c.Request().Context(), activeOnly)
	if err != nil {
		return respondError(c, err, "Failed to list delivery zones")
	}

	return c.JSON(http.StatusOK, zones)
}

// Contains godoc
// @Summary Test whether a point lies in a delivery zone
// @Tags zones
// @Accept json
// @Produce json
// @Param id path string true "Zone ID"
// @Param request body ContainsRequest true "Point"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/zones/{id}/contains [post]
// @Security BearerAuth
func (h *ZoneHandler) Contains(c echo.Context) error {
	zoneID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ContainsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	inside, err := h.zoneService.Contains(c.Request().Context(), zoneID, availability.Coordinate{Lat: *req.Lat, Lon: *req.Lon})
	if err != nil {
		return respondError(c, err, "Failed to check delivery zone")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"zone_id": zoneID,
		"inside":  inside,
	})
}

func geometryText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(raw), nil
}
