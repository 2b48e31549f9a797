package services

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/availability"
	"storefront/pkg/models"

	"github.com/google/uuid"
)

// CreateZoneInput describes a new delivery zone. Either Geometry (GeoJSON) or Polygon is required.
type CreateZoneInput struct {
	Name     string
	Geometry string
	Polygon  []availability.Coordinate
	RadiusKm float64
}

// ZoneService manages admin-drawn delivery zones
type ZoneService struct {
	zones ZoneStore
}

func NewZoneService(zones ZoneStore) *ZoneService {
	return &ZoneService{zones: zones}
}

// Create validates the geometry by decoding it before storing the zone.
func (s *ZoneService) Create(ctx context.Context, in CreateZoneInput) (*models.DeliveryZone, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: zone name is required", ErrInvalidInput)
	}
	if in.RadiusKm < 0 {
		return nil, fmt.Errorf("%w: radius must not be negative", ErrInvalidInput)
	}

	geometry := strings.TrimSpace(in.Geometry)
	if geometry == "" {
		if len(in.Polygon) == 0 {
			return nil, fmt.Errorf("%w: geometry or polygon is required", ErrInvalidInput)
		}
		for _, c := range in.Polygon {
			if !c.InRange() {
				return nil, fmt.Errorf("%w: invalid polygon vertex %v,%v", ErrInvalidInput, c.Lat, c.Lon)
			}
		}
		encoded, err := models.EncodePolygon(in.Polygon)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		geometry = encoded
	}

	zone := &models.DeliveryZone{
		Name:     name,
		Geometry: geometry,
		RadiusKm: in.RadiusKm,
		IsActive: true,
	}
	if _, err := zone.Shape(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.zones.Create(ctx, zone); err != nil {
		return nil, fmt.Errorf("create zone: %w", err)
	}
	return zone, nil
}

func (s *ZoneService) List(ctx context.Context, activeOnly bool) ([]models.DeliveryZone, error) {
	return s.zones.List(ctx, activeOnly)
}

// Contains reports whether point lies inside the stored zone.
func (s *ZoneService) Contains(ctx context.Context, zoneID uuid.UUID, point availability.Coordinate) (bool, error) {
	zone, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		return false, err
	}

	shape, err := zone.Shape()
	if err != nil {
		return false, fmt.Errorf("zone %s: %w", zoneID, err)
	}
	return shape.Contains(point), nil
}
