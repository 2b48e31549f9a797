package models

import (
	"errors"
	"fmt"

	"storefront/internal/availability"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ErrUnsupportedGeometry is returned for GeoJSON types other than Polygon and Point.
var ErrUnsupportedGeometry = errors.New("unsupported zone geometry")

// DeliveryZone is an admin-drawn delivery area stored as GeoJSON
type DeliveryZone struct {
	BaseModel
	Name     string  `gorm:"not null" json:"name" validate:"required"`
	Geometry string  `gorm:"type:text;not null" json:"geometry"`
	RadiusKm float64 `gorm:"default:0" json:"radius_km"` // only used by Point zones
	IsActive bool    `gorm:"default:true" json:"is_active"`
}

// ZoneShape is a decoded zone. Point zones cover a circle of RadiusKm around Center.
type ZoneShape struct {
	Zone     availability.Zone
	Center   *availability.Coordinate
	RadiusKm float64
}

// Contains reports whether p lies in the shape. Points on the border are inside.
func (s ZoneShape) Contains(p availability.Coordinate) bool {
	if s.Center != nil {
		return p.InRange() && availability.HaversineKm(p, *s.Center) <= s.RadiusKm
	}
	return availability.Contains(p, s.Zone)
}

// Shape decodes the stored geometry. Only the outer ring of a polygon is used.
func (z *DeliveryZone) Shape() (ZoneShape, error) {
	var g geom.T
	if err := geojson.Unmarshal([]byte(z.Geometry), &g); err != nil {
		return ZoneShape{}, fmt.Errorf("decode zone geometry: %w", err)
	}

	switch t := g.(type) {
	case *geom.Polygon:
		if t.NumLinearRings() == 0 {
			return ZoneShape{}, fmt.Errorf("%w: empty polygon", ErrUnsupportedGeometry)
		}
		coords := t.LinearRing(0).Coords()
		ring := make([]availability.Coordinate, 0, len(coords))
		for _, c := range coords {
			ring = append(ring, availability.Coordinate{Lat: c.Y(), Lon: c.X()})
		}
		if len(ring) < 3 {
			return ZoneShape{}, fmt.Errorf("%w: polygon needs at least 3 vertices", ErrUnsupportedGeometry)
		}
		return ZoneShape{Zone: availability.Zone{ID: z.ID.String(), Name: z.Name, Polygon: ring}}, nil
	case *geom.Point:
		return ZoneShape{
			Zone:     availability.Zone{ID: z.ID.String(), Name: z.Name},
			Center:   &availability.Coordinate{Lat: t.Y(), Lon: t.X()},
			RadiusKm: z.RadiusKm,
		}, nil
	default:
		return ZoneShape{}, fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
	}
}

// EncodePolygon renders a ring as a GeoJSON Polygon, closing it if needed.
func EncodePolygon(ring []availability.Coordinate) (string, error) {
	if len(ring) < 3 {
		return "", fmt.Errorf("%w: polygon needs at least 3 vertices", ErrUnsupportedGeometry)
	}

	coords := make([]geom.Coord, 0, len(ring)+1)
	for _, c := range ring {
		coords = append(coords, geom.Coord{c.Lon, c.Lat})
	}
	if ring[0] != ring[len(ring)-1] {
		coords = append(coords, geom.Coord{ring[0].Lon, ring[0].Lat})
	}

	polygon, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{coords})
	if err != nil {
		return "", fmt.Errorf("build polygon: %w", err)
	}
	data, err := geojson.Marshal(polygon)
	if err != nil {
		return "", fmt.Errorf("encode polygon: %w", err)
	}
	return string(data), nil
}

// EncodePoint renders a coordinate as a GeoJSON Point.
func EncodePoint(c availability.Coordinate) (string, error) {
	point, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{c.Lon, c.Lat})
	if err != nil {
		return "", fmt.Errorf("build point: %w", err)
	}
	data, err := geojson.Marshal(point)
	if err != nil {
		return "", fmt.Errorf("encode point: %w", err)
	}
	return string(data), nil
}
