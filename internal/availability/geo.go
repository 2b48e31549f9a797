package availability

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Coordinate is a WGS 84 position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// InRange reports whether c is a finite WGS 84 position. (0,0) is in range.
func (c Coordinate) InRange() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Valid reports whether c is a usable shop or customer position. The zero value counts as
// missing because that is what an unset coordinate decodes to; a zero latitude or longitude
// on its own is fine.
func (c Coordinate) Valid() bool {
	return c.InRange() && (c.Lat != 0 || c.Lon != 0)
}

// DistanceKm returns the haversine distance between a and b. ok is false when either
// coordinate is missing.
func DistanceKm(a, b *Coordinate) (km float64, ok bool) {
	if a == nil || b == nil || !a.Valid() || !b.Valid() {
		return 0, false
	}

	return HaversineKm(*a, *b), true
}

// HaversineKm is the great-circle distance between two in-range coordinates.
func HaversineKm(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}
