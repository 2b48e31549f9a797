package availability

import "math"

// boundaryEpsilon is the tolerance, in degrees, for treating a point as lying on an edge.
const boundaryEpsilon = 1e-12

// Zone is an admin-drawn delivery area. The polygon ring closes back to its first point.
type Zone struct {
	ID      string       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Polygon []Coordinate `json:"polygon" yaml:"polygon"`
}

// Contains runs an even-odd ray cast over (lon, lat). Points on an edge or vertex are inside.
// Unlike distance, (0,0) is an ordinary point here.
func Contains(p Coordinate, z Zone) bool {
	if !p.InRange() {
		return false
	}

	ring := openRing(z.Polygon)
	n := len(ring)
	if n == 0 {
		return false
	}

	x, y := p.Lon, p.Lat
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if onSegment(x, y, ring[j].Lon, ring[j].Lat, ring[i].Lon, ring[i].Lat) {
			return true
		}
	}
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lon, ring[i].Lat
		xj, yj := ring[j].Lon, ring[j].Lat
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}

	return inside
}

// openRing drops a trailing vertex that repeats the first one.
func openRing(ring []Coordinate) []Coordinate {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		return ring[:n-1]
	}
	return ring
}

func onSegment(px, py, ax, ay, bx, by float64) bool {
	cross := (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	if math.Abs(cross) > boundaryEpsilon {
		return false
	}
	return px >= math.Min(ax, bx)-boundaryEpsilon && px <= math.Max(ax, bx)+boundaryEpsilon &&
		py >= math.Min(ay, by)-boundaryEpsilon && py <= math.Max(ay, by)+boundaryEpsilon
}
