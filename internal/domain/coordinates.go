package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

const earthRadiusMiles = 3958.8

// Validate rejects coordinates outside the [-90,90] / [-180,180] ranges.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("coordinates: latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("coordinates: longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// DistanceMiles returns the great-circle distance between two coordinate pairs
// using the haversine formula. Both pairs must be valid.
func DistanceMiles(a, b Coordinates) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}
	if err := b.Validate(); err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h)), nil
}
