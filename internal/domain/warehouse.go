package domain

import "github.com/google/uuid"

// Warehouse is a stocked fulfillment location with known coordinates.
// Coordinates are stored alongside the address so distance ranking does not
// re-geocode every warehouse on every request.
type Warehouse struct {
	WarehouseID uuid.UUID
	Address     string
	Latitude    float64
	Longitude   float64
}

func (w Warehouse) Coordinates() Coordinates {
	return Coordinates{Lat: w.Latitude, Lon: w.Longitude}
}
