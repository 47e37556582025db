package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// DefaultNearestLimit bounds how many warehouses a delivery may be sourced
// from. Allocation never falls back past this bound; callers needing a wider
// search must raise the limit explicitly.
const DefaultNearestLimit = 4

// Directory ranks warehouses by distance to a destination address.
type Directory struct {
	Store    ports.WarehouseStore
	Geocoder ports.Geocoder
}

// NearestWarehouses returns up to limit warehouses ordered by non-decreasing
// great-circle distance from the address. The sort is stable, so equidistant
// warehouses keep their insertion order across repeated calls.
func (d *Directory) NearestWarehouses(ctx context.Context, address string, limit int) ([]domain.Warehouse, error) {
	origin, err := d.Geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("nearest warehouses: resolve %q: %w", address, err)
	}

	warehouses, err := d.Store.ListWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("nearest warehouses: list warehouses: %w", err)
	}

	distances := make([]float64, len(warehouses))
	for i, w := range warehouses {
		miles, err := domain.DistanceMiles(origin, w.Coordinates())
		if err != nil {
			return nil, fmt.Errorf("nearest warehouses: warehouse %s: %w", w.WarehouseID, err)
		}
		distances[i] = miles
	}

	order := make([]int, len(warehouses))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return distances[order[a]] < distances[order[b]]
	})

	if limit > len(order) {
		limit = len(order)
	}

	nearest := make([]domain.Warehouse, 0, limit)
	for _, i := range order[:limit] {
		nearest = append(nearest, warehouses[i])
	}
	return nearest, nil
}
