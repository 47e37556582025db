package geocode

import (
	"context"
	"fmt"
	"strings"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// Static resolves addresses from a fixed table. Used by tests and demo seeds
// where hitting a real geocoder would make results non-deterministic.
type Static struct {
	coords map[string]domain.Coordinates
}

func NewStatic(entries map[string]domain.Coordinates) *Static {
	coords := make(map[string]domain.Coordinates, len(entries))
	for addr, c := range entries {
		coords[normalize(addr)] = c
	}
	return &Static{coords: coords}
}

func (s *Static) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	coords, ok := s.coords[normalize(address)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("static geocode %q: %w", address, ports.ErrAddressNotFound)
	}
	return coords, nil
}

func normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
