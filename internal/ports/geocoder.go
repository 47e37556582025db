package ports

import (
	"context"
	"errors"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

// ErrAddressNotFound reports that an address could not be resolved to
// coordinates. Callers fail fast on it; retrying is the geocoder's concern.
var ErrAddressNotFound = errors.New("address could not be resolved")

// Contract for resolving a street address to geographic coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
