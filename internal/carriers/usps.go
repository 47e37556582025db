package carriers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// USPS is a simulated third-party carrier, the slowest of the set.
type USPS struct {
	estimator
}

func NewUSPS(geocoder ports.Geocoder) *USPS {
	return &USPS{
		estimator: estimator{
			carrier:   domain.CarrierUSPS,
			geocoder:  geocoder,
			speedMult: 2.5,
			priceMult: 1.0,
		},
	}
}

// TrackingID mints five groups of four digits.
func (c *USPS) TrackingID(uuid.UUID) string {
	return digitGroups(5, 4)
}

func (c *USPS) CreateShipment(ctx context.Context, req ShipmentRequest) (*domain.Shipment, error) {
	return newShipment(ctx, c, req)
}

func (c *USPS) ShipmentStatus(context.Context, string) (*domain.ShipmentStatus, error) {
	return nil, fmt.Errorf("usps: %w", ErrTrackingUnsupported)
}
