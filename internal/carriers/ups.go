package carriers

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// UPS is a simulated third-party carrier.
type UPS struct {
	estimator
}

func NewUPS(geocoder ports.Geocoder) *UPS {
	return &UPS{
		estimator: estimator{
			carrier:   domain.CarrierUPS,
			geocoder:  geocoder,
			speedMult: 2.0,
			priceMult: 1.5,
		},
	}
}

// TrackingID mints a 1Z-prefixed identifier: six hex characters, the "3E"
// economy service code, then eight digits.
func (c *UPS) TrackingID(uuid.UUID) string {
	var b strings.Builder
	b.WriteString("1Z")
	for i := 0; i < 6; i++ {
		b.WriteByte("0123456789ABCDEF"[rand.Intn(16)])
	}
	b.WriteString("3E")
	for i := 0; i < 8; i++ {
		b.WriteByte(digits[rand.Intn(10)])
	}
	return b.String()
}

func (c *UPS) CreateShipment(ctx context.Context, req ShipmentRequest) (*domain.Shipment, error) {
	return newShipment(ctx, c, req)
}

func (c *UPS) ShipmentStatus(context.Context, string) (*domain.ShipmentStatus, error) {
	return nil, fmt.Errorf("ups: %w", ErrTrackingUnsupported)
}
