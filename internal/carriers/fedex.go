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

const digits = "0123456789"

// digitGroups mints n space-separated groups of k random digits, the format
// both FedEx and USPS use for their mock tracking numbers.
func digitGroups(n, k int) string {
	groups := make([]string, n)
	for i := range groups {
		var b strings.Builder
		for j := 0; j < k; j++ {
			b.WriteByte(digits[rand.Intn(10)])
		}
		groups[i] = b.String()
	}
	return strings.Join(groups, " ")
}

// FedEx is a simulated third-party carrier.
type FedEx struct {
	estimator
}

func NewFedEx(geocoder ports.Geocoder) *FedEx {
	return &FedEx{
		estimator: estimator{
			carrier:   domain.CarrierFedEx,
			geocoder:  geocoder,
			speedMult: 1.5,
			priceMult: 1.2,
		},
	}
}

// TrackingID mints three groups of four digits.
func (c *FedEx) TrackingID(uuid.UUID) string {
	return digitGroups(3, 4)
}

func (c *FedEx) CreateShipment(ctx context.Context, req ShipmentRequest) (*domain.Shipment, error) {
	return newShipment(ctx, c, req)
}

func (c *FedEx) ShipmentStatus(context.Context, string) (*domain.ShipmentStatus, error) {
	return nil, fmt.Errorf("fedex: %w", ErrTrackingUnsupported)
}
