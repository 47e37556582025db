package carriers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// Internal is the in-house shipping fleet, the fastest and cheapest of the
// set. Its tracking id is the shipment id itself, so no external identifier
// is ever minted and status lookups resolve against our own records.
type Internal struct {
	estimator
	shipments ports.ShipmentStore
}

func NewInternal(geocoder ports.Geocoder, shipments ports.ShipmentStore) *Internal {
	return &Internal{
		estimator: estimator{
			carrier:   domain.CarrierInternal,
			geocoder:  geocoder,
			speedMult: 0.5,
			priceMult: 0.8,
		},
		shipments: shipments,
	}
}

// TrackingID returns the stringified shipment id. Two calls with the same id
// return the same tracking id.
func (c *Internal) TrackingID(shipmentID uuid.UUID) string {
	return shipmentID.String()
}

func (c *Internal) CreateShipment(ctx context.Context, req ShipmentRequest) (*domain.Shipment, error) {
	return newShipment(ctx, c, req)
}

// ShipmentStatus derives the current status from transit progress: the
// tracking id is the shipment id, so the shipment record supplies the
// created/expected timestamps the derivation needs.
func (c *Internal) ShipmentStatus(ctx context.Context, trackingID string) (*domain.ShipmentStatus, error) {
	shipmentID, err := uuid.Parse(trackingID)
	if err != nil {
		return nil, fmt.Errorf("internal tracking id %q: %w", trackingID, err)
	}

	shipment, err := c.shipments.GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("internal status for %q: %w", trackingID, err)
	}

	now := time.Now()
	status := domain.ShipmentStatus{
		ShipmentID: shipment.ShipmentID,
		ExpectedAt: shipment.Status.ExpectedAt,
		UpdatedAt:  now,
		Message:    domain.ProgressStatus(shipment.CreatedAt, shipment.Status.ExpectedAt, now),
	}

	if status.Message == domain.StatusDelivered {
		delivered := shipment.Status.ExpectedAt
		status.DeliveredAt = &delivered
	}

	return &status, nil
}
