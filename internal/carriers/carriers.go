package carriers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// ErrTrackingUnsupported reports that a carrier cannot serve status lookups.
// Simulated third-party carriers have no tracking backend to poll.
var ErrTrackingUnsupported = errors.New("carrier does not support status tracking")

// ShipmentRequest asks a carrier model to create a single shipment.
type ShipmentRequest struct {
	FromAddress     string
	ShippingAddress string
	Items           []domain.Item
}

// Model is the per-carrier contract: transit/price estimation from a
// distance-based linear model, tracking-id minting, shipment creation and
// status lookup. One implementation exists per Carrier enum value.
type Model interface {
	Carrier() domain.Carrier

	// Estimated transit duration between two addresses.
	TransitTime(ctx context.Context, fromAddress, toAddress string) (time.Duration, error)

	// Estimated shipping price in dollars between two addresses.
	Price(ctx context.Context, fromAddress, toAddress string) (float64, error)

	// Mint a carrier-specific tracking identifier for a shipment id.
	TrackingID(shipmentID uuid.UUID) string

	// Build a new pending shipment with a fresh id and computed ETA.
	CreateShipment(ctx context.Context, req ShipmentRequest) (*domain.Shipment, error)

	// Current status for a tracking identifier, or ErrTrackingUnsupported.
	ShipmentStatus(ctx context.Context, trackingID string) (*domain.ShipmentStatus, error)
}

// Baseline rates before carrier multipliers: 12 hours and 5 dollars per
// 100 miles of great-circle distance.
const (
	baseHoursPer100Miles   = 12.0
	baseDollarsPer100Miles = 5.0
)

// estimator holds the shared distance-based time/price model. Concrete
// carriers embed it and supply their multipliers.
type estimator struct {
	carrier   domain.Carrier
	geocoder  ports.Geocoder
	speedMult float64
	priceMult float64
}

func (e estimator) Carrier() domain.Carrier { return e.carrier }

func (e estimator) TransitTime(ctx context.Context, fromAddress, toAddress string) (time.Duration, error) {
	miles, err := e.miles(ctx, fromAddress, toAddress)
	if err != nil {
		return 0, fmt.Errorf("transit time: %w", err)
	}

	hours := miles / 100 * baseHoursPer100Miles * e.speedMult
	return time.Duration(hours * float64(time.Hour)), nil
}

func (e estimator) Price(ctx context.Context, fromAddress, toAddress string) (float64, error) {
	miles, err := e.miles(ctx, fromAddress, toAddress)
	if err != nil {
		return 0, fmt.Errorf("price: %w", err)
	}

	return miles / 100 * baseDollarsPer100Miles * e.priceMult, nil
}

func (e estimator) miles(ctx context.Context, fromAddress, toAddress string) (float64, error) {
	from, err := e.geocoder.Geocode(ctx, fromAddress)
	if err != nil {
		return 0, fmt.Errorf("geocode %q: %w", fromAddress, err)
	}

	to, err := e.geocoder.Geocode(ctx, toAddress)
	if err != nil {
		return 0, fmt.Errorf("geocode %q: %w", toAddress, err)
	}

	return domain.DistanceMiles(from, to)
}

// newShipment builds a pending shipment for any carrier model: fresh id,
// created-at now, ETA from the model's transit estimate and a tracking id
// minted for the new shipment id.
func newShipment(ctx context.Context, m Model, req ShipmentRequest) (*domain.Shipment, error) {
	transit, err := m.TransitTime(ctx, req.FromAddress, req.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("create shipment: %w", err)
	}

	id := uuid.New()
	now := time.Now()

	return &domain.Shipment{
		ShipmentID:        id,
		FromAddress:       req.FromAddress,
		ShippingAddress:   req.ShippingAddress,
		Carrier:           m.Carrier(),
		CarrierTrackingID: m.TrackingID(id),
		CreatedAt:         now,
		Items:             req.Items,
		Status: domain.ShipmentStatus{
			ShipmentID: id,
			ExpectedAt: now.Add(transit),
			UpdatedAt:  now,
			Message:    domain.StatusPending,
		},
	}, nil
}
