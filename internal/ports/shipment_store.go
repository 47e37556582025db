package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

// ErrNotFound reports that a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ShipmentQuery filters and pages a shipment listing. Address and tracking-id
// filters match substrings, case-insensitively.
type ShipmentQuery struct {
	Carrier         *domain.Carrier
	Status          *domain.Status
	FromAddress     string
	ShippingAddress string
	TrackingID      string
	DeliveryID      *uuid.UUID
	DateDesc        bool
	Limit           int
	Offset          int
}

// Port: persistence for shipment records.
type ShipmentStore interface {
	// Persist a shipment. deliveryID links it to a delivery; nil for direct
	// shipments and returns.
	CreateShipment(ctx context.Context, shipment domain.Shipment, deliveryID *uuid.UUID) error

	// Fetch one shipment by id, or ErrNotFound.
	GetShipment(ctx context.Context, shipmentID uuid.UUID) (*domain.Shipment, error)

	// List shipments matching the query, ordered by creation date.
	ListShipments(ctx context.Context, q ShipmentQuery) ([]domain.Shipment, error)
}

// Port: persistence for deliveries and their shipment links.
type DeliveryStore interface {
	// Persist a delivery and all of its shipments atomically.
	CreateDelivery(ctx context.Context, delivery domain.Delivery) error

	// List the deliveries for an order, including their shipments.
	ListDeliveries(ctx context.Context, orderID uuid.UUID) ([]domain.Delivery, error)
}

// Port: persistence for return records.
type ReturnStore interface {
	CreateReturn(ctx context.Context, ret domain.Return) error
	ListReturns(ctx context.Context, orderID uuid.UUID) ([]domain.Return, error)
}
