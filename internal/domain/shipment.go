package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the unified shipment status message across all carriers.
type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusException Status = "exception"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusShipped, StatusInTransit, StatusDelivered, StatusException:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown shipment status %q", s)
}

func (s Status) String() string { return string(s) }

// ShipmentStatus is the status record attached to a shipment. Carriers report
// status through varying sources, so everything is normalized into this shape.
type ShipmentStatus struct {
	ShipmentID  uuid.UUID
	ExpectedAt  time.Time
	UpdatedAt   time.Time
	DeliveredAt *time.Time
	Message     Status
}

// Shipment is one warehouse-to-recipient parcel. Several shipments can make up
// a single delivery when stock is sourced from multiple warehouses.
type Shipment struct {
	ShipmentID        uuid.UUID
	FromAddress       string
	ShippingAddress   string
	Carrier           Carrier
	CarrierTrackingID string
	CreatedAt         time.Time
	Items             []Item
	Status            ShipmentStatus
}

// ProgressStatus derives a status message from elapsed transit time without a
// carrier poll: progress <= 0 is pending, >= 1 is delivered, anything between
// is in transit.
func ProgressStatus(createdAt, expectedAt, now time.Time) Status {
	expected := expectedAt.Sub(createdAt)
	if expected <= 0 {
		return StatusDelivered
	}

	elapsed := now.Sub(createdAt)
	progress := float64(elapsed) / float64(expected)

	switch {
	case progress <= 0:
		return StatusPending
	case progress >= 1:
		return StatusDelivered
	default:
		return StatusInTransit
	}
}
