package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryEstimate is one planned shipment within a breakdown: the portion of a
// delivery sourced from a single warehouse, annotated with the carrier chosen
// for it and the estimated arrival time.
type DeliveryEstimate struct {
	WarehouseID  uuid.UUID
	FromAddress  string
	DeliveryTime time.Time
	Items        []Item
	Carrier      Carrier
}

// DeliveryBreakdown is the output of the breakdown engine: the per-warehouse
// shipment plan for a request and the aggregate SLA feasibility verdict.
// CanMeetSLA is false if any single estimate misses the SLA window.
type DeliveryBreakdown struct {
	RecipientAddress string
	ExpectedAt       time.Time
	CanMeetSLA       bool
	Estimates        []DeliveryEstimate
}

// Delivery aggregates the shipments created for one order under a single SLA.
type Delivery struct {
	DeliveryID       uuid.UUID
	OrderID          uuid.UUID
	RecipientAddress string
	SLA              SLA
	CreatedAt        time.Time
	FulfilledAt      *time.Time
	Shipments        []Shipment
}

// Return is a customer return: a single shipment carrying items back from the
// recipient to a warehouse.
type Return struct {
	ReturnID  uuid.UUID
	OrderID   uuid.UUID
	Shipment  Shipment
	CreatedAt time.Time
	Items     []Item
}
