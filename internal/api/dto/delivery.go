package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

type CreateDeliveryRequest struct {
	RecipientAddress string    `json:"recipient_address"`
	DeliverySLA      string    `json:"delivery_sla"`
	Items            []ItemDTO `json:"items"`
}

type DeliveryTimeResponse struct {
	WarehouseID  uuid.UUID `json:"warehouse_id"`
	FromAddress  string    `json:"from_address"`
	DeliveryTime time.Time `json:"delivery_time"`
	Items        []ItemDTO `json:"items"`
	Provider     string    `json:"provider"`
}

type BreakdownResponse struct {
	RecipientAddress string                 `json:"recipient_address"`
	ExpectedAt       time.Time              `json:"expected_at"`
	CanMeetSLA       bool                   `json:"can_meet_sla"`
	DeliveryTimes    []DeliveryTimeResponse `json:"delivery_times"`
}

type DeliveryResponse struct {
	DeliveryID  uuid.UUID          `json:"delivery_id"`
	OrderID     uuid.UUID          `json:"order_id"`
	CreatedAt   time.Time          `json:"created_at"`
	FulfilledAt *time.Time         `json:"fulfilled_at"`
	DeliverySLA string             `json:"delivery_sla"`
	Shipments   []ShipmentResponse `json:"shipments"`
}

func NewBreakdown(breakdown *domain.DeliveryBreakdown) BreakdownResponse {
	times := make([]DeliveryTimeResponse, 0, len(breakdown.Estimates))
	for _, estimate := range breakdown.Estimates {
		times = append(times, DeliveryTimeResponse{
			WarehouseID:  estimate.WarehouseID,
			FromAddress:  estimate.FromAddress,
			DeliveryTime: estimate.DeliveryTime,
			Items:        NewItems(estimate.Items),
			Provider:     estimate.Carrier.String(),
		})
	}

	return BreakdownResponse{
		RecipientAddress: breakdown.RecipientAddress,
		ExpectedAt:       breakdown.ExpectedAt,
		CanMeetSLA:       breakdown.CanMeetSLA,
		DeliveryTimes:    times,
	}
}

func NewDelivery(delivery domain.Delivery) DeliveryResponse {
	return DeliveryResponse{
		DeliveryID:  delivery.DeliveryID,
		OrderID:     delivery.OrderID,
		CreatedAt:   delivery.CreatedAt,
		FulfilledAt: delivery.FulfilledAt,
		DeliverySLA: delivery.SLA.String(),
		Shipments:   NewShipments(delivery.Shipments),
	}
}
