package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

type ItemDTO struct {
	UPC   int `json:"upc"`
	Stock int `json:"stock"`
}

type ShipmentStatusResponse struct {
	ShipmentID  uuid.UUID  `json:"shipment_id"`
	ExpectedAt  time.Time  `json:"expected_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	Message     string     `json:"message"`
}

type ShipmentResponse struct {
	ShipmentID         uuid.UUID              `json:"shipment_id"`
	FromAddress        string                 `json:"from_address"`
	ShippingAddress    string                 `json:"shipping_address"`
	Provider           string                 `json:"provider"`
	ProviderShipmentID string                 `json:"provider_shipment_id"`
	CreatedAt          time.Time              `json:"created_at"`
	Items              []ItemDTO              `json:"items"`
	Status             ShipmentStatusResponse `json:"status"`
}

type CreateShipmentRequest struct {
	FromAddress     string    `json:"from_address"`
	ShippingAddress string    `json:"shipping_address"`
	Items           []ItemDTO `json:"items"`
	Provider        string    `json:"provider"`
}

func NewItems(items []domain.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, ItemDTO{UPC: item.UPC, Stock: item.Stock})
	}
	return out
}

func DomainItems(items []ItemDTO) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		out = append(out, domain.Item{UPC: item.UPC, Stock: item.Stock})
	}
	return out
}

func NewShipmentStatus(status domain.ShipmentStatus) ShipmentStatusResponse {
	return ShipmentStatusResponse{
		ShipmentID:  status.ShipmentID,
		ExpectedAt:  status.ExpectedAt,
		UpdatedAt:   status.UpdatedAt,
		DeliveredAt: status.DeliveredAt,
		Message:     status.Message.String(),
	}
}

func NewShipment(shipment domain.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ShipmentID:         shipment.ShipmentID,
		FromAddress:        shipment.FromAddress,
		ShippingAddress:    shipment.ShippingAddress,
		Provider:           shipment.Carrier.String(),
		ProviderShipmentID: shipment.CarrierTrackingID,
		CreatedAt:          shipment.CreatedAt,
		Items:              NewItems(shipment.Items),
		Status:             NewShipmentStatus(shipment.Status),
	}
}

func NewShipments(shipments []domain.Shipment) []ShipmentResponse {
	out := make([]ShipmentResponse, 0, len(shipments))
	for _, shipment := range shipments {
		out = append(out, NewShipment(shipment))
	}
	return out
}
