package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

type CreateReturnRequest struct {
	FromAddress string    `json:"from_address"`
	Items       []ItemDTO `json:"items"`
}

type ReturnResponse struct {
	OrderID   uuid.UUID        `json:"order_id"`
	ReturnID  uuid.UUID        `json:"return_id"`
	Shipment  ShipmentResponse `json:"shipment"`
	CreatedAt time.Time        `json:"created_at"`
	Items     []ItemDTO        `json:"items"`
}

func NewReturn(ret domain.Return) ReturnResponse {
	return ReturnResponse{
		OrderID:   ret.OrderID,
		ReturnID:  ret.ReturnID,
		Shipment:  NewShipment(ret.Shipment),
		CreatedAt: ret.CreatedAt,
		Items:     NewItems(ret.Items),
	}
}

func NewReturns(rets []domain.Return) []ReturnResponse {
	out := make([]ReturnResponse, 0, len(rets))
	for _, ret := range rets {
		out = append(out, NewReturn(ret))
	}
	return out
}
