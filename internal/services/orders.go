package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justinbrick/capstone-project-shipping-api/internal/carriers"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// CannotMeetSLAError rejects a delivery commit whose breakdown misses the SLA.
// The computed breakdown rides along so callers can show the customer what was
// feasible.
type CannotMeetSLAError struct {
	Breakdown *domain.DeliveryBreakdown
}

func (e *CannotMeetSLAError) Error() string {
	return fmt.Sprintf("delivery to %q cannot meet SLA", e.Breakdown.RecipientAddress)
}

// OrderService commits accepted breakdowns into shipments and deliveries, and
// creates direct shipments and returns.
type OrderService struct {
	Engine     *BreakdownEngine
	Warehouses ports.WarehouseStore
	Carriers   *carriers.Registry
	Shipments  ports.ShipmentStore
	Deliveries ports.DeliveryStore
	Returns    ports.ReturnStore

	// ReturnsAddress is where return shipments are sent.
	ReturnsAddress string

	Log *zap.Logger
}

// CreateOrderDelivery computes a breakdown for the request and commits it:
// stock is removed from each chunk's warehouse, a shipment is created with the
// chunk's carrier, and the delivery is persisted with all its shipments.
//
// Stock mutation and shipment creation may span services, so atomicity is by
// compensation, not a database transaction: if any step fails, every stock
// removal already performed is added back before the error is returned. The
// caller sees either a complete delivery or no stock change at all.
//
// Stock read at breakdown time is not locked against a concurrent commit; two
// requests racing for the same rows can make this commit fail (and roll back)
// even though its own breakdown succeeded.
func (s *OrderService) CreateOrderDelivery(ctx context.Context, orderID uuid.UUID, recipientAddress string, sla domain.SLA, items []domain.Item) (*domain.Delivery, error) {
	breakdown, err := s.Engine.DeliveryBreakdown(ctx, recipientAddress, sla, items)
	if err != nil {
		return nil, err
	}
	if !breakdown.CanMeetSLA {
		return nil, &CannotMeetSLAError{Breakdown: breakdown}
	}

	delivery := domain.Delivery{
		DeliveryID:       uuid.New(),
		OrderID:          orderID,
		RecipientAddress: recipientAddress,
		SLA:              sla,
		CreatedAt:        time.Now(),
	}

	var removed []domain.DeliveryEstimate
	commitErr := func() error {
		for _, estimate := range breakdown.Estimates {
			if err := s.Warehouses.RemoveStock(ctx, estimate.WarehouseID, estimate.Items); err != nil {
				return fmt.Errorf("remove stock from warehouse %s: %w", estimate.WarehouseID, err)
			}
			removed = append(removed, estimate)

			model, err := s.Carriers.Get(estimate.Carrier)
			if err != nil {
				return fmt.Errorf("chunk from warehouse %s: %w", estimate.WarehouseID, err)
			}

			shipment, err := model.CreateShipment(ctx, carriers.ShipmentRequest{
				FromAddress:     estimate.FromAddress,
				ShippingAddress: recipientAddress,
				Items:           estimate.Items,
			})
			if err != nil {
				return fmt.Errorf("create %s shipment: %w", estimate.Carrier, err)
			}

			delivery.Shipments = append(delivery.Shipments, *shipment)
		}

		// Delivery and shipment records persist together; a failure here
		// still unwinds the stock removals above.
		if err := s.Deliveries.CreateDelivery(ctx, delivery); err != nil {
			return fmt.Errorf("persist delivery: %w", err)
		}
		return nil
	}()

	if commitErr != nil {
		s.rollbackStock(ctx, removed)
		return nil, fmt.Errorf("create order delivery: %w", commitErr)
	}

	return &delivery, nil
}

// rollbackStock re-adds every stock removal performed by a failed commit.
// Failures here are logged and skipped so one bad warehouse cannot block
// compensation of the others.
func (s *OrderService) rollbackStock(ctx context.Context, removed []domain.DeliveryEstimate) {
	for _, estimate := range removed {
		if err := s.Warehouses.AddStock(ctx, estimate.WarehouseID, estimate.Items); err != nil {
			s.log().Error("stock rollback failed",
				zap.String("warehouse_id", estimate.WarehouseID.String()),
				zap.Error(err),
			)
		}
	}
}

// CreateShipment creates and persists a single shipment with the given
// carrier, outside of any delivery. Used for returns and internal moves.
func (s *OrderService) CreateShipment(ctx context.Context, carrier domain.Carrier, req carriers.ShipmentRequest) (*domain.Shipment, error) {
	model, err := s.Carriers.Get(carrier)
	if err != nil {
		return nil, fmt.Errorf("create shipment: %w", err)
	}

	shipment, err := model.CreateShipment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create shipment: %w", err)
	}

	if err := s.Shipments.CreateShipment(ctx, *shipment, nil); err != nil {
		return nil, fmt.Errorf("create shipment: persist: %w", err)
	}
	return shipment, nil
}

// CreateOrderReturn ships the returned items from the customer back to the
// returns address with the internal carrier.
func (s *OrderService) CreateOrderReturn(ctx context.Context, orderID uuid.UUID, fromAddress string, items []domain.Item) (*domain.Return, error) {
	shipment, err := s.CreateShipment(ctx, domain.CarrierInternal, carriers.ShipmentRequest{
		FromAddress:     fromAddress,
		ShippingAddress: s.ReturnsAddress,
		Items:           items,
	})
	if err != nil {
		return nil, fmt.Errorf("create order return: %w", err)
	}

	ret := domain.Return{
		ReturnID:  uuid.New(),
		OrderID:   orderID,
		Shipment:  *shipment,
		CreatedAt: time.Now(),
		Items:     items,
	}

	if err := s.Returns.CreateReturn(ctx, ret); err != nil {
		return nil, fmt.Errorf("create order return: persist: %w", err)
	}
	return &ret, nil
}

func (s *OrderService) log() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
