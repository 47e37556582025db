package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// In-memory implementation of the ShipmentStore, DeliveryStore and ReturnStore
// ports, for tests and local runs without a database.
type MemoryShipmentStore struct {
	mu         sync.RWMutex
	shipments  map[uuid.UUID]domain.Shipment
	deliveries map[uuid.UUID]uuid.UUID // shipment -> delivery link
	orders     map[uuid.UUID][]domain.Delivery
	returns    map[uuid.UUID][]domain.Return
}

func NewMemoryShipmentStore() *MemoryShipmentStore {
	return &MemoryShipmentStore{
		shipments:  make(map[uuid.UUID]domain.Shipment),
		deliveries: make(map[uuid.UUID]uuid.UUID),
		orders:     make(map[uuid.UUID][]domain.Delivery),
		returns:    make(map[uuid.UUID][]domain.Return),
	}
}

func (s *MemoryShipmentStore) CreateShipment(ctx context.Context, shipment domain.Shipment, deliveryID *uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shipments[shipment.ShipmentID] = shipment
	if deliveryID != nil {
		s.deliveries[shipment.ShipmentID] = *deliveryID
	}
	return nil
}

func (s *MemoryShipmentStore) GetShipment(ctx context.Context, shipmentID uuid.UUID) (*domain.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	shipment, ok := s.shipments[shipmentID]
	if !ok {
		return nil, fmt.Errorf("get shipment %s: %w", shipmentID, ports.ErrNotFound)
	}
	return &shipment, nil
}

func (s *MemoryShipmentStore) ListShipments(ctx context.Context, q ports.ShipmentQuery) ([]domain.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	contains := func(haystack, needle string) bool {
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}

	var matched []domain.Shipment
	for id, shipment := range s.shipments {
		if q.Carrier != nil && shipment.Carrier != *q.Carrier {
			continue
		}
		if q.Status != nil && shipment.Status.Message != *q.Status {
			continue
		}
		if q.FromAddress != "" && !contains(shipment.FromAddress, q.FromAddress) {
			continue
		}
		if q.ShippingAddress != "" && !contains(shipment.ShippingAddress, q.ShippingAddress) {
			continue
		}
		if q.TrackingID != "" && !contains(shipment.CarrierTrackingID, q.TrackingID) {
			continue
		}
		if q.DeliveryID != nil {
			linked, ok := s.deliveries[id]
			if !ok || linked != *q.DeliveryID {
				continue
			}
		}
		matched = append(matched, shipment)
	}

	sort.Slice(matched, func(i, j int) bool {
		if q.DateDesc {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	start := q.Offset
	if start > len(matched) {
		return nil, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (s *MemoryShipmentStore) CreateDelivery(ctx context.Context, delivery domain.Delivery) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, shipment := range delivery.Shipments {
		s.shipments[shipment.ShipmentID] = shipment
		s.deliveries[shipment.ShipmentID] = delivery.DeliveryID
	}
	s.orders[delivery.OrderID] = append(s.orders[delivery.OrderID], delivery)
	return nil
}

func (s *MemoryShipmentStore) ListDeliveries(ctx context.Context, orderID uuid.UUID) ([]domain.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Delivery, len(s.orders[orderID]))
	copy(out, s.orders[orderID])
	return out, nil
}

func (s *MemoryShipmentStore) CreateReturn(ctx context.Context, ret domain.Return) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.returns[ret.OrderID] = append(s.returns[ret.OrderID], ret)
	return nil
}

func (s *MemoryShipmentStore) ListReturns(ctx context.Context, orderID uuid.UUID) ([]domain.Return, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Return, len(s.returns[orderID]))
	copy(out, s.returns[orderID])
	return out, nil
}
