package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

func seedShipments(t *testing.T) (*MemoryShipmentStore, []domain.Shipment) {
	t.Helper()
	store := NewMemoryShipmentStore()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	shipments := []domain.Shipment{
		{
			ShipmentID:        uuid.New(),
			FromAddress:       "279 Kadire Dr, Marion, NC 28752",
			ShippingAddress:   "2683 NC-24, Warsaw, NC 28398",
			Carrier:           domain.CarrierFedEx,
			CarrierTrackingID: "1111 2222 3333",
			CreatedAt:         base,
		},
		{
			ShipmentID:        uuid.New(),
			FromAddress:       "131 E Exchange Ave, Fort Worth, TX 76164",
			ShippingAddress:   "2683 NC-24, Warsaw, NC 28398",
			Carrier:           domain.CarrierInternal,
			CreatedAt:         base.Add(time.Hour),
		},
		{
			ShipmentID:        uuid.New(),
			FromAddress:       "1540 Navco Ln, Wells, NV 89835",
			ShippingAddress:   "409 N 10th St, New Salem, ND 58563",
			Carrier:           domain.CarrierUSPS,
			CarrierTrackingID: "9999 8888 7777 6666 5555",
			CreatedAt:         base.Add(2 * time.Hour),
		},
	}
	shipments[1].CarrierTrackingID = shipments[1].ShipmentID.String()

	for i := range shipments {
		shipments[i].Status = domain.ShipmentStatus{
			ShipmentID: shipments[i].ShipmentID,
			ExpectedAt: shipments[i].CreatedAt.Add(24 * time.Hour),
			UpdatedAt:  shipments[i].CreatedAt,
			Message:    domain.StatusPending,
		}
		if err := store.CreateShipment(context.Background(), shipments[i], nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return store, shipments
}

func TestMemoryListShipmentsCarrierFilter(t *testing.T) {
	store, _ := seedShipments(t)
	carrier := domain.CarrierFedEx

	listed, err := store.ListShipments(context.Background(), ports.ShipmentQuery{Carrier: &carrier})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].Carrier != domain.CarrierFedEx {
		t.Fatalf("unexpected result: %+v", listed)
	}
}

func TestMemoryListShipmentsAddressSubstring(t *testing.T) {
	store, _ := seedShipments(t)

	listed, err := store.ListShipments(context.Background(), ports.ShipmentQuery{FromAddress: "fort worth"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].Carrier != domain.CarrierInternal {
		t.Fatalf("unexpected result: %+v", listed)
	}

	listed, err = store.ListShipments(context.Background(), ports.ShipmentQuery{ShippingAddress: "warsaw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 shipments to Warsaw, got %d", len(listed))
	}
}

func TestMemoryListShipmentsTrackingSubstring(t *testing.T) {
	store, _ := seedShipments(t)

	listed, err := store.ListShipments(context.Background(), ports.ShipmentQuery{TrackingID: "8888 7777"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].Carrier != domain.CarrierUSPS {
		t.Fatalf("unexpected result: %+v", listed)
	}
}

func TestMemoryListShipmentsDateOrder(t *testing.T) {
	store, shipments := seedShipments(t)

	asc, err := store.ListShipments(context.Background(), ports.ShipmentQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(asc) != 3 || asc[0].ShipmentID != shipments[0].ShipmentID {
		t.Fatalf("ascending order broken: %+v", asc)
	}

	desc, err := store.ListShipments(context.Background(), ports.ShipmentQuery{DateDesc: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(desc) != 3 || desc[0].ShipmentID != shipments[2].ShipmentID {
		t.Fatalf("descending order broken: %+v", desc)
	}
}

func TestMemoryListShipmentsPagination(t *testing.T) {
	store, shipments := seedShipments(t)

	page, err := store.ListShipments(context.Background(), ports.ShipmentQuery{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 1 || page[0].ShipmentID != shipments[1].ShipmentID {
		t.Fatalf("unexpected page: %+v", page)
	}

	empty, err := store.ListShipments(context.Background(), ports.ShipmentQuery{Offset: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d", len(empty))
	}
}

func TestMemoryGetShipmentNotFound(t *testing.T) {
	store := NewMemoryShipmentStore()

	if _, err := store.GetShipment(context.Background(), uuid.New()); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCreateDeliveryLinksShipments(t *testing.T) {
	store := NewMemoryShipmentStore()
	deliveryID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	delivery := domain.Delivery{
		DeliveryID:       deliveryID,
		OrderID:          orderID,
		RecipientAddress: "2683 NC-24, Warsaw, NC 28398",
		SLA:              domain.SLAStandard,
		CreatedAt:        now,
		Shipments: []domain.Shipment{
			{ShipmentID: uuid.New(), Carrier: domain.CarrierFedEx, CreatedAt: now},
			{ShipmentID: uuid.New(), Carrier: domain.CarrierInternal, CreatedAt: now.Add(time.Second)},
		},
	}
	if err := store.CreateDelivery(context.Background(), delivery); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	linked, err := store.ListShipments(context.Background(), ports.ShipmentQuery{DeliveryID: &deliveryID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(linked) != 2 {
		t.Fatalf("expected 2 linked shipments, got %d", len(linked))
	}

	deliveries, err := store.ListDeliveries(context.Background(), orderID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deliveries) != 1 || deliveries[0].DeliveryID != deliveryID {
		t.Fatalf("unexpected deliveries: %+v", deliveries)
	}
}
