package carriers

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/adapters/geocode"
	"github.com/justinbrick/capstone-project-shipping-api/internal/adapters/repositories"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

const (
	marionAddr = "279 Kadire Dr, Marion, NC 28752"
	warsawAddr = "2683 NC-24, Warsaw, NC 28398"
)

func testGeocoder() *geocode.Static {
	return geocode.NewStatic(map[string]domain.Coordinates{
		marionAddr: {Lat: 35.705054, Lon: -79.809727},
		warsawAddr: {Lat: 35.000, Lon: -78.080},
	})
}

func testMiles(t *testing.T) float64 {
	t.Helper()
	miles, err := domain.DistanceMiles(
		domain.Coordinates{Lat: 35.705054, Lon: -79.809727},
		domain.Coordinates{Lat: 35.000, Lon: -78.080},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return miles
}

func TestTransitTimeMultipliers(t *testing.T) {
	geocoder := testGeocoder()
	miles := testMiles(t)

	cases := []struct {
		model Model
		mult  float64
	}{
		{NewInternal(geocoder, nil), 0.5},
		{NewFedEx(geocoder), 1.5},
		{NewUPS(geocoder), 2.0},
		{NewUSPS(geocoder), 2.5},
	}

	for _, tc := range cases {
		t.Run(tc.model.Carrier().String(), func(t *testing.T) {
			transit, err := tc.model.TransitTime(context.Background(), marionAddr, warsawAddr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := time.Duration(miles / 100 * 12 * tc.mult * float64(time.Hour))
			if transit != want {
				t.Fatalf("transit = %v, want %v", transit, want)
			}
		})
	}
}

func TestPriceMultipliers(t *testing.T) {
	geocoder := testGeocoder()
	miles := testMiles(t)

	cases := []struct {
		model Model
		mult  float64
	}{
		{NewInternal(geocoder, nil), 0.8},
		{NewFedEx(geocoder), 1.2},
		{NewUPS(geocoder), 1.5},
		{NewUSPS(geocoder), 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.model.Carrier().String(), func(t *testing.T) {
			price, err := tc.model.Price(context.Background(), marionAddr, warsawAddr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := miles / 100 * 5 * tc.mult
			if price != want {
				t.Fatalf("price = %v, want %v", price, want)
			}
		})
	}
}

func TestTrackingIDFormats(t *testing.T) {
	geocoder := testGeocoder()

	cases := []struct {
		model   Model
		pattern string
	}{
		{NewFedEx(geocoder), `^\d{4} \d{4} \d{4}$`},
		{NewUSPS(geocoder), `^\d{4} \d{4} \d{4} \d{4} \d{4}$`},
		{NewUPS(geocoder), `^1Z[0-9A-F]{6}3E\d{8}$`},
	}

	for _, tc := range cases {
		t.Run(tc.model.Carrier().String(), func(t *testing.T) {
			id := tc.model.TrackingID(uuid.New())
			if !regexp.MustCompile(tc.pattern).MatchString(id) {
				t.Fatalf("tracking id %q does not match %s", id, tc.pattern)
			}
		})
	}
}

func TestInternalTrackingIDIdempotent(t *testing.T) {
	internal := NewInternal(testGeocoder(), nil)
	shipmentID := uuid.New()

	first := internal.TrackingID(shipmentID)
	second := internal.TrackingID(shipmentID)

	if first != second {
		t.Fatalf("tracking ids differ: %q vs %q", first, second)
	}
	if first != shipmentID.String() {
		t.Fatalf("tracking id = %q, want the shipment id", first)
	}
}

func TestCreateShipmentBuildsPending(t *testing.T) {
	fedex := NewFedEx(testGeocoder())
	items := []domain.Item{{UPC: 7, Stock: 3}}

	shipment, err := fedex.CreateShipment(context.Background(), ShipmentRequest{
		FromAddress:     marionAddr,
		ShippingAddress: warsawAddr,
		Items:           items,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if shipment.Carrier != domain.CarrierFedEx {
		t.Fatalf("carrier = %s, want fedex", shipment.Carrier)
	}
	if shipment.Status.Message != domain.StatusPending {
		t.Fatalf("status = %s, want pending", shipment.Status.Message)
	}
	if shipment.Status.ShipmentID != shipment.ShipmentID {
		t.Fatal("status not linked to the shipment")
	}
	if !shipment.Status.ExpectedAt.After(shipment.CreatedAt) {
		t.Fatal("expected ETA after creation time")
	}
	if len(shipment.Items) != 1 || shipment.Items[0] != items[0] {
		t.Fatalf("items = %+v", shipment.Items)
	}
}

func TestSimulatedCarrierStatusUnsupported(t *testing.T) {
	geocoder := testGeocoder()

	for _, model := range []Model{NewFedEx(geocoder), NewUPS(geocoder), NewUSPS(geocoder)} {
		if _, err := model.ShipmentStatus(context.Background(), "anything"); !errors.Is(err, ErrTrackingUnsupported) {
			t.Fatalf("%s: expected ErrTrackingUnsupported, got %v", model.Carrier(), err)
		}
	}
}

func TestInternalShipmentStatus(t *testing.T) {
	store := repositories.NewMemoryShipmentStore()
	internal := NewInternal(testGeocoder(), store)
	now := time.Now()

	inTransit := domain.Shipment{
		ShipmentID:      uuid.New(),
		FromAddress:     marionAddr,
		ShippingAddress: warsawAddr,
		Carrier:         domain.CarrierInternal,
		CreatedAt:       now.Add(-time.Hour),
	}
	inTransit.CarrierTrackingID = inTransit.ShipmentID.String()
	inTransit.Status = domain.ShipmentStatus{
		ShipmentID: inTransit.ShipmentID,
		ExpectedAt: now.Add(time.Hour),
		UpdatedAt:  inTransit.CreatedAt,
		Message:    domain.StatusPending,
	}

	delivered := inTransit
	delivered.ShipmentID = uuid.New()
	delivered.CarrierTrackingID = delivered.ShipmentID.String()
	delivered.CreatedAt = now.Add(-3 * time.Hour)
	delivered.Status.ShipmentID = delivered.ShipmentID
	delivered.Status.ExpectedAt = now.Add(-time.Hour)

	for _, s := range []domain.Shipment{inTransit, delivered} {
		if err := store.CreateShipment(context.Background(), s, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	status, err := internal.ShipmentStatus(context.Background(), inTransit.CarrierTrackingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Message != domain.StatusInTransit {
		t.Fatalf("status = %s, want in_transit", status.Message)
	}
	if status.DeliveredAt != nil {
		t.Fatal("in-transit shipment must not report a delivery time")
	}

	status, err = internal.ShipmentStatus(context.Background(), delivered.CarrierTrackingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Message != domain.StatusDelivered {
		t.Fatalf("status = %s, want delivered", status.Message)
	}
	if status.DeliveredAt == nil || !status.DeliveredAt.Equal(delivered.Status.ExpectedAt) {
		t.Fatal("delivered shipment must report its ETA as the delivery time")
	}
}

func TestInternalShipmentStatusBadTrackingID(t *testing.T) {
	internal := NewInternal(testGeocoder(), repositories.NewMemoryShipmentStore())

	if _, err := internal.ShipmentStatus(context.Background(), "1234 5678 9012"); err == nil {
		t.Fatal("expected error for a non-uuid tracking id")
	}
}

func TestRegistryOrder(t *testing.T) {
	registry := NewDefaultRegistry(testGeocoder(), repositories.NewMemoryShipmentStore())

	want := []domain.Carrier{
		domain.CarrierFedEx,
		domain.CarrierUPS,
		domain.CarrierUSPS,
		domain.CarrierInternal,
	}
	models := registry.InOrder()
	if len(models) != len(want) {
		t.Fatalf("expected %d models, got %d", len(want), len(models))
	}
	for i, carrier := range want {
		if models[i].Carrier() != carrier {
			t.Fatalf("position %d: got %s, want %s", i, models[i].Carrier(), carrier)
		}
	}

	for _, carrier := range want {
		model, err := registry.Get(carrier)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if model.Carrier() != carrier {
			t.Fatalf("Get(%s) returned %s", carrier, model.Carrier())
		}
	}
	if _, err := registry.Get(domain.Carrier("pigeon")); err == nil {
		t.Fatal("expected error for unknown carrier")
	}
}
