package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

func photonPayload(lon, lat float64) string {
	return fmt.Sprintf(`{"features":[{"geometry":{"coordinates":[%v,%v]}}]}`, lon, lat)
}

func TestPhotonGeocode(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api" {
			t.Errorf("path = %q, want /api", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, photonPayload(-79.809727, 35.705054))
	}))
	defer srv.Close()

	g := NewPhotonGeocoder(srv.URL)
	coords, err := g.Geocode(context.Background(), "279 Kadire Dr, Marion, NC 28752")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery != "279 Kadire Dr, Marion, NC 28752" {
		t.Fatalf("query = %q", gotQuery)
	}
	// GeoJSON is [lon, lat]; the client must swap.
	if coords.Lat != 35.705054 || coords.Lon != -79.809727 {
		t.Fatalf("coords = %+v", coords)
	}
}

func TestPhotonGeocodeNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features":[]}`)
	}))
	defer srv.Close()

	g := NewPhotonGeocoder(srv.URL)
	_, err := g.Geocode(context.Background(), "nowhere in particular")
	if !errors.Is(err, ports.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestPhotonGeocodeRetriesServerErrors(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, photonPayload(-78.080, 35.000))
	}))
	defer srv.Close()

	g := NewPhotonGeocoder(srv.URL)
	coords, err := g.Geocode(context.Background(), "2683 NC-24, Warsaw, NC 28398")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
	if coords.Lat != 35.000 || coords.Lon != -78.080 {
		t.Fatalf("coords = %+v", coords)
	}
}

func TestPhotonGeocodeDoesNotRetryClientErrors(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewPhotonGeocoder(srv.URL)
	if _, err := g.Geocode(context.Background(), "whatever"); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestPhotonGeocodeGivesUpAfterMaxAttempts(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewPhotonGeocoder(srv.URL)
	if _, err := g.Geocode(context.Background(), "whatever"); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 4 {
		t.Fatalf("attempts = %d, want 4", attempts)
	}
}
