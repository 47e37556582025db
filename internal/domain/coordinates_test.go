package domain

import (
	"math"
	"testing"
)

func TestDistanceMilesKnownRoute(t *testing.T) {
	marion := Coordinates{Lat: 35.705054, Lon: -79.809727}
	warsaw := Coordinates{Lat: 35.000, Lon: -78.080}

	miles, err := DistanceMiles(marion, warsaw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(miles-108.97) > 0.1 {
		t.Fatalf("distance = %v, want ~108.97", miles)
	}
}

func TestDistanceMilesSamePoint(t *testing.T) {
	p := Coordinates{Lat: 41.130868, Lon: -115.962108}

	miles, err := DistanceMiles(p, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if miles != 0 {
		t.Fatalf("distance = %v, want 0", miles)
	}
}

func TestDistanceMilesSymmetric(t *testing.T) {
	a := Coordinates{Lat: 31.193425, Lon: -98.624873}
	b := Coordinates{Lat: 45.379562, Lon: -98.490035}

	ab, err := DistanceMiles(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := DistanceMiles(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab != ba {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestCoordinatesValidate(t *testing.T) {
	cases := []struct {
		name    string
		coords  Coordinates
		wantErr bool
	}{
		{"valid", Coordinates{Lat: 35.0, Lon: -78.0}, false},
		{"lat boundary", Coordinates{Lat: 90, Lon: 180}, false},
		{"lat too high", Coordinates{Lat: 90.1, Lon: 0}, true},
		{"lat too low", Coordinates{Lat: -90.1, Lon: 0}, true},
		{"lon too high", Coordinates{Lat: 0, Lon: 180.5}, true},
		{"lon too low", Coordinates{Lat: 0, Lon: -181}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.coords.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %+v", tc.coords)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDistanceMilesRejectsInvalid(t *testing.T) {
	valid := Coordinates{Lat: 35.0, Lon: -78.0}
	invalid := Coordinates{Lat: 95.0, Lon: 0}

	if _, err := DistanceMiles(valid, invalid); err == nil {
		t.Fatal("expected error for invalid coordinates")
	}
	if _, err := DistanceMiles(invalid, valid); err == nil {
		t.Fatal("expected error for invalid coordinates")
	}
}
