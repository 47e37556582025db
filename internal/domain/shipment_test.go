package domain

import (
	"testing"
	"time"
)

func TestProgressStatus(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	expected := created.Add(48 * time.Hour)

	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"before creation", created.Add(-time.Hour), StatusPending},
		{"at creation", created, StatusPending},
		{"mid transit", created.Add(24 * time.Hour), StatusInTransit},
		{"just before arrival", expected.Add(-time.Minute), StatusInTransit},
		{"at arrival", expected, StatusDelivered},
		{"after arrival", expected.Add(6 * time.Hour), StatusDelivered},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProgressStatus(created, expected, tc.now)
			if got != tc.want {
				t.Fatalf("status = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestProgressStatusZeroWindow(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	// A shipment expected at or before its creation is already delivered.
	if got := ProgressStatus(created, created, created.Add(time.Hour)); got != StatusDelivered {
		t.Fatalf("status = %q, want %q", got, StatusDelivered)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "shipped", "in_transit", "delivered", "exception"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("ParseStatus(%q): %v", s, err)
		}
	}
	if _, err := ParseStatus("lost"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseSLA(t *testing.T) {
	windows := map[string]time.Duration{
		"standard":  120 * time.Hour,
		"express":   48 * time.Hour,
		"overnight": 24 * time.Hour,
		"same_day":  12 * time.Hour,
	}
	for name, want := range windows {
		sla, err := ParseSLA(name)
		if err != nil {
			t.Fatalf("ParseSLA(%q): %v", name, err)
		}
		if sla.Window() != want {
			t.Fatalf("window for %q = %v, want %v", name, sla.Window(), want)
		}
	}
	if _, err := ParseSLA("eventually"); err == nil {
		t.Fatal("expected error for unknown SLA")
	}
}
