package domain

import "fmt"

// Carrier identifies which shipping provider computed or serves a shipment.
type Carrier string

const (
	CarrierInternal Carrier = "internal"
	CarrierUPS      Carrier = "ups"
	CarrierFedEx    Carrier = "fedex"
	CarrierUSPS     Carrier = "usps"
)

func ParseCarrier(s string) (Carrier, error) {
	switch Carrier(s) {
	case CarrierInternal, CarrierUPS, CarrierFedEx, CarrierUSPS:
		return Carrier(s), nil
	}
	return "", fmt.Errorf("unknown carrier %q", s)
}

func (c Carrier) String() string { return string(c) }
