package domain

import (
	"fmt"
	"time"
)

// SLA is the service-level agreement class a delivery must be completed within.
type SLA string

const (
	SLAStandard  SLA = "standard"
	SLAExpress   SLA = "express"
	SLAOvernight SLA = "overnight"
	SLASameDay   SLA = "same_day"
)

// slaWindows maps each SLA class to its maximum allowed transit duration.
var slaWindows = map[SLA]time.Duration{
	SLAStandard:  5 * 24 * time.Hour,
	SLAExpress:   2 * 24 * time.Hour,
	SLAOvernight: 24 * time.Hour,
	SLASameDay:   12 * time.Hour,
}

func ParseSLA(s string) (SLA, error) {
	if _, ok := slaWindows[SLA(s)]; !ok {
		return "", fmt.Errorf("unknown SLA %q", s)
	}
	return SLA(s), nil
}

// Window returns the maximum transit duration for the SLA class,
// or zero for an unknown class.
func (s SLA) Window() time.Duration { return slaWindows[s] }

func (s SLA) String() string { return string(s) }
