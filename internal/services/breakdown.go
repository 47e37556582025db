package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/justinbrick/capstone-project-shipping-api/internal/carriers"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

// BreakdownEngine turns a delivery request into a per-warehouse shipment plan
// with a carrier and ETA for each chunk, and an aggregate SLA verdict.
type BreakdownEngine struct {
	Directory *Directory
	Carriers  *carriers.Registry
}

// DeliveryBreakdown computes the shipment plan for a destination, SLA and item
// list. OutOfStockError from allocation propagates untouched; the caller
// decides how to surface it.
//
// Carrier selection per chunk walks the registry in its fixed order, tracks the
// minimum transit time seen, and accepts early: the first carrier whose time is
// strictly within the SLA window wins even if a later carrier would have been
// faster. The fixed evaluation order keeps results reproducible for a given
// stock state.
func (e *BreakdownEngine) DeliveryBreakdown(ctx context.Context, recipientAddress string, sla domain.SLA, items []domain.Item) (*domain.DeliveryBreakdown, error) {
	window := sla.Window()
	if window == 0 {
		return nil, fmt.Errorf("delivery breakdown: unknown SLA %q", sla)
	}

	now := time.Now()

	warehouses, err := e.Directory.NearestWarehouses(ctx, recipientAddress, DefaultNearestLimit)
	if err != nil {
		return nil, fmt.Errorf("delivery breakdown: %w", err)
	}

	chunks, err := AllocateStock(ctx, e.Directory.Store, warehouses, items)
	if err != nil {
		return nil, err
	}

	e.warmGeocodes(ctx, recipientAddress, chunks)

	canMeetSLA := true
	estimates := make([]domain.DeliveryEstimate, 0, len(chunks))

	for _, chunk := range chunks {
		var fastestCarrier domain.Carrier
		fastestTime := time.Duration(math.MaxInt64)

		for _, model := range e.Carriers.InOrder() {
			transit, err := model.TransitTime(ctx, recipientAddress, chunk.Warehouse.Address)
			if err != nil {
				return nil, fmt.Errorf("delivery breakdown: carrier %s: %w", model.Carrier(), err)
			}

			if transit < fastestTime {
				fastestTime = transit
				fastestCarrier = model.Carrier()
			}

			// Early accept: good enough for the SLA ends the search.
			if transit < window {
				break
			}
		}

		// A missed window flags the whole breakdown but does not abort it;
		// the remaining chunks still get estimates.
		if fastestTime > window {
			canMeetSLA = false
		}

		estimates = append(estimates, domain.DeliveryEstimate{
			WarehouseID:  chunk.Warehouse.WarehouseID,
			FromAddress:  chunk.Warehouse.Address,
			DeliveryTime: now.Add(fastestTime),
			Items:        chunk.Items,
			Carrier:      fastestCarrier,
		})
	}

	return &domain.DeliveryBreakdown{
		RecipientAddress: recipientAddress,
		ExpectedAt:       now.Add(window),
		CanMeetSLA:       canMeetSLA,
		Estimates:        estimates,
	}, nil
}

// warmGeocodes resolves every address the carrier search will need, a few at
// a time, so a caching geocoder serves the sequential evaluation from memory.
// Errors are ignored here; the sequential path surfaces them with context.
func (e *BreakdownEngine) warmGeocodes(ctx context.Context, recipientAddress string, chunks []Chunk) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	addresses := make([]string, 0, len(chunks)+1)
	addresses = append(addresses, recipientAddress)
	for _, chunk := range chunks {
		addresses = append(addresses, chunk.Warehouse.Address)
	}

	for _, addr := range addresses {
		addr := addr
		g.Go(func() error {
			_, _ = e.Directory.Geocoder.Geocode(ctx, addr)
			return nil
		})
	}
	_ = g.Wait()
}
