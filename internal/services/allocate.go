package services

import (
	"context"
	"fmt"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// OutOfStockError reports that the visited warehouses could not cover the
// requested quantity for one or more UPCs.
type OutOfStockError struct {
	UPCs []int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock within nearest warehouses for UPCs %v", e.UPCs)
}

// Chunk is the portion of a request allocated from one warehouse.
type Chunk struct {
	Warehouse domain.Warehouse
	Items     []domain.Item
}

// AllocateStock partitions the requested items across the given warehouses,
// visiting them in order (callers pass them nearest-first) and greedily taking
// as much of each outstanding quantity as a warehouse has on hand.
//
// The requested slice is copied internally; callers never observe mutation.
// Warehouses that contribute nothing are visited but emit no chunk, and item
// lines requesting zero are never queried. If quantity remains outstanding
// after the last warehouse, the whole allocation fails with OutOfStockError
// rather than returning a partial plan.
func AllocateStock(ctx context.Context, store ports.WarehouseStore, warehouses []domain.Warehouse, requested []domain.Item) ([]Chunk, error) {
	remaining := domain.CloneItems(requested)

	var chunks []Chunk
	for _, warehouse := range warehouses {
		outstanding := outstandingUPCs(remaining)
		if len(outstanding) == 0 {
			break
		}

		stock, err := store.GetStock(ctx, warehouse.WarehouseID, outstanding)
		if err != nil {
			return nil, fmt.Errorf("allocate stock: warehouse %s: %w", warehouse.WarehouseID, err)
		}

		var allocated []domain.Item
		for i := range remaining {
			if remaining[i].Stock <= 0 {
				continue
			}

			take := stock[remaining[i].UPC]
			if take > remaining[i].Stock {
				take = remaining[i].Stock
			}
			if take == 0 {
				continue
			}

			allocated = append(allocated, domain.Item{UPC: remaining[i].UPC, Stock: take})
			remaining[i].Stock -= take
		}

		if len(allocated) > 0 {
			chunks = append(chunks, Chunk{Warehouse: warehouse, Items: allocated})
		}
	}

	if starved := outstandingUPCs(remaining); len(starved) > 0 {
		return nil, &OutOfStockError{UPCs: starved}
	}
	return chunks, nil
}

func outstandingUPCs(items []domain.Item) []int {
	var upcs []int
	for _, item := range items {
		if item.Stock > 0 {
			upcs = append(upcs, item.UPC)
		}
	}
	return upcs
}
