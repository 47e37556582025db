package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

func TestAllocateStockSingleWarehouse(t *testing.T) {
	store := fixtureStore(10)
	warehouses := fixtureWarehouses()

	chunks, err := AllocateStock(context.Background(), store, warehouses, []domain.Item{
		{UPC: 1, Stock: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Warehouse.WarehouseID != marionID {
		t.Fatalf("expected chunk from Marion, got %s", chunks[0].Warehouse.Address)
	}
	if len(chunks[0].Items) != 1 || chunks[0].Items[0].UPC != 1 || chunks[0].Items[0].Stock != 5 {
		t.Fatalf("unexpected chunk items: %+v", chunks[0].Items)
	}
}

func TestAllocateStockSpillsToNextWarehouse(t *testing.T) {
	store := fixtureStore(10)
	warehouses := fixtureWarehouses()
	requested := []domain.Item{
		{UPC: 1, Stock: 9},
		{UPC: 2, Stock: 12},
	}

	chunks, err := AllocateStock(context.Background(), store, warehouses, requested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Warehouse.WarehouseID != marionID {
		t.Fatalf("first chunk from %s, want Marion", chunks[0].Warehouse.Address)
	}
	if chunks[1].Warehouse.WarehouseID != fortWorthID {
		t.Fatalf("second chunk from %s, want Fort Worth", chunks[1].Warehouse.Address)
	}

	if len(chunks[1].Items) != 1 || chunks[1].Items[0].UPC != 2 || chunks[1].Items[0].Stock != 2 {
		t.Fatalf("unexpected spill chunk items: %+v", chunks[1].Items)
	}

	// Allocated quantities must add up to exactly what was requested.
	total := map[int]int{}
	for _, chunk := range chunks {
		for _, item := range chunk.Items {
			total[item.UPC] += item.Stock
		}
	}
	for _, item := range requested {
		if total[item.UPC] != item.Stock {
			t.Fatalf("upc %d allocated %d, requested %d", item.UPC, total[item.UPC], item.Stock)
		}
	}
}

func TestAllocateStockOutOfStock(t *testing.T) {
	store := fixtureStore(10)
	warehouses := fixtureWarehouses()

	// Four warehouses of 10 cannot cover 50.
	_, err := AllocateStock(context.Background(), store, warehouses, []domain.Item{
		{UPC: 1, Stock: 50},
		{UPC: 2, Stock: 3},
	})

	var oos *OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if len(oos.UPCs) != 1 || oos.UPCs[0] != 1 {
		t.Fatalf("starved UPCs = %v, want [1]", oos.UPCs)
	}
}

func TestAllocateStockDoesNotMutateRequest(t *testing.T) {
	store := fixtureStore(10)
	warehouses := fixtureWarehouses()
	requested := []domain.Item{{UPC: 1, Stock: 9}, {UPC: 2, Stock: 12}}

	if _, err := AllocateStock(context.Background(), store, warehouses, requested); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requested[0].Stock != 9 || requested[1].Stock != 12 {
		t.Fatalf("requested slice mutated: %+v", requested)
	}
}

// recordingStore observes which UPCs each GetStock call asks for.
type recordingStore struct {
	ports.WarehouseStore
	queried [][]int
}

func (s *recordingStore) GetStock(ctx context.Context, warehouseID uuid.UUID, upcs []int) (map[int]int, error) {
	s.queried = append(s.queried, upcs)
	return s.WarehouseStore.GetStock(ctx, warehouseID, upcs)
}

func TestAllocateStockSkipsZeroLines(t *testing.T) {
	store := &recordingStore{WarehouseStore: fixtureStore(10)}
	warehouses := fixtureWarehouses()

	chunks, err := AllocateStock(context.Background(), store, warehouses, []domain.Item{
		{UPC: 1, Stock: 0},
		{UPC: 2, Stock: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if len(chunks[0].Items) != 1 || chunks[0].Items[0].UPC != 2 {
		t.Fatalf("unexpected chunk items: %+v", chunks[0].Items)
	}

	for _, upcs := range store.queried {
		for _, upc := range upcs {
			if upc == 1 {
				t.Fatal("zero-quantity line was queried")
			}
		}
	}
}

func TestAllocateStockEmptyRequest(t *testing.T) {
	store := &recordingStore{WarehouseStore: fixtureStore(10)}

	chunks, err := AllocateStock(context.Background(), store, fixtureWarehouses(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
	if len(store.queried) != 0 {
		t.Fatalf("expected no stock queries, got %d", len(store.queried))
	}
}
