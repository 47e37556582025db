package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

// In-memory WarehouseStore backed by maps, for tests and local runs without a
// database. Warehouses keep insertion order.
type MemoryWarehouseStore struct {
	mu         sync.RWMutex
	warehouses []domain.Warehouse
	stock      map[uuid.UUID]map[int]int
}

func NewMemoryWarehouseStore() *MemoryWarehouseStore {
	return &MemoryWarehouseStore{
		stock: make(map[uuid.UUID]map[int]int),
	}
}

// AddWarehouse registers a warehouse and its initial stock levels.
func (s *MemoryWarehouseStore) AddWarehouse(warehouse domain.Warehouse, items []domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.warehouses = append(s.warehouses, warehouse)
	levels := make(map[int]int, len(items))
	for _, item := range items {
		levels[item.UPC] = item.Stock
	}
	s.stock[warehouse.WarehouseID] = levels
}

// SeedMemoryFromJSON loads the same seed file format dbtool uses into an
// in-memory store, for local runs without a database.
func SeedMemoryFromJSON(store *MemoryWarehouseStore, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed warehouses: read %q: %w", jsonPath, err)
	}

	var data []WarehouseSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed warehouses: parse json: %w", err)
	}

	for i, w := range data {
		warehouseID, err := uuid.Parse(w.WarehouseID)
		if err != nil {
			return fmt.Errorf("seed warehouses: invalid warehouse_id at index %d: %w", i+1, err)
		}

		items := make([]domain.Item, 0, len(w.Items))
		for _, item := range w.Items {
			items = append(items, domain.Item{UPC: item.UPC, Stock: item.Stock})
		}

		store.AddWarehouse(domain.Warehouse{
			WarehouseID: warehouseID,
			Address:     w.Address,
			Latitude:    w.Latitude,
			Longitude:   w.Longitude,
		}, items)
	}

	return nil
}

func (s *MemoryWarehouseStore) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Warehouse, len(s.warehouses))
	copy(out, s.warehouses)
	return out, nil
}

func (s *MemoryWarehouseStore) GetStock(ctx context.Context, warehouseID uuid.UUID, upcs []int) (map[int]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	levels := s.stock[warehouseID]
	out := make(map[int]int, len(upcs))
	for _, upc := range upcs {
		out[upc] = levels[upc]
	}
	return out, nil
}

func (s *MemoryWarehouseStore) RemoveStock(ctx context.Context, warehouseID uuid.UUID, items []domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	levels, ok := s.stock[warehouseID]
	if !ok {
		return fmt.Errorf("remove stock: unknown warehouse %s", warehouseID)
	}
	for _, item := range items {
		if levels[item.UPC] < item.Stock {
			return fmt.Errorf("remove stock: warehouse %s upc %d: insufficient stock", warehouseID, item.UPC)
		}
	}
	for _, item := range items {
		levels[item.UPC] -= item.Stock
	}
	return nil
}

func (s *MemoryWarehouseStore) AddStock(ctx context.Context, warehouseID uuid.UUID, items []domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	levels, ok := s.stock[warehouseID]
	if !ok {
		levels = make(map[int]int)
		s.stock[warehouseID] = levels
	}
	for _, item := range items {
		levels[item.UPC] += item.Stock
	}
	return nil
}
