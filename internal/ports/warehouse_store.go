package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

// Port: a boundary for warehouse listings and per-warehouse stock levels.
//
// Stock reads during allocation are not locked against a concurrent
// RemoveStock; implementations only guarantee that stock never goes negative.
type WarehouseStore interface {
	// List all known warehouses in insertion order.
	ListWarehouses(ctx context.Context) ([]domain.Warehouse, error)

	// Return stock levels for the given UPCs at one warehouse. UPCs without a
	// stock row map to 0, never absent.
	GetStock(ctx context.Context, warehouseID uuid.UUID, upcs []int) (map[int]int, error)

	// Decrement stock for each item. Fails without partial effect on the item
	// whose decrement would drive stock negative.
	RemoveStock(ctx context.Context, warehouseID uuid.UUID, items []domain.Item) error

	// Increment stock for each item. Inverse of RemoveStock, used for rollback.
	AddStock(ctx context.Context, warehouseID uuid.UUID, items []domain.Item) error
}
