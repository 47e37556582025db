package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
)

// Postgres-backed implementation of the WarehouseStore port.
type PostgresWarehouseStore struct{ DB *sql.DB }

func NewPostgresWarehouseStore(db *sql.DB) *PostgresWarehouseStore {
	return &PostgresWarehouseStore{DB: db}
}

// List all warehouses in insertion order.
func (s *PostgresWarehouseStore) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	if s.DB == nil {
		return nil, errors.New("warehouse store: DB is nil")
	}

	query := `
	SELECT
		warehouse_id,
		address,
		latitude,
		longitude
	FROM warehouses
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: query warehouses table: %w", err)
	}
	defer rows.Close()

	warehouses := make([]domain.Warehouse, 0, 8)
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.WarehouseID, &w.Address, &w.Latitude, &w.Longitude); err != nil {
			return nil, fmt.Errorf("list warehouses: scan row: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warehouses: row iteration: %w", err)
	}

	return warehouses, nil
}

// Return stock levels for the given UPCs at one warehouse. UPCs without a
// stock row come back as 0.
func (s *PostgresWarehouseStore) GetStock(ctx context.Context, warehouseID uuid.UUID, upcs []int) (map[int]int, error) {
	if s.DB == nil {
		return nil, errors.New("warehouse store: DB is nil")
	}

	stock := make(map[int]int, len(upcs))
	for _, upc := range upcs {
		stock[upc] = 0
	}
	if len(upcs) == 0 {
		return stock, nil
	}

	query := `
	SELECT upc, stock
	FROM warehouse_items
	WHERE warehouse_id = $1 AND upc = ANY($2::bigint[]);
	`
	rows, err := s.DB.QueryContext(ctx, query, warehouseID, int64Slice(upcs))
	if err != nil {
		return nil, fmt.Errorf("get stock: query warehouse_items table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var upc, count int
		if err := rows.Scan(&upc, &count); err != nil {
			return nil, fmt.Errorf("get stock: scan row: %w", err)
		}
		stock[upc] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get stock: row iteration: %w", err)
	}

	return stock, nil
}

// Decrement stock for each item. The condition stock >= n keeps stock
// non-negative; a failed condition aborts the whole call with no effect.
func (s *PostgresWarehouseStore) RemoveStock(ctx context.Context, warehouseID uuid.UUID, items []domain.Item) error {
	if s.DB == nil {
		return errors.New("warehouse store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("remove stock: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	UPDATE warehouse_items
	SET stock = stock - $3
	WHERE warehouse_id = $1 AND upc = $2 AND stock >= $3;
	`)
	if err != nil {
		return fmt.Errorf("remove stock: prepare update: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		res, err := stmt.ExecContext(ctx, warehouseID, item.UPC, item.Stock)
		if err != nil {
			return fmt.Errorf("remove stock: upc=%d: %w", item.UPC, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("remove stock: upc=%d: rows affected: %w", item.UPC, err)
		}
		if n == 0 {
			return fmt.Errorf("remove stock: upc=%d: warehouse %s has less than %d on hand", item.UPC, warehouseID, item.Stock)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("remove stock: commit tx: %w", err)
	}
	return nil
}

// Increment stock for each item, creating the stock row if needed.
func (s *PostgresWarehouseStore) AddStock(ctx context.Context, warehouseID uuid.UUID, items []domain.Item) error {
	if s.DB == nil {
		return errors.New("warehouse store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add stock: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO warehouse_items (warehouse_id, upc, stock)
	VALUES ($1, $2, $3)
	ON CONFLICT (warehouse_id, upc) DO UPDATE
	SET stock = warehouse_items.stock + EXCLUDED.stock;
	`)
	if err != nil {
		return fmt.Errorf("add stock: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, warehouseID, item.UPC, item.Stock); err != nil {
			return fmt.Errorf("add stock: upc=%d: %w", item.UPC, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add stock: commit tx: %w", err)
	}
	return nil
}

func int64Slice(xs []int) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = int64(x)
	}
	return out
}
