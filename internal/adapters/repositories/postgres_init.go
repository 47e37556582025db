package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createWarehousesQuery := `
	CREATE TABLE IF NOT EXISTS warehouses (
		warehouse_id UUID PRIMARY KEY,
		seq BIGSERIAL,
		address TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	);
	`

	createWarehouseItemsQuery := `
	CREATE TABLE IF NOT EXISTS warehouse_items (
		warehouse_id UUID NOT NULL REFERENCES warehouses(warehouse_id),
		upc BIGINT NOT NULL,
		stock BIGINT NOT NULL CHECK (stock >= 0),
		PRIMARY KEY (warehouse_id, upc)
	);
	`

	createDeliveriesQuery := `
	CREATE TABLE IF NOT EXISTS deliveries (
		delivery_id UUID PRIMARY KEY,
		order_id UUID NOT NULL,
		recipient_address TEXT NOT NULL,
		delivery_sla TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		fulfilled_at TIMESTAMPTZ
	);
	`

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipments (
		shipment_id UUID PRIMARY KEY,
		delivery_id UUID REFERENCES deliveries(delivery_id),
		from_address TEXT NOT NULL,
		shipping_address TEXT NOT NULL,
		carrier TEXT NOT NULL,
		carrier_tracking_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		status_message TEXT NOT NULL,
		expected_at TIMESTAMPTZ NOT NULL,
		status_updated_at TIMESTAMPTZ NOT NULL,
		delivered_at TIMESTAMPTZ
	);
	`

	createShipmentItemsQuery := `
	CREATE TABLE IF NOT EXISTS shipment_items (
		shipment_id UUID NOT NULL REFERENCES shipments(shipment_id),
		upc BIGINT NOT NULL,
		stock BIGINT NOT NULL,
		PRIMARY KEY (shipment_id, upc)
	);
	`

	createReturnsQuery := `
	CREATE TABLE IF NOT EXISTS returns (
		return_id UUID PRIMARY KEY,
		order_id UUID NOT NULL,
		shipment_id UUID NOT NULL REFERENCES shipments(shipment_id),
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createShipmentIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_shipments_delivery_id
	ON shipments(delivery_id);
	`

	createDeliveryIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_deliveries_order_id
	ON deliveries(order_id);
	`

	createReturnIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_returns_order_id
	ON returns(order_id);
	`

	statements := []string{
		createWarehousesQuery,
		createWarehouseItemsQuery,
		createDeliveriesQuery,
		createShipmentsQuery,
		createShipmentItemsQuery,
		createReturnsQuery,
		createShipmentIndexQuery,
		createDeliveryIndexQuery,
		createReturnIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ItemSeed struct {
	UPC   int `json:"upc"`
	Stock int `json:"stock"`
}

type WarehouseSeed struct {
	WarehouseID string     `json:"warehouse_id"`
	Address     string     `json:"address"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Items       []ItemSeed `json:"items"`
}

// Populate the database with warehouse and stock data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed warehouses: read %q: %w", jsonPath, err)
	}

	var data []WarehouseSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed warehouses: parse json: %w", err)
	}

	for i, w := range data {
		if _, err := uuid.Parse(w.WarehouseID); err != nil {
			return fmt.Errorf("seed warehouses: invalid warehouse_id at index %d: %w", i+1, err)
		}
		if strings.TrimSpace(w.Address) == "" {
			return fmt.Errorf("seed warehouses: item at index %d: address cannot be empty", i+1)
		}
		for _, item := range w.Items {
			if item.UPC <= 0 {
				return fmt.Errorf("seed warehouses: warehouse %s: invalid upc %d", w.WarehouseID, item.UPC)
			}
			if item.Stock < 0 {
				return fmt.Errorf("seed warehouses: warehouse %s: negative stock for upc %d", w.WarehouseID, item.UPC)
			}
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed warehouses: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	warehouseQuery := `
	INSERT INTO warehouses (
		warehouse_id,
		address,
		latitude,
		longitude
	)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (warehouse_id) DO UPDATE SET
		address = EXCLUDED.address,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude;
	`
	warehouseStmt, err := tx.Prepare(warehouseQuery)
	if err != nil {
		return fmt.Errorf("seed warehouses: prepare warehouse insert: %w", err)
	}
	defer warehouseStmt.Close()

	itemQuery := `
	INSERT INTO warehouse_items (warehouse_id, upc, stock)
	VALUES ($1, $2, $3)
	ON CONFLICT (warehouse_id, upc) DO UPDATE SET
		stock = EXCLUDED.stock;
	`
	itemStmt, err := tx.Prepare(itemQuery)
	if err != nil {
		return fmt.Errorf("seed warehouses: prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	for _, w := range data {
		if _, err := warehouseStmt.Exec(w.WarehouseID, strings.TrimSpace(w.Address), w.Latitude, w.Longitude); err != nil {
			return fmt.Errorf("seed warehouses: insert warehouse_id=%s: %w", w.WarehouseID, err)
		}
		for _, item := range w.Items {
			if _, err := itemStmt.Exec(w.WarehouseID, item.UPC, item.Stock); err != nil {
				return fmt.Errorf("seed warehouses: insert stock warehouse_id=%s upc=%d: %w", w.WarehouseID, item.UPC, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed warehouses: commit tx: %w", err)
	}

	return nil
}
