package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// Postgres-backed implementation of the ShipmentStore, DeliveryStore and
// ReturnStore ports. Shipments reference their delivery through a single
// nullable foreign key; there is no bidirectional object graph.
type PostgresShipmentStore struct{ DB *sql.DB }

func NewPostgresShipmentStore(db *sql.DB) *PostgresShipmentStore {
	return &PostgresShipmentStore{DB: db}
}

func (s *PostgresShipmentStore) CreateShipment(ctx context.Context, shipment domain.Shipment, deliveryID *uuid.UUID) error {
	if s.DB == nil {
		return errors.New("shipment store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create shipment: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertShipment(ctx, tx, shipment, deliveryID); err != nil {
		return fmt.Errorf("create shipment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create shipment: commit tx: %w", err)
	}
	return nil
}

// insertShipment writes a shipment row and its item rows inside an existing
// transaction, so delivery creation can persist everything atomically.
func insertShipment(ctx context.Context, tx *sql.Tx, shipment domain.Shipment, deliveryID *uuid.UUID) error {
	shipmentQuery := `
	INSERT INTO shipments (
		shipment_id,
		delivery_id,
		from_address,
		shipping_address,
		carrier,
		carrier_tracking_id,
		created_at,
		status_message,
		expected_at,
		status_updated_at,
		delivered_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.ExecContext(ctx, shipmentQuery,
		shipment.ShipmentID,
		deliveryID,
		shipment.FromAddress,
		shipment.ShippingAddress,
		shipment.Carrier.String(),
		shipment.CarrierTrackingID,
		shipment.CreatedAt,
		shipment.Status.Message.String(),
		shipment.Status.ExpectedAt,
		shipment.Status.UpdatedAt,
		shipment.Status.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipment %s: %w", shipment.ShipmentID, err)
	}

	itemQuery := `
	INSERT INTO shipment_items (shipment_id, upc, stock)
	VALUES ($1, $2, $3);
	`
	for _, item := range shipment.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, shipment.ShipmentID, item.UPC, item.Stock); err != nil {
			return fmt.Errorf("insert shipment %s item upc=%d: %w", shipment.ShipmentID, item.UPC, err)
		}
	}
	return nil
}

func (s *PostgresShipmentStore) GetShipment(ctx context.Context, shipmentID uuid.UUID) (*domain.Shipment, error) {
	if s.DB == nil {
		return nil, errors.New("shipment store: DB is nil")
	}

	query := selectShipmentColumns + `
	WHERE shipment_id = $1;
	`
	row := s.DB.QueryRowContext(ctx, query, shipmentID)

	shipment, err := scanShipment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get shipment %s: %w", shipmentID, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("get shipment %s: %w", shipmentID, err)
	}

	items, err := s.shipmentItems(ctx, []uuid.UUID{shipmentID})
	if err != nil {
		return nil, fmt.Errorf("get shipment %s: %w", shipmentID, err)
	}
	shipment.Items = items[shipmentID]

	return shipment, nil
}

func (s *PostgresShipmentStore) ListShipments(ctx context.Context, q ports.ShipmentQuery) ([]domain.Shipment, error) {
	if s.DB == nil {
		return nil, errors.New("shipment store: DB is nil")
	}

	var clauses []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.Carrier != nil {
		clauses = append(clauses, "carrier = "+arg(q.Carrier.String()))
	}
	if q.Status != nil {
		clauses = append(clauses, "status_message = "+arg(q.Status.String()))
	}
	if q.FromAddress != "" {
		clauses = append(clauses, "from_address ILIKE "+arg("%"+q.FromAddress+"%"))
	}
	if q.ShippingAddress != "" {
		clauses = append(clauses, "shipping_address ILIKE "+arg("%"+q.ShippingAddress+"%"))
	}
	if q.TrackingID != "" {
		clauses = append(clauses, "carrier_tracking_id ILIKE "+arg("%"+q.TrackingID+"%"))
	}
	if q.DeliveryID != nil {
		clauses = append(clauses, "delivery_id = "+arg(*q.DeliveryID))
	}

	query := selectShipmentColumns
	if len(clauses) > 0 {
		query += "\n\tWHERE " + strings.Join(clauses, " AND ")
	}

	if q.DateDesc {
		query += "\n\tORDER BY created_at DESC"
	} else {
		query += "\n\tORDER BY created_at ASC"
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	query += "\n\tLIMIT " + arg(limit) + " OFFSET " + arg(q.Offset) + ";"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: query shipments table: %w", err)
	}
	defer rows.Close()

	var shipments []domain.Shipment
	var ids []uuid.UUID
	for rows.Next() {
		shipment, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("list shipments: scan row: %w", err)
		}
		shipments = append(shipments, *shipment)
		ids = append(ids, shipment.ShipmentID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: row iteration: %w", err)
	}

	items, err := s.shipmentItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	for i := range shipments {
		shipments[i].Items = items[shipments[i].ShipmentID]
	}

	return shipments, nil
}

const selectShipmentColumns = `
	SELECT
		shipment_id,
		from_address,
		shipping_address,
		carrier,
		carrier_tracking_id,
		created_at,
		status_message,
		expected_at,
		status_updated_at,
		delivered_at
	FROM shipments`

// scanShipment reads one shipment row (without items) from a row scanner.
func scanShipment(row interface{ Scan(...any) error }) (*domain.Shipment, error) {
	var shipment domain.Shipment
	var carrier, message string

	err := row.Scan(
		&shipment.ShipmentID,
		&shipment.FromAddress,
		&shipment.ShippingAddress,
		&carrier,
		&shipment.CarrierTrackingID,
		&shipment.CreatedAt,
		&message,
		&shipment.Status.ExpectedAt,
		&shipment.Status.UpdatedAt,
		&shipment.Status.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}

	if shipment.Carrier, err = domain.ParseCarrier(carrier); err != nil {
		return nil, err
	}
	if shipment.Status.Message, err = domain.ParseStatus(message); err != nil {
		return nil, err
	}
	shipment.Status.ShipmentID = shipment.ShipmentID

	return &shipment, nil
}

func (s *PostgresShipmentStore) shipmentItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Item, error) {
	out := make(map[uuid.UUID][]domain.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := `
	SELECT shipment_id, upc, stock
	FROM shipment_items
	WHERE shipment_id = ANY($1::uuid[])
	ORDER BY shipment_id, upc;
	`
	rows, err := s.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query shipment_items table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var item domain.Item
		if err := rows.Scan(&id, &item.UPC, &item.Stock); err != nil {
			return nil, fmt.Errorf("scan shipment item: %w", err)
		}
		out[id] = append(out[id], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("shipment item iteration: %w", err)
	}

	return out, nil
}
