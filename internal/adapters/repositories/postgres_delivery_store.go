package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// CreateDelivery persists a delivery and all of its shipments in one
// transaction. Commit-phase rollback relies on this: either the whole
// delivery exists afterwards or none of its records do.
func (s *PostgresShipmentStore) CreateDelivery(ctx context.Context, delivery domain.Delivery) error {
	if s.DB == nil {
		return errors.New("delivery store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create delivery: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO deliveries (
		delivery_id,
		order_id,
		recipient_address,
		delivery_sla,
		created_at,
		fulfilled_at
	)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.ExecContext(ctx, query,
		delivery.DeliveryID,
		delivery.OrderID,
		delivery.RecipientAddress,
		delivery.SLA.String(),
		delivery.CreatedAt,
		delivery.FulfilledAt,
	)
	if err != nil {
		return fmt.Errorf("create delivery %s: %w", delivery.DeliveryID, err)
	}

	for _, shipment := range delivery.Shipments {
		if err := insertShipment(ctx, tx, shipment, &delivery.DeliveryID); err != nil {
			return fmt.Errorf("create delivery %s: %w", delivery.DeliveryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create delivery %s: commit tx: %w", delivery.DeliveryID, err)
	}
	return nil
}

// ListDeliveries returns the deliveries for an order, shipments included.
func (s *PostgresShipmentStore) ListDeliveries(ctx context.Context, orderID uuid.UUID) ([]domain.Delivery, error) {
	if s.DB == nil {
		return nil, errors.New("delivery store: DB is nil")
	}

	query := `
	SELECT
		delivery_id,
		order_id,
		recipient_address,
		delivery_sla,
		created_at,
		fulfilled_at
	FROM deliveries
	WHERE order_id = $1
	ORDER BY created_at;
	`
	rows, err := s.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: query deliveries table: %w", err)
	}
	defer rows.Close()

	var deliveries []domain.Delivery
	for rows.Next() {
		var d domain.Delivery
		var sla string
		if err := rows.Scan(&d.DeliveryID, &d.OrderID, &d.RecipientAddress, &sla, &d.CreatedAt, &d.FulfilledAt); err != nil {
			return nil, fmt.Errorf("list deliveries: scan row: %w", err)
		}
		if d.SLA, err = domain.ParseSLA(sla); err != nil {
			return nil, fmt.Errorf("list deliveries: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: row iteration: %w", err)
	}

	for i := range deliveries {
		shipments, err := s.ListShipments(ctx, ports.ShipmentQuery{
			DeliveryID: &deliveries[i].DeliveryID,
			Limit:      100,
		})
		if err != nil {
			return nil, fmt.Errorf("list deliveries: shipments for %s: %w", deliveries[i].DeliveryID, err)
		}
		deliveries[i].Shipments = shipments
	}

	return deliveries, nil
}

func (s *PostgresShipmentStore) CreateReturn(ctx context.Context, ret domain.Return) error {
	if s.DB == nil {
		return errors.New("return store: DB is nil")
	}

	query := `
	INSERT INTO returns (return_id, order_id, shipment_id, created_at)
	VALUES ($1, $2, $3, $4);
	`
	_, err := s.DB.ExecContext(ctx, query, ret.ReturnID, ret.OrderID, ret.Shipment.ShipmentID, ret.CreatedAt)
	if err != nil {
		return fmt.Errorf("create return %s: %w", ret.ReturnID, err)
	}
	return nil
}

func (s *PostgresShipmentStore) ListReturns(ctx context.Context, orderID uuid.UUID) ([]domain.Return, error) {
	if s.DB == nil {
		return nil, errors.New("return store: DB is nil")
	}

	query := `
	SELECT return_id, order_id, shipment_id, created_at
	FROM returns
	WHERE order_id = $1
	ORDER BY created_at;
	`
	rows, err := s.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list returns: query returns table: %w", err)
	}
	defer rows.Close()

	type returnRow struct {
		ret        domain.Return
		shipmentID uuid.UUID
	}

	var rets []returnRow
	for rows.Next() {
		var r returnRow
		if err := rows.Scan(&r.ret.ReturnID, &r.ret.OrderID, &r.shipmentID, &r.ret.CreatedAt); err != nil {
			return nil, fmt.Errorf("list returns: scan row: %w", err)
		}
		rets = append(rets, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list returns: row iteration: %w", err)
	}

	out := make([]domain.Return, 0, len(rets))
	for _, r := range rets {
		shipment, err := s.GetShipment(ctx, r.shipmentID)
		if err != nil {
			return nil, fmt.Errorf("list returns: %w", err)
		}
		r.ret.Shipment = *shipment
		r.ret.Items = shipment.Items
		out = append(out, r.ret)
	}

	return out, nil
}
