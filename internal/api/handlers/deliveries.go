package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justinbrick/capstone-project-shipping-api/internal/api/dto"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
	"github.com/justinbrick/capstone-project-shipping-api/internal/services"
)

// DeliveryHandler exposes breakdown planning and delivery shipment listings.
type DeliveryHandler struct {
	Engine    *services.BreakdownEngine
	Shipments ports.ShipmentStore
}

// Breakdown computes the per-warehouse shipment plan for a delivery request
// without committing anything. An SLA miss is reported in the body, not as an
// error status.
func (h *DeliveryHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDeliveryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	sla, err := domain.ParseSLA(req.DeliverySLA)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unknown delivery_sla")
		return
	}
	if req.RecipientAddress == "" {
		writeError(w, r, http.StatusBadRequest, "recipient_address is required")
		return
	}

	breakdown, err := h.Engine.DeliveryBreakdown(r.Context(), req.RecipientAddress, sla, dto.DomainItems(req.Items))
	if err != nil {
		writeBreakdownError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewBreakdown(breakdown))
}

// ListShipments returns every shipment belonging to one delivery.
func (h *DeliveryHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := uuid.Parse(chi.URLParam(r, "delivery_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid delivery id")
		return
	}

	shipments, err := h.Shipments.ListShipments(r.Context(), ports.ShipmentQuery{
		DeliveryID: &deliveryID,
		Limit:      100,
	})
	if err != nil {
		zap.L().Error("list delivery shipments failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewShipments(shipments))
}

// writeBreakdownError maps planning failures shared by the breakdown and
// order-delivery endpoints.
func writeBreakdownError(w http.ResponseWriter, r *http.Request, err error) {
	var oos *services.OutOfStockError
	if errors.As(err, &oos) {
		writeJSON(w, r, http.StatusBadRequest, map[string]any{
			"error": "not enough stock within the nearest warehouses",
			"upcs":  oos.UPCs,
		})
		return
	}
	if errors.Is(err, ports.ErrAddressNotFound) {
		writeError(w, r, http.StatusBadRequest, "address could not be resolved")
		return
	}

	zap.L().Error("delivery breakdown failed", zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
