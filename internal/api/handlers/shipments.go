package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justinbrick/capstone-project-shipping-api/internal/api/dto"
	"github.com/justinbrick/capstone-project-shipping-api/internal/carriers"
	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// ShipmentHandler exposes shipment retrieval and carrier status lookups.
type ShipmentHandler struct {
	Store    ports.ShipmentStore
	Carriers *carriers.Registry
}

// List returns shipments matching the query string filters. Date ordering
// defaults to newest first.
func (h *ShipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := shipmentQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	shipments, err := h.Store.ListShipments(r.Context(), *query)
	if err != nil {
		zap.L().Error("list shipments failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewShipments(shipments))
}

func (h *ShipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	shipment, ok := h.shipment(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewShipment(*shipment))
}

// Status asks the shipment's carrier for its current status. Simulated
// third-party carriers have no tracking backend and answer 501.
func (h *ShipmentHandler) Status(w http.ResponseWriter, r *http.Request) {
	shipment, ok := h.shipment(w, r)
	if !ok {
		return
	}

	model, err := h.Carriers.Get(shipment.Carrier)
	if err != nil {
		zap.L().Error("carrier lookup failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	status, err := model.ShipmentStatus(r.Context(), shipment.CarrierTrackingID)
	if err != nil {
		if errors.Is(err, carriers.ErrTrackingUnsupported) {
			writeError(w, r, http.StatusNotImplemented, "carrier does not support status tracking")
			return
		}
		zap.L().Error("shipment status lookup failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewShipmentStatus(*status))
}

// shipment loads the path-addressed shipment, writing the error response
// itself when that fails.
func (h *ShipmentHandler) shipment(w http.ResponseWriter, r *http.Request) (*domain.Shipment, bool) {
	shipmentID, err := uuid.Parse(chi.URLParam(r, "shipment_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid shipment id")
		return nil, false
	}

	shipment, err := h.Store.GetShipment(r.Context(), shipmentID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "shipment not found")
			return nil, false
		}
		zap.L().Error("get shipment failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	return shipment, true
}

func shipmentQuery(r *http.Request) (*ports.ShipmentQuery, error) {
	q := ports.ShipmentQuery{
		DateDesc:        true,
		FromAddress:     r.URL.Query().Get("from_address"),
		ShippingAddress: r.URL.Query().Get("shipping_address"),
		TrackingID:      r.URL.Query().Get("tracking_id"),
		Limit:           50,
	}

	if v := r.URL.Query().Get("date_desc"); v != "" {
		desc, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("date_desc must be a boolean")
		}
		q.DateDesc = desc
	}
	if v := r.URL.Query().Get("provider"); v != "" {
		carrier, err := domain.ParseCarrier(v)
		if err != nil {
			return nil, errors.New("unknown provider")
		}
		q.Carrier = &carrier
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status, err := domain.ParseStatus(v)
		if err != nil {
			return nil, errors.New("unknown status")
		}
		q.Status = &status
	}
	if v := r.URL.Query().Get("delivery_id"); v != "" {
		deliveryID, err := uuid.Parse(v)
		if err != nil {
			return nil, errors.New("invalid delivery_id")
		}
		q.DeliveryID = &deliveryID
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > 500 {
			return nil, errors.New("limit must be between 1 and 500")
		}
		q.Limit = limit
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return nil, errors.New("offset must be non-negative")
		}
		q.Offset = offset
	}

	return &q, nil
}
