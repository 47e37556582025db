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

// OrderHandler exposes the per-order delivery and return endpoints.
type OrderHandler struct {
	Service    *services.OrderService
	Deliveries ports.DeliveryStore
	Returns    ports.ReturnStore
}

func (h *OrderHandler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	deliveries, err := h.Deliveries.ListDeliveries(r.Context(), orderID)
	if err != nil {
		zap.L().Error("list order deliveries failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := make([]dto.DeliveryResponse, 0, len(deliveries))
	for _, delivery := range deliveries {
		res = append(res, dto.NewDelivery(delivery))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// CreateDelivery commits a delivery for an order: stock is allocated and
// removed, shipments are created, and everything is rolled back on failure. An
// SLA the plan cannot meet rejects the request with the computed breakdown.
func (h *OrderHandler) CreateDelivery(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

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

	delivery, err := h.Service.CreateOrderDelivery(r.Context(), orderID, req.RecipientAddress, sla, dto.DomainItems(req.Items))
	if err != nil {
		var slaErr *services.CannotMeetSLAError
		if errors.As(err, &slaErr) {
			writeJSON(w, r, http.StatusBadRequest, map[string]any{
				"error":     "Cannot meet SLA",
				"breakdown": dto.NewBreakdown(slaErr.Breakdown),
			})
			return
		}
		writeBreakdownError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewDelivery(*delivery))
}

func (h *OrderHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	returns, err := h.Returns.ListReturns(r.Context(), orderID)
	if err != nil {
		zap.L().Error("list order returns failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewReturns(returns))
}

// CreateReturn ships the returned items back to the returns warehouse with the
// internal carrier.
func (h *OrderHandler) CreateReturn(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	var req dto.CreateReturnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.FromAddress == "" {
		writeError(w, r, http.StatusBadRequest, "from_address is required")
		return
	}

	ret, err := h.Service.CreateOrderReturn(r.Context(), orderID, req.FromAddress, dto.DomainItems(req.Items))
	if err != nil {
		if errors.Is(err, ports.ErrAddressNotFound) {
			writeError(w, r, http.StatusBadRequest, "address could not be resolved")
			return
		}
		zap.L().Error("create order return failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewReturn(*ret))
}
