package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/justinbrick/capstone-project-shipping-api/internal/api/handlers"
	"github.com/justinbrick/capstone-project-shipping-api/internal/carriers"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
	"github.com/justinbrick/capstone-project-shipping-api/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(
	engine *services.BreakdownEngine,
	orders *services.OrderService,
	shipments ports.ShipmentStore,
	deliveries ports.DeliveryStore,
	returns ports.ReturnStore,
	registry *carriers.Registry,
	log *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))

	deliveryHandler := &handlers.DeliveryHandler{
		Engine:    engine,
		Shipments: shipments,
	}
	orderHandler := &handlers.OrderHandler{
		Service:    orders,
		Deliveries: deliveries,
		Returns:    returns,
	}
	shipmentHandler := &handlers.ShipmentHandler{
		Store:    shipments,
		Carriers: registry,
	}

	r.Get("/health", handlers.Health)

	r.Route("/deliveries", func(r chi.Router) {
		r.Post("/breakdown", deliveryHandler.Breakdown)
		r.Get("/{delivery_id}/shipments", deliveryHandler.ListShipments)
	})

	r.Route("/orders/{order_id}", func(r chi.Router) {
		r.Get("/deliveries", orderHandler.ListDeliveries)
		r.Post("/deliveries", orderHandler.CreateDelivery)
		r.Get("/returns", orderHandler.ListReturns)
		r.Post("/returns", orderHandler.CreateReturn)
	})

	r.Route("/shipments", func(r chi.Router) {
		r.Get("/", shipmentHandler.List)
		r.Get("/{shipment_id}", shipmentHandler.Get)
		r.Get("/{shipment_id}/status", shipmentHandler.Status)
	})

	return r
}
