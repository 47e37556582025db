package carriers

import (
	"fmt"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// Registry holds the known carrier models in a fixed evaluation order.
// It is built once at process start and injected wherever carriers are
// dispatched; there is no global carrier state.
type Registry struct {
	order  []Model
	models map[domain.Carrier]Model
}

// NewRegistry builds a registry preserving the argument order. The fastest-
// carrier search iterates in exactly this order, which makes breakdown
// results reproducible.
func NewRegistry(models ...Model) *Registry {
	r := &Registry{
		order:  models,
		models: make(map[domain.Carrier]Model, len(models)),
	}
	for _, m := range models {
		r.models[m.Carrier()] = m
	}
	return r
}

// NewDefaultRegistry wires the standard carrier set. The external carriers
// come before Internal, matching the evaluation order the breakdown results
// are specified against.
func NewDefaultRegistry(geocoder ports.Geocoder, shipments ports.ShipmentStore) *Registry {
	return NewRegistry(
		NewFedEx(geocoder),
		NewUPS(geocoder),
		NewUSPS(geocoder),
		NewInternal(geocoder, shipments),
	)
}

// Get returns the model for a carrier.
func (r *Registry) Get(carrier domain.Carrier) (Model, error) {
	m, ok := r.models[carrier]
	if !ok {
		return nil, fmt.Errorf("no model registered for carrier %q", carrier)
	}
	return m, nil
}

// InOrder returns the models in registration order.
func (r *Registry) InOrder() []Model { return r.order }
