package router

import (
	"github.com/go-chi/chi/v5"

	"courtside/internal/handlers/availability"
	"courtside/internal/handlers/booking"
	"courtside/internal/handlers/pricing"
)

type DomainHandlers struct {
	Availability availability.Handler
	Booking      booking.Handler
	Pricing      pricing.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
