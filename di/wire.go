//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"courtside/config"
	"courtside/infras/otel"
	"courtside/infras/redis"
	"courtside/shared/cache"
	"courtside/transport/http"
	"courtside/transport/http/middleware"
	"courtside/transport/http/router"

	availabilityService "courtside/internal/domains/availability/service"
	bookingRepository "courtside/internal/domains/booking/repository"
	bookingService "courtside/internal/domains/booking/service"
	pricingService "courtside/internal/domains/pricing/service"

	availabilityHandler "courtside/internal/handlers/availability"
	bookingHandler "courtside/internal/handlers/booking"
	pricingHandler "courtside/internal/handlers/pricing"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.NewStore,
	bookingService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var pricingDomain = wire.NewSet(
	pricingService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	availabilityDomain,
	pricingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.New,
	bookingHandler.New,
	pricingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
