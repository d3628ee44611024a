package repository

import (
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"courtside/config"
	"courtside/infras/otel"
	"courtside/infras/postgres"
)

const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// NewStore picks the ledger driver from config. The redis client is shared
// with the cache layer; the postgres pool is only dialed when selected. The
// memory driver keeps the service usable with no storage at all, at the cost
// of bookings not surviving a restart.
func NewStore(cfg *config.Config, client *goRedis.Client, ot otel.Otel) Store {
	switch cfg.Store.Driver {
	case DriverPostgres:
		return NewPostgres(cfg, postgres.New(cfg), ot)
	case DriverMemory:
		log.Warn().Msg("Using in-memory booking store, bookings will not survive a restart")

		return NewMemoryHub().Store()
	case DriverRedis:
		return NewRedis(cfg, client, ot)
	default:
		log.Warn().Str("driver", cfg.Store.Driver).Msg("Unknown store driver, falling back to redis")

		return NewRedis(cfg, client, ot)
	}
}
