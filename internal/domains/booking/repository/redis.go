package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"courtside/config"
	"courtside/infras/otel"
	"courtside/internal/domains/booking/model"
	"courtside/shared/constant"
	"courtside/shared/failure"
)

// redisStore keeps the whole ledger as one JSON document under a fixed key
// and fans out change notifications over a pub/sub channel. Commits go
// through WATCH/MULTI/EXEC so concurrent writers retry on a fresh snapshot
// instead of clobbering each other.
type redisStore struct {
	client *goRedis.Client
	cfg    *config.Config
	otel   otel.Otel
	origin string
}

func NewRedis(cfg *config.Config, client *goRedis.Client, ot otel.Otel) Store {
	return &redisStore{
		client: client,
		cfg:    cfg,
		otel:   ot,
		origin: uuid.NewString(),
	}
}

func (r *redisStore) LoadAll(ctx context.Context) model.Ledger {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".LoadAll")
	defer scope.End()

	return r.parse(r.client.Get(ctx, r.cfg.Store.LedgerKey))
}

func (r *redisStore) SaveAll(ctx context.Context, ledger model.Ledger) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".SaveAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload, err := json.Marshal(ledger)
	if err != nil {
		return failure.InternalError(fmt.Errorf("failed to encode ledger: %w", err)) //nolint:wrapcheck
	}

	if err = r.client.Set(ctx, r.cfg.Store.LedgerKey, payload, 0).Err(); err != nil {
		log.Error().Err(err).Msg("failed to write booking ledger")

		return failure.Unavailable(err) //nolint:wrapcheck
	}

	r.publish(ctx, "")

	return nil
}

func (r *redisStore) BookedKeysForDate(ctx context.Context, date string) map[string]struct{} {
	return r.LoadAll(ctx).KeysFor(date)
}

func (r *redisStore) SweepExpired(ctx context.Context, maxAge time.Duration) int {
	return sweepExpired(ctx, r, maxAge)
}

func (r *redisStore) Mutate(ctx context.Context, date string, apply func(model.Ledger) (model.Ledger, error)) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Mutate")
	defer scope.End()
	defer scope.TraceIfError(err)

	var wrote bool

	txf := func(tx *goRedis.Tx) error {
		ledger := r.parse(tx.Get(ctx, r.cfg.Store.LedgerKey))

		next, err := apply(ledger)
		if err != nil {
			return err
		}

		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode ledger: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goRedis.Pipeliner) error {
			pipe.Set(ctx, r.cfg.Store.LedgerKey, payload, 0)

			return nil
		})

		if err == nil {
			wrote = true
		}

		return err
	}

	for attempt := 0; attempt < casMaxRetries; attempt++ {
		err = r.client.Watch(ctx, txf, r.cfg.Store.LedgerKey)

		switch {
		case err == nil:
			if wrote {
				r.publish(ctx, date)
			}

			return nil
		case errors.Is(err, ErrNoChange):
			return nil
		case errors.Is(err, goRedis.TxFailedErr):
			// Another writer changed the ledger under us, retry on a fresh snapshot.
			wrote = false

			continue
		default:
			if _, ok := failure.As(err); ok {
				return err
			}

			log.Error().Err(err).Msg("failed to mutate booking ledger")

			return failure.Unavailable(err) //nolint:wrapcheck
		}
	}

	log.Error().Int("attempts", casMaxRetries).Msg("gave up mutating booking ledger after repeated write races")

	return failure.Unavailable(fmt.Errorf("ledger write contention, gave up after %d attempts", casMaxRetries)) //nolint:wrapcheck
}

func (r *redisStore) Subscribe(handler func(date string)) {
	sub := r.client.Subscribe(context.Background(), r.cfg.Store.ChangeChannel)

	go func() {
		for msg := range sub.Channel() {
			var event changeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Str("payload", msg.Payload).Msg("dropping malformed ledger change event")

				continue
			}

			if event.Origin == r.origin {
				continue
			}

			handler(event.Date)
		}
	}()
}

// parse decodes a ledger read. Every failure mode degrades to the empty
// ledger so an unreachable or corrupted slot never breaks the caller.
func (r *redisStore) parse(cmd *goRedis.StringCmd) model.Ledger {
	raw, err := cmd.Result()

	switch {
	case errors.Is(err, goRedis.Nil):
		return model.Ledger{}
	case err != nil:
		log.Warn().Err(err).Msg("failed to read booking ledger, treating as empty")

		return model.Ledger{}
	}

	ledger := model.Ledger{}
	if err := json.Unmarshal([]byte(raw), &ledger); err != nil {
		log.Warn().Err(err).Msg("corrupt booking ledger, treating as empty")

		return model.Ledger{}
	}

	return ledger
}

func (r *redisStore) publish(ctx context.Context, date string) {
	payload, err := json.Marshal(changeEvent{Origin: r.origin, Date: date})
	if err != nil {
		return
	}

	if err := r.client.Publish(ctx, r.cfg.Store.ChangeChannel, payload).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to publish ledger change event")
	}
}
