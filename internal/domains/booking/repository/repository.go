package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"courtside/internal/domains/booking/model"
	"courtside/shared/timezone"
)

// ErrNoChange is returned by a Mutate callback to abort without writing and
// without reporting an error, e.g. when a sweep found nothing to remove.
var ErrNoChange = errors.New("ledger unchanged")

const casMaxRetries = 5

// Store owns the durable booking ledger. All other components go through it;
// none touch the underlying storage directly.
//
// Read failures degrade: a missing, unreachable or corrupt ledger loads as
// empty and is logged, never surfaced. Write failures do surface, as
// storage-unavailable failures.
//
// Mutate is an atomic read-modify-write: the callback receives the live
// ledger and returns its replacement, or an error to abort the write. Two
// concurrent writers cannot clobber each other; the loser either retries on
// a fresh snapshot (redis) or fails on the uniqueness constraint (postgres).
// The date argument hints which bucket changed so subscribers can refresh
// selectively; pass "" when the change spans buckets.
//
// Subscribe delivers change notifications from other writers of the same
// ledger. A store never hears its own writes and must refresh its callers'
// caches explicitly after writing.
type Store interface {
	LoadAll(ctx context.Context) model.Ledger
	SaveAll(ctx context.Context, ledger model.Ledger) error
	BookedKeysForDate(ctx context.Context, date string) map[string]struct{}
	SweepExpired(ctx context.Context, maxAge time.Duration) int
	Mutate(ctx context.Context, date string, apply func(model.Ledger) (model.Ledger, error)) error
	Subscribe(handler func(date string))
}

// changeEvent is the payload of a cross-context change notification. Origin
// identifies the writing store instance so it can skip its own events.
type changeEvent struct {
	Origin string `json:"origin"`
	Date   string `json:"date,omitempty"`
}

func sweepExpired(ctx context.Context, store Store, maxAge time.Duration) (removed int) {
	err := store.Mutate(ctx, "", func(ledger model.Ledger) (model.Ledger, error) {
		swept, dropped := ledger.Sweep(timezone.Now(), maxAge)
		if dropped == 0 {
			return nil, ErrNoChange
		}

		removed = dropped

		return swept, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to sweep expired bookings")

		return 0
	}

	if removed > 0 {
		log.Info().Int("removed", removed).Dur("maxAge", maxAge).Msg("swept expired bookings")
	}

	return removed
}
