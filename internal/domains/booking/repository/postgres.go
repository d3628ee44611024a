package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"courtside/config"
	"courtside/infras/otel"
	"courtside/infras/postgres"
	"courtside/internal/domains/booking/model"
	"courtside/shared/constant"
	"courtside/shared/failure"
)

// Serializes ledger mutations across connections for the lifetime of one
// transaction. Arbitrary but stable.
const advisoryLockKey int64 = 714152

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
)

const (
	querySelectAll = `SELECT to_char(booking_date, 'YYYY-MM-DD') AS booking_date, slot_key, created_at FROM court_bookings`
	queryInsert    = `INSERT INTO court_bookings (booking_date, slot_key, created_at) VALUES ($1, $2, $3)`
	queryDelete    = `DELETE FROM court_bookings WHERE booking_date = $1 AND slot_key = $2`
	queryDeleteAll = `DELETE FROM court_bookings`
	queryNotify    = `SELECT pg_notify($1, $2)`
	queryLock      = `SELECT pg_advisory_xact_lock($1)`
)

type bookingRow struct {
	Date      string `db:"booking_date"`
	Key       string `db:"slot_key"`
	CreatedAt int64  `db:"created_at"`
}

// postgresStore is the hardened relational driver. The unique
// (booking_date, slot_key) index backs the no-double-booking invariant at the
// storage layer, and mutations run under an advisory transaction lock, so a
// lost race surfaces as a conflict instead of silently dropping records.
type postgresStore struct {
	conn   *postgres.Connection
	cfg    *config.Config
	otel   otel.Otel
	origin string
}

func NewPostgres(cfg *config.Config, conn *postgres.Connection, ot otel.Otel) Store {
	return &postgresStore{
		conn:   conn,
		cfg:    cfg,
		otel:   ot,
		origin: uuid.NewString(),
	}
}

func (p *postgresStore) LoadAll(ctx context.Context) model.Ledger {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".LoadAll")
	defer scope.End()

	rows := []bookingRow{}
	if err := p.conn.Read.SelectContext(ctx, &rows, querySelectAll); err != nil {
		log.Warn().Err(err).Msg("failed to read booking ledger, treating as empty")

		return model.Ledger{}
	}

	return ledgerFromRows(rows)
}

func (p *postgresStore) SaveAll(ctx context.Context, ledger model.Ledger) error {
	return p.Mutate(ctx, "", func(model.Ledger) (model.Ledger, error) {
		return ledger, nil
	})
}

func (p *postgresStore) BookedKeysForDate(ctx context.Context, date string) map[string]struct{} {
	return p.LoadAll(ctx).KeysFor(date)
}

func (p *postgresStore) SweepExpired(ctx context.Context, maxAge time.Duration) int {
	return sweepExpired(ctx, p, maxAge)
}

func (p *postgresStore) Mutate(ctx context.Context, date string, apply func(model.Ledger) (model.Ledger, error)) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Mutate")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := p.conn.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin ledger transaction")

		return failure.Unavailable(err) //nolint:wrapcheck
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, queryLock, advisoryLockKey); err != nil {
		return failure.Unavailable(err) //nolint:wrapcheck
	}

	rows := []bookingRow{}
	if err = tx.SelectContext(ctx, &rows, querySelectAll); err != nil {
		return failure.Unavailable(err) //nolint:wrapcheck
	}

	ledger := ledgerFromRows(rows)

	next, err := apply(ledger)
	if err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}

		return err
	}

	added, removed := ledgerDiff(ledger, next)

	for _, row := range removed {
		if _, err = tx.ExecContext(ctx, queryDelete, row.Date, row.Key); err != nil {
			return failure.Unavailable(err) //nolint:wrapcheck
		}
	}

	for _, row := range added {
		if _, err = tx.ExecContext(ctx, queryInsert, row.Date, row.Key, row.CreatedAt); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
				return failure.Conflict(fmt.Sprintf("slot %s already booked on %s", row.Key, row.Date)) //nolint:wrapcheck
			}

			return failure.Unavailable(err) //nolint:wrapcheck
		}
	}

	payload, err := json.Marshal(changeEvent{Origin: p.origin, Date: date})
	if err == nil {
		if _, err = tx.ExecContext(ctx, queryNotify, p.cfg.Store.ChangeChannel, string(payload)); err != nil {
			log.Warn().Err(err).Msg("failed to notify ledger change")
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit ledger mutation")

		return failure.Unavailable(err) //nolint:wrapcheck
	}

	return nil
}

func (p *postgresStore) Subscribe(handler func(date string)) {
	listener := pq.NewListener(postgres.WriteDSN(p.cfg), listenerMinReconnect, listenerMaxReconnect,
		func(_ pq.ListenerEventType, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("ledger change listener event error")
			}
		})

	if err := listener.Listen(p.cfg.Store.ChangeChannel); err != nil {
		log.Error().Err(err).Msg("failed to listen for ledger changes")

		return
	}

	go func() {
		for notification := range listener.Notify {
			if notification == nil {
				// Reconnect marker, the periodic availability refresh covers the gap.
				continue
			}

			var event changeEvent
			if err := json.Unmarshal([]byte(notification.Extra), &event); err != nil {
				log.Warn().Err(err).Str("payload", notification.Extra).Msg("dropping malformed ledger change event")

				continue
			}

			if event.Origin == p.origin {
				continue
			}

			handler(event.Date)
		}
	}()
}

func ledgerFromRows(rows []bookingRow) model.Ledger {
	ledger := model.Ledger{}
	for _, row := range rows {
		ledger.Append(row.Date, model.Record{Key: row.Key, Timestamp: row.CreatedAt})
	}

	return ledger
}

// ledgerDiff computes the row-level changes between two ledgers so a
// mutation only touches the records it actually changed. A pair whose
// timestamp moved (an expired slot reclaimed within one mutation) becomes a
// delete plus an insert; without that the row would keep its stale created_at
// and the next sweep would drop the fresh booking.
func ledgerDiff(old, next model.Ledger) (added, removed []bookingRow) {
	oldRows := rowSet(old)
	nextRows := rowSet(next)

	for pair, createdAt := range nextRows {
		oldCreatedAt, ok := oldRows[pair]
		if ok && oldCreatedAt == createdAt {
			continue
		}

		if ok {
			removed = append(removed, bookingRow{Date: pair.date, Key: pair.key})
		}

		added = append(added, bookingRow{Date: pair.date, Key: pair.key, CreatedAt: createdAt})
	}

	for pair := range oldRows {
		if _, ok := nextRows[pair]; !ok {
			removed = append(removed, bookingRow{Date: pair.date, Key: pair.key})
		}
	}

	return added, removed
}

type rowPair struct {
	date string
	key  string
}

func rowSet(ledger model.Ledger) map[rowPair]int64 {
	set := make(map[rowPair]int64)
	for date, records := range ledger {
		for _, record := range records {
			set[rowPair{date: date, key: record.Key}] = record.Timestamp
		}
	}

	return set
}
