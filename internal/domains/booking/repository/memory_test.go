package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"courtside/internal/domains/booking/model"
	"courtside/internal/domains/booking/repository"
	"courtside/shared/failure"
)

func TestMemoryStore_LoadAllStartsEmpty(t *testing.T) {
	store := repository.NewMemoryHub().Store()

	ledger := store.LoadAll(context.Background())

	assert.Empty(t, ledger)
}

func TestMemoryStore_SaveAllRoundTrip(t *testing.T) {
	store := repository.NewMemoryHub().Store()
	ctx := context.Background()

	ledger := model.Ledger{
		"2025-03-05": {
			{Key: "08:00|1", Timestamp: time.Now().UnixMilli()},
		},
	}

	assert.NoError(t, store.SaveAll(ctx, ledger))

	loaded := store.LoadAll(ctx)
	assert.Equal(t, ledger, loaded)

	// The stored ledger must not alias the caller's copy.
	loaded["2025-03-05"][0].Key = "mutated"
	assert.Equal(t, "08:00|1", store.LoadAll(ctx)["2025-03-05"][0].Key)
}

func TestMemoryStore_BookedKeysForDate(t *testing.T) {
	store := repository.NewMemoryHub().Store()
	ctx := context.Background()

	now := time.Now().UnixMilli()
	assert.NoError(t, store.SaveAll(ctx, model.Ledger{
		"2025-03-05": {
			{Key: "08:00|1", Timestamp: now},
			{Key: "18:00|2", Timestamp: now},
		},
	}))

	keys := store.BookedKeysForDate(ctx, "2025-03-05")
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "08:00|1")
	assert.Contains(t, keys, "18:00|2")

	assert.Empty(t, store.BookedKeysForDate(ctx, "2025-03-06"))
	assert.Empty(t, store.BookedKeysForDate(ctx, ""))
}

func TestMemoryStore_SweepExpired(t *testing.T) {
	store := repository.NewMemoryHub().Store()
	ctx := context.Background()

	maxAge := time.Hour
	now := time.Now()

	assert.NoError(t, store.SaveAll(ctx, model.Ledger{
		"2025-03-05": {
			{Key: "08:00|1", Timestamp: now.Add(-maxAge - time.Second).UnixMilli()},
			// Aged exactly maxAge, the threshold is inclusive.
			{Key: "10:00|1", Timestamp: now.Add(-maxAge).UnixMilli()},
			{Key: "09:00|1", Timestamp: now.Add(-maxAge + 5*time.Second).UnixMilli()},
		},
		"2025-03-06": {
			{Key: "18:00|2", Timestamp: now.Add(-2 * maxAge).UnixMilli()},
		},
	}))

	removed := store.SweepExpired(ctx, maxAge)
	assert.Equal(t, 3, removed)

	keys := store.BookedKeysForDate(ctx, "2025-03-05")
	assert.NotContains(t, keys, "08:00|1")
	assert.NotContains(t, keys, "10:00|1")
	assert.Contains(t, keys, "09:00|1")

	// The emptied bucket disappears entirely.
	assert.NotContains(t, store.LoadAll(ctx), "2025-03-06")

	// Nothing left to remove, the sweep must not write again.
	assert.Equal(t, 0, store.SweepExpired(ctx, maxAge))
}

func TestMemoryStore_SweepSkipsWriteWhenNothingExpired(t *testing.T) {
	hub := repository.NewMemoryHub()
	writer := hub.Store()
	observer := hub.Store()

	notifications := 0
	observer.Subscribe(func(string) {
		notifications++
	})

	ctx := context.Background()
	assert.NoError(t, writer.SaveAll(ctx, model.Ledger{
		"2025-03-05": {
			{Key: "08:00|1", Timestamp: time.Now().UnixMilli()},
		},
	}))
	assert.Equal(t, 1, notifications)

	writer.SweepExpired(ctx, time.Hour)
	assert.Equal(t, 1, notifications, "a sweep that removes nothing must not persist")
}

func TestMemoryStore_MutateAbortPropagatesWithoutWriting(t *testing.T) {
	store := repository.NewMemoryHub().Store()
	ctx := context.Background()

	wantErr := failure.SlotConflict("2025-03-05", "08:00 - 09:00", "1")

	err := store.Mutate(ctx, "2025-03-05", func(ledger model.Ledger) (model.Ledger, error) {
		next := ledger.Clone()
		next.Append("2025-03-05", model.Record{Key: "08:00|1", Timestamp: 1})

		return nil, wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Empty(t, store.LoadAll(ctx))
}

func TestMemoryStore_WritersDoNotHearThemselves(t *testing.T) {
	hub := repository.NewMemoryHub()
	writer := hub.Store()
	other := hub.Store()

	var writerHeard, otherHeard []string
	writer.Subscribe(func(date string) { writerHeard = append(writerHeard, date) })
	other.Subscribe(func(date string) { otherHeard = append(otherHeard, date) })

	err := writer.Mutate(context.Background(), "2025-03-05", func(ledger model.Ledger) (model.Ledger, error) {
		next := ledger.Clone()
		next.Append("2025-03-05", model.Record{Key: "08:00|1", Timestamp: time.Now().UnixMilli()})

		return next, nil
	})

	assert.NoError(t, err)
	assert.Empty(t, writerHeard)
	assert.Equal(t, []string{"2025-03-05"}, otherHeard)
}
