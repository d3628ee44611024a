package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"courtside/internal/domains/booking/model"
)

func TestLedgerSweep_ThresholdBoundary(t *testing.T) {
	maxAge := 2 * time.Hour
	now := time.UnixMilli(1_000_000_000_000)

	ledger := model.Ledger{
		"2025-03-05": {
			{Key: "08:00|1", Timestamp: now.Add(-maxAge).UnixMilli() - 1},
			{Key: "09:00|1", Timestamp: now.Add(-maxAge).UnixMilli()},
			{Key: "10:00|1", Timestamp: now.Add(-maxAge).UnixMilli() + 1},
		},
	}

	swept, removed := ledger.Sweep(now, maxAge)

	// The threshold is inclusive: a record aged exactly maxAge expires.
	assert.Equal(t, 2, removed)

	keys := swept.KeysFor("2025-03-05")
	assert.NotContains(t, keys, "08:00|1")
	assert.NotContains(t, keys, "09:00|1")
	assert.Contains(t, keys, "10:00|1")

	// The input ledger is left untouched.
	assert.Len(t, ledger["2025-03-05"], 3)
}

func TestLedgerSweep_DropsEmptiedBuckets(t *testing.T) {
	maxAge := time.Hour
	now := time.UnixMilli(1_000_000_000_000)

	ledger := model.Ledger{
		"2025-03-05": {
			{Key: "08:00|1", Timestamp: now.Add(-2 * maxAge).UnixMilli()},
		},
		"2025-03-06": {
			{Key: "18:00|2", Timestamp: now.UnixMilli()},
		},
	}

	swept, removed := ledger.Sweep(now, maxAge)

	assert.Equal(t, 1, removed)
	assert.NotContains(t, swept, "2025-03-05")
	assert.Contains(t, swept, "2025-03-06")
}
