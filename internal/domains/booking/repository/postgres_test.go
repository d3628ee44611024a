package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"courtside/internal/domains/booking/model"
)

func TestLedgerDiff(t *testing.T) {
	tests := []struct {
		name        string
		old         model.Ledger
		next        model.Ledger
		wantAdded   []bookingRow
		wantRemoved []bookingRow
	}{
		{
			name: "new record inserts",
			old:  model.Ledger{},
			next: model.Ledger{
				"2025-03-05": {{Key: "08:00|1", Timestamp: 1000}},
			},
			wantAdded: []bookingRow{
				{Date: "2025-03-05", Key: "08:00|1", CreatedAt: 1000},
			},
		},
		{
			name: "dropped record deletes",
			old: model.Ledger{
				"2025-03-05": {{Key: "08:00|1", Timestamp: 1000}},
			},
			next: model.Ledger{},
			wantRemoved: []bookingRow{
				{Date: "2025-03-05", Key: "08:00|1"},
			},
		},
		{
			name: "unchanged record touches nothing",
			old: model.Ledger{
				"2025-03-05": {{Key: "08:00|1", Timestamp: 1000}},
			},
			next: model.Ledger{
				"2025-03-05": {{Key: "08:00|1", Timestamp: 1000}},
			},
		},
		{
			// An expired slot reclaimed within one mutation keeps its key but
			// gets a fresh timestamp; the row must be rewritten or the next
			// sweep deletes the new booking.
			name: "reclaimed slot rewrites the row",
			old: model.Ledger{
				"2025-03-05": {{Key: "08:00|1", Timestamp: 1000}},
			},
			next: model.Ledger{
				"2025-03-05": {{Key: "08:00|1", Timestamp: 999999}},
			},
			wantAdded: []bookingRow{
				{Date: "2025-03-05", Key: "08:00|1", CreatedAt: 999999},
			},
			wantRemoved: []bookingRow{
				{Date: "2025-03-05", Key: "08:00|1"},
			},
		},
		{
			name: "same key on another date is independent",
			old: model.Ledger{
				"2025-03-05": {{Key: "08:00|1", Timestamp: 1000}},
			},
			next: model.Ledger{
				"2025-03-05": {{Key: "08:00|1", Timestamp: 1000}},
				"2025-03-06": {{Key: "08:00|1", Timestamp: 2000}},
			},
			wantAdded: []bookingRow{
				{Date: "2025-03-06", Key: "08:00|1", CreatedAt: 2000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := ledgerDiff(tt.old, tt.next)

			assert.ElementsMatch(t, tt.wantAdded, added)
			assert.ElementsMatch(t, tt.wantRemoved, removed)
		})
	}
}
