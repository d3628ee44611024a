package model

import (
	"sort"
	"time"
)

const (
	EntityName = "booking"
	TableName  = "court_bookings"

	FieldBookingDate = "booking_date"
	FieldSlotKey     = "slot_key"
	FieldCreatedAt   = "created_at"
)

// Record is one booked slot. Key is the canonical "HH:MM|court" token and
// Timestamp the creation time in epoch milliseconds, used only for expiry.
// Records are never mutated after creation.
type Record struct {
	Key       string `json:"key"       db:"slot_key"`
	Timestamp int64  `json:"timestamp" db:"created_at"`
}

// Ledger maps YYYY-MM-DD dates to the records booked on that date. Within one
// date bucket slot keys are unique: the same time and court cannot be booked
// twice on the same day.
type Ledger map[string][]Record

// KeysFor projects a date bucket to the set of its slot keys. An absent or
// blank date yields the empty set.
func (l Ledger) KeysFor(date string) map[string]struct{} {
	keys := make(map[string]struct{})
	if date == "" {
		return keys
	}

	for _, record := range l[date] {
		keys[record.Key] = struct{}{}
	}

	return keys
}

// Has reports whether a slot key is already booked on the given date.
func (l Ledger) Has(date, key string) bool {
	for _, record := range l[date] {
		if record.Key == key {
			return true
		}
	}

	return false
}

// Append adds records to a date bucket. Callers must have checked the
// uniqueness invariant first.
func (l Ledger) Append(date string, records ...Record) {
	l[date] = append(l[date], records...)
}

// Clone returns a deep copy so a mutation can be prepared without touching
// the snapshot it was computed from.
func (l Ledger) Clone() Ledger {
	clone := make(Ledger, len(l))
	for date, records := range l {
		bucket := make([]Record, len(records))
		copy(bucket, records)
		clone[date] = bucket
	}

	return clone
}

// Sweep returns a copy without the records that have outlived maxAge, plus
// the number of records dropped. Buckets left empty disappear entirely.
func (l Ledger) Sweep(now time.Time, maxAge time.Duration) (Ledger, int) {
	swept := make(Ledger, len(l))
	removed := 0

	for date, records := range l {
		kept := make([]Record, 0, len(records))
		for _, record := range records {
			age := now.UnixMilli() - record.Timestamp
			if age >= maxAge.Milliseconds() {
				removed++

				continue
			}

			kept = append(kept, record)
		}

		if len(kept) > 0 {
			swept[date] = kept
		}
	}

	return swept, removed
}

// Dates lists the ledger's date buckets in ascending order.
func (l Ledger) Dates() []string {
	dates := make([]string, 0, len(l))
	for date := range l {
		dates = append(dates, date)
	}

	sort.Strings(dates)

	return dates
}
