package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"courtside/shared/failure"
	"courtside/shared/locale"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		lang string
		path string
		want string
	}{
		{
			name: "english leaf",
			lang: "en",
			path: "booking.error.date_required",
			want: "Please choose a date first",
		},
		{
			name: "indonesian leaf",
			lang: "id",
			path: "booking.error.court_required",
			want: "Silakan pilih minimal satu lapangan",
		},
		{
			name: "unknown language falls back to english",
			lang: "de",
			path: "booking.success.created",
			want: "Booking confirmed",
		},
		{
			name: "unknown path returned as-is",
			lang: "en",
			path: "booking.error.nope",
			want: "booking.error.nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.Lookup(tt.lang, tt.path))
		})
	}
}

func TestResolve_InterpolatesParams(t *testing.T) {
	err := failure.SlotConflict("2025-03-08", "18:00 - 21:00", "2")

	fail, ok := failure.As(err)
	assert.True(t, ok)

	msg := locale.Resolve("en", fail)
	assert.Equal(t, "Court 2 is already booked for 18:00 - 21:00 on 2025-03-08", msg)

	msgID := locale.Resolve("id", fail)
	assert.Equal(t, "Lapangan 2 sudah dipesan untuk jam 18:00 - 21:00 pada tanggal 2025-03-08", msgID)
}

func TestResolve_KeepsLiteralMessageWithoutKey(t *testing.T) {
	fail, ok := failure.As(failure.BadRequestFromString("raw message"))
	assert.True(t, ok)

	assert.Equal(t, "raw message", locale.Resolve("en", fail))
}

func TestFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: "en"},
		{header: "id", want: "id"},
		{header: "id-ID,id;q=0.9,en;q=0.8", want: "id"},
		{header: "EN-us", want: "en"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, locale.FromHeader(tt.header))
	}
}
