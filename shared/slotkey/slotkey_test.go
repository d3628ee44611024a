package slotkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"courtside/shared/slotkey"
)

func TestCanonicalStart(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
		ok    bool
	}{
		{
			name:  "hourly morning slot",
			label: "08:00 - 09:00",
			want:  "08:00",
			ok:    true,
		},
		{
			name:  "night package",
			label: "18:00 - 21:00",
			want:  "18:00",
			ok:    true,
		},
		{
			name:  "dot separated spelling",
			label: "18.00 - 21.00",
			want:  "18:00",
			ok:    true,
		},
		{
			name:  "midnight package folds to 00:00",
			label: "24:00 - 03:00",
			want:  "00:00",
			ok:    true,
		},
		{
			name:  "dot separated midnight package",
			label: "24.00 - 03.00",
			want:  "00:00",
			ok:    true,
		},
		{
			name:  "missing range separator",
			label: "08:00",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := slotkey.CanonicalStart(tt.label)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalStart_NeverReturns2400(t *testing.T) {
	labels := []string{
		"24:00 - 03:00",
		"24.00 - 03.00",
		"24:00 - 03.00",
	}

	for _, label := range labels {
		start, ok := slotkey.CanonicalStart(label)

		assert.True(t, ok)
		assert.NotEqual(t, "24:00", start)
		assert.Equal(t, "00:00", start)
	}
}

func TestNormalizeStart_PanicsOnMalformedLabel(t *testing.T) {
	assert.Panics(t, func() {
		slotkey.NormalizeStart("not a range")
	})
}

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		label string
		court string
		want  string
	}{
		{
			name:  "morning slot on court 1",
			label: "08:00 - 09:00",
			court: "1",
			want:  "08:00|1",
		},
		{
			name:  "dotted night label collides with colon spelling",
			label: "18.00 - 21.00",
			court: "4",
			want:  "18:00|4",
		},
		{
			name:  "midnight package keyed at 00:00",
			label: "24:00 - 03:00",
			court: "6",
			want:  "00:00|6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slotkey.Key(tt.label, tt.court))
		})
	}
}
