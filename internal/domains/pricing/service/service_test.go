package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"courtside/config"
	"courtside/infras/otel/mocks"
	"courtside/internal/domains/pricing/model"
	"courtside/internal/domains/pricing/service"
)

func newService(t *testing.T) service.Pricing {
	t.Helper()

	cfg := &config.Config{}
	cfg.Booking.IncludeEarlySlots = true
	cfg.Pricing.Currency = "IDR"

	return service.New(cfg, mocks.NewOtel())
}

func TestPricingService_DayTypeFor(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name string
		date string
		want model.DayType
	}{
		{
			name: "wednesday is a weekday",
			date: "2025-03-05",
			want: model.DayTypeWeekday,
		},
		{
			name: "saturday is a weekend",
			date: "2025-03-08",
			want: model.DayTypeWeekend,
		},
		{
			name: "sunday is a weekend",
			date: "2025-03-09",
			want: model.DayTypeWeekend,
		},
		{
			name: "empty date defaults to weekday",
			date: "",
			want: model.DayTypeWeekday,
		},
		{
			name: "garbage date defaults to weekday",
			date: "not-a-date",
			want: model.DayTypeWeekday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.DayTypeFor(tt.date))
		})
	}
}

func TestPricingService_PricePerCourt(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name    string
		dayType model.DayType
		label   string
		want    int64
	}{
		{
			name:    "weekday morning",
			dayType: model.DayTypeWeekday,
			label:   "08:00 - 09:00",
			want:    model.DefaultWeekdayMorningRate,
		},
		{
			name:    "weekend morning",
			dayType: model.DayTypeWeekend,
			label:   "08:00 - 09:00",
			want:    model.DefaultWeekendMorningRate,
		},
		{
			name:    "weekday night",
			dayType: model.DayTypeWeekday,
			label:   "18:00 - 21:00",
			want:    model.DefaultWeekdayNightRate,
		},
		{
			name:    "weekend night with dotted label",
			dayType: model.DayTypeWeekend,
			label:   "18.00 - 21.00",
			want:    model.DefaultWeekendNightRate,
		},
		{
			name:    "midnight package",
			dayType: model.DayTypeWeekday,
			label:   "24:00 - 03:00",
			want:    model.DefaultWeekdayNightRate,
		},
		{
			name:    "unknown label prices at zero",
			dayType: model.DayTypeWeekend,
			label:   "12:30 - 13:30",
			want:    0,
		},
		{
			name:    "malformed label prices at zero",
			dayType: model.DayTypeWeekend,
			label:   "garbage",
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.PricePerCourt(tt.dayType, tt.label))
		})
	}
}

func TestPricingService_WeekendNeverCheaperThanWeekday(t *testing.T) {
	svc := newService(t)

	labels := append(model.MorningLabels(true), model.NightLabels()...)
	for _, label := range labels {
		weekday := svc.PricePerCourt(model.DayTypeWeekday, label)
		weekend := svc.PricePerCourt(model.DayTypeWeekend, label)

		assert.GreaterOrEqual(t, weekend, weekday, "label %s", label)
	}
}

func TestPricingService_Quote(t *testing.T) {
	svc := newService(t)

	t.Run("weekday morning single court", func(t *testing.T) {
		res := svc.Quote(context.Background(), "2025-03-05", []string{"08:00 - 09:00"}, 1)

		assert.Equal(t, model.DefaultWeekdayMorningRate, res.Total)
		assert.Equal(t, "weekday", res.DayType)
		assert.Equal(t, "IDR", res.Currency)
	})

	t.Run("weekend night package on two courts", func(t *testing.T) {
		res := svc.Quote(context.Background(), "2025-03-08", []string{"18.00 - 21.00"}, 2)

		assert.Equal(t, model.DefaultWeekendNightRate*2, res.Total)
		assert.Equal(t, "weekend", res.DayType)
	})

	t.Run("mixed selection sums per slot", func(t *testing.T) {
		res := svc.Quote(context.Background(), "2025-03-05", []string{"08:00 - 09:00", "18:00 - 21:00"}, 2)

		want := (model.DefaultWeekdayMorningRate + model.DefaultWeekdayNightRate) * 2
		assert.Equal(t, want, res.Total)
	})
}

func TestPricingService_KnownLabel(t *testing.T) {
	svc := newService(t)

	assert.True(t, svc.KnownLabel("08:00 - 09:00"))
	assert.True(t, svc.KnownLabel("18.00 - 21.00"))
	assert.True(t, svc.KnownLabel("24:00 - 03:00"))
	assert.False(t, svc.KnownLabel("05:00 - 06:00"))
	assert.False(t, svc.KnownLabel("garbage"))
}

func TestPricingService_EarlySlotsToggle(t *testing.T) {
	cfg := &config.Config{}
	cfg.Booking.IncludeEarlySlots = false

	svc := service.New(cfg, mocks.NewOtel())

	assert.False(t, svc.KnownLabel("06:00 - 07:00"))
	assert.False(t, svc.KnownLabel("07:00 - 08:00"))
	assert.True(t, svc.KnownLabel("08:00 - 09:00"))
}

func TestMorningLabels(t *testing.T) {
	withEarly := model.MorningLabels(true)
	withoutEarly := model.MorningLabels(false)

	assert.Len(t, withEarly, 12)
	assert.Len(t, withoutEarly, 10)
	assert.Equal(t, "06:00 - 07:00", withEarly[0])
	assert.Equal(t, "08:00 - 09:00", withoutEarly[0])
	assert.Equal(t, "17:00 - 18:00", withEarly[len(withEarly)-1])
}
