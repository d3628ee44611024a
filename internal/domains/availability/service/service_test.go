package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"courtside/config"
	"courtside/infras/otel/mocks"
	"courtside/internal/domains/availability/service"
	bookingMocks "courtside/internal/domains/booking/mocks"
	"courtside/internal/domains/booking/model"
	"courtside/internal/domains/booking/repository"
)

func availabilityConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.ExpiryMinutes = 120

	return cfg
}

func TestAvailabilityService_LazyLoadOnFirstQuery(t *testing.T) {
	hub := repository.NewMemoryHub()
	seed := hub.Store()

	now := time.Now().UnixMilli()
	assert.NoError(t, seed.SaveAll(context.Background(), model.Ledger{
		"2025-03-05": {
			{Key: "18:00|2", Timestamp: now},
			{Key: "08:00|1", Timestamp: now},
		},
	}))

	svc := service.New(availabilityConfig(), hub.Store(), mocks.NewOtel())

	booked := svc.BookedKeys(context.Background(), "2025-03-05")
	assert.Equal(t, []string{"08:00|1", "18:00|2"}, booked)
}

func TestAvailabilityService_IsBooked(t *testing.T) {
	hub := repository.NewMemoryHub()
	seed := hub.Store()

	assert.NoError(t, seed.SaveAll(context.Background(), model.Ledger{
		"2025-03-05": {
			{Key: "08:00|1", Timestamp: time.Now().UnixMilli()},
		},
	}))

	svc := service.New(availabilityConfig(), hub.Store(), mocks.NewOtel())
	ctx := context.Background()

	tests := []struct {
		name      string
		date      string
		timeLabel string
		courtID   string
		want      bool
	}{
		{name: "booked slot", date: "2025-03-05", timeLabel: "08:00 - 09:00", courtID: "1", want: true},
		{name: "dotted label resolves to same slot", date: "2025-03-05", timeLabel: "08.00 - 09.00", courtID: "1", want: true},
		{name: "same time other court", date: "2025-03-05", timeLabel: "08:00 - 09:00", courtID: "2", want: false},
		{name: "other date", date: "2025-03-06", timeLabel: "08:00 - 09:00", courtID: "1", want: false},
		{name: "empty date", date: "", timeLabel: "08:00 - 09:00", courtID: "1", want: false},
		{name: "malformed label", date: "2025-03-05", timeLabel: "whenever", courtID: "1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.IsBooked(ctx, tt.date, tt.timeLabel, tt.courtID))
		})
	}
}

func TestAvailabilityService_ReloadsOnExternalWrite(t *testing.T) {
	hub := repository.NewMemoryHub()
	external := hub.Store()

	svc := service.New(availabilityConfig(), hub.Store(), mocks.NewOtel())
	ctx := context.Background()

	assert.Empty(t, svc.BookedKeys(ctx, "2025-03-05"))

	// Another instance books a slot; the notification lands synchronously.
	err := external.Mutate(ctx, "2025-03-05", func(ledger model.Ledger) (model.Ledger, error) {
		next := ledger.Clone()
		next.Append("2025-03-05", model.Record{Key: "18:00|3", Timestamp: time.Now().UnixMilli()})

		return next, nil
	})
	assert.NoError(t, err)

	assert.Equal(t, []string{"18:00|3"}, svc.BookedKeys(ctx, "2025-03-05"))
	assert.True(t, svc.IsBooked(ctx, "2025-03-05", "18:00 - 21:00", "3"))
}

func TestAvailabilityService_RefreshSweepsExpired(t *testing.T) {
	hub := repository.NewMemoryHub()
	seed := hub.Store()

	now := time.Now()
	assert.NoError(t, seed.SaveAll(context.Background(), model.Ledger{
		"2025-03-05": {
			{Key: "08:00|1", Timestamp: now.Add(-3 * time.Hour).UnixMilli()},
			{Key: "09:00|1", Timestamp: now.UnixMilli()},
		},
	}))

	svc := service.New(availabilityConfig(), hub.Store(), mocks.NewOtel())

	booked := svc.BookedKeys(context.Background(), "2025-03-05")
	assert.Equal(t, []string{"09:00|1"}, booked)
}

func TestAvailabilityService_RefreshUsesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := bookingMocks.NewMockStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any())
	mockStore.EXPECT().SweepExpired(gomock.Any(), 2*time.Hour).Return(0)
	mockStore.EXPECT().
		BookedKeysForDate(gomock.Any(), "2025-03-05").
		Return(map[string]struct{}{"08:00|1": {}})

	svc := service.New(availabilityConfig(), mockStore, mocks.NewOtel())

	svc.Refresh(context.Background(), "2025-03-05")

	// Subsequent reads serve the cached view without touching the store.
	assert.Equal(t, []string{"08:00|1"}, svc.BookedKeys(context.Background(), "2025-03-05"))
}
