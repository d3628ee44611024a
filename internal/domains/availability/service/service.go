package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"courtside/config"
	"courtside/infras/otel"
	"courtside/internal/domains/booking/repository"
	"courtside/shared/constant"
	"courtside/shared/slotkey"
)

// Availability keeps a per-date view of which slot keys are taken. The view
// is advisory: it exists so clients can grey out taken slots early, while the
// store's atomic mutation remains the authority at submit time.
type Availability interface {
	Refresh(ctx context.Context, date string)
	IsBooked(ctx context.Context, date, timeLabel, courtID string) bool
	BookedKeys(ctx context.Context, date string) []string
}

type serviceImpl struct {
	cfg   *config.Config
	store repository.Store
	otel  otel.Otel

	mu     sync.RWMutex
	booked map[string]map[string]struct{}
}

func New(cfg *config.Config, store repository.Store, ot otel.Otel) Availability {
	s := &serviceImpl{
		cfg:    cfg,
		store:  store,
		otel:   ot,
		booked: make(map[string]map[string]struct{}),
	}

	store.Subscribe(s.onLedgerChange)

	if cfg.Availability.RefreshSeconds > 0 {
		go s.refreshLoop(time.Duration(cfg.Availability.RefreshSeconds) * time.Second)
	}

	return s
}

// Refresh sweeps expired bookings out of the ledger and reloads the cached
// view for the given date.
func (s *serviceImpl) Refresh(ctx context.Context, date string) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshAvailability")
	defer scope.End()

	if date == "" {
		return
	}

	s.store.SweepExpired(ctx, s.expiry())
	keys := s.store.BookedKeysForDate(ctx, date)

	s.mu.Lock()
	s.booked[date] = keys
	s.mu.Unlock()
}

func (s *serviceImpl) IsBooked(ctx context.Context, date, timeLabel, courtID string) bool {
	if date == "" {
		return false
	}

	start, ok := slotkey.CanonicalStart(timeLabel)
	if !ok {
		return false
	}

	keys := s.keysFor(ctx, date)
	_, taken := keys[start+slotkey.Separator+courtID]

	return taken
}

func (s *serviceImpl) BookedKeys(ctx context.Context, date string) []string {
	if date == "" {
		return nil
	}

	keys := s.keysFor(ctx, date)

	sorted := make([]string, 0, len(keys))
	for key := range keys {
		sorted = append(sorted, key)
	}

	sort.Strings(sorted)

	return sorted
}

// keysFor serves the cached view, loading it on first use of a date.
func (s *serviceImpl) keysFor(ctx context.Context, date string) map[string]struct{} {
	s.mu.RLock()
	keys, ok := s.booked[date]
	s.mu.RUnlock()

	if ok {
		return keys
	}

	s.Refresh(ctx, date)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.booked[date]
}

// onLedgerChange reacts to writes made by other instances. An empty date
// means the change may span dates, so every cached date is reloaded.
func (s *serviceImpl) onLedgerChange(date string) {
	ctx := context.Background()

	if date != "" {
		s.mu.RLock()
		_, tracked := s.booked[date]
		s.mu.RUnlock()

		if tracked {
			s.Refresh(ctx, date)
		}

		return
	}

	for _, tracked := range s.trackedDates() {
		s.Refresh(ctx, tracked)
	}
}

func (s *serviceImpl) refreshLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		for _, date := range s.trackedDates() {
			s.Refresh(context.Background(), date)
		}
	}
}

func (s *serviceImpl) trackedDates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]string, 0, len(s.booked))
	for date := range s.booked {
		dates = append(dates, date)
	}

	return dates
}

func (s *serviceImpl) expiry() time.Duration {
	minutes := s.cfg.Booking.ExpiryMinutes
	if minutes <= 0 {
		minutes = 120
	}

	return time.Duration(minutes) * time.Minute
}
