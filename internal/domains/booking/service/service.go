package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"courtside/config"
	"courtside/infras/otel"
	availability "courtside/internal/domains/availability/service"
	"courtside/internal/domains/booking/model"
	"courtside/internal/domains/booking/model/dto"
	"courtside/internal/domains/booking/repository"
	pricing "courtside/internal/domains/pricing/service"
	"courtside/shared/constant"
	"courtside/shared/failure"
	"courtside/shared/slotkey"
	"courtside/shared/timezone"
)

// Booking drives a booking draft from creation to submission. A draft mirrors
// one client's in-progress selection; only Submit touches the shared ledger.
type Booking interface {
	CreateDraft(ctx context.Context) (dto.DraftResponse, error)
	GetDraft(ctx context.Context, id string) (dto.DraftResponse, error)
	SelectDate(ctx context.Context, id string, req dto.SelectDateRequest) (dto.DraftResponse, error)
	AdjustCourtCount(ctx context.Context, id string, req dto.CourtCountRequest) (dto.DraftResponse, error)
	ToggleTime(ctx context.Context, id string, req dto.ToggleTimeRequest) (dto.DraftResponse, error)
	ToggleCourt(ctx context.Context, id string, req dto.ToggleCourtRequest) (dto.DraftResponse, error)
	Submit(ctx context.Context, id string) (dto.SubmitResponse, error)
}

type serviceImpl struct {
	cfg          *config.Config
	store        repository.Store
	availability availability.Availability
	pricing      pricing.Pricing
	otel         otel.Otel

	mu     sync.Mutex
	drafts map[string]*model.Draft
}

func New(
	cfg *config.Config,
	store repository.Store,
	avail availability.Availability,
	price pricing.Pricing,
	ot otel.Otel,
) Booking {
	return &serviceImpl{
		cfg:          cfg,
		store:        store,
		availability: avail,
		pricing:      price,
		otel:         ot,
		drafts:       make(map[string]*model.Draft),
	}
}

func (s *serviceImpl) CreateDraft(ctx context.Context) (dto.DraftResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateDraft")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := model.NewDraft(uuid.NewString(), timezone.Now())
	s.drafts[draft.ID] = draft

	return s.snapshot(ctx, draft), nil
}

func (s *serviceImpl) GetDraft(ctx context.Context, id string) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDraft")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(id)
	if err != nil {
		return res, err
	}

	return s.snapshot(ctx, draft), nil
}

// SelectDate moves the draft to a new date. Time and court selections are
// cleared because availability on the new date is unknown; court count
// survives the switch.
func (s *serviceImpl) SelectDate(ctx context.Context, id string, req dto.SelectDateRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SelectDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = timezone.Parse(constant.DateFormat, req.Date); err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid booking date %q", req.Date)) //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(id)
	if err != nil {
		return res, err
	}

	draft.Date = req.Date
	draft.ClearSelections()

	s.availability.Refresh(ctx, draft.Date)

	return s.snapshot(ctx, draft), nil
}

// AdjustCourtCount steps the court count up or down, clamped to [1, max].
// Shrinking the count deselects the highest-numbered surplus courts.
func (s *serviceImpl) AdjustCourtCount(ctx context.Context, id string, req dto.CourtCountRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdjustCourtCount")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(id)
	if err != nil {
		return res, err
	}

	count := draft.CourtCount + req.Delta
	if count < 1 {
		count = 1
	}

	if max := s.maxCourts(); count > max {
		count = max
	}

	draft.CourtCount = count
	draft.TrimCourts()

	return s.snapshot(ctx, draft), nil
}

func (s *serviceImpl) ToggleTime(ctx context.Context, id string, req dto.ToggleTimeRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleTime")
	defer scope.End()

	if !s.pricing.KnownLabel(req.Time) {
		return res, failure.Validation("booking.error.unknown_slot", fmt.Sprintf("unknown time slot %q", req.Time)) //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(id)
	if err != nil {
		return res, err
	}

	if _, selected := draft.Times[req.Time]; selected {
		delete(draft.Times, req.Time)
	} else {
		draft.Times[req.Time] = struct{}{}
	}

	return s.snapshot(ctx, draft), nil
}

// ToggleCourt adds or removes one court. Deselecting always succeeds; a new
// selection is refused when it exceeds the court count or when any selected
// time is already taken on that court.
func (s *serviceImpl) ToggleCourt(ctx context.Context, id string, req dto.ToggleCourtRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleCourt")
	defer scope.End()
	defer scope.TraceIfError(err)

	if number, convErr := strconv.Atoi(req.Court); convErr != nil || number < 1 || number > s.maxCourts() {
		return res, failure.Validation("booking.error.unknown_court", fmt.Sprintf("unknown court %q", req.Court)) //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(id)
	if err != nil {
		return res, err
	}

	if _, selected := draft.Courts[req.Court]; selected {
		delete(draft.Courts, req.Court)

		return s.snapshot(ctx, draft), nil
	}

	if len(draft.Courts) >= draft.CourtCount {
		return res, failure.Validation("booking.error.court_limit", fmt.Sprintf("cannot select more than %d courts", draft.CourtCount)) //nolint:wrapcheck
	}

	for _, label := range draft.SortedTimes() {
		if s.availability.IsBooked(ctx, draft.Date, label, req.Court) {
			return res, failure.SlotConflict(draft.Date, label, req.Court) //nolint:wrapcheck
		}
	}

	draft.Courts[req.Court] = struct{}{}

	return s.snapshot(ctx, draft), nil
}

// Submit writes every selected time-court combination to the ledger in one
// atomic mutation. If any combination is already taken nothing is written and
// the first collision is reported. Expired records do not block a slot; they
// are swept within the same mutation.
func (s *serviceImpl) Submit(ctx context.Context, id string) (res dto.SubmitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(id)
	if err != nil {
		return res, err
	}

	if draft.Date == constant.Empty {
		return res, failure.Validation("booking.error.date_required", "booking date is required") //nolint:wrapcheck
	}

	if len(draft.Times) == 0 {
		return res, failure.Validation("booking.error.time_required", "select at least one time slot") //nolint:wrapcheck
	}

	if len(draft.Courts) == 0 {
		return res, failure.Validation("booking.error.court_required", "select at least one court") //nolint:wrapcheck
	}

	times := draft.SortedTimes()
	courts := draft.SortedCourts()
	quote := s.pricing.Quote(ctx, draft.Date, times, len(courts))
	now := timezone.Now()

	var records []model.Record

	err = s.store.Mutate(ctx, draft.Date, func(ledger model.Ledger) (model.Ledger, error) {
		// The callback may run more than once under optimistic concurrency.
		records = records[:0]

		next, _ := ledger.Sweep(now, s.expiry())
		taken := next.KeysFor(draft.Date)

		for _, label := range times {
			for _, court := range courts {
				key := slotkey.Key(label, court)
				if _, exists := taken[key]; exists {
					return nil, failure.SlotConflict(draft.Date, label, court) //nolint:wrapcheck
				}

				record := model.Record{Key: key, Timestamp: now.UnixMilli()}
				next.Append(draft.Date, record)
				records = append(records, record)
			}
		}

		return next, nil
	})
	if err != nil {
		// The view may be stale, that is how the collision slipped through.
		s.availability.Refresh(ctx, draft.Date)

		return res, err
	}

	s.availability.Refresh(ctx, draft.Date)
	draft.ClearSelections()

	log.Info().
		Str("draftID", draft.ID).
		Str("date", draft.Date).
		Int("records", len(records)).
		Int64("total", quote.Total).
		Msg("booking submitted")

	res.FromModels(draft.Date, records, quote.Total, quote.Currency)

	return res, nil
}

// draft resolves a draft id, pruning expired drafts first. Callers hold the
// mutex. The found draft's clock is touched, so activity keeps it alive.
func (s *serviceImpl) draft(id string) (*model.Draft, error) {
	now := timezone.Now()
	ttl := s.draftTTL()

	for draftID, draft := range s.drafts {
		if now.Sub(draft.UpdatedAt) > ttl {
			delete(s.drafts, draftID)
		}
	}

	draft, ok := s.drafts[id]
	if !ok {
		return nil, failure.DraftNotFound(id) //nolint:wrapcheck
	}

	draft.UpdatedAt = now

	return draft, nil
}

func (s *serviceImpl) snapshot(ctx context.Context, draft *model.Draft) dto.DraftResponse {
	var total int64
	if len(draft.Courts) > 0 && len(draft.Times) > 0 {
		total = s.pricing.Quote(ctx, draft.Date, draft.SortedTimes(), len(draft.Courts)).Total
	}

	var res dto.DraftResponse
	res.FromModel(draft, total, s.cfg.Pricing.Currency)

	return res
}

func (s *serviceImpl) maxCourts() int {
	if s.cfg.Booking.CourtCount > 0 {
		return s.cfg.Booking.CourtCount
	}

	return 6
}

func (s *serviceImpl) draftTTL() time.Duration {
	minutes := s.cfg.Booking.DraftTTLMinutes
	if minutes <= 0 {
		minutes = 30
	}

	return time.Duration(minutes) * time.Minute
}

func (s *serviceImpl) expiry() time.Duration {
	minutes := s.cfg.Booking.ExpiryMinutes
	if minutes <= 0 {
		minutes = 120
	}

	return time.Duration(minutes) * time.Minute
}
