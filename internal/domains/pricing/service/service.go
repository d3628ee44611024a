package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"courtside/config"
	"courtside/infras/otel"
	"courtside/internal/domains/pricing/model"
	"courtside/internal/domains/pricing/model/dto"
	"courtside/shared/constant"
	"courtside/shared/slotkey"
	"courtside/shared/timezone"
)

type Pricing interface {
	DayTypeFor(date string) model.DayType
	PricePerCourt(dayType model.DayType, label string) int64
	KnownLabel(label string) bool
	Quote(ctx context.Context, date string, labels []string, courtCount int) dto.QuoteResponse
	Catalog(ctx context.Context) dto.CatalogResponse
}

type serviceImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	categories map[string]model.Category
	rates      model.Rates
}

func New(cfg *config.Config, ot otel.Otel) Pricing {
	return &serviceImpl{
		cfg:        cfg,
		otel:       ot,
		categories: model.StartCategories(cfg.Booking.IncludeEarlySlots),
		rates:      resolveRates(cfg),
	}
}

// DayTypeFor classifies a YYYY-MM-DD date. An absent or unparseable date is
// priced at the weekday tier.
func (s *serviceImpl) DayTypeFor(date string) model.DayType {
	if date == constant.Empty {
		return model.DayTypeWeekday
	}

	day, err := timezone.Parse(constant.DateFormat, date)
	if err != nil {
		log.Warn().Str("date", date).Msg("unparseable booking date, pricing as weekday")

		return model.DayTypeWeekday
	}

	if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		return model.DayTypeWeekend
	}

	return model.DayTypeWeekday
}

// PricePerCourt returns the per-court price of one slot. A label outside both
// catalogs prices at zero; that is the defined fallback, not an error.
func (s *serviceImpl) PricePerCourt(dayType model.DayType, label string) int64 {
	start, ok := slotkey.CanonicalStart(label)
	if !ok {
		return 0
	}

	switch s.categories[start] {
	case model.CategoryMorning:
		if dayType == model.DayTypeWeekend {
			return s.rates.WeekendMorning
		}

		return s.rates.WeekdayMorning
	case model.CategoryNight:
		if dayType == model.DayTypeWeekend {
			return s.rates.WeekendNight
		}

		return s.rates.WeekdayNight
	default:
		return 0
	}
}

func (s *serviceImpl) KnownLabel(label string) bool {
	start, ok := slotkey.CanonicalStart(label)
	if !ok {
		return false
	}

	_, known := s.categories[start]

	return known
}

func (s *serviceImpl) Quote(ctx context.Context, date string, labels []string, courtCount int) (res dto.QuoteResponse) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()

	dayType := s.DayTypeFor(date)

	var total int64
	for _, label := range labels {
		total += s.PricePerCourt(dayType, label) * int64(courtCount)
	}

	return dto.QuoteResponse{
		Date:       date,
		DayType:    string(dayType),
		CourtCount: courtCount,
		Total:      total,
		Currency:   s.cfg.Pricing.Currency,
	}
}

func (s *serviceImpl) Catalog(ctx context.Context) dto.CatalogResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog")
	defer scope.End()

	return dto.CatalogResponse{
		MorningSlots: model.MorningLabels(s.cfg.Booking.IncludeEarlySlots),
		NightSlots:   model.NightLabels(),
		Rates: dto.RatesResponse{
			WeekdayMorning: s.rates.WeekdayMorning,
			WeekendMorning: s.rates.WeekendMorning,
			WeekdayNight:   s.rates.WeekdayNight,
			WeekendNight:   s.rates.WeekendNight,
			Currency:       s.cfg.Pricing.Currency,
		},
	}
}

// resolveRates fills unset config rates from the defaults so a zero-value
// config still prices with the weekend tier above the weekday tier.
func resolveRates(cfg *config.Config) model.Rates {
	rates := model.DefaultRates()

	if cfg.Pricing.WeekdayMorning > 0 {
		rates.WeekdayMorning = cfg.Pricing.WeekdayMorning
	}

	if cfg.Pricing.WeekendMorning > 0 {
		rates.WeekendMorning = cfg.Pricing.WeekendMorning
	}

	if cfg.Pricing.WeekdayNight > 0 {
		rates.WeekdayNight = cfg.Pricing.WeekdayNight
	}

	if cfg.Pricing.WeekendNight > 0 {
		rates.WeekendNight = cfg.Pricing.WeekendNight
	}

	return rates
}
