package model

import (
	"fmt"

	"courtside/shared/slotkey"
)

type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
)

type Category string

const (
	CategoryMorning Category = "morning"
	CategoryNight   Category = "night"
	CategoryNone    Category = ""
)

// Default per-court rates in the smallest currency unit. Morning slots price
// per hour, night slots per 3-hour package; weekend always costs at least as
// much as the weekday tier.
const (
	DefaultWeekdayMorningRate int64 = 40000
	DefaultWeekendMorningRate int64 = 55000
	DefaultWeekdayNightRate   int64 = 110000
	DefaultWeekendNightRate   int64 = 140000
)

const (
	morningFirstHour      = 6
	morningFirstHourLate  = 8
	morningLastHour       = 18
	nightPackageHours     = 3
	earlyMorningSlotCount = 2
)

// MorningLabels lists the hourly morning slots. The 06:00 and 07:00 slots
// only exist on venues that open early.
func MorningLabels(includeEarly bool) []string {
	first := morningFirstHour
	if !includeEarly {
		first = morningFirstHourLate
	}

	labels := make([]string, 0, morningLastHour-first)
	for hour := first; hour < morningLastHour; hour++ {
		labels = append(labels, fmt.Sprintf("%02d:00 - %02d:00", hour, hour+1))
	}

	return labels
}

// NightLabels lists the 3-hour night packages covering 18:00 through 06:00
// the next day. The package starting at midnight is labelled "24:00".
func NightLabels() []string {
	return []string{
		"18:00 - 21:00",
		"21:00 - 24:00",
		"24:00 - 03:00",
		"03:00 - 06:00",
	}
}

// StartCategories maps every canonical slot start time to its catalog.
func StartCategories(includeEarly bool) map[string]Category {
	categories := make(map[string]Category)

	for _, label := range MorningLabels(includeEarly) {
		categories[slotkey.NormalizeStart(label)] = CategoryMorning
	}

	for _, label := range NightLabels() {
		categories[slotkey.NormalizeStart(label)] = CategoryNight
	}

	return categories
}

type Rates struct {
	WeekdayMorning int64
	WeekendMorning int64
	WeekdayNight   int64
	WeekendNight   int64
}

func DefaultRates() Rates {
	return Rates{
		WeekdayMorning: DefaultWeekdayMorningRate,
		WeekendMorning: DefaultWeekendMorningRate,
		WeekdayNight:   DefaultWeekdayNightRate,
		WeekendNight:   DefaultWeekendNightRate,
	}
}
