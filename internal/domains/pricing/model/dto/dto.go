package dto

type QuoteResponse struct {
	Date       string `json:"date"`
	DayType    string `json:"day_type"`
	CourtCount int    `json:"court_count"`
	Total      int64  `json:"total"`
	Currency   string `json:"currency"`
}

type RatesResponse struct {
	WeekdayMorning int64  `json:"weekday_morning"`
	WeekendMorning int64  `json:"weekend_morning"`
	WeekdayNight   int64  `json:"weekday_night"`
	WeekendNight   int64  `json:"weekend_night"`
	Currency       string `json:"currency"`
}

type CatalogResponse struct {
	MorningSlots []string      `json:"morning_slots"`
	NightSlots   []string      `json:"night_slots"`
	Rates        RatesResponse `json:"rates"`
}
