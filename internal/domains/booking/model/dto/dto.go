package dto

import (
	"courtside/internal/domains/booking/model"
)

type SelectDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type CourtCountRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

type ToggleTimeRequest struct {
	Time string `json:"time" validate:"required"`
}

type ToggleCourtRequest struct {
	Court string `json:"court" validate:"required"`
}

type RecordResponse struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

func (r *RecordResponse) FromModel(record model.Record) {
	r.Key = record.Key
	r.Timestamp = record.Timestamp
}

type DraftResponse struct {
	DraftID    string   `json:"draft_id"`
	Date       string   `json:"date"`
	CourtCount int      `json:"court_count"`
	Times      []string `json:"times"`
	Courts     []string `json:"courts"`
	Total      int64    `json:"total"`
	Currency   string   `json:"currency"`
}

func (r *DraftResponse) FromModel(draft *model.Draft, total int64, currency string) {
	r.DraftID = draft.ID
	r.Date = draft.Date
	r.CourtCount = draft.CourtCount
	r.Times = draft.SortedTimes()
	r.Courts = draft.SortedCourts()
	r.Total = total
	r.Currency = currency
}

type SubmitResponse struct {
	Date     string           `json:"date"`
	Records  []RecordResponse `json:"records"`
	Total    int64            `json:"total"`
	Currency string           `json:"currency"`
}

func (r *SubmitResponse) FromModels(date string, records []model.Record, total int64, currency string) {
	r.Date = date
	r.Total = total
	r.Currency = currency

	r.Records = make([]RecordResponse, len(records))
	for i, record := range records {
		r.Records[i].FromModel(record)
	}
}
