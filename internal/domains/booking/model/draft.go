package model

import (
	"sort"
	"time"
)

// Draft is the transient state of one booking-in-progress: the widget's form
// state. It lives in memory only and is dropped when it expires or when its
// owner submits successfully (times and courts clear, date and court count
// persist for the next booking).
type Draft struct {
	ID         string
	Date       string
	CourtCount int
	Times      map[string]struct{}
	Courts     map[string]struct{}
	UpdatedAt  time.Time
}

func NewDraft(id string, now time.Time) *Draft {
	return &Draft{
		ID:         id,
		CourtCount: 1,
		Times:      make(map[string]struct{}),
		Courts:     make(map[string]struct{}),
		UpdatedAt:  now,
	}
}

func (d *Draft) SortedTimes() []string {
	times := make([]string, 0, len(d.Times))
	for label := range d.Times {
		times = append(times, label)
	}

	sort.Strings(times)

	return times
}

func (d *Draft) SortedCourts() []string {
	courts := make([]string, 0, len(d.Courts))
	for court := range d.Courts {
		courts = append(courts, court)
	}

	sort.Strings(courts)

	return courts
}

// ClearSelections drops the time and court selections, keeping date and
// court count.
func (d *Draft) ClearSelections() {
	d.Times = make(map[string]struct{})
	d.Courts = make(map[string]struct{})
}

// TrimCourts deselects the highest-numbered courts until the selection fits
// the court count again.
func (d *Draft) TrimCourts() {
	if len(d.Courts) <= d.CourtCount {
		return
	}

	courts := d.SortedCourts()
	for _, court := range courts[d.CourtCount:] {
		delete(d.Courts, court)
	}
}
