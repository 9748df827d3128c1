package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MaxTripDays = 60

	LocaleDanish  = "da"
	LocaleEnglish = "en"
)

var ErrInvalidTripDates = errors.New("invalid trip dates")

var (
	danishWeekdays = []string{"Søndag", "Mandag", "Tirsdag", "Onsdag", "Torsdag", "Fredag", "Lørdag"}
	danishMonths   = []string{"januar", "februar", "marts", "april", "maj", "juni", "juli", "august", "september", "oktober", "november", "december"}
)

type Day struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// Trip is the whole shared state: trip metadata plus every activity.
type Trip struct {
	TripName   string     `json:"tripName"`
	StartDate  string     `json:"startDate"`
	EndDate    string     `json:"endDate"`
	Days       []Day      `json:"days"`
	Activities []Activity `json:"activities"`
}

// DayLabel renders a calendar day heading, e.g. "Onsdag, 11. februar".
func DayLabel(date time.Time, locale string) string {
	if locale == LocaleEnglish {
		return date.Format("Monday, January 2")
	}
	return fmt.Sprintf("%s, %d. %s", danishWeekdays[date.Weekday()], date.Day(), danishMonths[date.Month()-1])
}

// BuildDays lists every date from start to end inclusive.
func BuildDays(start, end, locale string) ([]Day, error) {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: start date: %v", ErrInvalidTripDates, err)
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: end date: %v", ErrInvalidTripDates, err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidTripDates)
	}

	var days []Day
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if len(days) == MaxTripDays {
			return nil, fmt.Errorf("%w: more than %d days", ErrInvalidTripDates, MaxTripDays)
		}
		days = append(days, Day{Date: d.Format(DateLayout), Label: DayLabel(d, locale)})
	}
	return days, nil
}

func NewTrip(name, start, end, locale string) (*Trip, error) {
	days, err := BuildDays(start, end, locale)
	if err != nil {
		return nil, err
	}
	return &Trip{
		TripName:   name,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Activities: []Activity{},
	}, nil
}

func (t *Trip) HasDay(date string) bool {
	for _, d := range t.Days {
		if d.Date == date {
			return true
		}
	}
	return false
}

// ActivityIndex returns the position of the activity or -1.
func (t *Trip) ActivityIndex(id string) int {
	for i := range t.Activities {
		if t.Activities[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Trip) RemoveActivity(id string) {
	out := make([]Activity, 0, len(t.Activities))
	for _, a := range t.Activities {
		if a.ID != id {
			out = append(out, a)
		}
	}
	t.Activities = out
}

func (t *Trip) Normalize() {
	if t.Days == nil {
		t.Days = []Day{}
	}
	if t.Activities == nil {
		t.Activities = []Activity{}
	}
	for i := range t.Activities {
		t.Activities[i].Normalize()
	}
}
