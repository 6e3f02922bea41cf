package calendar

import (
	"context"
	"log"
	"time"

	"b200/internal/config"
	"b200/internal/domain"
	"b200/internal/modules/reservation"
)

// TotalsSource is the part of the reservation service the calendar reads.
type TotalsSource interface {
	CountsByDate(ctx context.Context) (map[string]int, error)
	Classifier() reservation.Classifier
	Window() config.BookingWindow
	Location() *time.Location
}

const storeWarning = "Reservations could not be loaded; totals are shown as zero."

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type Service struct {
	source TotalsSource
}

func NewService(source TotalsSource) *Service {
	return &Service{source: source}
}

// DefaultMonth is the month shown when the caller does not pick one: the month
// bookings open.
func (s *Service) DefaultMonth() (int, int) {
	open := s.source.Window().OpenDate
	return open.Year(), int(open.Month())
}

// Month builds a Sunday-first grid for one month. A store read failure still
// yields a grid, with zero totals and Warning set.
func (s *Service) Month(ctx context.Context, year, month int, view View) (*MonthView, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return nil, ErrInvalidMonth
	}
	if view != ViewAdmin {
		view = ViewUser
	}

	mv := &MonthView{
		Year:    year,
		Month:   month,
		View:    view,
		Weekday: weekdays,
		Legend:  legend(s.source.Classifier(), view),
	}

	counts, err := s.source.CountsByDate(ctx)
	if err != nil {
		log.Printf("calendar_totals_failed year=%d month=%d error=%q", year, month, err.Error())
		counts = map[string]int{}
		mv.Warning = storeWarning
	}

	loc := s.source.Location()
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()

	week := make([]Cell, int(first.Weekday()))
	for d := 1; d <= days; d++ {
		day := time.Date(year, time.Month(month), d, 0, 0, 0, 0, loc)
		week = append(week, s.cell(day, counts, view))
		if len(week) == 7 {
			mv.Weeks = append(mv.Weeks, week)
			week = make([]Cell, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, Cell{})
		}
		mv.Weeks = append(mv.Weeks, week)
	}
	return mv, nil
}

func (s *Service) cell(day time.Time, counts map[string]int, view View) Cell {
	date := day.Format(domain.DateLayout)
	window := s.source.Window()
	c := Cell{Date: date, Day: day.Day()}

	if view == ViewUser && day.Before(window.OpenDate) && !window.Contains(day) {
		c.Band = reservation.BandNotOpen
		c.Color = bandColors[c.Band]
		return c
	}

	n := counts[date]
	c.Band = s.source.Classifier().Band(n)
	c.Color = bandColors[c.Band]
	if view == ViewAdmin {
		c.Tickets = &n
	} else {
		c.Selectable = window.Contains(day)
	}
	return c
}
