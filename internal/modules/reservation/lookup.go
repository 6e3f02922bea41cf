package reservation

import (
	"sort"
	"strconv"
	"strings"

	"b200/internal/domain"
)

// NormalizePhone keeps ASCII digits only, so "010-1234-5678" becomes "01012345678".
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// FindByPhone rebuilds the logical bookings made under one phone number.
// Rows sharing (reservation_time, tickets) form one booking spanning min..max date.
func FindByPhone(rs []domain.Reservation, query string) []domain.BookingSummary {
	target := NormalizePhone(query)
	if target == "" {
		return []domain.BookingSummary{}
	}

	type group struct {
		summary domain.BookingSummary
		days    map[string]struct{}
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, r := range rs {
		if r.Date == "" || NormalizePhone(r.Phone) != target {
			continue
		}
		ts := r.ReservationTime.Format(domain.TimestampLayout)
		key := ts + "|" + strconv.Itoa(r.Tickets)

		g, ok := groups[key]
		if !ok {
			g = &group{
				summary: domain.BookingSummary{
					StartDate:       r.Date,
					EndDate:         r.Date,
					Tickets:         r.Tickets,
					StartTime:       r.StartTime,
					EndTime:         r.EndTime,
					ReservationTime: ts,
				},
				days: make(map[string]struct{}),
			}
			groups[key] = g
			order = append(order, key)
		}
		if r.Date < g.summary.StartDate {
			g.summary.StartDate = r.Date
		}
		if r.Date > g.summary.EndDate {
			g.summary.EndDate = r.Date
		}
		g.days[r.Date] = struct{}{}
	}

	out := make([]domain.BookingSummary, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.summary.Days = len(g.days)
		out = append(out, g.summary)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].ReservationTime < out[j].ReservationTime
	})
	return out
}
