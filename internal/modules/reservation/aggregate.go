package reservation

import (
	"sort"

	"b200/internal/domain"
)

// CountsByDate sums tickets per date. Rows without a date are skipped.
func CountsByDate(rs []domain.Reservation) map[string]int {
	out := make(map[string]int)
	for _, r := range rs {
		if r.Date == "" {
			continue
		}
		out[r.Date] += r.Tickets
	}
	return out
}

// DailyTotals flattens counts into a slice ordered by date.
func DailyTotals(counts map[string]int) []domain.DailyTotal {
	out := make([]domain.DailyTotal, 0, len(counts))
	for date, n := range counts {
		out = append(out, domain.DailyTotal{Date: date, Tickets: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ReservationsOn returns the rows for one date in stored order.
func ReservationsOn(rs []domain.Reservation, date string) []domain.Reservation {
	out := make([]domain.Reservation, 0)
	for _, r := range rs {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// Dates returns the distinct non-empty dates, ascending.
func Dates(rs []domain.Reservation) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rs {
		if r.Date == "" {
			continue
		}
		if _, ok := seen[r.Date]; ok {
			continue
		}
		seen[r.Date] = struct{}{}
		out = append(out, r.Date)
	}
	sort.Strings(out)
	return out
}
