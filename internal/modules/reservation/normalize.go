package reservation

import (
	"math"
	"strconv"
	"strings"
	"time"

	"b200/internal/domain"
)

var dateLayouts = []string{
	domain.DateLayout,
	"2006/01/02",
	"2006.01.02",
	"2006. 1. 2",
	"2006-1-2",
	domain.TimestampLayout,
	time.RFC3339,
}

var timestampLayouts = []string{
	domain.TimestampLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	"2006. 1. 2 15:04:05",
	"2006. 1. 2 PM 3:04:05",
}

// meridiemReplacer maps the ko_KR sheet locale's AM/PM markers.
var meridiemReplacer = strings.NewReplacer("오전", "AM", "오후", "PM")

var timeOfDayLayouts = []string{
	domain.TimeOfDayLayout,
	"15:04:05",
}

// Normalize coerces raw rows into reservations, keeping input order.
// Unparsable tickets become 0, unparsable dates become empty, and a missing or
// unparsable reservation time is backfilled with now (seconds precision, in loc).
func Normalize(rows []domain.Record, now time.Time, loc *time.Location) []domain.Reservation {
	if loc == nil {
		loc = now.Location()
	}
	fallback := now.In(loc).Truncate(time.Second)

	out := make([]domain.Reservation, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Reservation{
			Name:            strings.TrimSpace(r.Name),
			Email:           strings.TrimSpace(r.Email),
			Phone:           strings.TrimSpace(r.Phone),
			Date:            normalizeDate(r.Date, loc),
			Tickets:         parseTickets(r.Tickets),
			StartTime:       normalizeTimeOfDay(r.StartTime),
			EndTime:         normalizeTimeOfDay(r.EndTime),
			ReservationTime: parseTimestamp(r.ReservationTime, loc, fallback),
		})
	}
	return out
}

func parseTickets(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return max(n, 0)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func normalizeDate(raw string, loc *time.Location) string {
	d, ok := parseDate(raw, loc)
	if !ok {
		return ""
	}
	return d.Format(domain.DateLayout)
}

func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseTimestamp(raw string, loc *time.Location, fallback time.Time) time.Time {
	s := meridiemReplacer.Replace(strings.TrimSpace(raw))
	if s == "" {
		return fallback
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc).Truncate(time.Second)
		}
	}
	return fallback
}

func normalizeTimeOfDay(raw string) string {
	t, ok := parseTimeOfDay(raw)
	if !ok {
		return ""
	}
	return t.Format(domain.TimeOfDayLayout)
}

func parseTimeOfDay(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
