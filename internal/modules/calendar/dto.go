package calendar

import "b200/internal/modules/reservation"

type View string

const (
	ViewUser  View = "user"
	ViewAdmin View = "admin"
)

// Cell is one slot of the month grid. Padding cells before the 1st and after
// the last day have Day == 0 and no date.
type Cell struct {
	Date       string           `json:"date,omitempty"`
	Day        int              `json:"day"`
	Tickets    *int             `json:"tickets,omitempty"`
	Band       reservation.Band `json:"band,omitempty"`
	Color      string           `json:"color,omitempty"`
	Selectable bool             `json:"selectable"`
}

type LegendEntry struct {
	Band  reservation.Band `json:"band"`
	Color string           `json:"color"`
	Label string           `json:"label"`
}

type MonthView struct {
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	View    View          `json:"view"`
	Weekday []string      `json:"weekdays"`
	Weeks   [][]Cell      `json:"weeks"`
	Legend  []LegendEntry `json:"legend"`
	Warning string        `json:"warning,omitempty"`
}

// Event is what websocket subscribers receive.
type Event struct {
	Type string                  `json:"type"`
	Data []reservation.DayStatus `json:"data"`
}

const EventDayTotals = "day_totals"
