package domain

import (
	"errors"
	"strconv"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Columns is the fixed column order of the reservations table.
var Columns = []string{
	"name",
	"email",
	"phone",
	"date",
	"tickets",
	"start_time",
	"end_time",
	"reservation_time",
}

// ErrStore marks failures of the underlying row store (read or append).
var ErrStore = errors.New("row store error")

// Record is one raw row as the store hands it out. Every field is kept as text;
// a missing column is an empty string.
type Record struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date"`
	Tickets         string `json:"tickets"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	ReservationTime string `json:"reservation_time"`
}

// Values returns the record in Columns order.
func (r Record) Values() []string {
	return []string{r.Name, r.Email, r.Phone, r.Date, r.Tickets, r.StartTime, r.EndTime, r.ReservationTime}
}

// RecordFromMap builds a record from a header-keyed row. Unknown keys are ignored.
func RecordFromMap(m map[string]string) Record {
	return Record{
		Name:            m["name"],
		Email:           m["email"],
		Phone:           m["phone"],
		Date:            m["date"],
		Tickets:         m["tickets"],
		StartTime:       m["start_time"],
		EndTime:         m["end_time"],
		ReservationTime: m["reservation_time"],
	}
}

// Reservation covers exactly one calendar day of a booking.
type Reservation struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            string    `json:"date"`
	Tickets         int       `json:"tickets"`
	StartTime       string    `json:"start_time,omitempty"`
	EndTime         string    `json:"end_time,omitempty"`
	ReservationTime time.Time `json:"reservation_time"`
}

// Record converts the reservation back into its stored text form.
func (r Reservation) Record() Record {
	return Record{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Date:            r.Date,
		Tickets:         strconv.Itoa(r.Tickets),
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		ReservationTime: r.ReservationTime.Format(TimestampLayout),
	}
}

// BookingSummary is one logical booking reconstructed from its day rows.
type BookingSummary struct {
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Tickets         int    `json:"tickets"`
	Days            int    `json:"days"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	ReservationTime string `json:"reservation_time"`
}

type DailyTotal struct {
	Date    string `json:"date"`
	Tickets int    `json:"tickets"`
}
