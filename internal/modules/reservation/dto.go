package reservation

import "b200/internal/domain"

type SubmitRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required"`
	StartDate        string `json:"start_date" validate:"required"`
	EndDate          string `json:"end_date" validate:"required"`
	Tickets          int    `json:"tickets" validate:"gte=1"`
	DepositConfirmed bool   `json:"deposit_confirmed"`
	StartTime        string `json:"start_time,omitempty"`
	EndTime          string `json:"end_time,omitempty"`
}

type SubmitResult struct {
	Reservations []domain.Reservation `json:"reservations"`
	// Appended lists the dates that reached the store, in order.
	Appended   []string `json:"appended"`
	FailedDate string   `json:"failed_date,omitempty"`
}

type DayStatus struct {
	Date    string `json:"date"`
	Tickets int    `json:"tickets"`
	Band    Band   `json:"band"`
}

type PublicSettings struct {
	OpenDate    string `json:"open_date"`
	CloseDate   string `json:"close_date"`
	LowMax      int    `json:"low_max"`
	MidMax      int    `json:"mid_max"`
	ZeroIsAmple bool   `json:"zero_is_ample"`
	Timezone    string `json:"timezone"`
}

// SubmittedEvent is published after a booking is fully stored. Email is left out.
type SubmittedEvent struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Days            int    `json:"days"`
	Tickets         int    `json:"tickets"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	ReservationTime string `json:"reservation_time"`
}

const EventSubmitted = "reservation.submitted"
