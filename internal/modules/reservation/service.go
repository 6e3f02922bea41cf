package reservation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"b200/internal/config"
	"b200/internal/domain"
	"b200/internal/pkg/validator"
)

// Settings is the deployment-specific configuration the service is built with.
type Settings struct {
	Window       config.BookingWindow
	Thresholds   config.Thresholds
	Location     *time.Location
	SubmitAtomic bool
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Window:       cfg.Booking,
		Thresholds:   cfg.Thresholds,
		Location:     cfg.Location,
		SubmitAtomic: cfg.SubmitAtomic,
	}
}

type Service struct {
	store      RowStore
	events     EventPublisher
	notifier   TotalsNotifier
	classifier Classifier
	window     config.BookingWindow
	loc        *time.Location
	atomic     bool
	now        func() time.Time
}

func NewService(store RowStore, settings Settings, events EventPublisher) *Service {
	loc := settings.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:      store,
		events:     events,
		classifier: NewClassifier(settings.Thresholds),
		window:     settings.Window,
		loc:        loc,
		atomic:     settings.SubmitAtomic,
		now:        time.Now,
	}
}

// SetNotifier registers the receiver of day totals after each booking.
func (s *Service) SetNotifier(n TotalsNotifier) { s.notifier = n }

// SetClock replaces the wall clock, mainly for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

func (s *Service) Classifier() Classifier { return s.classifier }
func (s *Service) Window() config.BookingWindow { return s.window }
func (s *Service) Location() *time.Location { return s.loc }
func (s *Service) Now() time.Time { return s.now().In(s.loc) }

func (s *Service) PublicSettings() PublicSettings {
	t := s.classifier.Thresholds()
	return PublicSettings{
		OpenDate:    s.window.OpenDate.Format(domain.DateLayout),
		CloseDate:   s.window.CloseDate.Format(domain.DateLayout),
		LowMax:      t.LowMax,
		MidMax:      t.MidMax,
		ZeroIsAmple: t.ZeroIsAmple,
		Timezone:    s.loc.String(),
	}
}

// Load reads the whole store and normalizes it.
func (s *Service) Load(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, asStoreError(err)
	}
	return Normalize(rows, s.now(), s.loc), nil
}

func (s *Service) CountsByDate(ctx context.Context) (map[string]int, error) {
	rs, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return CountsByDate(rs), nil
}

func (s *Service) ReservationsOn(ctx context.Context, date string) ([]domain.Reservation, error) {
	d, err := time.ParseInLocation(domain.DateLayout, strings.TrimSpace(date), s.loc)
	if err != nil {
		return nil, ErrInvalidDate
	}
	rs, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ReservationsOn(rs, d.Format(domain.DateLayout)), nil
}

func (s *Service) Dates(ctx context.Context) ([]string, error) {
	rs, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Dates(rs), nil
}

// Lookup finds a user's own bookings by phone number.
func (s *Service) Lookup(ctx context.Context, phone string) ([]domain.BookingSummary, error) {
	if NormalizePhone(phone) == "" {
		return nil, ErrPhoneRequired
	}
	rs, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return FindByPhone(rs, phone), nil
}

// Submit validates the form and stores one row per day of the selected range.
// All rows share the same reservation time. Without atomic mode each day is a
// separate append; a failure midway returns *PartialAppendError alongside a
// result naming the days already stored.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	req = trimRequest(req)
	start, end, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	reservedAt := s.now().In(s.loc).Truncate(time.Second)
	rows := expandRange(req, start, end, reservedAt)
	result := &SubmitResult{
		Reservations: rows,
		Appended:     make([]string, 0, len(rows)),
	}

	if err := s.persist(ctx, rows, result); err != nil {
		log.Printf("reservation_submit_failed phone=%s start=%s end=%s appended=%d failed_date=%s error=%q",
			maskPhone(req.Phone), req.StartDate, req.EndDate, len(result.Appended), result.FailedDate, err.Error())
		return result, err
	}

	log.Printf("reservation_submitted phone=%s start=%s end=%s days=%d tickets=%d reservation_time=%q",
		maskPhone(req.Phone), req.StartDate, req.EndDate, len(rows), req.Tickets, reservedAt.Format(domain.TimestampLayout))

	s.afterSubmit(ctx, rows)
	return result, nil
}

func (s *Service) validate(req SubmitRequest) (time.Time, time.Time, error) {
	fields := validator.Validate(req)
	if fields == nil {
		fields = make(map[string]string)
	}

	if _, ok := fields["phone"]; !ok && NormalizePhone(req.Phone) == "" {
		fields["phone"] = "digits"
	}
	if !req.DepositConfirmed {
		fields["deposit_confirmed"] = "required"
	}

	if req.StartTime != "" || req.EndTime != "" {
		st, okStart := parseTimeOfDay(req.StartTime)
		et, okEnd := parseTimeOfDay(req.EndTime)
		switch {
		case !okStart:
			fields["start_time"] = "time"
		case !okEnd:
			fields["end_time"] = "time"
		case !et.After(st):
			fields["end_time"] = "gt_start_time"
		}
	}

	var start, end time.Time
	var startOK, endOK bool
	if req.StartDate != "" {
		var err error
		if start, err = time.ParseInLocation(domain.DateLayout, req.StartDate, s.loc); err != nil {
			fields["start_date"] = "date"
		} else {
			startOK = true
		}
	}
	if req.EndDate != "" {
		var err error
		if end, err = time.ParseInLocation(domain.DateLayout, req.EndDate, s.loc); err != nil {
			fields["end_date"] = "date"
		} else {
			endOK = true
		}
	}
	if startOK && !s.window.Contains(start) {
		fields["start_date"] = "out_of_window"
	}
	if endOK && !s.window.Contains(end) {
		fields["end_date"] = "out_of_window"
	}
	if startOK && endOK && end.Before(start) {
		fields["end_date"] = "gte_start_date"
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, &ValidationError{Fields: fields}
	}
	return start, end, nil
}

func (s *Service) persist(ctx context.Context, rows []domain.Reservation, result *SubmitResult) error {
	if s.atomic {
		if batch, ok := s.store.(BatchAppender); ok {
			recs := make([]domain.Record, 0, len(rows))
			for _, r := range rows {
				recs = append(recs, r.Record())
			}
			if err := batch.AppendAll(ctx, recs); err != nil {
				result.FailedDate = rows[0].Date
				return asStoreError(err)
			}
			for _, r := range rows {
				result.Appended = append(result.Appended, r.Date)
			}
			return nil
		}
	}

	for _, r := range rows {
		if err := s.store.Append(ctx, r.Record()); err != nil {
			result.FailedDate = r.Date
			return &PartialAppendError{
				Appended:   append([]string(nil), result.Appended...),
				FailedDate: r.Date,
				Err:        asStoreError(err),
			}
		}
		result.Appended = append(result.Appended, r.Date)
	}
	return nil
}

func (s *Service) afterSubmit(ctx context.Context, rows []domain.Reservation) {
	first, last := rows[0], rows[len(rows)-1]

	if s.events != nil {
		ev := SubmittedEvent{
			Name:            first.Name,
			Phone:           first.Phone,
			StartDate:       first.Date,
			EndDate:         last.Date,
			Days:            len(rows),
			Tickets:         first.Tickets,
			StartTime:       first.StartTime,
			EndTime:         first.EndTime,
			ReservationTime: first.ReservationTime.Format(domain.TimestampLayout),
		}
		if err := s.events.Publish(ctx, EventSubmitted, ev); err != nil {
			log.Printf("reservation_event_failed key=%s error=%q", EventSubmitted, err.Error())
		}
	}

	if s.notifier != nil {
		counts, err := s.CountsByDate(ctx)
		if err != nil {
			log.Printf("reservation_totals_failed error=%q", err.Error())
			return
		}
		statuses := make([]DayStatus, 0, len(rows))
		for _, r := range rows {
			n := counts[r.Date]
			statuses = append(statuses, DayStatus{Date: r.Date, Tickets: n, Band: s.classifier.Band(n)})
		}
		s.notifier.NotifyTotals(statuses)
	}
}

func expandRange(req SubmitRequest, start, end, reservedAt time.Time) []domain.Reservation {
	startTime := normalizeTimeOfDay(req.StartTime)
	endTime := normalizeTimeOfDay(req.EndTime)

	rows := make([]domain.Reservation, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		rows = append(rows, domain.Reservation{
			Name:            req.Name,
			Email:           req.Email,
			Phone:           req.Phone,
			Date:            d.Format(domain.DateLayout),
			Tickets:         req.Tickets,
			StartTime:       startTime,
			EndTime:         endTime,
			ReservationTime: reservedAt,
		})
	}
	return rows
}

func trimRequest(req SubmitRequest) SubmitRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.StartDate = strings.TrimSpace(req.StartDate)
	req.EndDate = strings.TrimSpace(req.EndDate)
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	return req
}

func asStoreError(err error) error {
	if errors.Is(err, domain.ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStore, err)
}

func maskPhone(phone string) string {
	digits := NormalizePhone(phone)
	if len(digits) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
