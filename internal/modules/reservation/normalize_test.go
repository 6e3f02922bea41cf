package reservation

import (
	"testing"
	"time"

	"b200/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seoul = time.FixedZone("KST", 9*60*60)

func TestNormalize_CoercesFields(t *testing.T) {
	now := time.Date(2025, 9, 21, 10, 30, 15, 500, seoul)
	rows := []domain.Record{
		{Name: " Kim ", Phone: "010-1234-5678", Date: "2025-10-01", Tickets: "5", StartTime: "9:00", EndTime: "18:00:00", ReservationTime: "2025-09-20 08:00:00"},
		{Name: "Lee", Date: "2025/10/02", Tickets: "3.0"},
		{Name: "Park", Date: "next tuesday", Tickets: "a lot", StartTime: "noon", ReservationTime: "yesterday"},
		{Name: "Choi", Date: "2025. 10. 3", Tickets: "-4"},
	}

	got := Normalize(rows, now, seoul)
	require.Len(t, got, 4)

	assert.Equal(t, "Kim", got[0].Name)
	assert.Equal(t, "2025-10-01", got[0].Date)
	assert.Equal(t, 5, got[0].Tickets)
	assert.Equal(t, "09:00", got[0].StartTime)
	assert.Equal(t, "18:00", got[0].EndTime)
	assert.Equal(t, "2025-09-20 08:00:00", got[0].ReservationTime.Format(domain.TimestampLayout))

	assert.Equal(t, "2025-10-02", got[1].Date)
	assert.Equal(t, 3, got[1].Tickets)
	assert.Equal(t, "", got[1].StartTime)

	assert.Equal(t, "", got[2].Date)
	assert.Equal(t, 0, got[2].Tickets)
	assert.Equal(t, "", got[2].StartTime)
	assert.Equal(t, "2025-09-21 10:30:15", got[2].ReservationTime.Format(domain.TimestampLayout))

	assert.Equal(t, "2025-10-03", got[3].Date)
	assert.Equal(t, 0, got[3].Tickets)
}

func TestNormalize_BlankReservationTimeUsesNow(t *testing.T) {
	now := time.Date(2025, 9, 21, 1, 2, 3, 0, time.UTC)

	got := Normalize([]domain.Record{{Date: "2025-10-01"}}, now, seoul)

	require.Len(t, got, 1)
	assert.True(t, got[0].ReservationTime.Equal(now))
	assert.Equal(t, "2025-09-21 10:02:03", got[0].ReservationTime.Format(domain.TimestampLayout))
}

func TestNormalize_SheetLocaleTimestamps(t *testing.T) {
	now := time.Date(2025, 10, 5, 12, 0, 0, 0, seoul)
	rows := []domain.Record{
		{Date: "2025-10-01", ReservationTime: "2025. 10. 1 오전 9:00:00"},
		{Date: "2025-10-03", ReservationTime: "2025. 10. 3 오후 2:00:00"},
		{Date: "2025-10-04", ReservationTime: "2025. 10. 4 14:30:00"},
	}

	got := Normalize(rows, now, seoul)
	require.Len(t, got, 3)
	assert.Equal(t, time.Date(2025, 10, 1, 9, 0, 0, 0, seoul), got[0].ReservationTime)
	assert.Equal(t, time.Date(2025, 10, 3, 14, 0, 0, 0, seoul), got[1].ReservationTime)
	assert.Equal(t, time.Date(2025, 10, 4, 14, 30, 0, 0, seoul), got[2].ReservationTime)
}

func TestNormalize_EmptyInput(t *testing.T) {
	got := Normalize(nil, time.Now(), seoul)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalize_Idempotent(t *testing.T) {
	now := time.Date(2025, 9, 21, 10, 30, 15, 999, seoul)
	raw := []domain.Record{
		{Name: "Kim", Email: "kim@example.com", Phone: "010-1234-5678", Date: "2025-10-01", Tickets: "5", StartTime: "09:00", EndTime: "18:00", ReservationTime: "2025-09-20 08:00:00"},
		{Name: "Lee", Date: "bad", Tickets: "x"},
		{Name: "Park", Date: "2025/10/09", Tickets: "2.7", ReservationTime: "2025-09-20T08:00:00+09:00"},
	}

	once := Normalize(raw, now, seoul)
	again := Normalize(toRecords(once), now.Add(time.Hour), seoul)

	assert.Equal(t, toRecords(once), toRecords(again))
}

func TestNormalize_PreservesOrder(t *testing.T) {
	raw := []domain.Record{
		{Name: "c", Date: "2025-10-03"},
		{Name: "a", Date: "2025-10-01"},
		{Name: "b", Date: "2025-10-02"},
	}

	got := Normalize(raw, time.Now(), seoul)

	names := []string{got[0].Name, got[1].Name, got[2].Name}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func toRecords(rs []domain.Reservation) []domain.Record {
	out := make([]domain.Record, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Record())
	}
	return out
}
