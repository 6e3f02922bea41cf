package reservation

import (
	"context"

	"b200/internal/domain"
)

// RowStore is the tabular store behind reservations. Implementations must keep
// insertion order and wrap failures with domain.ErrStore.
type RowStore interface {
	LoadAll(ctx context.Context) ([]domain.Record, error)
	Append(ctx context.Context, rec domain.Record) error
}

// BatchAppender is implemented by stores that can persist several rows in one call.
type BatchAppender interface {
	AppendAll(ctx context.Context, recs []domain.Record) error
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// TotalsNotifier receives fresh day statuses after a booking lands.
type TotalsNotifier interface {
	NotifyTotals(statuses []DayStatus)
}
