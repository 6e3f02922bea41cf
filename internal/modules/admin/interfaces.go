package admin

import (
	"context"

	"b200/internal/domain"
	"b200/internal/modules/reservation"
)

type ReservationReader interface {
	Dates(ctx context.Context) ([]string, error)
	ReservationsOn(ctx context.Context, date string) ([]domain.Reservation, error)
	Classifier() reservation.Classifier
}

type TokenIssuer interface {
	GenerateToken(subject, role string) (string, error)
}
