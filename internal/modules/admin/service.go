package admin

import (
	"context"
	"strings"
	"time"

	"b200/internal/modules/reservation"

	"golang.org/x/crypto/bcrypt"
)

const (
	adminSubject = "admin"
	adminRole    = "admin"
)

type Service struct {
	reservations ReservationReader
	tokens       TokenIssuer
	passwordHash []byte
	tokenTTL     time.Duration
}

// NewService hashes the configured password once. A value that already looks
// like a bcrypt hash is used as is. An empty password disables login.
func NewService(reservations ReservationReader, tokens TokenIssuer, password string, tokenTTL time.Duration) (*Service, error) {
	s := &Service{
		reservations: reservations,
		tokens:       tokens,
		tokenTTL:     tokenTTL,
	}
	if password == "" {
		return s, nil
	}
	if isBcryptHash(password) {
		s.passwordHash = []byte(password)
		return s, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	s.passwordHash = hash
	return s, nil
}

func (s *Service) Login(ctx context.Context, password string) (*LoginResponse, error) {
	if len(s.passwordHash) == 0 {
		return nil, ErrLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(adminSubject, adminRole)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *Service) Dates(ctx context.Context) ([]string, error) {
	return s.reservations.Dates(ctx)
}

// Day returns the stored rows for one date with their total and band.
func (s *Service) Day(ctx context.Context, date string) (*DayDetail, error) {
	rows, err := s.reservations.ReservationsOn(ctx, date)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, r := range rows {
		total += r.Tickets
	}
	day := strings.TrimSpace(date)
	if len(rows) > 0 {
		day = rows[0].Date
	}
	return &DayDetail{
		Date:         day,
		Tickets:      total,
		Band:         s.reservations.Classifier().Band(total),
		Reservations: rows,
	}, nil
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

var _ ReservationReader = (*reservation.Service)(nil)
