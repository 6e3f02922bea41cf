package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"b200/internal/config"
	"b200/internal/domain"
	"b200/internal/modules/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockReader struct {
	mock.Mock
}

func (m *MockReader) Dates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReader) ReservationsOn(ctx context.Context, date string) ([]domain.Reservation, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReader) Classifier() reservation.Classifier {
	return reservation.NewClassifier(config.Thresholds{LowMax: 22, MidMax: 32, ZeroIsAmple: true})
}

type stubIssuer struct {
	subject, role string
	err           error
}

func (s *stubIssuer) GenerateToken(subject, role string) (string, error) {
	s.subject, s.role = subject, role
	if s.err != nil {
		return "", s.err
	}
	return "signed-token", nil
}

func TestService_Login(t *testing.T) {
	issuer := &stubIssuer{}
	svc, err := NewService(new(MockReader), issuer, "s3cret", 12*time.Hour)
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 12*60*60, resp.ExpiresIn)
	assert.Equal(t, "admin", issuer.role)

	_, err = svc.Login(context.Background(), "guess")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginAcceptsPrehashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc, err := NewService(new(MockReader), &stubIssuer{}, string(hash), time.Hour)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "s3cret")
	assert.NoError(t, err)
}

func TestService_LoginDisabledWithoutPassword(t *testing.T) {
	svc, err := NewService(new(MockReader), &stubIssuer{}, "", time.Hour)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "")
	assert.ErrorIs(t, err, ErrLoginDisabled)
}

func TestService_LoginIssuerFailure(t *testing.T) {
	svc, err := NewService(new(MockReader), &stubIssuer{err: errors.New("sign")}, "pw", time.Hour)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "pw")
	assert.Error(t, err)
}

func TestService_DaySumsTickets(t *testing.T) {
	reader := new(MockReader)
	reader.On("ReservationsOn", mock.Anything, "2025-10-05").Return([]domain.Reservation{
		{Name: "a", Date: "2025-10-05", Tickets: 3},
		{Name: "b", Date: "2025-10-05", Tickets: 30},
	}, nil)

	svc, err := NewService(reader, &stubIssuer{}, "pw", time.Hour)
	require.NoError(t, err)

	detail, err := svc.Day(context.Background(), "2025-10-05")
	require.NoError(t, err)
	assert.Equal(t, 33, detail.Tickets)
	assert.Equal(t, reservation.BandUnavailable, detail.Band)
	assert.Len(t, detail.Reservations, 2)
	reader.AssertExpectations(t)
}

func TestService_DayPropagatesErrors(t *testing.T) {
	reader := new(MockReader)
	reader.On("ReservationsOn", mock.Anything, "bad").Return(nil, reservation.ErrInvalidDate)

	svc, err := NewService(reader, &stubIssuer{}, "pw", time.Hour)
	require.NoError(t, err)

	_, err = svc.Day(context.Background(), "bad")
	assert.ErrorIs(t, err, reservation.ErrInvalidDate)
}
