package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken("admin", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestService_RejectsForeignSecret(t *testing.T) {
	token, err := New("one", time.Hour).GenerateToken("admin", "admin")
	require.NoError(t, err)

	_, err = New("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RejectsExpired(t *testing.T) {
	svc := New("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateToken("admin", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
