package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 30*24*time.Hour)

	token, err := issuer.Issue(42, "ana@x.com")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenRejections(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Issue(1, "ana@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		issuer *TokenIssuer
		token  string
	}{
		{"garbage", issuer, "not-a-token"},
		{"other key", NewTokenIssuer("other", time.Hour), token},
		{"expired", &TokenIssuer{secret: []byte("secret"), ttl: time.Hour, now: func() time.Time { return time.Now().Add(2 * time.Hour) }}, token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasher(t *testing.T) {
	h := &Hasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("s3creto")
	require.NoError(t, err)
	assert.NotEqual(t, "s3creto", hash)

	assert.NoError(t, h.Check(hash, "s3creto"))
	assert.ErrorIs(t, h.Check(hash, "otro"), ErrPasswordMismatch)
	assert.Error(t, h.Check("not-a-hash", "s3creto"))
}
