package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/antonk9218/authd/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, validity time.Duration) *Issuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey error: %v", err)
	}
	return NewIssuer(key, &key.PublicKey, validity)
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer(t, time.Hour)

	token, expiresAt, err := iss.Issue("account-123")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	got, err := iss.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "account-123", got)
}

func TestIssue_ReportedExpiryMatchesEmbedded(t *testing.T) {
	t.Parallel()

	validity := 14 * 24 * time.Hour
	iss := newTestIssuer(t, validity)

	token, expiresAt, err := iss.Issue("a1")
	require.NoError(t, err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return iss.publicKey, nil
	})
	require.NoError(t, err)

	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, 2*time.Second)
	assert.WithinDuration(t, time.Now().Add(validity), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerify_BearerPrefixStripped(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer(t, time.Hour)
	token, _, err := iss.Issue("a1")
	require.NoError(t, err)

	got, err := iss.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "a1", got)
}

func TestVerify_UniformUnauthorized(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer(t, time.Hour)

	expiredIss := NewIssuer(iss.privateKey, iss.publicKey, -time.Minute)
	expired, _, err := expiredIss.Issue("a1")
	require.NoError(t, err)

	otherIss := newTestIssuer(t, time.Hour)
	foreign, _, err := otherIss.Issue("a1")
	require.NoError(t, err)

	valid, _, err := iss.Issue("a1")
	require.NoError(t, err)
	tampered := valid[:len(valid)-4] + "AAAA"

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "a1",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noUserID, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(iss.privateKey)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"foreign key", foreign},
		{"tampered", tampered},
		{"wrong algorithm", wrongAlg},
		{"missing account claim", noUserID},
		{"malformed", "not.a.jwt"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iss.Verify(tt.token)
			assert.ErrorIs(t, err, common.ErrUnauthorized)
		})
	}
}
