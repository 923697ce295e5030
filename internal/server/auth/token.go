// Package auth issues and verifies the signed session tokens that prove a
// prior successful login.
package auth

import (
	"crypto/rsa"
	"strings"
	"time"

	"github.com/antonk9218/authd/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// bearerPrefix is stripped from incoming tokens if present.
const bearerPrefix = "Bearer "

// Claims includes the registered claims plus the account the token is bound to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Issuer signs and verifies RS256 session tokens. Signing and verification
// are pure computations with no shared mutable state and may run in parallel
// across requests.
type Issuer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	validity   time.Duration
}

// NewIssuer builds an Issuer for the given key pair. Tokens expire validity
// after issuance.
func NewIssuer(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, validity time.Duration) *Issuer {
	return &Issuer{privateKey: privateKey, publicKey: publicKey, validity: validity}
}

// Issue signs a token bound to accountID and returns it together with the
// expiry reported to callers. The reported expiry and the one embedded in
// the token come from the same clock read.
func (i *Issuer) Issue(accountID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(i.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: accountID,
	})

	signed, err := token.SignedString(i.privateKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of a bearer token and returns the
// account identifier it is bound to. An optional "Bearer " prefix is
// stripped first. Every failure mode (bad signature, expired, malformed,
// wrong algorithm, missing account claim) collapses into
// common.ErrUnauthorized so verification internals never leak to the caller.
func (i *Issuer) Verify(bearerToken string) (string, error) {
	tokenString := strings.TrimPrefix(bearerToken, bearerPrefix)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.publicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", common.ErrUnauthorized
	}

	return claims.UserID, nil
}
