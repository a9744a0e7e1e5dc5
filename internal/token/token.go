// Package token signs and verifies the compact session tokens presented in
// Authorization headers. Tokens are stateless: validity is determined
// entirely by the HMAC signature and the embedded expiry, with no
// server-side record of issuance. There is consequently no way to revoke a
// token before it expires; the resolver's user-existence check is the only
// revocation mechanism available, and the session length below bounds the
// exposure from a leaked token.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionLength is the lifetime embedded into newly signed tokens.
const DefaultSessionLength = 14 * 24 * time.Hour

// ErrInvalidToken is returned for every verification failure. Parse errors,
// signature mismatches and algorithm substitutions all collapse into it so
// callers cannot tell (and cannot leak) which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed payload of a session token.
type Claims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

type sessionClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a process-wide HMAC key.
type Codec struct {
	key []byte
}

// NewCodec returns a Codec keyed with the given secret.
func NewCodec(secret string) *Codec {
	return &Codec{key: []byte(secret)}
}

// Sign serializes the claims into an HS384-signed token.
func (c *Codec) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS384, sessionClaims{
		UserID: claims.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	return t.SignedString(c.key)
}

// Verify parses the token and checks its signature. The declared signing
// algorithm must be HS384 before the signature is even considered; accepting
// an attacker-substituted algorithm is the classic JWT downgrade attack.
// Verify does NOT check expiry; that is the caller's responsibility,
// against the current wall clock at verification time.
func (c *Codec) Verify(tokenString string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&sessionClaims{},
		func(_ *jwt.Token) (interface{}, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS384.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	sc, ok := parsed.Claims.(*sessionClaims)
	if !ok || sc.ExpiresAt == nil || sc.UserID == uuid.Nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		UserID:    sc.UserID,
		ExpiresAt: sc.ExpiresAt.Time,
	}, nil
}
