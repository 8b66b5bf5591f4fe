package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when the token's embedded expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed covers every other verification failure: bad
	// signature, wrong algorithm, missing expiry, or garbage input.
	ErrTokenMalformed = errors.New("token is malformed or invalid")
)

// Claims are the claims carried by every bearer token. SubjectID is the hex
// object id of the principal; whether it names a user or a company is decided
// by the middleware that looks it up.
type Claims struct {
	SubjectID string `json:"sub_id"`
	jwt.RegisteredClaims
}

// JWTAuthenticator issues and verifies signed, time-bounded bearer tokens.
// Verification is stateless; tokens are never revoked server-side.
type JWTAuthenticator struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(secret, issuer string, expiresIn time.Duration) JWTAuthenticator {
	return JWTAuthenticator{
		secret:    []byte(secret),
		issuer:    issuer,
		expiresIn: expiresIn,
	}
}

// Issue generates an HS256 token bound to subjectID, expiring after the
// configured lifetime.
func (a *JWTAuthenticator) Issue(subjectID string) (string, error) {
	now := time.Now()
	claims := Claims{
		SubjectID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    a.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// Verify validates the signature and expiry of tokenStr and returns the
// subject id. It fails with ErrTokenExpired past the embedded expiry and
// ErrTokenMalformed for any other invalid input; it never panics.
func (a *JWTAuthenticator) Verify(tokenStr string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}

	if !token.Valid || claims.SubjectID == "" {
		return "", ErrTokenMalformed
	}

	return claims.SubjectID, nil
}
