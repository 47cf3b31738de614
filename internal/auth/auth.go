package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is the single failure surfaced for any invalid token:
// forged, malformed, expired, or missing the subject claim. Callers are
// deliberately not told which.
var ErrUnauthorized = errors.New("unauthorized")

// Verifier validates HS256 bearer tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier constructs a Verifier for the shared signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks signature integrity and expiry together and returns the
// token subject. Every failure mode collapses into ErrUnauthorized.
func (v *Verifier) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrUnauthorized
	}

	return claims.Subject, nil
}

// GenerateToken mints a signed, time-limited token for the given subject.
func GenerateToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

type subjectKey struct{}

// ContextWithSubject attaches the verified token subject to the context.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromContext returns the verified subject, if any. The subject is
// informational only: any authenticated caller may mutate any order.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey{}).(string)
	return subject, ok && subject != ""
}
