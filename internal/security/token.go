package security

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the fields the ledger service puts in its access tokens. The
// service issues numeric subjects, so Subject is normalised to a string.
type Claims struct {
	Subject   string
	Type      string
	Fresh     bool
	ExpiresAt *jwt.NumericDate
}

// InspectToken decodes a bearer token without verifying its signature. The
// signing key belongs to the ledger service; the client only needs to know
// who the token is for and whether it has run out. Tokens that are not JWTs
// yield ErrInvalidToken.
func InspectToken(tokenString string, now time.Time) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	raw := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, raw); err != nil {
		return nil, ErrInvalidToken
	}
	exp, err := raw.GetExpirationTime()
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		Subject:   claimString(raw["sub"]),
		Type:      claimString(raw["type"]),
		ExpiresAt: exp,
	}
	if fresh, ok := raw["fresh"].(bool); ok {
		claims.Fresh = fresh
	}
	if exp != nil && !now.Before(exp.Time) {
		return claims, ErrExpiredToken
	}
	return claims, nil
}

func claimString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	}
	return ""
}

// ExpiresIn reports how long the token stays valid, or 0 when it carries no
// expiry.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}
