package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"  // sentinel error for all verification failures
	"strconv" // parsing numeric claims encoded as strings
	"time"    // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned for every token verification failure: bad
// signature, expiry, malformed payload, or a token presented to the wrong
// verification path. Callers only need to know that the token is unusable,
// so the reason is deliberately not exposed.
var ErrInvalidToken = errors.New("invalid token")

// refreshType marks a refresh token via the "type" claim. Access tokens
// carry no "type" claim at all.
const refreshType = "refresh"

// Claims is the identity payload embedded in every token. Both the access
// and refresh token carry the same three fields; refresh tokens add a
// type marker on top.
type Claims struct {
	ID    uint64 // user id
	Email string // user email
	Role  string // USER or ADMIN
}

// NewAccessToken builds and signs a short-lived HS256 JWT carrying the
// identity claims. The ttl is expressed in minutes. The JWT includes the
// identity fields plus expiration (exp) and issued at (iat).
func NewAccessToken(secret string, cl Claims, ttlMin int) (string, error) {
	return signToken(secret, cl, time.Duration(ttlMin)*time.Minute, false)
}

// NewRefreshToken builds and signs a long-lived HS256 JWT with the same
// claims plus type="refresh". The ttl is expressed in days. Refresh tokens
// are not persisted server-side; possession within the validity window is
// what makes them usable.
func NewRefreshToken(secret string, cl Claims, ttlDays int) (string, error) {
	return signToken(secret, cl, time.Duration(ttlDays)*24*time.Hour, true)
}

func signToken(secret string, cl Claims, ttl time.Duration, refresh bool) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":    cl.ID,
		"email": cl.Email,
		"role":  cl.Role,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}
	if refresh {
		claims["type"] = refreshType
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyAccessToken validates signature and expiry and returns the decoded
// claims. A refresh token presented here is rejected: it must not open the
// protected surface directly.
func VerifyAccessToken(secret, raw string) (Claims, error) {
	cl, typ, err := parseToken(secret, raw)
	if err != nil {
		return Claims{}, err
	}
	if typ == refreshType {
		return Claims{}, ErrInvalidToken
	}
	return cl, nil
}

// VerifyRefreshToken validates signature and expiry and additionally
// requires the type="refresh" claim, so an access token cannot be replayed
// against the refresh endpoint.
func VerifyRefreshToken(secret, raw string) (Claims, error) {
	cl, typ, err := parseToken(secret, raw)
	if err != nil {
		return Claims{}, err
	}
	if typ != refreshType {
		return Claims{}, ErrInvalidToken
	}
	return cl, nil
}

// parseToken verifies the HMAC signature and standard claims, then pulls
// the identity fields out of the MapClaims. JSON numbers decode as
// float64, so the id claim needs a conversion; a string id is tolerated
// for tokens minted by other stacks.
func parseToken(secret, raw string) (Claims, string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, "", ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, "", ErrInvalidToken
	}

	var cl Claims
	switch id := mc["id"].(type) {
	case float64:
		cl.ID = uint64(id)
	case string:
		if parsed, err := strconv.ParseUint(id, 10, 64); err == nil {
			cl.ID = parsed
		}
	}
	cl.Email, _ = mc["email"].(string)
	cl.Role, _ = mc["role"].(string)
	typ, _ := mc["type"].(string)
	return cl, typ, nil
}
