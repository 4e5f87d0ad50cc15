package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned by ParseAccessToken for every verification
// failure: bad signature, undecodable payload or passed expiry.  Callers are
// deliberately unable to distinguish "expired" from "malformed"; both mean
// re-authenticate.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string.  Access tokens are the
// only credential: there is no refresh token and no server-side revocation
// list, so the expiration window is the sole termination mechanism.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenClaims carries the identity embedded in a verified access token.
type TokenClaims struct {
	Email  string // subject (sub) claim: the user's unique email
	UserID uint64 // user_id claim
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the subject email, the user ID, and a TTL in days.  The
// claim set is exactly {sub, user_id, exp}: sub carries the email so the
// subject can be re-resolved against the user store on every request, and
// exp is issuance time plus the validity window.
func NewAccessToken(secret, email string, userID uint64, ttlDays int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":     email,
		"user_id": userID,
		"exp":     exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a serialized token
// and returns its identity claims.  Verification is pure recomputation
// against the process-wide secret; no store lookup happens here.  Any
// failure maps to ErrInvalidToken.
func ParseAccessToken(secret, raw string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything other than HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return TokenClaims{}, ErrInvalidToken
	}
	out := TokenClaims{Email: email}
	// JWT numeric values decode as float64.
	if v, ok := claims["user_id"].(float64); ok {
		out.UserID = uint64(v)
	}
	return out, nil
}
