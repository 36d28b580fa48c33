// Package identity talks to the Keycloak-compatible identity provider:
// password-grant login and best-effort token introspection.
package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the immutable identity snapshot derived from introspection.
// It is recomputed whenever the token changes, never mutated in place.
type User struct {
	SubjectID string   `json:"sub"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
}

// Token is the identity provider's grant response. The refresh token and
// expiry are stored but not acted on beyond bounding the session TTL.
type Token struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// TokenExpiry reads the exp claim of a JWT access token without verifying
// the signature — the platform API is the one that verifies tokens; here
// the expiry only caps how long the session cookie may outlive the grant.
func TokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
