package identity

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/orderlingo/backoffice/internal/apperr"
	"github.com/orderlingo/backoffice/pkg/httpx"
	"github.com/orderlingo/backoffice/pkg/logger"
	"github.com/orderlingo/backoffice/pkg/metrics"
)

// Introspector resolves an access token into its identity.
// Implemented by the platform API facade (/debug/token).
type Introspector interface {
	IntrospectToken(ctx context.Context, token string) (*User, error)
}

// Gateway exchanges credentials with the identity provider and resolves
// tokens into identities.
type Gateway struct {
	tokenURL     string
	clientID     string
	clientSecret string
	introspector Introspector
}

// NewGateway builds a Gateway for the given Keycloak base URL and realm,
// using a confidential client grant.
func NewGateway(keycloakURL, realm, clientID, clientSecret string, introspector Introspector) *Gateway {
	return &Gateway{
		tokenURL: fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token",
			strings.TrimRight(keycloakURL, "/"), realm),
		clientID:     clientID,
		clientSecret: clientSecret,
		introspector: introspector,
	}
}

// providerError is the OIDC error body shape.
type providerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// PasswordLogin exchanges credentials for an access token.
//
// Both fields are required; that check and the client-secret check run
// before any network call. A missing client secret is a deployment fault
// and is reported as Configuration, never as bad credentials.
func (g *Gateway) PasswordLogin(ctx context.Context, username, password string) (*Token, error) {
	fields := map[string]string{}
	if strings.TrimSpace(username) == "" {
		fields["username"] = "The username field is required."
	}
	if password == "" {
		fields["password"] = "The password field is required."
	}
	if len(fields) > 0 {
		return nil, apperr.New(apperr.Validation, "Username and password required").WithFields(fields)
	}

	if g.clientSecret == "" {
		return nil, apperr.New(apperr.Configuration, "identity provider client secret not configured")
	}

	form := url.Values{
		"grant_type":    {"password"},
		"client_id":     {g.clientID},
		"client_secret": {g.clientSecret},
		"username":      {username},
		"password":      {password},
	}

	start := time.Now()
	resp, err := httpx.Post(g.tokenURL).
		Form(form).
		Timeout(10 * time.Second).
		WithContext(ctx).
		Send()
	metrics.ObserveUpstream("keycloak", "token", start)
	if err != nil {
		metrics.RecordUpstreamError("keycloak", "token")
		return nil, apperr.Wrap(apperr.RequestFailed, "Login request failed", err)
	}

	if !resp.OK() {
		var pe providerError
		_ = resp.JSON(&pe) // best effort; fall through to the generic message
		msg := pe.ErrorDescription
		if msg == "" {
			msg = pe.Error
		}
		if msg == "" {
			msg = "Login failed"
		}
		// The provider's status is forwarded to the caller as-is.
		return nil, apperr.New(apperr.InvalidCredentials, msg).WithStatus(resp.StatusCode)
	}

	var tok Token
	if err := resp.JSON(&tok); err != nil || tok.AccessToken == "" {
		return nil, apperr.New(apperr.RequestFailed, "Login failed")
	}
	return &tok, nil
}

// ResolveIdentity introspects the token and returns the identity, or nil on
// any failure. This is a best-effort refresh: the UI must stay usable (if
// degraded) when the introspection collaborator is unreachable, so errors
// are logged at debug level and swallowed by design.
func (g *Gateway) ResolveIdentity(ctx context.Context, token string) *User {
	if token == "" || g.introspector == nil {
		return nil
	}
	user, err := g.introspector.IntrospectToken(ctx, token)
	if err != nil {
		logger.WithCtx(ctx).Debug("identity: introspection unavailable", "error", err)
		return nil
	}
	return user
}
