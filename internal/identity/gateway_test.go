package identity_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlingo/backoffice/internal/apperr"
	"github.com/orderlingo/backoffice/internal/identity"
)

type stubIntrospector struct {
	user *identity.User
	err  error
}

func (s *stubIntrospector) IntrospectToken(ctx context.Context, token string) (*identity.User, error) {
	return s.user, s.err
}

func TestPasswordLoginEmptyPasswordNeverHitsNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	g := identity.NewGateway(srv.URL, "food", "food-api", "secret", nil)
	_, err := g.PasswordLogin(context.Background(), "chloe", "")

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
	assert.Contains(t, apperr.FieldErrors(err), "password")
	assert.Zero(t, atomic.LoadInt32(&hits), "validation failure must not issue a request")
}

func TestPasswordLoginMissingSecretIsConfigurationError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	g := identity.NewGateway(srv.URL, "food", "food-api", "", nil)
	_, err := g.PasswordLogin(context.Background(), "chloe", "pw")

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Configuration), "missing secret is config, not bad credentials")
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestPasswordLoginSurfacesProviderDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "food-api", r.PostForm.Get("client_id"))
		assert.Equal(t, "chloe", r.PostForm.Get("username"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid user credentials"}`))
	}))
	defer srv.Close()

	g := identity.NewGateway(srv.URL, "food", "food-api", "secret", nil)
	_, err := g.PasswordLogin(context.Background(), "chloe", "wrong")

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.InvalidCredentials))
	assert.Equal(t, "Invalid user credentials", apperr.Message(err))
	assert.Equal(t, http.StatusUnauthorized, apperr.HTTPStatus(err))
}

func TestPasswordLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","expires_in":300,"refresh_token":"ref-456"}`))
	}))
	defer srv.Close()

	g := identity.NewGateway(srv.URL, "food", "food-api", "secret", nil)
	tok, err := g.PasswordLogin(context.Background(), "chloe", "pw")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok.AccessToken)
	assert.Equal(t, 300, tok.ExpiresIn)
	assert.Equal(t, "ref-456", tok.RefreshToken)
}

func TestPasswordLoginUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	g := identity.NewGateway(srv.URL, "food", "food-api", "secret", nil)
	_, err := g.PasswordLogin(context.Background(), "chloe", "pw")

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.RequestFailed))
}

func TestResolveIdentityBestEffort(t *testing.T) {
	g := identity.NewGateway("http://localhost:0", "food", "food-api", "secret",
		&stubIntrospector{err: errors.New("connection refused")})
	assert.Nil(t, g.ResolveIdentity(context.Background(), "tok"), "introspection failure resolves to absent, not error")

	want := &identity.User{SubjectID: "u-1", Username: "chloe", Roles: []string{"staff"}}
	g = identity.NewGateway("http://localhost:0", "food", "food-api", "secret",
		&stubIntrospector{user: want})
	assert.Equal(t, want, g.ResolveIdentity(context.Background(), "tok"))

	assert.Nil(t, g.ResolveIdentity(context.Background(), ""), "no token, nothing to resolve")
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	got, ok := identity.TokenExpiry(raw)
	assert.True(t, ok)
	assert.True(t, got.Equal(exp), "want %v got %v", exp, got)

	_, ok = identity.TokenExpiry("not-a-jwt")
	assert.False(t, ok)
}
