package authz_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlingo/backoffice/internal/authz"
	"github.com/orderlingo/backoffice/internal/identity"
	"github.com/orderlingo/backoffice/internal/session"
)

// serveAs runs handler behind the session middleware with a pre-seeded
// session for the given roles; empty roles with no token means logged out.
func serveAs(t *testing.T, mw func(http.Handler) http.Handler, sess session.Session) *httptest.ResponseRecorder {
	t.Helper()

	store := session.NewMemoryStore()
	opts := session.DefaultOptions()

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	if sess.Authenticated() {
		require.NoError(t, store.Save(context.Background(), "sid", sess, opts.TTL))
		req.AddCookie(&http.Cookie{Name: opts.CookieName, Value: "sid"})
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	session.Middleware(store, opts)(mw(ok)).ServeHTTP(rec, req)
	return rec
}

func TestAuthenticatedRejectsAnonymous(t *testing.T) {
	rec := serveAs(t, authz.Authenticated, session.Session{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedPassesWithToken(t *testing.T) {
	rec := serveAs(t, authz.Authenticated, session.Session{Token: "tok"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireDeniesMissingCapability(t *testing.T) {
	sess := session.Session{
		Token: "tok",
		User:  &identity.User{SubjectID: "u-1", Roles: []string{"staff"}},
	}
	rec := serveAs(t, authz.Require(authz.ManageMenu), sess)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireGrantsCapability(t *testing.T) {
	sess := session.Session{
		Token: "tok",
		User:  &identity.User{SubjectID: "u-1", Roles: []string{"restaurant_manager"}},
	}
	rec := serveAs(t, authz.Require(authz.ManageMenu), sess)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireUnauthenticatedIs401Not403(t *testing.T) {
	rec := serveAs(t, authz.Require(authz.ManageOrders), session.Session{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireWithUnresolvedIdentityDeniesManagement(t *testing.T) {
	// Token present but introspection never resolved: no roles, so only
	// read access survives.
	sess := session.Session{Token: "tok"}
	rec := serveAs(t, authz.Require(authz.ManageOrders), sess)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serveAs(t, authz.Require(authz.ViewOnly), sess)
	assert.Equal(t, http.StatusOK, rec.Code)
}
