package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlingo/backoffice/internal/identity"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := Session{
		Token: "tok-123",
		User:  &identity.User{SubjectID: "u-1", Username: "chloe", Roles: []string{"staff"}},
	}
	require.NoError(t, store.Save(ctx, "sid", sess, time.Minute))

	got := store.Load(ctx, "sid")
	assert.Equal(t, "tok-123", got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, "chloe", got.User.Username)
	assert.Equal(t, []string{"staff"}, got.Roles())

	require.NoError(t, store.Clear(ctx, "sid"))
	assert.Equal(t, Session{}, store.Load(ctx, "sid"))
}

func TestLoadMissReturnsEmptySession(t *testing.T) {
	store := NewMemoryStore()
	got := store.Load(context.Background(), "nope")
	assert.False(t, got.Authenticated())
	assert.Nil(t, got.User)
}

func TestCorruptUserDataTreatedAsAbsent(t *testing.T) {
	store := NewMemoryStore()
	store.put("sid", []byte(`{"token":"tok-123","user":{"sub":42,"roles":"oops"}}`))

	got := store.Load(context.Background(), "sid")
	assert.Equal(t, "tok-123", got.Token, "token survives corrupt user data")
	assert.Nil(t, got.User, "corrupt user data degrades to absent identity")
}

func TestCorruptRecordTreatedAsLoggedOut(t *testing.T) {
	store := NewMemoryStore()
	store.put("sid", []byte(`{{{not json`))

	got := store.Load(context.Background(), "sid")
	assert.False(t, got.Authenticated())
}

func TestExpiredEntryGone(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "sid", Session{Token: "t"}, -time.Second))
	assert.False(t, store.Load(context.Background(), "sid").Authenticated())
}

func TestMiddlewareInjectsAndPersists(t *testing.T) {
	store := NewMemoryStore()
	opts := DefaultOptions()

	var cookie *http.Cookie

	// First request: no cookie, fresh handle; login saves the session.
	h := Middleware(store, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromCtx(r)
		assert.False(t, sess.Current().Authenticated())
		require.NoError(t, sess.Put(r.Context(), w, Session{Token: "tok-123"}))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

	for _, c := range rec.Result().Cookies() {
		if c.Name == opts.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must set the session cookie")

	// Second request: cookie present, session restored.
	h = Middleware(store, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := FromCtx(r)
		assert.Equal(t, "tok-123", sess.Current().Token)
		require.NoError(t, sess.Reset(r.Context(), w))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	// Logout cleared the stored session.
	assert.False(t, store.Load(context.Background(), cookie.Value).Authenticated())
}
