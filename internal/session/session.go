// Package session owns the backoffice session: the access token and the
// identity snapshot derived from it, persisted server-side under a cookie ID.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(store, session.DefaultOptions()))
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	cur := sess.Current()
//	if cur.Token == "" { ... }
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/orderlingo/backoffice/internal/identity"
)

// Session is the persisted state: the access token plus the (possibly
// absent) user identity resolved from it. The zero value is a logged-out
// session.
type Session struct {
	Token string
	User  *identity.User
}

// Authenticated reports whether a token is present. The user snapshot may
// still be absent when introspection was unavailable.
func (s Session) Authenticated() bool { return s.Token != "" }

// Roles returns the user's role set, empty when identity is unresolved.
func (s Session) Roles() []string {
	if s.User == nil {
		return nil
	}
	return s.User.Roles
}

// record is the storage shape. The user is kept as raw JSON so corrupt
// persisted user data degrades to an absent identity instead of an error.
type record struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

func encode(s Session) ([]byte, error) {
	rec := record{Token: s.Token}
	if s.User != nil {
		raw, err := json.Marshal(s.User)
		if err != nil {
			return nil, err
		}
		rec.User = raw
	}
	return json.Marshal(rec)
}

func decode(raw []byte) Session {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Whole record unreadable: treat as logged out.
		return Session{}
	}
	s := Session{Token: rec.Token}
	if len(rec.User) > 0 {
		var u identity.User
		if err := json.Unmarshal(rec.User, &u); err == nil {
			s.User = &u
		}
		// Corrupt user data: keep the token, identity stays absent.
	}
	return s
}

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "orderlingo_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // set true in production
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Handle is the in-request session handle.
type Handle struct {
	id    string
	cur   Session
	store Store
	opts  Options
}

// ID returns the session ID.
func (h *Handle) ID() string { return h.id }

// Current returns the session state loaded for this request.
func (h *Handle) Current() Session { return h.cur }

// Put persists the session and writes the cookie. The TTL is the configured
// session TTL, capped by the access token's own expiry when it can be read.
func (h *Handle) Put(ctx context.Context, w http.ResponseWriter, s Session) error {
	ttl := h.opts.TTL
	if exp, ok := identity.TokenExpiry(s.Token); ok {
		if until := time.Until(exp); until > 0 && until < ttl {
			ttl = until
		}
	}

	if err := h.store.Save(ctx, h.id, s, ttl); err != nil {
		return err
	}
	h.cur = s

	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    h.id,
		Path:     h.opts.Path,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: h.opts.HTTPOnly,
		Secure:   h.opts.Secure,
		SameSite: h.opts.SameSite,
	})
	return nil
}

// Reset destroys the session (logout) and expires the cookie.
func (h *Handle) Reset(ctx context.Context, w http.ResponseWriter) error {
	err := h.store.Clear(ctx, h.id)
	h.cur = Session{}

	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    "",
		Path:     h.opts.Path,
		MaxAge:   -1,
		HttpOnly: h.opts.HTTPOnly,
		Secure:   h.opts.Secure,
		SameSite: h.opts.SameSite,
	})
	return err
}

type ctxKey struct{}

// Middleware loads (or creates) the session for every request and injects
// it into the request context. Handlers call session.FromCtx(r) to access it.
func Middleware(store Store, opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := &Handle{store: store, opts: opts}

			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				h.id = cookie.Value
				h.cur = store.Load(r.Context(), h.id)
			} else {
				id, err := newID()
				if err != nil {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				h.id = id
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, h)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx retrieves the session handle from the request context.
// Returns an unsaved throwaway handle if the middleware did not run.
func FromCtx(r *http.Request) *Handle {
	if h, ok := r.Context().Value(ctxKey{}).(*Handle); ok {
		return h
	}
	id, _ := newID()
	return &Handle{id: id, store: NewMemoryStore(), opts: DefaultOptions()}
}
