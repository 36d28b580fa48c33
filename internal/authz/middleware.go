package authz

import (
	"net/http"

	"github.com/orderlingo/backoffice/internal/session"
	"github.com/orderlingo/backoffice/pkg/logger"
	"github.com/orderlingo/backoffice/pkg/response"
)

// Authenticated rejects requests without a live session. It does not check
// any capability; use Require for that.
func Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.FromCtx(r).Current().Authenticated() {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Require gates a route behind a capability. The session's role set decides;
// an unauthenticated request is 401, an authenticated one without the grant
// is 403.
func Require(capability Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cur := session.FromCtx(r).Current()
			if !cur.Authenticated() {
				response.Unauthorized(w)
				return
			}
			if !Allowed(cur.Roles(), capability) {
				logger.WithCtx(r.Context()).Warn("authz: capability denied",
					"capability", string(capability), "roles", cur.Roles())
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
