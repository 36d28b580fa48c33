package server

import (
	"net/http"

	"github.com/orderlingo/backoffice/app/routes"
	"github.com/orderlingo/backoffice/internal/identity"
	"github.com/orderlingo/backoffice/internal/session"
	"github.com/orderlingo/backoffice/internal/upstream"
	"github.com/orderlingo/backoffice/pkg/metrics"
	"github.com/orderlingo/backoffice/pkg/middleware"
	"github.com/orderlingo/backoffice/pkg/reqid"
	"github.com/orderlingo/backoffice/pkg/response"
	"github.com/orderlingo/backoffice/pkg/router"
)

// NewRouter assembles the middleware stack and the full route table.
// Metrics wrap everything so even panics are counted; recovery runs before
// anything that could fail; the session loads after request ID and logging
// so session problems are traceable.
func NewRouter(api *upstream.Client, gateway *identity.Gateway, store session.Store, opts session.Options) *router.Router {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(session.Middleware(store, opts))

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	routes.RegisterAPI(r, api, gateway)
	return r
}
