package controllers

import (
	"net/http"

	"github.com/orderlingo/backoffice/internal/authz"
	"github.com/orderlingo/backoffice/internal/identity"
	"github.com/orderlingo/backoffice/internal/session"
	"github.com/orderlingo/backoffice/pkg/bind"
	"github.com/orderlingo/backoffice/pkg/logger"
	"github.com/orderlingo/backoffice/pkg/metrics"
	"github.com/orderlingo/backoffice/pkg/response"
)

type AuthController struct {
	gateway *identity.Gateway
}

func NewAuthController(gateway *identity.Gateway) *AuthController {
	return &AuthController{gateway: gateway}
}

type loginInput struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// sessionView is what auth endpoints return about the caller. The access
// token itself never leaves the server.
type sessionView struct {
	User         *identity.User     `json:"user"`
	Capabilities []authz.Capability `json:"capabilities"`
}

func viewOf(s session.Session) sessionView {
	return sessionView{
		User:         s.User,
		Capabilities: authz.Capabilities(s.Roles()),
	}
}

// Login exchanges credentials for a token, resolves the identity, and
// stores both in a fresh server-side session.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tok, err := c.gateway.PasswordLogin(r.Context(), in.Username, in.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		renderErr(w, r, err)
		return
	}

	// Best effort: a session with a token but no resolved identity is still
	// usable read-only.
	user := c.gateway.ResolveIdentity(r.Context(), tok.AccessToken)

	sess := session.Session{Token: tok.AccessToken, User: user}
	if err := session.FromCtx(r).Put(r.Context(), w, sess); err != nil {
		logger.WithCtx(r.Context()).Error("auth: session save failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not establish session")
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info("auth: login", "username", in.Username)
	response.Success(w, viewOf(sess))
}

// Logout destroys the session. Always succeeds from the caller's view.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := session.FromCtx(r).Reset(r.Context(), w); err != nil {
		logger.WithCtx(r.Context()).Warn("auth: session clear failed", "error", err)
	}
	response.NoContent(w)
}

// Me returns the caller's identity and capabilities. When the stored
// identity snapshot is missing it is re-resolved from the token first.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	h := session.FromCtx(r)
	cur := h.Current()
	if !cur.Authenticated() {
		response.Unauthorized(w)
		return
	}

	if cur.User == nil {
		if user := c.gateway.ResolveIdentity(r.Context(), cur.Token); user != nil {
			cur.User = user
			if err := h.Put(r.Context(), w, cur); err != nil {
				logger.WithCtx(r.Context()).Warn("auth: session refresh failed", "error", err)
			}
		}
	}

	response.Success(w, viewOf(cur))
}
