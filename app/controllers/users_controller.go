package controllers

import (
	"net/http"

	"github.com/orderlingo/backoffice/internal/upstream"
	"github.com/orderlingo/backoffice/pkg/response"
)

// UsersController exposes the Keycloak-backed user directory for the
// manager and staff assignment pickers.
type UsersController struct {
	api *upstream.Client
}

func NewUsersController(api *upstream.Client) *UsersController {
	return &UsersController{api: api}
}

func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	q := r.URL.Query()

	users, err := c.api.ListUsers(r.Context(), sess.Token, q.Get("role"), q.Get("search"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, users)
}
