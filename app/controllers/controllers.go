// Package controllers holds the HTTP handlers for the backoffice API.
// Controllers stay thin: decode, delegate, render. Policy lives in authz,
// lifecycle rules in order, upstream plumbing in upstream.
package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orderlingo/backoffice/internal/apperr"
	"github.com/orderlingo/backoffice/internal/session"
	"github.com/orderlingo/backoffice/pkg/logger"
	"github.com/orderlingo/backoffice/pkg/response"
)

// current returns the session state for the request.
func current(r *http.Request) session.Session {
	return session.FromCtx(r).Current()
}

// param reads a chi URL parameter.
func param(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// renderErr maps a taxonomy error onto the response envelope. Field errors
// keep the 422 envelope shape; everything else is status + message.
func renderErr(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
	}

	if fields := apperr.FieldErrors(err); len(fields) > 0 {
		response.ValidationError(w, fields)
		return
	}
	response.Error(w, status, apperr.Message(err))
}
