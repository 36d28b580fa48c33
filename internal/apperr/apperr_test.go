package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orderlingo/backoffice/internal/apperr"
)

func TestKindSurvivesWrapping(t *testing.T) {
	base := apperr.New(apperr.InvalidTransition, "ready cannot go back to confirmed")
	wrapped := fmt.Errorf("updating order: %w", base)

	assert.True(t, apperr.IsKind(wrapped, apperr.InvalidTransition))
	assert.Equal(t, "ready cannot go back to confirmed", apperr.Message(wrapped))
}

func TestHTTPStatusDefaults(t *testing.T) {
	cases := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.Configuration, http.StatusInternalServerError},
		{apperr.InvalidCredentials, http.StatusUnauthorized},
		{apperr.Forbidden, http.StatusForbidden},
		{apperr.InvalidTransition, http.StatusConflict},
		{apperr.NotFound, http.StatusNotFound},
		{apperr.Validation, http.StatusUnprocessableEntity},
		{apperr.RequestFailed, http.StatusBadGateway},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, apperr.HTTPStatus(apperr.New(c.kind, "x")), "kind %s", c.kind)
	}
}

func TestStatusOverrideForwardsProviderCode(t *testing.T) {
	err := apperr.New(apperr.InvalidCredentials, "Invalid user credentials").WithStatus(401)
	assert.Equal(t, 401, apperr.HTTPStatus(err))
}

func TestUnclassifiedErrorsAreRequestFailed(t *testing.T) {
	err := errors.New("connection reset")
	assert.Equal(t, apperr.RequestFailed, apperr.KindOf(err))
	assert.Equal(t, http.StatusBadGateway, apperr.HTTPStatus(err))
}

func TestValidationFields(t *testing.T) {
	err := apperr.New(apperr.Validation, "Validation failed").
		WithFields(map[string]string{"password": "The password field is required."})
	assert.Equal(t, "The password field is required.", apperr.FieldErrors(err)["password"])
}
