package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orderlingo/backoffice/pkg/validate"
)

type loginInput struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(loginInput{Username: "chloe", Password: "s3cret"})
	assert.False(t, validate.HasErrors(errs), "expected no errors, got: %v", errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(loginInput{})
	assert.True(t, validate.HasErrors(errs))
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")
}

func TestInRuleKeepsMultiValueParam(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=platform_admin,restaurant_manager,staff,max=50"`
	}
	assert.False(t, validate.HasErrors(validate.Struct(in{Role: "restaurant_manager"})))

	errs := validate.Struct(in{Role: "superuser"})
	assert.Contains(t, errs, "role")
}

func TestNullableSkipsEmpty(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"nullable,url"`
	}
	assert.False(t, validate.HasErrors(validate.Struct(in{})))
	assert.True(t, validate.HasErrors(validate.Struct(in{Site: "not-a-url"})))
	assert.False(t, validate.HasErrors(validate.Struct(in{Site: "https://example.com/img.png"})))
}

func TestNullablePointerFields(t *testing.T) {
	type in struct {
		Slug *string `json:"slug" validate:"nullable,alpha_dash,max=10"`
	}
	assert.False(t, validate.HasErrors(validate.Struct(in{})), "nil pointer skips rules")

	good := "chez-2"
	assert.False(t, validate.HasErrors(validate.Struct(in{Slug: &good})))

	bad := "way too long for the limit"
	assert.True(t, validate.HasErrors(validate.Struct(in{Slug: &bad})), "rules apply to the pointed-to value")
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
	}
	assert.True(t, validate.HasErrors(validate.Struct(in{Quantity: 0})))
	assert.False(t, validate.HasErrors(validate.Struct(in{Quantity: 3})))
}

func TestAlphaDash(t *testing.T) {
	type in struct {
		Slug string `json:"slug" validate:"required,alpha_dash"`
	}
	assert.False(t, validate.HasErrors(validate.Struct(in{Slug: "chez-marcel_2"})))
	assert.True(t, validate.HasErrors(validate.Struct(in{Slug: "chez marcel!"})))
}
