package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlingo/backoffice/app/controllers"
	"github.com/orderlingo/backoffice/internal/identity"
	"github.com/orderlingo/backoffice/internal/session"
	"github.com/orderlingo/backoffice/internal/upstream"
	"github.com/orderlingo/backoffice/pkg/router"
)

// patchAs sends a restaurant PATCH as a user with the given roles, against
// a platform stub that records whether the update went through.
func patchAs(t *testing.T, roles []string, body string) (int, bool) {
	t.Helper()

	forwarded := false
	platform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = true
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"r-1","name":"Trattoria","slug":"trattoria","is_active":true}`))
	}))
	defer platform.Close()

	store := session.NewMemoryStore()
	opts := session.DefaultOptions()
	require.NoError(t, store.Save(context.Background(), "sid", session.Session{
		Token: "tok",
		User:  &identity.User{SubjectID: "u-1", Roles: roles},
	}, opts.TTL))

	ctrl := controllers.NewRestaurantsController(upstream.NewClient(platform.URL))
	r := router.New()
	r.Use(session.Middleware(store, opts))
	r.Patch("/api/restaurants/{restaurantID}", "restaurants.update", ctrl.Update)

	req := httptest.NewRequest(http.MethodPatch, "/api/restaurants/r-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: opts.CookieName, Value: "sid"})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec.Code, forwarded
}

func TestManagerMayAssignStaff(t *testing.T) {
	code, forwarded := patchAs(t, []string{"restaurant_manager"}, `{"staff_user_ids":["u-7"]}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, forwarded)
}

func TestManagerMayNotRenameRestaurant(t *testing.T) {
	code, forwarded := patchAs(t, []string{"restaurant_manager"}, `{"name":"New Name"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, forwarded, "denied update must not reach the platform")
}

func TestManagerMayNotAssignManagers(t *testing.T) {
	code, forwarded := patchAs(t, []string{"restaurant_manager"}, `{"manager_user_ids":["u-7"]}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, forwarded)
}

func TestAdminMayEditCoreFieldsAndAssignments(t *testing.T) {
	code, forwarded := patchAs(t, []string{"platform_admin"},
		`{"name":"New Name","manager_user_ids":["u-7"],"staff_user_ids":["u-8"]}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, forwarded)
}

func TestStaffMayNotPatchAnything(t *testing.T) {
	code, forwarded := patchAs(t, []string{"staff"}, `{"staff_user_ids":["u-7"]}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, forwarded)
}
