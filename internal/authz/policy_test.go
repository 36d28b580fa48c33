package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orderlingo/backoffice/internal/authz"
)

func TestPolicyTable(t *testing.T) {
	admin := []string{"platform_admin"}
	manager := []string{"restaurant_manager"}
	staff := []string{"staff"}

	cases := []struct {
		capability authz.Capability
		admin      bool
		manager    bool
		staff      bool
	}{
		{authz.ManageRestaurantCoreFields, true, false, false},
		{authz.ManageManagers, true, false, false},
		{authz.ManageStaff, true, true, false},
		{authz.ManageMenu, true, true, false},
		{authz.ManageInventory, true, true, false},
		{authz.ManageOrders, true, true, true},
		{authz.ViewOnly, true, true, true},
	}

	for _, c := range cases {
		assert.Equal(t, c.admin, authz.Allowed(admin, c.capability), "%s / platform_admin", c.capability)
		assert.Equal(t, c.manager, authz.Allowed(manager, c.capability), "%s / restaurant_manager", c.capability)
		assert.Equal(t, c.staff, authz.Allowed(staff, c.capability), "%s / staff", c.capability)
	}
}

func TestStaffOnlyDeniedAllElevated(t *testing.T) {
	staff := []string{"staff"}
	for _, c := range []authz.Capability{
		authz.ManageMenu,
		authz.ManageInventory,
		authz.ManageManagers,
		authz.ManageStaff,
		authz.ManageRestaurantCoreFields,
	} {
		assert.False(t, authz.Allowed(staff, c), "staff should be denied %s", c)
	}
	assert.True(t, authz.Allowed(staff, authz.ManageOrders))
	assert.True(t, authz.Allowed(staff, authz.ViewOnly))
}

func TestRoleUnionTakesMostPermissive(t *testing.T) {
	both := []string{"staff", "restaurant_manager"}
	assert.True(t, authz.Allowed(both, authz.ManageMenu))
	assert.True(t, authz.Allowed(both, authz.ManageStaff))
	assert.False(t, authz.Allowed(both, authz.ManageManagers))
}

func TestUnrecognizedRolesKeepViewOnly(t *testing.T) {
	nobody := []string{"realm-default", "offline_access"}
	assert.True(t, authz.Allowed(nobody, authz.ViewOnly))
	for _, c := range []authz.Capability{
		authz.ManageOrders,
		authz.ManageMenu,
		authz.ManageInventory,
		authz.ManageStaff,
		authz.ManageManagers,
		authz.ManageRestaurantCoreFields,
	} {
		assert.False(t, authz.Allowed(nobody, c), "unrecognized roles should be denied %s", c)
	}
}

func TestUnknownCapabilityFailsSafe(t *testing.T) {
	assert.False(t, authz.Allowed([]string{"platform_admin"}, authz.Capability("manage-billing")))
}

func TestCapabilitiesListing(t *testing.T) {
	caps := authz.Capabilities([]string{"staff"})
	assert.ElementsMatch(t, []authz.Capability{authz.ManageOrders, authz.ViewOnly}, caps)
}
