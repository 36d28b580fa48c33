// Package authz is the single source of truth for role-based gating.
//
// Every screen toggle and every mutating route consults this table; nothing
// else in the codebase derives permissions from role names. Client-side
// gating is a UX convenience — the platform API enforces the same policy
// independently and remains the authority of record.
package authz

// Role is a realm role as reported by token introspection.
type Role string

const (
	RolePlatformAdmin     Role = "platform_admin"
	RoleRestaurantManager Role = "restaurant_manager"
	RoleStaff             Role = "staff"
)

// Capability is a named permission checked by the policy.
type Capability string

const (
	ManageRestaurantCoreFields Capability = "manage-restaurant-core-fields"
	ManageManagers             Capability = "manage-managers"
	ManageStaff                Capability = "manage-staff"
	ManageMenu                 Capability = "manage-menu"
	ManageInventory            Capability = "manage-inventory"
	ManageOrders               Capability = "manage-orders"
	ViewOnly                   Capability = "view-only"
)

// policy grants capabilities per role. Role sets are evaluated by union:
// holding any granting role is enough, so a manager+staff user gets the
// manager grants. Roles outside the table grant nothing beyond ViewOnly.
var policy = map[Capability]map[Role]bool{
	ManageRestaurantCoreFields: {
		RolePlatformAdmin: true,
	},
	ManageManagers: {
		RolePlatformAdmin: true,
	},
	ManageStaff: {
		RolePlatformAdmin:     true,
		RoleRestaurantManager: true,
	},
	ManageMenu: {
		RolePlatformAdmin:     true,
		RoleRestaurantManager: true,
	},
	ManageInventory: {
		RolePlatformAdmin:     true,
		RoleRestaurantManager: true,
	},
	ManageOrders: {
		RolePlatformAdmin:     true,
		RoleRestaurantManager: true,
		RoleStaff:             true,
	},
	ViewOnly: {
		RolePlatformAdmin:     true,
		RoleRestaurantManager: true,
		RoleStaff:             true,
	},
}

// Allowed reports whether a user holding roles may exercise capability.
// ViewOnly is granted to every authenticated user, recognized roles or not.
func Allowed(roles []string, capability Capability) bool {
	if capability == ViewOnly {
		return true
	}
	grants, ok := policy[capability]
	if !ok {
		// Unknown capability: fail safe, not fail open.
		return false
	}
	for _, r := range roles {
		if grants[Role(r)] {
			return true
		}
	}
	return false
}

// Capabilities returns every capability roles grant, for the dashboard to
// decide which controls to render.
func Capabilities(roles []string) []Capability {
	all := []Capability{
		ManageRestaurantCoreFields,
		ManageManagers,
		ManageStaff,
		ManageMenu,
		ManageInventory,
		ManageOrders,
		ViewOnly,
	}
	out := make([]Capability, 0, len(all))
	for _, c := range all {
		if Allowed(roles, c) {
			out = append(out, c)
		}
	}
	return out
}
