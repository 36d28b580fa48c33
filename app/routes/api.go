// Package routes wires the backoffice API surface onto the router.
package routes

import (
	"github.com/orderlingo/backoffice/app/controllers"
	"github.com/orderlingo/backoffice/internal/authz"
	"github.com/orderlingo/backoffice/internal/identity"
	"github.com/orderlingo/backoffice/internal/order"
	"github.com/orderlingo/backoffice/internal/upstream"
	"github.com/orderlingo/backoffice/pkg/router"
)

// RegisterAPI mounts every API route. Read routes need a session; mutating
// routes are additionally gated by capability, except where the check has
// to see the payload (restaurant updates) or the current order status
// (status transitions) — those enforce inside the handler or engine.
func RegisterAPI(r *router.Router, api *upstream.Client, gateway *identity.Gateway) {
	auth := controllers.NewAuthController(gateway)
	restos := controllers.NewRestaurantsController(api)
	menu := controllers.NewMenuController(api)
	inv := controllers.NewInventoryController(api)
	orders := controllers.NewOrdersController(api, order.NewEngine(api))
	users := controllers.NewUsersController(api)

	root := r.Group("/api")

	root.Post("/auth/login", "auth.login", auth.Login)
	root.Post("/auth/logout", "auth.logout", auth.Logout)
	root.Get("/auth/me", "auth.me", auth.Me)

	protected := root.Group("", authz.Authenticated)

	// User directory for the assignment pickers.
	protected.Get("/users", "users.list", users.List, authz.Require(authz.ManageStaff))

	protected.Get("/restaurants", "restaurants.list", restos.List)
	protected.Post("/restaurants", "restaurants.create", restos.Create, authz.Require(authz.ManageRestaurantCoreFields))

	resto := protected.Group("/restaurants/{restaurantID}")
	resto.Get("", "restaurants.get", restos.Get)
	// Field-group capability checks live in the handler.
	resto.Patch("", "restaurants.update", restos.Update)
	resto.Get("/managers", "restaurants.managers", restos.Managers, authz.Require(authz.ManageManagers))
	resto.Get("/staff", "restaurants.staff", restos.Staff, authz.Require(authz.ManageStaff))

	manageMenu := authz.Require(authz.ManageMenu)
	resto.Get("/menu/categories", "categories.list", menu.ListCategories)
	resto.Post("/menu/categories", "categories.create", menu.CreateCategory, manageMenu)
	resto.Patch("/menu/categories/{categoryID}", "categories.update", menu.UpdateCategory, manageMenu)
	resto.Delete("/menu/categories/{categoryID}", "categories.delete", menu.DeleteCategory, manageMenu)

	resto.Get("/menu/option-groups", "option_groups.list", menu.ListOptionGroups)
	resto.Post("/menu/option-groups", "option_groups.create", menu.CreateOptionGroup, manageMenu)
	resto.Patch("/menu/option-groups/{groupID}", "option_groups.update", menu.UpdateOptionGroup, manageMenu)
	resto.Delete("/menu/option-groups/{groupID}", "option_groups.delete", menu.DeleteOptionGroup, manageMenu)
	resto.Post("/menu/option-groups/{groupID}/options", "options.create", menu.CreateOption, manageMenu)
	resto.Patch("/menu/option-groups/{groupID}/options/{optionID}", "options.update", menu.UpdateOption, manageMenu)
	resto.Delete("/menu/option-groups/{groupID}/options/{optionID}", "options.delete", menu.DeleteOption, manageMenu)

	resto.Get("/menu/items", "menu_items.list", menu.ListItems)
	resto.Get("/menu/items/{itemID}", "menu_items.get", menu.GetItem)
	resto.Post("/menu/items", "menu_items.create", menu.CreateItem, manageMenu)
	resto.Patch("/menu/items/{itemID}", "menu_items.update", menu.UpdateItem, manageMenu)
	resto.Delete("/menu/items/{itemID}", "menu_items.delete", menu.DeleteItem, manageMenu)

	manageInventory := authz.Require(authz.ManageInventory)
	resto.Get("/inventory/items", "inventory.list", inv.List)
	resto.Post("/inventory/items", "inventory.create", inv.CreateItem, manageInventory)
	resto.Put("/inventory/items/{itemID}/levels", "inventory.set_level", inv.SetLevel, manageInventory)
	resto.Get("/availability", "availability.get", inv.Availability)

	// Order mutations rely on the lifecycle engine's own capability check,
	// which also re-reads the current status before deciding.
	resto.Get("/orders", "orders.list", orders.List)
	resto.Get("/orders/{orderID}", "orders.get", orders.Get)
	resto.Post("/orders", "orders.create", orders.Create)
	resto.Patch("/orders/{orderID}/status", "orders.update_status", orders.UpdateStatus)
}
