// Package availability derives the per-item availability view a restaurant
// dashboard shows alongside its menu.
package availability

import "github.com/orderlingo/backoffice/internal/upstream"

// Item is one menu item's availability verdict.
type Item struct {
	MenuItemID    string        `json:"menu_item_id"`
	Label         string        `json:"label"`
	Available     bool          `json:"available"`
	Reason        *string       `json:"reason,omitempty"`
	Substitutions []interface{} `json:"substitutions"`
}

// View is the availability report for one restaurant.
type View struct {
	RestaurantID string `json:"restaurant_id"`
	Items        []Item `json:"items"`
}

// Derive computes availability from the menu. Inactive items are omitted
// entirely: they are not on the menu, so they have no availability to
// report. Active items are currently always available; ingredient-level
// stock checks will tighten this once inventory levels carry recipes.
func Derive(restaurantID string, menu []upstream.MenuItem) View {
	items := make([]Item, 0, len(menu))
	for _, m := range menu {
		if !m.IsActive {
			continue
		}
		items = append(items, Item{
			MenuItemID:    m.ID,
			Label:         m.Label,
			Available:     true,
			Substitutions: []interface{}{},
		})
	}
	return View{RestaurantID: restaurantID, Items: items}
}
