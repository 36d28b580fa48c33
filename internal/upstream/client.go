// Package upstream is the typed facade over the platform REST API. It owns
// URL construction, bearer auth, and the translation of upstream error
// bodies into the backoffice error taxonomy. Handlers never touch raw HTTP
// against the platform.
package upstream

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/orderlingo/backoffice/internal/apperr"
	"github.com/orderlingo/backoffice/internal/identity"
	"github.com/orderlingo/backoffice/pkg/httpx"
	"github.com/orderlingo/backoffice/pkg/metrics"
)

// Client talks to the platform API. All methods take the caller's access
// token: the backoffice never holds platform credentials of its own.
type Client struct {
	base string
}

// NewClient builds a Client for the given platform API base URL.
func NewClient(baseURL string) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/")}
}

// apiError is the platform's error body. FastAPI-style endpoints use
// "detail", the auth proxy uses "error"; either may be present.
type apiError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (e apiError) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Error != "" {
		return e.Error
	}
	return "Request failed"
}

// send executes the request, records metrics under op, and decodes a 2xx
// body into dest (skipped when dest is nil). Non-2xx responses come back as
// taxonomy errors carrying the upstream's own message and status.
func (c *Client) send(req *httpx.Request, op string, dest interface{}) error {
	start := time.Now()
	resp, err := req.Send()
	metrics.ObserveUpstream("api", op, start)
	if err != nil {
		metrics.RecordUpstreamError("api", op)
		return apperr.Wrap(apperr.RequestFailed, "Platform API unreachable", err)
	}

	if !resp.OK() {
		var body apiError
		_ = resp.JSON(&body)
		msg := body.message()

		var kind apperr.Kind
		switch {
		case resp.StatusCode == http.StatusNotFound:
			kind = apperr.NotFound
		case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
			kind = apperr.Validation
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			kind = apperr.Forbidden
		case resp.StatusCode == http.StatusConflict:
			kind = apperr.InvalidTransition
		default:
			kind = apperr.RequestFailed
		}
		return apperr.New(kind, msg).WithStatus(resp.StatusCode)
	}

	if dest != nil && len(resp.Raw) > 0 {
		if err := resp.JSON(dest); err != nil {
			return apperr.Wrap(apperr.RequestFailed, "Platform API returned an unreadable response", err)
		}
	}
	return nil
}

func (c *Client) url(format string, args ...interface{}) string {
	return c.base + fmt.Sprintf(format, args...)
}

// ---- identity ----

// IntrospectToken resolves an access token into its identity via the
// platform's token debug endpoint. Satisfies identity.Introspector.
func (c *Client) IntrospectToken(ctx context.Context, token string) (*identity.User, error) {
	var u identity.User
	req := httpx.Get(c.url("/debug/token")).Bearer(token).WithContext(ctx)
	if err := c.send(req, "introspect", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ---- restaurants ----

func (c *Client) ListRestaurants(ctx context.Context, token string) ([]Restaurant, error) {
	var out []Restaurant
	req := httpx.Get(c.url("/restaurants")).Bearer(token).WithContext(ctx)
	return out, c.send(req, "restaurants.list", &out)
}

func (c *Client) GetRestaurant(ctx context.Context, token, id string) (*Restaurant, error) {
	var out Restaurant
	req := httpx.Get(c.url("/restaurants/%s", id)).Bearer(token).WithContext(ctx)
	if err := c.send(req, "restaurants.get", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRestaurant(ctx context.Context, token string, body RestaurantCreate) (*Restaurant, error) {
	var out Restaurant
	req := httpx.Post(c.url("/restaurants")).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "restaurants.create", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRestaurant(ctx context.Context, token, id string, body RestaurantUpdate) (*Restaurant, error) {
	var out Restaurant
	req := httpx.Patch(c.url("/restaurants/%s", id)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "restaurants.update", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RestaurantManagers(ctx context.Context, token, id string) ([]string, error) {
	var out []string
	req := httpx.Get(c.url("/restaurants/%s/managers", id)).Bearer(token).WithContext(ctx)
	return out, c.send(req, "restaurants.managers", &out)
}

func (c *Client) RestaurantStaff(ctx context.Context, token, id string) ([]string, error) {
	var out []string
	req := httpx.Get(c.url("/restaurants/%s/staff", id)).Bearer(token).WithContext(ctx)
	return out, c.send(req, "restaurants.staff", &out)
}

// ---- menu categories ----

func (c *Client) ListCategories(ctx context.Context, token, restaurantID string) ([]MenuCategory, error) {
	var out []MenuCategory
	req := httpx.Get(c.url("/restaurants/%s/menu/categories", restaurantID)).Bearer(token).WithContext(ctx)
	return out, c.send(req, "categories.list", &out)
}

func (c *Client) CreateCategory(ctx context.Context, token, restaurantID string, body MenuCategoryCreate) (*MenuCategory, error) {
	var out MenuCategory
	req := httpx.Post(c.url("/restaurants/%s/menu/categories", restaurantID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "categories.create", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token, restaurantID, categoryID string, body MenuCategoryUpdate) (*MenuCategory, error) {
	var out MenuCategory
	req := httpx.Patch(c.url("/restaurants/%s/menu/categories/%s", restaurantID, categoryID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "categories.update", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token, restaurantID, categoryID string) error {
	req := httpx.Delete(c.url("/restaurants/%s/menu/categories/%s", restaurantID, categoryID)).Bearer(token).WithContext(ctx)
	return c.send(req, "categories.delete", nil)
}

// ---- option groups ----

func (c *Client) ListOptionGroups(ctx context.Context, token, restaurantID string) ([]OptionGroupWithItems, error) {
	var out []OptionGroupWithItems
	req := httpx.Get(c.url("/restaurants/%s/menu/option-groups", restaurantID)).Bearer(token).WithContext(ctx)
	return out, c.send(req, "option_groups.list", &out)
}

func (c *Client) CreateOptionGroup(ctx context.Context, token, restaurantID string, body OptionGroupCreate) (*OptionGroup, error) {
	var out OptionGroup
	req := httpx.Post(c.url("/restaurants/%s/menu/option-groups", restaurantID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "option_groups.create", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOptionGroup(ctx context.Context, token, restaurantID, groupID string, body OptionGroupUpdate) (*OptionGroup, error) {
	var out OptionGroup
	req := httpx.Patch(c.url("/restaurants/%s/menu/option-groups/%s", restaurantID, groupID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "option_groups.update", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOptionGroup(ctx context.Context, token, restaurantID, groupID string) error {
	req := httpx.Delete(c.url("/restaurants/%s/menu/option-groups/%s", restaurantID, groupID)).Bearer(token).WithContext(ctx)
	return c.send(req, "option_groups.delete", nil)
}

func (c *Client) CreateOption(ctx context.Context, token, restaurantID, groupID string, body OptionItemCreate) (*OptionItem, error) {
	var out OptionItem
	req := httpx.Post(c.url("/restaurants/%s/menu/option-groups/%s/options", restaurantID, groupID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "options.create", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOption(ctx context.Context, token, restaurantID, groupID, optionID string, body OptionItemUpdate) (*OptionItem, error) {
	var out OptionItem
	req := httpx.Patch(c.url("/restaurants/%s/menu/option-groups/%s/options/%s", restaurantID, groupID, optionID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "options.update", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOption(ctx context.Context, token, restaurantID, groupID, optionID string) error {
	req := httpx.Delete(c.url("/restaurants/%s/menu/option-groups/%s/options/%s", restaurantID, groupID, optionID)).Bearer(token).WithContext(ctx)
	return c.send(req, "options.delete", nil)
}

// ---- menu items ----

func (c *Client) ListMenuItems(ctx context.Context, token, restaurantID, categoryID string) ([]MenuItem, error) {
	var out []MenuItem
	req := httpx.Get(c.url("/restaurants/%s/menu/items", restaurantID)).
		Query(map[string]string{"category_id": categoryID}).
		Bearer(token).WithContext(ctx)
	return out, c.send(req, "menu_items.list", &out)
}

func (c *Client) GetMenuItem(ctx context.Context, token, restaurantID, itemID string) (*MenuItem, error) {
	var out MenuItem
	req := httpx.Get(c.url("/restaurants/%s/menu/items/%s", restaurantID, itemID)).Bearer(token).WithContext(ctx)
	if err := c.send(req, "menu_items.get", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, token, restaurantID string, body MenuItemCreate) (*MenuItem, error) {
	var out MenuItem
	req := httpx.Post(c.url("/restaurants/%s/menu/items", restaurantID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "menu_items.create", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, token, restaurantID, itemID string, body MenuItemUpdate) (*MenuItem, error) {
	var out MenuItem
	req := httpx.Patch(c.url("/restaurants/%s/menu/items/%s", restaurantID, itemID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "menu_items.update", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, token, restaurantID, itemID string) error {
	req := httpx.Delete(c.url("/restaurants/%s/menu/items/%s", restaurantID, itemID)).Bearer(token).WithContext(ctx)
	return c.send(req, "menu_items.delete", nil)
}

// ---- inventory ----

func (c *Client) ListInventory(ctx context.Context, token, restaurantID string) ([]InventoryItem, error) {
	var out []InventoryItem
	req := httpx.Get(c.url("/restaurants/%s/inventory/items", restaurantID)).Bearer(token).WithContext(ctx)
	return out, c.send(req, "inventory.list", &out)
}

func (c *Client) CreateInventoryItem(ctx context.Context, token, restaurantID string, body InventoryItemCreate) (*InventoryItem, error) {
	var out InventoryItem
	req := httpx.Post(c.url("/restaurants/%s/inventory/items", restaurantID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "inventory.create", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetInventoryLevel(ctx context.Context, token, restaurantID, itemID string, body InventoryLevelUpdate) (*InventoryLevel, error) {
	var out InventoryLevel
	req := httpx.Put(c.url("/restaurants/%s/inventory/items/%s/levels", restaurantID, itemID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "inventory.set_level", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- orders ----

// ListOrders unwraps the platform's {"orders": [...]} envelope.
func (c *Client) ListOrders(ctx context.Context, token, restaurantID string) ([]Order, error) {
	var out struct {
		Orders []Order `json:"orders"`
	}
	req := httpx.Get(c.url("/restaurants/%s/orders", restaurantID)).Bearer(token).WithContext(ctx)
	if err := c.send(req, "orders.list", &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) GetOrder(ctx context.Context, token, restaurantID, orderID string) (*Order, error) {
	var out Order
	req := httpx.Get(c.url("/restaurants/%s/orders/%s", restaurantID, orderID)).Bearer(token).WithContext(ctx)
	if err := c.send(req, "orders.get", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, token, restaurantID string, body OrderCreate) (*Order, error) {
	var out Order
	req := httpx.Post(c.url("/restaurants/%s/orders", restaurantID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "orders.create", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetOrderStatus(ctx context.Context, token, restaurantID, orderID, status string) (*Order, error) {
	var out Order
	body := map[string]string{"status": status}
	req := httpx.Patch(c.url("/restaurants/%s/orders/%s/status", restaurantID, orderID)).Bearer(token).Body(body).WithContext(ctx)
	if err := c.send(req, "orders.set_status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- user directory ----

// ListUsers queries the Keycloak-backed directory, optionally filtered by
// realm role and by a username/email search string.
func (c *Client) ListUsers(ctx context.Context, token, role, search string) ([]DirectoryUser, error) {
	var out []DirectoryUser
	req := httpx.Get(c.url("/users")).
		Query(map[string]string{"role": role, "search": search}).
		Bearer(token).WithContext(ctx)
	return out, c.send(req, "users.list", &out)
}
