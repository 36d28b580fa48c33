package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/orderlingo/backoffice/internal/apperr"
	"github.com/orderlingo/backoffice/internal/authz"
	"github.com/orderlingo/backoffice/internal/upstream"
	"github.com/orderlingo/backoffice/pkg/logger"
)

// API is the slice of the platform client the engine needs.
type API interface {
	GetOrder(ctx context.Context, token, restaurantID, orderID string) (*upstream.Order, error)
	CreateOrder(ctx context.Context, token, restaurantID string, body upstream.OrderCreate) (*upstream.Order, error)
	SetOrderStatus(ctx context.Context, token, restaurantID, orderID, status string) (*upstream.Order, error)
}

// Engine validates order mutations against the capability policy and the
// lifecycle table before forwarding them to the platform.
type Engine struct {
	api API
}

func NewEngine(api API) *Engine {
	return &Engine{api: api}
}

// Transition moves an order to target. The current status is re-read from
// the platform immediately before validating, so a stale listing on screen
// cannot smuggle an illegal move through.
func (e *Engine) Transition(ctx context.Context, token string, roles []string, restaurantID, orderID string, target Status) (*upstream.Order, error) {
	if !authz.Allowed(roles, authz.ManageOrders) {
		return nil, apperr.New(apperr.Forbidden, "You do not have permission to manage orders")
	}
	if !Known(target) {
		return nil, apperr.New(apperr.InvalidTransition,
			fmt.Sprintf("Unknown order status %q", target))
	}

	cur, err := e.api.GetOrder(ctx, token, restaurantID, orderID)
	if err != nil {
		return nil, err
	}

	from := Status(cur.Status)
	if !CanTransition(from, target) {
		return nil, apperr.New(apperr.InvalidTransition,
			fmt.Sprintf("Cannot move order from %s to %s%s", from, target, allowedHint(from)))
	}

	updated, err := e.api.SetOrderStatus(ctx, token, restaurantID, orderID, string(target))
	if err != nil {
		return nil, err
	}
	logger.WithCtx(ctx).Info("order: status changed",
		"order_id", orderID, "from", string(from), "to", string(target))
	return updated, nil
}

// Create validates the order lines and forwards the create. An order with
// no lines, or any line with a non-positive quantity, is rejected without a
// platform request.
func (e *Engine) Create(ctx context.Context, token string, roles []string, restaurantID string, body upstream.OrderCreate) (*upstream.Order, error) {
	if !authz.Allowed(roles, authz.ManageOrders) {
		return nil, apperr.New(apperr.Forbidden, "You do not have permission to manage orders")
	}

	fields := map[string]string{}
	if len(body.Items) == 0 {
		fields["items"] = "An order needs at least one line."
	}
	for i, line := range body.Items {
		if strings.TrimSpace(line.MenuItemID) == "" {
			fields[fmt.Sprintf("items.%d.menu_item_id", i)] = "The menu item is required."
		}
		if line.Quantity < 1 {
			fields[fmt.Sprintf("items.%d.quantity", i)] = "Quantity must be at least 1."
		}
	}
	if len(fields) > 0 {
		return nil, apperr.New(apperr.Validation, "Order is invalid").WithFields(fields)
	}

	return e.api.CreateOrder(ctx, token, restaurantID, body)
}

func allowedHint(from Status) string {
	next := AllowedNext(from)
	if len(next) == 0 {
		return "; no further moves are possible"
	}
	names := make([]string, len(next))
	for i, s := range next {
		names[i] = string(s)
	}
	return "; allowed: " + strings.Join(names, ", ")
}
