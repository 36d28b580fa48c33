package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderlingo/backoffice/internal/apperr"
	"github.com/orderlingo/backoffice/internal/order"
	"github.com/orderlingo/backoffice/internal/upstream"
)

type stubAPI struct {
	current    *upstream.Order
	getErr     error
	setCalls   int
	setStatus  string
	createReqs int
}

func (s *stubAPI) GetOrder(ctx context.Context, token, restaurantID, orderID string) (*upstream.Order, error) {
	return s.current, s.getErr
}

func (s *stubAPI) CreateOrder(ctx context.Context, token, restaurantID string, body upstream.OrderCreate) (*upstream.Order, error) {
	s.createReqs++
	return &upstream.Order{ID: "o-new", RestaurantID: restaurantID, Status: "draft"}, nil
}

func (s *stubAPI) SetOrderStatus(ctx context.Context, token, restaurantID, orderID, status string) (*upstream.Order, error) {
	s.setCalls++
	s.setStatus = status
	out := *s.current
	out.Status = status
	return &out, nil
}

func orderIn(status string) *upstream.Order {
	return &upstream.Order{ID: "o-1", RestaurantID: "r-1", Status: status}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{"draft", "confirmed", true},
		{"draft", "cancelled", true},
		{"draft", "ready", false},
		{"confirmed", "preparing", true},
		{"confirmed", "cancelled", true},
		{"confirmed", "delivered", false},
		{"preparing", "ready", true},
		{"preparing", "cancelled", true},
		{"ready", "delivered", true},
		{"ready", "cancelled", false},
		{"delivered", "cancelled", false},
		{"cancelled", "draft", false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.ok, order.CanTransition(order.Status(tc.from), order.Status(tc.to)),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestAllowedNextPerStatus(t *testing.T) {
	assert.ElementsMatch(t, []order.Status{order.Confirmed, order.Cancelled}, order.AllowedNext(order.Draft))
	assert.ElementsMatch(t, []order.Status{order.Preparing, order.Cancelled}, order.AllowedNext(order.Confirmed))
	assert.ElementsMatch(t, []order.Status{order.Ready, order.Cancelled}, order.AllowedNext(order.Preparing))
	assert.ElementsMatch(t, []order.Status{order.Delivered}, order.AllowedNext(order.Ready))
	assert.Empty(t, order.AllowedNext(order.Delivered), "delivered is terminal")
	assert.Empty(t, order.AllowedNext(order.Cancelled), "cancelled is terminal")
}

func TestUnknownStatusAllowsNothing(t *testing.T) {
	assert.Empty(t, order.AllowedNext(order.Status("refunded")))
	assert.False(t, order.CanTransition(order.Status("refunded"), order.Cancelled))
}

func TestReadyToConfirmedAlwaysRejected(t *testing.T) {
	for _, roles := range [][]string{
		{"platform_admin"},
		{"restaurant_manager"},
		{"staff"},
		{"platform_admin", "restaurant_manager", "staff"},
	} {
		api := &stubAPI{current: orderIn("ready")}
		e := order.NewEngine(api)

		_, err := e.Transition(context.Background(), "tok", roles, "r-1", "o-1", order.Confirmed)

		require.Errorf(t, err, "roles %v", roles)
		assert.True(t, apperr.IsKind(err, apperr.InvalidTransition))
		assert.Zero(t, api.setCalls, "illegal move must not reach the platform")
	}
}

func TestDraftToCancelledSucceedsForAdmin(t *testing.T) {
	api := &stubAPI{current: orderIn("draft")}
	e := order.NewEngine(api)

	got, err := e.Transition(context.Background(), "tok", []string{"platform_admin"}, "r-1", "o-1", order.Cancelled)

	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, 1, api.setCalls)
	assert.Equal(t, "cancelled", api.setStatus)
}

func TestTransitionUsesFreshStatusNotCallerBelief(t *testing.T) {
	// The screen showed "confirmed" but the order moved on to "ready" since.
	api := &stubAPI{current: orderIn("ready")}
	e := order.NewEngine(api)

	_, err := e.Transition(context.Background(), "tok", []string{"staff"}, "r-1", "o-1", order.Preparing)

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.InvalidTransition))
	assert.Zero(t, api.setCalls)
}

func TestTransitionWithoutCapabilityIsForbidden(t *testing.T) {
	api := &stubAPI{current: orderIn("draft")}
	e := order.NewEngine(api)

	_, err := e.Transition(context.Background(), "tok", []string{"auditor"}, "r-1", "o-1", order.Confirmed)

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))
	assert.Zero(t, api.setCalls)
}

func TestTransitionToUnknownStatusRejectedBeforeFetch(t *testing.T) {
	api := &stubAPI{getErr: assert.AnError} // would fail if the fetch ran
	e := order.NewEngine(api)

	_, err := e.Transition(context.Background(), "tok", []string{"staff"}, "r-1", "o-1", order.Status("refunded"))

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.InvalidTransition))
}

func TestCreateRejectsEmptyOrder(t *testing.T) {
	api := &stubAPI{}
	e := order.NewEngine(api)

	_, err := e.Create(context.Background(), "tok", []string{"staff"}, "r-1", upstream.OrderCreate{})

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
	assert.Contains(t, apperr.FieldErrors(err), "items")
	assert.Zero(t, api.createReqs, "invalid order must not issue a request")
}

func TestCreateRejectsZeroQuantityLine(t *testing.T) {
	api := &stubAPI{}
	e := order.NewEngine(api)

	_, err := e.Create(context.Background(), "tok", []string{"staff"}, "r-1", upstream.OrderCreate{
		Items: []upstream.OrderLine{
			{MenuItemID: "m-1", Quantity: 2},
			{MenuItemID: "m-2", Quantity: 0},
		},
	})

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
	assert.Contains(t, apperr.FieldErrors(err), "items.1.quantity")
	assert.Zero(t, api.createReqs)
}

func TestCreateForwardsValidOrder(t *testing.T) {
	api := &stubAPI{}
	e := order.NewEngine(api)

	got, err := e.Create(context.Background(), "tok", []string{"staff"}, "r-1", upstream.OrderCreate{
		Items: []upstream.OrderLine{{MenuItemID: "m-1", Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, "o-new", got.ID)
	assert.Equal(t, 1, api.createReqs)
}
