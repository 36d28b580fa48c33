package controllers

import (
	"net/http"

	"github.com/orderlingo/backoffice/internal/order"
	"github.com/orderlingo/backoffice/internal/upstream"
	"github.com/orderlingo/backoffice/pkg/bind"
	"github.com/orderlingo/backoffice/pkg/response"
)

type OrdersController struct {
	api    *upstream.Client
	engine *order.Engine
}

func NewOrdersController(api *upstream.Client, engine *order.Engine) *OrdersController {
	return &OrdersController{api: api, engine: engine}
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	orders, err := c.api.ListOrders(r.Context(), sess.Token, param(r, "restaurantID"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, orders)
}

func (c *OrdersController) Get(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	o, err := c.api.GetOrder(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "orderID"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, o)
}

func (c *OrdersController) Create(w http.ResponseWriter, r *http.Request) {
	var in upstream.OrderCreate
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := current(r)
	o, err := c.engine.Create(r.Context(), sess.Token, sess.Roles(), param(r, "restaurantID"), in)
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Created(w, o)
}

type statusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus routes every status change through the lifecycle engine; the
// raw platform endpoint is never exposed.
func (c *OrdersController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in statusInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sess := current(r)
	o, err := c.engine.Transition(r.Context(), sess.Token, sess.Roles(),
		param(r, "restaurantID"), param(r, "orderID"), order.Status(in.Status))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, o)
}
