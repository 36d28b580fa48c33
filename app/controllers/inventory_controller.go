package controllers

import (
	"net/http"

	"github.com/orderlingo/backoffice/internal/availability"
	"github.com/orderlingo/backoffice/internal/upstream"
	"github.com/orderlingo/backoffice/pkg/bind"
	"github.com/orderlingo/backoffice/pkg/response"
)

type InventoryController struct {
	api *upstream.Client
}

func NewInventoryController(api *upstream.Client) *InventoryController {
	return &InventoryController{api: api}
}

func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	items, err := c.api.ListInventory(r.Context(), sess.Token, param(r, "restaurantID"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, items)
}

type inventoryItemCreateInput struct {
	Name string  `json:"name" validate:"required,max=200"`
	Unit *string `json:"unit" validate:"nullable,max=50"`
}

func (c *InventoryController) CreateItem(w http.ResponseWriter, r *http.Request) {
	var in inventoryItemCreateInput
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
	item, err := c.api.CreateInventoryItem(r.Context(), sess.Token, param(r, "restaurantID"), upstream.InventoryItemCreate{
		Name: in.Name,
		Unit: in.Unit,
	})
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Created(w, item)
}

type inventoryLevelInput struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
	InStock  bool    `json:"in_stock"`
}

func (c *InventoryController) SetLevel(w http.ResponseWriter, r *http.Request) {
	var in inventoryLevelInput
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
	level, err := c.api.SetInventoryLevel(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "itemID"), upstream.InventoryLevelUpdate{
		Quantity: in.Quantity,
		InStock:  in.InStock,
	})
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, level)
}

// Availability derives the availability view from the restaurant's current
// menu rather than proxying a platform endpoint, so the dashboard sees one
// consistent snapshot per request.
func (c *InventoryController) Availability(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	restaurantID := param(r, "restaurantID")

	menu, err := c.api.ListMenuItems(r.Context(), sess.Token, restaurantID, "")
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, availability.Derive(restaurantID, menu))
}
