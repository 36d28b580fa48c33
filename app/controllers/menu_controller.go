package controllers

import (
	"net/http"

	"github.com/orderlingo/backoffice/internal/upstream"
	"github.com/orderlingo/backoffice/pkg/bind"
	"github.com/orderlingo/backoffice/pkg/response"
)

// MenuController covers the three menu surfaces: categories, option groups
// (with their option items), and menu items. All routes are nested under a
// restaurant; capability gating happens in the route table.
type MenuController struct {
	api *upstream.Client
}

func NewMenuController(api *upstream.Client) *MenuController {
	return &MenuController{api: api}
}

// ---- categories ----

func (c *MenuController) ListCategories(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	cats, err := c.api.ListCategories(r.Context(), sess.Token, param(r, "restaurantID"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, cats)
}

type categoryCreateInput struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

func (c *MenuController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in categoryCreateInput
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
	cat, err := c.api.CreateCategory(r.Context(), sess.Token, param(r, "restaurantID"), upstream.MenuCategoryCreate{
		Name:         in.Name,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		IsActive:     in.IsActive,
	})
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Created(w, cat)
}

func (c *MenuController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in upstream.MenuCategoryUpdate
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := current(r)
	cat, err := c.api.UpdateCategory(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "categoryID"), in)
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, cat)
}

func (c *MenuController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	if err := c.api.DeleteCategory(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "categoryID")); err != nil {
		renderErr(w, r, err)
		return
	}
	response.NoContent(w)
}

// ---- option groups ----

func (c *MenuController) ListOptionGroups(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	groups, err := c.api.ListOptionGroups(r.Context(), sess.Token, param(r, "restaurantID"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, groups)
}

type optionGroupCreateInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
	MinSelect   *int    `json:"min_select" validate:"nullable,gte=0"`
	MaxSelect   *int    `json:"max_select" validate:"nullable,gte=0"`
	IsActive    *bool   `json:"is_active"`
}

func (c *MenuController) CreateOptionGroup(w http.ResponseWriter, r *http.Request) {
	var in optionGroupCreateInput
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
	group, err := c.api.CreateOptionGroup(r.Context(), sess.Token, param(r, "restaurantID"), upstream.OptionGroupCreate{
		Name:        in.Name,
		Description: in.Description,
		MinSelect:   in.MinSelect,
		MaxSelect:   in.MaxSelect,
		IsActive:    in.IsActive,
	})
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Created(w, group)
}

func (c *MenuController) UpdateOptionGroup(w http.ResponseWriter, r *http.Request) {
	var in upstream.OptionGroupUpdate
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := current(r)
	group, err := c.api.UpdateOptionGroup(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "groupID"), in)
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, group)
}

func (c *MenuController) DeleteOptionGroup(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	if err := c.api.DeleteOptionGroup(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "groupID")); err != nil {
		renderErr(w, r, err)
		return
	}
	response.NoContent(w)
}

type optionCreateInput struct {
	Name       string  `json:"name" validate:"required,max=200"`
	PriceExtra *string `json:"price_extra" validate:"nullable,numeric"`
	IsActive   *bool   `json:"is_active"`
}

func (c *MenuController) CreateOption(w http.ResponseWriter, r *http.Request) {
	var in optionCreateInput
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
	opt, err := c.api.CreateOption(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "groupID"), upstream.OptionItemCreate{
		Name:       in.Name,
		PriceExtra: in.PriceExtra,
		IsActive:   in.IsActive,
	})
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Created(w, opt)
}

func (c *MenuController) UpdateOption(w http.ResponseWriter, r *http.Request) {
	var in upstream.OptionItemUpdate
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := current(r)
	opt, err := c.api.UpdateOption(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "groupID"), param(r, "optionID"), in)
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, opt)
}

func (c *MenuController) DeleteOption(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	if err := c.api.DeleteOption(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "groupID"), param(r, "optionID")); err != nil {
		renderErr(w, r, err)
		return
	}
	response.NoContent(w)
}

// ---- menu items ----

func (c *MenuController) ListItems(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	items, err := c.api.ListMenuItems(r.Context(), sess.Token, param(r, "restaurantID"), r.URL.Query().Get("category_id"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, items)
}

func (c *MenuController) GetItem(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	item, err := c.api.GetMenuItem(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "itemID"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, item)
}

type menuItemCreateInput struct {
	Label          string      `json:"label" validate:"required,max=200"`
	Description    *string     `json:"description"`
	Price          string      `json:"price" validate:"required,numeric"`
	ImageURL       *string     `json:"image_url" validate:"nullable,url"`
	IsActive       *bool       `json:"is_active"`
	DisplayOrder   *int        `json:"display_order"`
	Tags           []string    `json:"tags"`
	Ingredients    interface{} `json:"ingredients"`
	CategoryID     *string     `json:"category_id" validate:"nullable,uuid"`
	OptionGroupIDs []string    `json:"option_group_ids"`
}

func (c *MenuController) CreateItem(w http.ResponseWriter, r *http.Request) {
	var in menuItemCreateInput
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
	item, err := c.api.CreateMenuItem(r.Context(), sess.Token, param(r, "restaurantID"), upstream.MenuItemCreate{
		Label:          in.Label,
		Description:    in.Description,
		Price:          in.Price,
		ImageURL:       in.ImageURL,
		IsActive:       in.IsActive,
		DisplayOrder:   in.DisplayOrder,
		Tags:           in.Tags,
		Ingredients:    in.Ingredients,
		CategoryID:     in.CategoryID,
		OptionGroupIDs: in.OptionGroupIDs,
	})
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Created(w, item)
}

func (c *MenuController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var in upstream.MenuItemUpdate
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := current(r)
	item, err := c.api.UpdateMenuItem(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "itemID"), in)
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, item)
}

func (c *MenuController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	if err := c.api.DeleteMenuItem(r.Context(), sess.Token, param(r, "restaurantID"), param(r, "itemID")); err != nil {
		renderErr(w, r, err)
		return
	}
	response.NoContent(w)
}
