package controllers

import (
	"net/http"

	"github.com/orderlingo/backoffice/internal/apperr"
	"github.com/orderlingo/backoffice/internal/authz"
	"github.com/orderlingo/backoffice/internal/upstream"
	"github.com/orderlingo/backoffice/pkg/bind"
	"github.com/orderlingo/backoffice/pkg/response"
)

type RestaurantsController struct {
	api *upstream.Client
}

func NewRestaurantsController(api *upstream.Client) *RestaurantsController {
	return &RestaurantsController{api: api}
}

func (c *RestaurantsController) List(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	restos, err := c.api.ListRestaurants(r.Context(), sess.Token)
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, restos)
}

func (c *RestaurantsController) Get(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	resto, err := c.api.GetRestaurant(r.Context(), sess.Token, param(r, "restaurantID"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, resto)
}

type restaurantCreateInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Slug        *string `json:"slug" validate:"nullable,alpha_dash"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (c *RestaurantsController) Create(w http.ResponseWriter, r *http.Request) {
	var in restaurantCreateInput
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
	resto, err := c.api.CreateRestaurant(r.Context(), sess.Token, upstream.RestaurantCreate{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		IsActive:    in.IsActive,
	})
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Created(w, resto)
}

type restaurantUpdateInput struct {
	Name           *string  `json:"name" validate:"nullable,max=200"`
	Slug           *string  `json:"slug" validate:"nullable,alpha_dash"`
	Description    *string  `json:"description"`
	IsActive       *bool    `json:"is_active"`
	ManagerUserIDs []string `json:"manager_user_ids"`
	StaffUserIDs   []string `json:"staff_user_ids"`
}

func (in restaurantUpdateInput) touchesCoreFields() bool {
	return in.Name != nil || in.Slug != nil || in.Description != nil || in.IsActive != nil
}

// Update patches a restaurant. The single endpoint carries three field
// groups gated by different capabilities: core fields, manager assignments,
// staff assignments. Each group present in the payload is checked on its
// own, so a manager can reassign staff without being able to rename the
// restaurant through the same request.
func (c *RestaurantsController) Update(w http.ResponseWriter, r *http.Request) {
	var in restaurantUpdateInput
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
	roles := sess.Roles()
	if in.touchesCoreFields() && !authz.Allowed(roles, authz.ManageRestaurantCoreFields) {
		renderErr(w, r, apperr.New(apperr.Forbidden, "You do not have permission to edit restaurant details"))
		return
	}
	if in.ManagerUserIDs != nil && !authz.Allowed(roles, authz.ManageManagers) {
		renderErr(w, r, apperr.New(apperr.Forbidden, "You do not have permission to assign managers"))
		return
	}
	if in.StaffUserIDs != nil && !authz.Allowed(roles, authz.ManageStaff) {
		renderErr(w, r, apperr.New(apperr.Forbidden, "You do not have permission to assign staff"))
		return
	}

	resto, err := c.api.UpdateRestaurant(r.Context(), sess.Token, param(r, "restaurantID"), upstream.RestaurantUpdate{
		Name:           in.Name,
		Slug:           in.Slug,
		Description:    in.Description,
		IsActive:       in.IsActive,
		ManagerUserIDs: in.ManagerUserIDs,
		StaffUserIDs:   in.StaffUserIDs,
	})
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, resto)
}

func (c *RestaurantsController) Managers(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	ids, err := c.api.RestaurantManagers(r.Context(), sess.Token, param(r, "restaurantID"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, ids)
}

func (c *RestaurantsController) Staff(w http.ResponseWriter, r *http.Request) {
	sess := current(r)
	ids, err := c.api.RestaurantStaff(r.Context(), sess.Token, param(r, "restaurantID"))
	if err != nil {
		renderErr(w, r, err)
		return
	}
	response.Success(w, ids)
}
