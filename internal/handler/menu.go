package handler

import (
	"net/http"

	"cafepos/internal/dto"
	"cafepos/internal/service"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct{ svc service.MenuService }

func NewMenuHandler(svc service.MenuService) *MenuHandler { return &MenuHandler{svc: svc} }

// Create godoc
// @Summary      Create menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateMenuItemRequest true "Menu item"
// @Success      201  {object} dto.MenuItemResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/menu [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.CreateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get menu item
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Menu item UUID"
// @Success      200 {object} dto.MenuItemResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/menu/{id} [get]
func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List menu items
// @Produce      json
// @Security     BearerAuth
// @Param        all query bool false "Include inactive items"
// @Success      200 {array} dto.MenuItemResponse
// @Router       /v1/menu [get]
func (h *MenuHandler) List(c *gin.Context) {
	includeInactive := c.Query("all") == "true"
	resp, err := h.svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Menu item UUID"
// @Param        body body dto.UpdateMenuItemRequest true "Fields to change"
// @Success      200  {object} dto.MenuItemResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/menu/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate menu item
// @Description  Soft delete; the item's recipe is removed in the same transaction.
// @Security     BearerAuth
// @Param        id path string true "Menu item UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/menu/{id} [delete]
func (h *MenuHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
