package handler

import (
	"net/http"

	"cafepos/internal/dto"
	"cafepos/internal/service"

	"github.com/gin-gonic/gin"
)

type RecipesHandler struct{ svc service.RecipeService }

func NewRecipesHandler(svc service.RecipeService) *RecipesHandler { return &RecipesHandler{svc: svc} }

// SetRecipe godoc
// @Summary      Set a menu item's recipe
// @Description  Replaces the whole ingredient list in one transaction. Idempotent; an empty list clears the recipe. Ingredient units must share the dimension of the item's stock unit.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Menu item UUID"
// @Param        body body dto.SetRecipeRequest true "Ingredient list"
// @Success      200  {array} dto.RecipeLineResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/menu/{id}/recipe [put]
func (h *RecipesHandler) SetRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.SetRecipeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetRecipe(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListRecipe godoc
// @Summary      Get a menu item's recipe
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Menu item UUID"
// @Success      200 {array} dto.RecipeLineResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/menu/{id}/recipe [get]
func (h *RecipesHandler) ListRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListRecipe(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveLine godoc
// @Summary      Remove one recipe line
// @Security     BearerAuth
// @Param        id path string true "Recipe line UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/recipes/{id} [delete]
func (h *RecipesHandler) RemoveLine(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveLine(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
