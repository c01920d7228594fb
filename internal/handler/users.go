package handler

import (
	"net/http"

	"cafepos/internal/apierror"
	"cafepos/internal/dto"
	"cafepos/internal/service"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct{ svc service.AuthService }

func NewUsersHandler(svc service.AuthService) *UsersHandler { return &UsersHandler{svc: svc} }

// Create godoc
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateUserRequest true "User"
// @Success      201  {object} dto.UserResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/users [post]
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List users
// @Produce      json
// @Security     BearerAuth
// @Param        all query bool false "Include inactive users"
// @Success      200 {array} dto.UserResponse
// @Router       /v1/users [get]
func (h *UsersHandler) List(c *gin.Context) {
	includeInactive := c.Query("all") == "true"
	resp, err := h.svc.ListUsers(c.Request.Context(), includeInactive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "User UUID"
// @Param        body body dto.UpdateUserRequest true "Fields to change"
// @Success      200  {object} dto.UserResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/users/{id} [put]
func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate user
// @Security     BearerAuth
// @Param        id path string true "User UUID"
// @Success      204
// @Router       /v1/users/{id} [delete]
func (h *UsersHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeactivateUser(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reactivate godoc
// @Summary      Reactivate user
// @Security     BearerAuth
// @Param        id path string true "User UUID"
// @Success      204
// @Router       /v1/users/{id}/reactivate [post]
func (h *UsersHandler) Reactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.ReactivateUser(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
