package handler

import (
	"net/http"
	"strconv"

	"cafepos/internal/apierror"
	"cafepos/internal/dto"
	"cafepos/internal/middleware"
	"cafepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Create godoc
// @Summary      Create inventory item
// @Description  Registers a raw material. A non-zero initial quantity is ledger-logged as ADD.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateInventoryItemRequest true "Item"
// @Success      201  {object} dto.InventoryItemResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actorID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get inventory item
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Item UUID"
// @Success      200 {object} dto.InventoryItemResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/inventory/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
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
// @Summary      List inventory items
// @Produce      json
// @Security     BearerAuth
// @Param        name     query string false "Name filter (substring)"
// @Param        category query string false "Category filter"
// @Param        active   query string false "true (default) | false | all"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Rows per page (default 50)"
// @Success      200      {object} dto.InventoryListResponse
// @Router       /v1/inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var filter dto.InventoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update inventory item
// @Description  Partial update. Changing the stock unit converts on-hand quantities; cross-dimension changes are rejected.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Item UUID"
// @Param        body body dto.UpdateInventoryItemRequest true "Fields to change"
// @Success      200  {object} dto.InventoryItemResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateInventoryItemRequest
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
// @Summary      Deactivate inventory item
// @Description  Soft delete; recipe lines referencing the item are removed.
// @Tags         inventory
// @Security     BearerAuth
// @Param        id path string true "Item UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/inventory/{id} [delete]
func (h *InventoryHandler) Deactivate(c *gin.Context) {
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

// AdjustStock godoc
// @Summary      Adjust stock manually
// @Description  Applies a signed correction with a mandatory note; the applied amount is ledger-logged as ADJUST. The result never goes below zero.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Item UUID"
// @Param        body body dto.AdjustStockRequest true "Signed delta and note"
// @Success      200  {object} dto.AdjustStockResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/inventory/{id}/stock [patch]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), id, actorID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// WriteOff godoc
// @Summary      Write off spoiled stock
// @Description  Removes stock with kind EXPIRED. Quantity 0 writes off everything on hand.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Item UUID"
// @Param        body body dto.WriteOffRequest true "Quantity and note"
// @Success      200  {object} dto.AdjustStockResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/inventory/{id}/write-off [post]
func (h *InventoryHandler) WriteOff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.WriteOffRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.WriteOff(c.Request.Context(), id, actorID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ledger godoc
// @Summary      Stock movement history
// @Description  Returns the item's ledger entries, newest first.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string true  "Item UUID"
// @Param        limit query int    false "Max entries (default 100, max 500)"
// @Success      200   {array} dto.LedgerEntryResponse
// @Failure      404   {object} apierror.APIError
// @Router       /v1/inventory/{id}/ledger [get]
func (h *InventoryHandler) Ledger(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	resp, err := h.svc.Ledger(c.Request.Context(), id, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return uuid.Nil, false
	}
	return id, true
}

func actorID(c *gin.Context) uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return uuid.Nil
	}
	id, _ := uuid.Parse(claims.UserID)
	return id
}
