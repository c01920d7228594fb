package handler

import (
	"net/http"

	"cafepos/internal/apierror"
	"cafepos/internal/dto"
	"cafepos/internal/middleware"
	"cafepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// PlaceOrder godoc
// @Summary      Place a new order
// @Description  Creates an order atomically: inserts the sale and deducts recipe ingredients from stock, recording one ledger entry per deduction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PlaceOrderRequest true "Order lines and payment method"
// @Success      201  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orders [post]
func (h *OrdersHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetOrder godoc
// @Summary      Get an order
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200 {object} dto.OrderResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Order not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrders godoc
// @Summary      List orders
// @Description  Returns a paginated list of orders for one day (default today).
// @Produce      json
// @Security     BearerAuth
// @Param        date  query string false "Date YYYY-MM-DD (default: today)"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 50)"
// @Success      200   {object} dto.OrderListResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListOrders(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
