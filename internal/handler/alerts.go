package handler

import (
	"net/http"

	"cafepos/internal/service"

	"github.com/gin-gonic/gin"
)

type AlertsHandler struct{ svc service.AlertService }

func NewAlertsHandler(svc service.AlertService) *AlertsHandler { return &AlertsHandler{svc: svc} }

// GetAlerts godoc
// @Summary      Current stock alerts
// @Description  Returns low-stock, expiring-soon and expired items. Served from a short-TTL cache refreshed after every stock mutation; safe to poll.
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.AlertReport
// @Router       /v1/alerts [get]
func (h *AlertsHandler) GetAlerts(c *gin.Context) {
	resp, err := h.svc.GetAlerts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
