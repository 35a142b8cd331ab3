// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VictorRSilva05/proactive-inventory/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) GetTopAlerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	alerts, err := h.service.TopAlerts(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *DashboardHandler) GetAlertDistribution(c *gin.Context) {
	distribution, err := h.service.AlertDistribution(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alert distribution"})
		return
	}
	c.JSON(http.StatusOK, distribution)
}

func (h *DashboardHandler) GetDemandChart(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "90"))
	points, err := h.service.DemandChart(c.Request.Context(), id, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch demand chart"})
		return
	}
	c.JSON(http.StatusOK, points)
}
