// internal/handlers/dashboard/dashboard.go
package dashboard

import (
	"net/http"

	"insurtrack/internal/pkg/response"
	service "insurtrack/internal/service/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetStats returns the aggregate dashboard counters
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to compute dashboard stats")
		return
	}

	response.JSON(c, http.StatusOK, stats)
}
