package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/internal/service"
	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

// DashboardHandler serves aggregated views.
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler creates the DashboardHandler.
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// My returns the caller's dashboard.
// GET /api/v1/dashboard/my
func (h *DashboardHandler) My(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.MyDashboard(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Workload returns the staff workload report.
// GET /api/v1/dashboard/workload
func (h *DashboardHandler) Workload(c *gin.Context) {
	result, err := h.dashboardSvc.WorkloadReport(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
