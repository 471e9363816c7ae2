package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbc0/TA-Management-System-sub000/internal/service"
	"github.com/kbc0/TA-Management-System-sub000/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves file exports.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Workload downloads the workload report as xlsx.
// GET /api/v1/export/workload
func (h *ExportHandler) Workload(c *gin.Context) {
	data, err := h.exportSvc.WorkloadXLSX(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := fmt.Sprintf("workload-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Calendar downloads the caller's assignments as an ics feed.
// GET /api/v1/export/calendar
func (h *ExportHandler) Calendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	data, err := h.exportSvc.CalendarICS(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12101, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=assignments.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}
