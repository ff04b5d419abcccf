package handler

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"lesson-tracker/internal/dto"
	"lesson-tracker/internal/service"
	"lesson-tracker/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel 导出课次与统计为 Excel
// GET /api/v1/export/sessions.xlsx?course_id=xxx
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportExcel(c.Request.Context(), req.CourseID)
	if err != nil {
		handleExportError(c, err)
		return
	}

	response.Attachment(c, url.PathEscape(filename), contentTypeXLSX, buf.Bytes())
}

// ExportICS 导出课次为 iCalendar
// GET /api/v1/export/sessions.ics?course_id=xxx
func (h *ExportHandler) ExportICS(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	data, filename, err := h.exportSvc.ExportICS(c.Request.Context(), req.CourseID)
	if err != nil {
		handleExportError(c, err)
		return
	}

	response.Attachment(c, url.PathEscape(filename), contentTypeICS, data)
}
