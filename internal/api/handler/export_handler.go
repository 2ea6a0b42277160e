package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"stagetrack/backend/internal/service"
	"stagetrack/backend/pkg/response"
)

// MIME 类型
const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
	mimeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportInternsCSV 导出实习生清单（CSV）
// GET /api/v1/export/interns/csv
func (h *ExportHandler) ExportInternsCSV(c *gin.Context) {
	data, filename, err := h.exportSvc.ExportInternsCSV(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	h.sendFile(c, data, filename, mimeCSV)
}

// ExportInternsXLSX 导出实习生清单（Excel）
// GET /api/v1/export/interns/xlsx
func (h *ExportHandler) ExportInternsXLSX(c *gin.Context) {
	data, filename, err := h.exportSvc.ExportInternsXLSX(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	h.sendFile(c, data, filename, mimeXLSX)
}

// ExportEvaluationPDF 导出评价报告（PDF）
// GET /api/v1/export/evaluations/:id/pdf
func (h *ExportHandler) ExportEvaluationPDF(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "评价ID不能为空")
		return
	}

	data, filename, err := h.exportSvc.ExportEvaluationPDF(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	h.sendFile(c, data, filename, mimePDF)
}

// ExportCertificatePDF 生成实习证书（PDF）
// GET /api/v1/export/evaluations/:id/certificate
func (h *ExportHandler) ExportCertificatePDF(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "评价ID不能为空")
		return
	}

	data, filename, err := h.exportSvc.ExportCertificatePDF(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	h.sendFile(c, data, filename, mimePDF)
}

// ExportCalendarICS 导出实习周期日历（iCalendar）
// GET /api/v1/export/calendar
func (h *ExportHandler) ExportCalendarICS(c *gin.Context) {
	data, filename, err := h.exportSvc.ExportCalendarICS(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	h.sendFile(c, data, filename, mimeICS)
}

// sendFile 设置下载响应头并输出文件内容
func (h *ExportHandler) sendFile(c *gin.Context, data []byte, filename, contentType string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEvaluationNotFound):
		response.NotFound(c, 16001, "评价不存在")
	case errors.Is(err, service.ErrNothingToExport):
		response.NotFound(c, 16002, "没有可导出的数据")
	default:
		response.InternalError(c)
	}
}
