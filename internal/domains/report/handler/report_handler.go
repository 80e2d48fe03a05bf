package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/report"
	"library-backend/internal/shared/response"
)

type ReportHandler struct {
	service report.Service
}

func NewReportHandler(service report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// Inventory xử lý GET /inventory (staff) - books sắp hết hàng
func (h *ReportHandler) Inventory(c *gin.Context) {
	books, err := h.service.Inventory(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, "", books)
}

// Overdue xử lý GET /overdue (staff) - loans quá hạn chưa trả
func (h *ReportHandler) Overdue(c *gin.Context) {
	loans, err := h.service.Overdue(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, "", loans)
}

// Statistics xử lý GET /statistics (staff)
func (h *ReportHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, "", stats)
}

// OverdueExport xử lý GET /overdue/export (staff) - download .xlsx
func (h *ReportHandler) OverdueExport(c *gin.Context) {
	f, err := h.service.OverdueExport(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	filename := fmt.Sprintf("overdue_%s.xlsx", time.Now().Format("20060102"))

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		// Headers đã gửi - chỉ log được, không đổi status được nữa
		_ = c.Error(err)
	}
}

// StaffDashboard xử lý GET /accounts/staff (staff)
func (h *ReportHandler) StaffDashboard(c *gin.Context) {
	dashboard, err := h.service.StaffDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, "", dashboard)
}
