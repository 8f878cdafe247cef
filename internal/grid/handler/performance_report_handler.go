package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maham-nadeemm/APDS/internal/grid/service"
)

type PerformanceReportHandler struct {
	svc *service.PerformanceReportService
}

func NewPerformanceReportHandler(svc *service.PerformanceReportService) *PerformanceReportHandler {
	return &PerformanceReportHandler{svc: svc}
}

// Generate POST /performance-reports
func (h *PerformanceReportHandler) Generate(c *gin.Context) {
	var req service.GeneratePerfReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	report, err := h.svc.Generate(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, report)
}

// Get GET /performance-reports/:id
func (h *PerformanceReportHandler) Get(c *gin.Context) {
	report, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, report)
}

// List GET /performance-reports
func (h *PerformanceReportHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{
		"technician_id": c.Query("technician_id"),
		"status":        c.Query("status"),
		"report_type":   c.Query("report_type"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// Submit PUT /performance-reports/:id/submit
func (h *PerformanceReportHandler) Submit(c *gin.Context) {
	report, err := h.svc.Submit(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, report)
}

// Decide PUT /performance-reports/:id/decision
func (h *PerformanceReportHandler) Decide(c *gin.Context) {
	var req service.PerfDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	report, err := h.svc.Decide(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, report)
}

// Export GET /performance-reports/:id/export
func (h *PerformanceReportHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write spreadsheet: "+err.Error())
	}
}
