package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maham-nadeemm/APDS/internal/grid/service"
)

type FaultHandler struct {
	svc *service.FaultService
}

func NewFaultHandler(svc *service.FaultService) *FaultHandler {
	return &FaultHandler{svc: svc}
}

// Report POST /faults
func (h *FaultHandler) Report(c *gin.Context) {
	var req service.ReportFaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	fault, err := h.svc.Report(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, fault)
}

// Get GET /faults/:id
func (h *FaultHandler) Get(c *gin.Context) {
	fault, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, fault)
}

// List GET /faults
func (h *FaultHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{
		"equipment_id": c.Query("equipment_id"),
		"status":       c.Query("status"),
		"severity":     c.Query("severity"),
		"reported_by":  c.Query("reported_by"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// UpdateStatus PUT /faults/:id/status
func (h *FaultHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateFaultStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	fault, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, fault)
}

// CreateRCA POST /faults/:id/rca
func (h *FaultHandler) CreateRCA(c *gin.Context) {
	var req service.CreateRCARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	rca, err := h.svc.CreateRCA(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, rca)
}

// GetRCA GET /faults/:id/rca
func (h *FaultHandler) GetRCA(c *gin.Context) {
	rca, err := h.svc.GetRCA(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, rca)
}
