package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maham-nadeemm/APDS/internal/grid/service"
)

type ReverificationHandler struct {
	svc *service.ReverificationService
}

func NewReverificationHandler(svc *service.ReverificationService) *ReverificationHandler {
	return &ReverificationHandler{svc: svc}
}

// Create POST /reverifications
func (h *ReverificationHandler) Create(c *gin.Context) {
	var req service.CreateReverificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	rev, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, rev)
}

// Get GET /reverifications/:id
func (h *ReverificationHandler) Get(c *gin.Context) {
	rev, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, rev)
}

// List GET /reverifications
func (h *ReverificationHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{
		"technician_id":          c.Query("technician_id"),
		"status":                 c.Query("status"),
		"original_monitoring_id": c.Query("original_monitoring_id"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// Approve PUT /reverifications/:id/approve
func (h *ReverificationHandler) Approve(c *gin.Context) {
	rev, err := h.svc.Approve(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, rev)
}
