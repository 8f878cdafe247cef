package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maham-nadeemm/APDS/internal/grid/service"
)

type DeliveryVerificationHandler struct {
	svc *service.DeliveryVerificationService
}

func NewDeliveryVerificationHandler(svc *service.DeliveryVerificationService) *DeliveryVerificationHandler {
	return &DeliveryVerificationHandler{svc: svc}
}

// Create POST /verifications
func (h *DeliveryVerificationHandler) Create(c *gin.Context) {
	var req service.CreateVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	v, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, v)
}

// Get GET /verifications/:id
func (h *DeliveryVerificationHandler) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, v)
}

// List GET /verifications
func (h *DeliveryVerificationHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{
		"vendor_id":           c.Query("vendor_id"),
		"equipment_id":        c.Query("equipment_id"),
		"verification_type":   c.Query("verification_type"),
		"verification_status": c.Query("verification_status"),
		"compliance_status":   c.Query("compliance_status"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// UpdateCompliance PUT /verifications/:id/compliance
func (h *DeliveryVerificationHandler) UpdateCompliance(c *gin.Context) {
	var req service.UpdateComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	v, err := h.svc.UpdateCompliance(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, v)
}

// Verify PUT /verifications/:id/verify
func (h *DeliveryVerificationHandler) Verify(c *gin.Context) {
	var req service.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	v, err := h.svc.Verify(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, v)
}
