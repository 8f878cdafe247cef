package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maham-nadeemm/APDS/internal/grid/service"
)

type RegistryHandler struct {
	svc *service.RegistryService
}

func NewRegistryHandler(svc *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{svc: svc}
}

// CreateEquipment POST /equipment
func (h *RegistryHandler) CreateEquipment(c *gin.Context) {
	var req service.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	eq, err := h.svc.CreateEquipment(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, eq)
}

// GetEquipment GET /equipment/:id
func (h *RegistryHandler) GetEquipment(c *gin.Context) {
	eq, err := h.svc.GetEquipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, eq)
}

// ListEquipment GET /equipment
func (h *RegistryHandler) ListEquipment(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{
		"status":         c.Query("status"),
		"location":       c.Query("location"),
		"equipment_type": c.Query("equipment_type"),
	}

	result, err := h.svc.ListEquipment(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// UpdateEquipmentStatus PUT /equipment/:id/status
func (h *RegistryHandler) UpdateEquipmentStatus(c *gin.Context) {
	var req service.UpdateEquipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	eq, err := h.svc.UpdateEquipmentStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, eq)
}

// CreateVendor POST /vendors
func (h *RegistryHandler) CreateVendor(c *gin.Context) {
	var req service.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vendor, err := h.svc.CreateVendor(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, vendor)
}

// GetVendor GET /vendors/:id
func (h *RegistryHandler) GetVendor(c *gin.Context) {
	vendor, err := h.svc.GetVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, vendor)
}

// ListVendors GET /vendors
func (h *RegistryHandler) ListVendors(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{
		"status":  c.Query("status"),
		"keyword": c.Query("keyword"),
	}

	result, err := h.svc.ListVendors(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// ListUsers GET /users
func (h *RegistryHandler) ListUsers(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{
		"role": c.Query("role"),
	}

	users, total, err := h.svc.ListUsers(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": users, "total": total})
}
