package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maham-nadeemm/APDS/internal/grid/service"
)

type DocumentationHandler struct {
	svc *service.DocumentationService
}

func NewDocumentationHandler(svc *service.DocumentationService) *DocumentationHandler {
	return &DocumentationHandler{svc: svc}
}

// Create POST /documentation-packages
func (h *DocumentationHandler) Create(c *gin.Context) {
	var req service.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	pkg, err := h.svc.CreatePackage(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, pkg)
}

// Get GET /documentation-packages/:id
func (h *DocumentationHandler) Get(c *gin.Context) {
	pkg, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, pkg)
}

// List GET /documentation-packages
func (h *DocumentationHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]interface{}{
		"fault_id":    c.Query("fault_id"),
		"status":      c.Query("status"),
		"engineer_id": c.Query("engineer_id"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// AddItem POST /documentation-packages/:id/items
func (h *DocumentationHandler) AddItem(c *gin.Context) {
	var req service.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	item, err := h.svc.AddItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, item)
}

// UpdateItem PUT /documentation-items/:id
func (h *DocumentationHandler) UpdateItem(c *gin.Context) {
	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	item, err := h.svc.UpdateItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}

// DeleteItem DELETE /documentation-items/:id
func (h *DocumentationHandler) DeleteItem(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Complete PUT /documentation-packages/:id/complete
func (h *DocumentationHandler) Complete(c *gin.Context) {
	pkg, err := h.svc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, pkg)
}

// Submit PUT /documentation-packages/:id/submit
func (h *DocumentationHandler) Submit(c *gin.Context) {
	pkg, err := h.svc.Submit(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, pkg)
}

// Approve PUT /documentation-packages/:id/approve
func (h *DocumentationHandler) Approve(c *gin.Context) {
	pkg, err := h.svc.Approve(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, pkg)
}
