package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maham-nadeemm/APDS/internal/grid/service"
)

type EscalationHandler struct {
	svc *service.EscalationService
}

func NewEscalationHandler(svc *service.EscalationService) *EscalationHandler {
	return &EscalationHandler{svc: svc}
}

// Escalate POST /faults/:id/escalations
func (h *EscalationHandler) Escalate(c *gin.Context) {
	var req service.EscalateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	esc, err := h.svc.Escalate(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, esc)
}

// ListByFault GET /faults/:id/escalations
func (h *EscalationHandler) ListByFault(c *gin.Context) {
	escs, err := h.svc.ListByFault(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": escs})
}

// Get GET /escalations/:id
func (h *EscalationHandler) Get(c *gin.Context) {
	esc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, esc)
}

// Acknowledge PUT /escalations/:id/acknowledge
func (h *EscalationHandler) Acknowledge(c *gin.Context) {
	esc, err := h.svc.Acknowledge(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, esc)
}

// Resolve PUT /escalations/:id/resolve
func (h *EscalationHandler) Resolve(c *gin.Context) {
	esc, err := h.svc.Resolve(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, esc)
}

// ListPending GET /escalations/pending
func (h *EscalationHandler) ListPending(c *gin.Context) {
	escs, err := h.svc.ListPendingForUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": escs})
}
