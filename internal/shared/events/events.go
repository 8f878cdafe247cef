// Package events carries workflow events from the engines to interested
// handlers. Dispatch is synchronous and in-process; a handler failure is
// logged and swallowed so it can never roll back the transition that
// produced the event.
package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Kind identifies a workflow event. The set is closed; handlers switch on it.
type Kind string

const (
	KindFaultReported       Kind = "fault_reported"
	KindFaultEscalated      Kind = "fault_escalated"
	KindReportSubmitted     Kind = "report_submitted"
	KindReportApproved      Kind = "report_approved"
	KindPackageSubmitted    Kind = "package_submitted"
	KindDiscrepancyFound    Kind = "discrepancy_found"
	KindVerificationDecided Kind = "verification_decided"
)

// Event is one workflow occurrence. EntityType/EntityID reference the record
// the event is about; the remaining fields are filled per kind.
type Event struct {
	Kind       Kind
	EntityType string
	EntityID   string

	// TargetUserID is set for events addressed to one user
	// (fault_escalated, report_approved, verification_decided).
	TargetUserID string

	// Severity accompanies fault_reported.
	Severity string

	// Message is a short human-readable summary used in notifications.
	Message string
}

// Handler consumes dispatched events.
type Handler interface {
	Handle(ctx context.Context, e Event) error
}

// Dispatcher fans events out to its attached handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher. A nil logger is replaced with a no-op.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{logger: logger}
}

// Attach registers a handler for all subsequent dispatches.
func (d *Dispatcher) Attach(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
}

// Dispatch delivers the event to every handler. Errors are logged, never
// returned; delivery is best-effort.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) {
	d.mu.RLock()
	handlers := make([]Handler, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.RUnlock()

	for _, h := range handlers {
		if err := h.Handle(ctx, e); err != nil {
			d.logger.Warn("event handler failed",
				zap.String("kind", string(e.Kind)),
				zap.String("entity_type", e.EntityType),
				zap.String("entity_id", e.EntityID),
				zap.Error(err),
			)
		}
	}
}
