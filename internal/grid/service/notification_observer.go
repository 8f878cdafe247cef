package service

import (
	"context"
	"fmt"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/shared/events"
)

// NotificationObserver turns domain events into stored notifications. It is
// attached to the dispatcher at wiring time, so services announcing events
// never talk to the notification tables directly.
type NotificationObserver struct {
	notifSvc *NotificationService
}

func NewNotificationObserver(notifSvc *NotificationService) *NotificationObserver {
	return &NotificationObserver{notifSvc: notifSvc}
}

func (o *NotificationObserver) Handle(ctx context.Context, e events.Event) error {
	switch e.Kind {
	case events.KindFaultReported:
		// Only the severities that may escalate are worth waking engineers
		// for.
		if e.Severity != entity.FaultSeverityHigh && e.Severity != entity.FaultSeverityCritical {
			return nil
		}
		return o.notifSvc.NotifyRole(ctx, entity.RoleEngineer,
			"Fault reported", e.Message, entity.NotificationTypeWarning, e.EntityType, e.EntityID)

	case events.KindFaultEscalated:
		return o.notifSvc.Notify(ctx, e.TargetUserID,
			"Fault escalated to you", e.Message, entity.NotificationTypeEscalation, e.EntityType, e.EntityID)

	case events.KindReportSubmitted:
		return o.notifSvc.NotifyRole(ctx, entity.RoleDM,
			"Resolution report submitted", e.Message, entity.NotificationTypeInfo, e.EntityType, e.EntityID)

	case events.KindReportApproved:
		return o.notifSvc.Notify(ctx, e.TargetUserID,
			"Resolution report approved", e.Message, entity.NotificationTypeSuccess, e.EntityType, e.EntityID)

	case events.KindPackageSubmitted:
		return o.notifSvc.NotifyRole(ctx, entity.RoleDM,
			"Documentation package submitted", e.Message, entity.NotificationTypeInfo, e.EntityType, e.EntityID)

	case events.KindDiscrepancyFound:
		return o.notifSvc.NotifyRole(ctx, entity.RoleEngineer,
			"Data discrepancy found", e.Message, entity.NotificationTypeError, e.EntityType, e.EntityID)

	case events.KindVerificationDecided:
		return o.notifSvc.Notify(ctx, e.TargetUserID,
			"Vendor verification decided", e.Message, entity.NotificationTypeInfo, e.EntityType, e.EntityID)

	default:
		return fmt.Errorf("unhandled event kind %q", e.Kind)
	}
}
