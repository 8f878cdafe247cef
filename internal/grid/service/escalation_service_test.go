package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/testutil"
)

func TestEscalateSeverityBased(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	dm := testutil.SeedUser(t, db, "dm1", entity.RoleDM)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, tech.ID, entity.FaultSeverityCritical)

	esc, err := svc.Escalation.Escalate(ctx, fault.ID, tech.ID, &EscalateRequest{
		Strategy: "severity_based",
		Reason:   "no response from first line",
	})
	if err != nil {
		t.Fatalf("Escalate: %v", err)
	}
	if esc.Level != 1 {
		t.Errorf("Expected level 1, got %d", esc.Level)
	}
	if esc.EscalatedTo != eng.ID {
		t.Errorf("Expected target engineer %s, got %s", eng.ID, esc.EscalatedTo)
	}
	if esc.Status != entity.EscalationStatusPending {
		t.Errorf("Expected pending, got %s", esc.Status)
	}

	// the fault moves to escalated
	got, _ := svc.Fault.Get(ctx, fault.ID)
	if got.Status != entity.FaultStatusEscalated {
		t.Errorf("Expected fault escalated, got %s", got.Status)
	}

	// levels are ordinal and never reused
	second, err := svc.Escalation.Escalate(ctx, fault.ID, eng.ID, &EscalateRequest{
		Strategy: "severity_based",
		Reason:   "needs management attention",
	})
	if err != nil {
		t.Fatalf("Second Escalate: %v", err)
	}
	if second.Level != 2 {
		t.Errorf("Expected level 2, got %d", second.Level)
	}
	if second.EscalatedTo != dm.ID {
		t.Errorf("Expected target dm %s, got %s", dm.ID, second.EscalatedTo)
	}
}

func TestEscalateValidation(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, tech.ID, entity.FaultSeverityCritical)

	if _, err := svc.Escalation.Escalate(ctx, fault.ID, tech.ID, &EscalateRequest{
		Strategy: "mood_based",
		Reason:   "x",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for unknown strategy, got %v", err)
	}

	// nobody holds the target role
	if _, err := svc.Escalation.Escalate(ctx, fault.ID, tech.ID, &EscalateRequest{
		Strategy: "severity_based",
		Reason:   "x",
	}); !errors.Is(err, ErrNoTargetAvailable) {
		t.Fatalf("Expected ErrNoTargetAvailable without an engineer, got %v", err)
	}

	// inactive users are not targets
	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	db.Model(&entity.User{}).Where("id = ?", eng.ID).Update("is_active", false)
	if _, err := svc.Escalation.Escalate(ctx, fault.ID, tech.ID, &EscalateRequest{
		Strategy: "severity_based",
		Reason:   "x",
	}); !errors.Is(err, ErrNoTargetAvailable) {
		t.Fatalf("Expected ErrNoTargetAvailable with only an inactive engineer, got %v", err)
	}
}

func TestEscalateResolvedFault(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, tech.ID, entity.FaultSeverityHigh)

	if _, err := svc.Fault.UpdateStatus(ctx, fault.ID, &UpdateFaultStatusRequest{Status: entity.FaultStatusInvestigating}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := svc.Fault.UpdateStatus(ctx, fault.ID, &UpdateFaultStatusRequest{Status: entity.FaultStatusResolved}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if _, err := svc.Escalation.Escalate(ctx, fault.ID, tech.ID, &EscalateRequest{
		Strategy: "severity_based",
		Reason:   "x",
	}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState for resolved fault, got %v", err)
	}
}

func TestEscalationAcknowledgeAndResolve(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, tech.ID, entity.FaultSeverityHigh)

	esc, err := svc.Escalation.Escalate(ctx, fault.ID, tech.ID, &EscalateRequest{
		Strategy: "severity_based",
		Reason:   "x",
	})
	if err != nil {
		t.Fatalf("Escalate: %v", err)
	}

	// only the target may acknowledge
	if _, err := svc.Escalation.Acknowledge(ctx, esc.ID, tech.ID); !errors.Is(err, ErrPermission) {
		t.Fatalf("Expected ErrPermission for non-target, got %v", err)
	}

	acked, err := svc.Escalation.Acknowledge(ctx, esc.ID, eng.ID)
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if acked.Status != entity.EscalationStatusAcknowledged {
		t.Errorf("Expected acknowledged, got %s", acked.Status)
	}
	if acked.AcknowledgedAt == nil {
		t.Error("Expected acknowledged_at to be stamped")
	}

	// double acknowledge loses
	if _, err := svc.Escalation.Acknowledge(ctx, esc.ID, eng.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState for second acknowledge, got %v", err)
	}

	resolved, err := svc.Escalation.Resolve(ctx, esc.ID, eng.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Status != entity.EscalationStatusResolved {
		t.Errorf("Expected resolved, got %s", resolved.Status)
	}
	if resolved.ResolvedAt == nil {
		t.Error("Expected resolved_at to be stamped")
	}
}

func TestEscalationListsOrderedByLevel(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	testutil.SeedUser(t, db, "dm1", entity.RoleDM)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, tech.ID, entity.FaultSeverityCritical)

	if _, err := svc.Escalation.Escalate(ctx, fault.ID, tech.ID, &EscalateRequest{Strategy: "severity_based", Reason: "a"}); err != nil {
		t.Fatalf("Escalate: %v", err)
	}
	if _, err := svc.Escalation.Escalate(ctx, fault.ID, eng.ID, &EscalateRequest{Strategy: "severity_based", Reason: "b"}); err != nil {
		t.Fatalf("Escalate: %v", err)
	}

	list, err := svc.Escalation.ListByFault(ctx, fault.ID)
	if err != nil {
		t.Fatalf("ListByFault: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 escalations, got %d", len(list))
	}
	if list[0].Level != 1 || list[1].Level != 2 {
		t.Errorf("Expected levels [1 2], got [%d %d]", list[0].Level, list[1].Level)
	}

	pending, err := svc.Escalation.ListPendingForUser(ctx, eng.ID)
	if err != nil {
		t.Fatalf("ListPendingForUser: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("Expected 1 pending escalation for engineer, got %d", len(pending))
	}
}
