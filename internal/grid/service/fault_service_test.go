package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/testutil"
)

func TestReportFaultMarksEquipmentFaulty(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eq := testutil.SeedEquipment(t, db, "TR-001")

	fault, err := svc.Fault.Report(ctx, tech.ID, &ReportFaultRequest{
		EquipmentID: eq.ID,
		Description: "oil leak at the bushing",
		Severity:    entity.FaultSeverityHigh,
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if fault.Status != entity.FaultStatusReported {
		t.Errorf("Expected status reported, got %s", fault.Status)
	}
	if fault.ResolvedAt != nil {
		t.Error("Expected nil resolved_at on a new fault")
	}

	updated, err := svc.Registry.GetEquipment(ctx, eq.ID)
	if err != nil {
		t.Fatalf("GetEquipment: %v", err)
	}
	if updated.Status != entity.EquipmentStatusFaulty {
		t.Errorf("Expected equipment faulty, got %s", updated.Status)
	}
}

func TestReportFaultValidation(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eq := testutil.SeedEquipment(t, db, "TR-001")

	_, err := svc.Fault.Report(ctx, tech.ID, &ReportFaultRequest{
		EquipmentID: eq.ID,
		Description: "x",
		Severity:    "catastrophic",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for unknown severity, got %v", err)
	}

	db.Model(&entity.Equipment{}).Where("id = ?", eq.ID).
		Update("status", entity.EquipmentStatusDecommissioned)

	_, err = svc.Fault.Report(ctx, tech.ID, &ReportFaultRequest{
		EquipmentID: eq.ID,
		Description: "x",
		Severity:    entity.FaultSeverityLow,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for decommissioned equipment, got %v", err)
	}
}

func TestFaultStatusTransitions(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, tech.ID, entity.FaultSeverityMedium)

	// reported cannot jump straight to resolved
	_, err := svc.Fault.UpdateStatus(ctx, fault.ID, &UpdateFaultStatusRequest{Status: entity.FaultStatusResolved})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState for reported->resolved, got %v", err)
	}

	got, err := svc.Fault.UpdateStatus(ctx, fault.ID, &UpdateFaultStatusRequest{Status: entity.FaultStatusInvestigating})
	if err != nil {
		t.Fatalf("reported->investigating: %v", err)
	}
	if got.Status != entity.FaultStatusInvestigating {
		t.Errorf("Expected investigating, got %s", got.Status)
	}

	got, err = svc.Fault.UpdateStatus(ctx, fault.ID, &UpdateFaultStatusRequest{Status: entity.FaultStatusResolved})
	if err != nil {
		t.Fatalf("investigating->resolved: %v", err)
	}
	if got.ResolvedAt == nil {
		t.Error("Expected resolved_at to be stamped")
	}

	// resolved is terminal
	_, err = svc.Fault.UpdateStatus(ctx, fault.ID, &UpdateFaultStatusRequest{Status: entity.FaultStatusInvestigating})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState for resolved->investigating, got %v", err)
	}

	// resolution restores the equipment
	updated, _ := svc.Registry.GetEquipment(ctx, eq.ID)
	if updated.Status != entity.EquipmentStatusOperational {
		t.Errorf("Expected equipment operational after resolution, got %s", updated.Status)
	}
}

func TestCreateRCA(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, tech.ID, entity.FaultSeverityHigh)

	rca, err := svc.Fault.CreateRCA(ctx, fault.ID, eng.ID, &CreateRCARequest{
		RootCause:           "insulation breakdown",
		ContributingFactors: "sustained overload",
	})
	if err != nil {
		t.Fatalf("CreateRCA: %v", err)
	}
	if rca.FaultID != fault.ID {
		t.Errorf("Expected RCA bound to fault %s, got %s", fault.ID, rca.FaultID)
	}

	// the analysis moves a reported fault into investigation
	got, err := svc.Fault.Get(ctx, fault.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != entity.FaultStatusInvestigating {
		t.Errorf("Expected fault investigating after RCA, got %s", got.Status)
	}

	// a fault carries at most one analysis
	_, err = svc.Fault.CreateRCA(ctx, fault.ID, eng.ID, &CreateRCARequest{RootCause: "another"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for second RCA, got %v", err)
	}
}

func TestCreateRCAKeepsEscalatedStatus(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, tech.ID, entity.FaultSeverityHigh)

	if _, err := svc.Fault.UpdateStatus(ctx, fault.ID, &UpdateFaultStatusRequest{Status: entity.FaultStatusEscalated}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if _, err := svc.Fault.CreateRCA(ctx, fault.ID, eng.ID, &CreateRCARequest{RootCause: "overheating"}); err != nil {
		t.Fatalf("CreateRCA: %v", err)
	}
	got, err := svc.Fault.Get(ctx, fault.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != entity.FaultStatusEscalated {
		t.Errorf("Expected escalated fault to keep its status, got %s", got.Status)
	}
}

func TestCreateRCARejectedOnResolvedFault(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, tech.ID, entity.FaultSeverityLow)

	if _, err := svc.Fault.UpdateStatus(ctx, fault.ID, &UpdateFaultStatusRequest{Status: entity.FaultStatusInvestigating}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := svc.Fault.UpdateStatus(ctx, fault.ID, &UpdateFaultStatusRequest{Status: entity.FaultStatusResolved}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	_, err := svc.Fault.CreateRCA(ctx, fault.ID, eng.ID, &CreateRCARequest{RootCause: "late"})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState for RCA on resolved fault, got %v", err)
	}
}
