package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/testutil"
)

func TestReverificationWithinTolerance(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	original := testutil.SeedReading(t, db, eq.ID, tech.ID, f(230), f(50), f(0.95))

	rev, err := svc.Reverification.Create(ctx, tech.ID, &CreateReverificationRequest{
		OriginalMonitoringID: original.ID,
		NewVoltage:           f(232),
		NewCurrent:           f(49),
		NewPowerFactor:       f(0.94),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rev.Status != entity.ReverificationStatusVerified {
		t.Errorf("Expected verified, got %s", rev.Status)
	}
	if rev.ComparisonResults != "All readings within acceptable tolerance levels" {
		t.Errorf("Unexpected comparison results: %q", rev.ComparisonResults)
	}
	if rev.OriginalVoltage == nil || *rev.OriginalVoltage != 230 {
		t.Errorf("Expected snapshotted original voltage 230, got %v", rev.OriginalVoltage)
	}
	if rev.VarianceVoltage == nil || *rev.VarianceVoltage != 2 {
		t.Errorf("Expected voltage variance 2, got %v", rev.VarianceVoltage)
	}
	if rev.VarianceCurrent == nil || *rev.VarianceCurrent != 1 {
		t.Errorf("Expected stored current variance 1, got %v", rev.VarianceCurrent)
	}
}

func TestReverificationDiscrepancy(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	original := testutil.SeedReading(t, db, eq.ID, tech.ID, f(230), f(50), f(0.95))

	rev, err := svc.Reverification.Create(ctx, tech.ID, &CreateReverificationRequest{
		OriginalMonitoringID: original.ID,
		NewVoltage:           f(238),
		NewCurrent:           f(49),
		NewPowerFactor:       f(0.94),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rev.Status != entity.ReverificationStatusDiscrepancy {
		t.Errorf("Expected discrepancy, got %s", rev.Status)
	}
	if rev.ComparisonResults != "Voltage variance 8.00V exceeds tolerance 5V" {
		t.Errorf("Unexpected comparison results: %q", rev.ComparisonResults)
	}
	if rev.EngineerApproval {
		t.Error("Expected no engineer approval yet")
	}
}

func TestReverificationApprove(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	original := testutil.SeedReading(t, db, eq.ID, tech.ID, f(230), f(50), f(0.95))

	rev, err := svc.Reverification.Create(ctx, tech.ID, &CreateReverificationRequest{
		OriginalMonitoringID: original.ID,
		NewVoltage:           f(238),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// a technician cannot sign off
	if _, err := svc.Reverification.Approve(ctx, rev.ID, tech.ID); !errors.Is(err, ErrPermission) {
		t.Fatalf("Expected ErrPermission for technician, got %v", err)
	}

	resolved, err := svc.Reverification.Approve(ctx, rev.ID, eng.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if resolved.Status != entity.ReverificationStatusResolved {
		t.Errorf("Expected resolved, got %s", resolved.Status)
	}
	if !resolved.EngineerApproval {
		t.Error("Expected engineer_approval set")
	}
	if resolved.EngineerID == nil || *resolved.EngineerID != eng.ID {
		t.Errorf("Expected engineer %s, got %v", eng.ID, resolved.EngineerID)
	}
	if !strings.HasSuffix(resolved.ComparisonResults, "; Engineer approved changes") {
		t.Errorf("Expected approval note appended, got %q", resolved.ComparisonResults)
	}

	// sign-off is once only
	if _, err := svc.Reverification.Approve(ctx, rev.ID, eng.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState for second approval, got %v", err)
	}
}

func TestReverificationApproveSettlesVerifiedRecord(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	original := testutil.SeedReading(t, db, eq.ID, tech.ID, f(230), f(50), f(0.95))

	rev, err := svc.Reverification.Create(ctx, tech.ID, &CreateReverificationRequest{
		OriginalMonitoringID: original.ID,
		NewVoltage:           f(231),
		NewCurrent:           f(50),
		NewPowerFactor:       f(0.95),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rev.Status != entity.ReverificationStatusVerified {
		t.Fatalf("Expected verified, got %s", rev.Status)
	}

	// the sign-off window is any non-resolved status, verified included
	resolved, err := svc.Reverification.Approve(ctx, rev.ID, eng.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if resolved.Status != entity.ReverificationStatusResolved {
		t.Errorf("Expected resolved, got %s", resolved.Status)
	}
	if !resolved.EngineerApproval {
		t.Error("Expected engineer_approval set")
	}
}
