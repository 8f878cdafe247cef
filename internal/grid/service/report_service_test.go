package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/testutil"
)

func seedDraftReport(t *testing.T, svc *Services, preparerID, faultID string) *entity.ResolutionReport {
	t.Helper()
	report, err := svc.Report.Create(context.Background(), preparerID, &CreateReportRequest{
		FaultID:               faultID,
		ResolutionDescription: "replaced the damaged winding",
		ActionsTaken:          "isolated, repaired, load tested",
		PreventiveMeasures:    "quarterly thermal scans",
	})
	if err != nil {
		t.Fatalf("Create report: %v", err)
	}
	return report
}

func TestReportLifecycle(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	dm := testutil.SeedUser(t, db, "dm1", entity.RoleDM)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, eng.ID, entity.FaultSeverityHigh)

	report := seedDraftReport(t, svc, eng.ID, fault.ID)
	if report.Status != entity.ReportStatusDraft {
		t.Fatalf("Expected draft, got %s", report.Status)
	}

	// one report per fault
	if _, err := svc.Report.Create(ctx, eng.ID, &CreateReportRequest{
		FaultID:               fault.ID,
		ResolutionDescription: "dup",
		ActionsTaken:          "dup",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for second report, got %v", err)
	}

	submitted, err := svc.Report.Submit(ctx, report.ID, eng.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submitted.Status != entity.ReportStatusPendingApproval {
		t.Errorf("Expected pending_approval, got %s", submitted.Status)
	}

	approved, err := svc.Report.Approve(ctx, report.ID, dm.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != entity.ReportStatusApproved {
		t.Errorf("Expected approved, got %s", approved.Status)
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != dm.ID {
		t.Errorf("Expected approver %s, got %v", dm.ID, approved.ApprovedBy)
	}
	if approved.ApprovedAt == nil {
		t.Error("Expected approved_at to be stamped")
	}

	// approval cascades to fault and equipment
	resolvedFault, err := svc.Fault.Get(ctx, fault.ID)
	if err != nil {
		t.Fatalf("Get fault: %v", err)
	}
	if resolvedFault.Status != entity.FaultStatusResolved {
		t.Errorf("Expected fault resolved, got %s", resolvedFault.Status)
	}
	if resolvedFault.ResolvedAt == nil {
		t.Error("Expected fault resolved_at to be stamped")
	}
	equipment, _ := svc.Registry.GetEquipment(ctx, eq.ID)
	if equipment.Status != entity.EquipmentStatusOperational {
		t.Errorf("Expected equipment operational, got %s", equipment.Status)
	}
}

func TestReportDoubleApprovalHasOneWinner(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	dm1 := testutil.SeedUser(t, db, "dm1", entity.RoleDM)
	dm2 := testutil.SeedUser(t, db, "dm2", entity.RoleDM)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, eng.ID, entity.FaultSeverityHigh)

	report := seedDraftReport(t, svc, eng.ID, fault.ID)
	if _, err := svc.Report.Submit(ctx, report.ID, eng.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.Report.Approve(ctx, report.ID, dm1.ID); err != nil {
		t.Fatalf("First approval: %v", err)
	}
	if _, err := svc.Report.Approve(ctx, report.ID, dm2.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState for second approval, got %v", err)
	}

	got, _ := svc.Report.Get(ctx, report.ID)
	if got.ApprovedBy == nil || *got.ApprovedBy != dm1.ID {
		t.Errorf("Expected first approver to win, got %v", got.ApprovedBy)
	}
}

func TestReportImmutabilityAndPermissions(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	other := testutil.SeedUser(t, db, "eng2", entity.RoleEngineer)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, eng.ID, entity.FaultSeverityHigh)

	report := seedDraftReport(t, svc, eng.ID, fault.ID)

	// only the preparer edits
	if _, err := svc.Report.Update(ctx, report.ID, other.ID, &UpdateReportRequest{ActionsTaken: "x"}); !errors.Is(err, ErrPermission) {
		t.Fatalf("Expected ErrPermission for foreign edit, got %v", err)
	}

	if _, err := svc.Report.Submit(ctx, report.ID, eng.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// nobody edits past draft
	if _, err := svc.Report.Update(ctx, report.ID, eng.ID, &UpdateReportRequest{ActionsTaken: "x"}); !errors.Is(err, ErrImmutable) {
		t.Fatalf("Expected ErrImmutable after submission, got %v", err)
	}

	// an engineer cannot approve
	if _, err := svc.Report.Approve(ctx, report.ID, eng.ID); !errors.Is(err, ErrPermission) {
		t.Fatalf("Expected ErrPermission for engineer approval, got %v", err)
	}
}

func TestReportReject(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	dm := testutil.SeedUser(t, db, "dm1", entity.RoleDM)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, eng.ID, entity.FaultSeverityHigh)

	report := seedDraftReport(t, svc, eng.ID, fault.ID)
	if _, err := svc.Report.Submit(ctx, report.ID, eng.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	rejected, err := svc.Report.Reject(ctx, report.ID, dm.ID)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != entity.ReportStatusRejected {
		t.Errorf("Expected rejected, got %s", rejected.Status)
	}
	// approved_by/approved_at belong to approval alone
	if rejected.ApprovedBy != nil || rejected.ApprovedAt != nil {
		t.Errorf("Expected empty approval pair on rejection, got %v/%v", rejected.ApprovedBy, rejected.ApprovedAt)
	}

	// rejection does not resolve the fault
	got, _ := svc.Fault.Get(ctx, fault.ID)
	if got.Status == entity.FaultStatusResolved {
		t.Error("Rejection must not resolve the fault")
	}
}

func TestReportRender(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	fault := testutil.SeedFault(t, db, eq.ID, eng.ID, entity.FaultSeverityHigh)
	report := seedDraftReport(t, svc, eng.ID, fault.ID)

	body, contentType, err := svc.Report.Render(ctx, report.ID, "text")
	if err != nil {
		t.Fatalf("Render text: %v", err)
	}
	if contentType != "text/plain; charset=utf-8" {
		t.Errorf("Expected text content type, got %s", contentType)
	}
	if !strings.Contains(body, "FAULT RESOLUTION REPORT") {
		t.Errorf("Expected report header in body, got %q", body)
	}
	if !strings.Contains(body, "replaced the damaged winding") {
		t.Error("Expected resolution description in body")
	}

	html, contentType, err := svc.Report.Render(ctx, report.ID, "html")
	if err != nil {
		t.Fatalf("Render html: %v", err)
	}
	if contentType != "text/html; charset=utf-8" {
		t.Errorf("Expected html content type, got %s", contentType)
	}
	if !strings.Contains(html, "<html") {
		t.Errorf("Expected html document, got %q", html)
	}

	if _, _, err := svc.Report.Render(ctx, report.ID, "pdf"); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for unknown format, got %v", err)
	}
}
