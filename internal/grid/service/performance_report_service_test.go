package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/testutil"
)

func recordReading(t *testing.T, svc *Services, techID, eqID string, v, c, pf *float64) {
	t.Helper()
	if _, err := svc.Monitoring.RecordReading(context.Background(), techID, &RecordReadingRequest{
		EquipmentID: eqID,
		Voltage:     v,
		Current:     c,
		PowerFactor: pf,
	}); err != nil {
		t.Fatalf("RecordReading: %v", err)
	}
}

func TestPerformanceReportAggregation(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eq := testutil.SeedEquipment(t, db, "TR-001")

	recordReading(t, svc, tech.ID, eq.ID, f(230), f(50), f(0.95)) // normal
	recordReading(t, svc, tech.ID, eq.ID, f(245), f(60), f(0.92)) // warning
	recordReading(t, svc, tech.ID, eq.ID, f(230), f(50), f(0.80)) // critical
	recordReading(t, svc, tech.ID, eq.ID, nil, f(40), nil)        // normal, partial

	report, err := svc.PerformanceReport.Generate(ctx, tech.ID, &GeneratePerfReportRequest{
		PeriodStart: time.Now().Add(-24 * time.Hour),
		PeriodEnd:   time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if report.ReportType != entity.PerfReportTypeWeekly {
		t.Errorf("Expected default report type weekly, got %s", report.ReportType)
	}
	if report.TotalReadings != 4 {
		t.Errorf("Expected 4 readings, got %d", report.TotalReadings)
	}
	if report.NormalCount != 2 || report.WarningCount != 1 || report.CriticalCount != 1 {
		t.Errorf("Expected counts 2/1/1, got %d/%d/%d",
			report.NormalCount, report.WarningCount, report.CriticalCount)
	}

	// averages skip absent readings
	if math.Abs(report.AvgVoltage-235.0) > 1e-9 {
		t.Errorf("Expected avg voltage 235, got %f", report.AvgVoltage)
	}
	if math.Abs(report.AvgCurrent-50.0) > 1e-9 {
		t.Errorf("Expected avg current 50, got %f", report.AvgCurrent)
	}
	if math.Abs(report.AvgPowerFactor-0.89) > 1e-9 {
		t.Errorf("Expected avg power factor 0.89, got %f", report.AvgPowerFactor)
	}
}

func TestPerformanceReportEmptyPeriod(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)

	report, err := svc.PerformanceReport.Generate(ctx, tech.ID, &GeneratePerfReportRequest{
		PeriodStart: time.Now().Add(-48 * time.Hour),
		PeriodEnd:   time.Now().Add(-24 * time.Hour),
		ReportType:  entity.PerfReportTypeMonthly,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if report.TotalReadings != 0 || report.AvgVoltage != 0 {
		t.Errorf("Expected empty aggregates, got %d readings avg %f", report.TotalReadings, report.AvgVoltage)
	}
}

func TestPerformanceReportValidation(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	now := time.Now()

	if _, err := svc.PerformanceReport.Generate(ctx, tech.ID, &GeneratePerfReportRequest{
		PeriodStart: now,
		PeriodEnd:   now.Add(-time.Hour),
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for inverted period, got %v", err)
	}

	if _, err := svc.PerformanceReport.Generate(ctx, tech.ID, &GeneratePerfReportRequest{
		PeriodStart: now.Add(-time.Hour),
		PeriodEnd:   now,
		ReportType:  "quarterly",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for unknown type, got %v", err)
	}
}

func TestPerformanceReportPipeline(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	other := testutil.SeedUser(t, db, "tech2", entity.RoleTechnician)
	eng := testutil.SeedUser(t, db, "eng1", entity.RoleEngineer)
	dm := testutil.SeedUser(t, db, "dm1", entity.RoleDM)

	report, err := svc.PerformanceReport.Generate(ctx, tech.ID, &GeneratePerfReportRequest{
		PeriodStart: time.Now().Add(-24 * time.Hour),
		PeriodEnd:   time.Now(),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// decisions need a submitted report
	if _, err := svc.PerformanceReport.Decide(ctx, report.ID, dm.ID, &PerfDecisionRequest{Decision: "approve"}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState deciding a draft, got %v", err)
	}

	// only the owner submits
	if _, err := svc.PerformanceReport.Submit(ctx, report.ID, other.ID); !errors.Is(err, ErrPermission) {
		t.Fatalf("Expected ErrPermission for foreign submit, got %v", err)
	}

	submitted, err := svc.PerformanceReport.Submit(ctx, report.ID, tech.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submitted.Status != entity.PerfReportStatusSubmitted {
		t.Errorf("Expected submitted, got %s", submitted.Status)
	}
	if submitted.SubmittedAt == nil {
		t.Error("Expected submitted_at to be stamped")
	}

	// the decision is a dm call; neither a technician nor an engineer makes it
	if _, err := svc.PerformanceReport.Decide(ctx, report.ID, tech.ID, &PerfDecisionRequest{Decision: "approve"}); !errors.Is(err, ErrPermission) {
		t.Fatalf("Expected ErrPermission for technician decision, got %v", err)
	}
	if _, err := svc.PerformanceReport.Decide(ctx, report.ID, eng.ID, &PerfDecisionRequest{Decision: "approve"}); !errors.Is(err, ErrPermission) {
		t.Fatalf("Expected ErrPermission for engineer decision, got %v", err)
	}

	approved, err := svc.PerformanceReport.Decide(ctx, report.ID, dm.ID, &PerfDecisionRequest{Decision: "approve"})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if approved.Status != entity.PerfReportStatusApproved {
		t.Errorf("Expected approved, got %s", approved.Status)
	}
	if approved.ApprovedAt == nil {
		t.Error("Expected approved_at to be stamped")
	}
}

func TestPerformanceReportExport(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eq := testutil.SeedEquipment(t, db, "TR-001")
	recordReading(t, svc, tech.ID, eq.ID, f(230), f(50), f(0.95))

	report, err := svc.PerformanceReport.Generate(ctx, tech.ID, &GeneratePerfReportRequest{
		PeriodStart: time.Now().Add(-24 * time.Hour),
		PeriodEnd:   time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	file, filename, err := svc.PerformanceReport.Export(ctx, report.ID)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	defer file.Close()

	if filename == "" {
		t.Error("Expected a filename")
	}
	rows, err := file.GetRows("Performance")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("Expected header and at least one data row, got %d rows", len(rows))
	}
}
