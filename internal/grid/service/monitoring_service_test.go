package service

import (
	"context"
	"testing"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/testutil"
)

func TestClassifyReading(t *testing.T) {
	cases := []struct {
		name    string
		voltage *float64
		current *float64
		pf      *float64
		want    string
	}{
		{"all nominal", f(230), f(50), f(0.95), entity.MonitoringStatusNormal},
		{"pf below critical floor", f(230), f(50), f(0.84), entity.MonitoringStatusCritical},
		{"pf below warning floor", f(230), f(50), f(0.88), entity.MonitoringStatusWarning},
		{"voltage under band", f(219), f(50), f(0.95), entity.MonitoringStatusWarning},
		{"voltage over band", f(241), f(50), f(0.95), entity.MonitoringStatusWarning},
		{"current over ceiling", f(230), f(101), f(0.95), entity.MonitoringStatusWarning},
		{"critical wins over warning", f(200), f(150), f(0.80), entity.MonitoringStatusCritical},
		{"missing readings are normal", nil, nil, nil, entity.MonitoringStatusNormal},
		{"missing pf skips pf floors", f(230), f(50), nil, entity.MonitoringStatusNormal},
		{"band edges are nominal", f(220), f(100), f(0.90), entity.MonitoringStatusNormal},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ClassifyReading(c.voltage, c.current, c.pf)
			if got != c.want {
				t.Errorf("ClassifyReading = %s, want %s", got, c.want)
			}
		})
	}
}

func TestRecordReadingPersistsClassification(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eq := testutil.SeedEquipment(t, db, "TR-001")

	rec, err := svc.Monitoring.RecordReading(ctx, tech.ID, &RecordReadingRequest{
		EquipmentID: eq.ID,
		Shift:       "morning",
		Voltage:     f(230),
		Current:     f(50),
		PowerFactor: f(0.82),
	})
	if err != nil {
		t.Fatalf("RecordReading: %v", err)
	}
	if rec.OperationalStatus != entity.MonitoringStatusCritical {
		t.Errorf("Expected critical, got %s", rec.OperationalStatus)
	}

	fetched, err := svc.Monitoring.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.OperationalStatus != entity.MonitoringStatusCritical {
		t.Errorf("Expected persisted status critical, got %s", fetched.OperationalStatus)
	}
	if fetched.Equipment == nil || fetched.Equipment.Code != "TR-001" {
		t.Errorf("Expected preloaded equipment TR-001, got %+v", fetched.Equipment)
	}
}

func TestRecordReadingCriticalMarksEquipmentFaulty(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)
	eq := testutil.SeedEquipment(t, db, "TR-001")

	// a warning reading leaves the equipment alone
	if _, err := svc.Monitoring.RecordReading(ctx, tech.ID, &RecordReadingRequest{
		EquipmentID: eq.ID,
		Voltage:     f(245),
		Current:     f(50),
		PowerFactor: f(0.95),
	}); err != nil {
		t.Fatalf("RecordReading: %v", err)
	}
	got, err := svc.Registry.GetEquipment(ctx, eq.ID)
	if err != nil {
		t.Fatalf("GetEquipment: %v", err)
	}
	if got.Status != entity.EquipmentStatusOperational {
		t.Fatalf("Expected equipment operational after warning reading, got %s", got.Status)
	}

	if _, err := svc.Monitoring.RecordReading(ctx, tech.ID, &RecordReadingRequest{
		EquipmentID: eq.ID,
		Voltage:     f(230),
		Current:     f(50),
		PowerFactor: f(0.80),
	}); err != nil {
		t.Fatalf("RecordReading: %v", err)
	}
	got, err = svc.Registry.GetEquipment(ctx, eq.ID)
	if err != nil {
		t.Fatalf("GetEquipment: %v", err)
	}
	if got.Status != entity.EquipmentStatusFaulty {
		t.Errorf("Expected equipment faulty after critical reading, got %s", got.Status)
	}
}

func TestRecordReadingUnknownEquipment(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	tech := testutil.SeedUser(t, db, "tech1", entity.RoleTechnician)

	_, err := svc.Monitoring.RecordReading(ctx, tech.ID, &RecordReadingRequest{
		EquipmentID: "nope",
		Voltage:     f(230),
	})
	if err == nil {
		t.Fatal("Expected error for unknown equipment")
	}
}
