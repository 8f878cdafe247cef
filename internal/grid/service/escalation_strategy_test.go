package service

import (
	"errors"
	"testing"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
)

func TestSeverityStrategyLadder(t *testing.T) {
	s := SeverityStrategy{}
	fault := &entity.Fault{Severity: entity.FaultSeverityHigh}

	cases := []struct {
		from string
		want string
	}{
		{entity.RoleTechnician, entity.RoleEngineer},
		{entity.RoleEngineer, entity.RoleDM},
		{entity.RoleDM, entity.RoleDGM},
	}
	for _, c := range cases {
		got, err := s.TargetRole(fault, c.from)
		if err != nil {
			t.Fatalf("TargetRole(%s): %v", c.from, err)
		}
		if got != c.want {
			t.Errorf("TargetRole(%s) = %s, want %s", c.from, got, c.want)
		}
	}
}

func TestSeverityStrategyTopOfLadder(t *testing.T) {
	s := SeverityStrategy{}
	fault := &entity.Fault{Severity: entity.FaultSeverityCritical}

	_, err := s.TargetRole(fault, entity.RoleDGM)
	if !errors.Is(err, ErrNoEscalationTarget) {
		t.Fatalf("Expected ErrNoEscalationTarget for dgm, got %v", err)
	}
}

func TestSeverityStrategyRejectsLowSeverity(t *testing.T) {
	s := SeverityStrategy{}
	for _, sev := range []string{entity.FaultSeverityLow, entity.FaultSeverityMedium} {
		_, err := s.TargetRole(&entity.Fault{Severity: sev}, entity.RoleTechnician)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Expected ErrValidation for severity %s, got %v", sev, err)
		}
	}
}

func TestTimeBasedStrategyThreshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewTimeBasedStrategy(4 * time.Hour)
	s.now = func() time.Time { return now }

	fresh := &entity.Fault{Severity: entity.FaultSeverityLow, ReportedAt: now.Add(-time.Hour)}
	if _, err := s.TargetRole(fresh, entity.RoleTechnician); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for a fault open one hour, got %v", err)
	}

	// exactly at the threshold is not yet over it
	boundary := &entity.Fault{Severity: entity.FaultSeverityLow, ReportedAt: now.Add(-4 * time.Hour)}
	if _, err := s.TargetRole(boundary, entity.RoleTechnician); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation exactly at the threshold, got %v", err)
	}

	stale := &entity.Fault{Severity: entity.FaultSeverityLow, ReportedAt: now.Add(-4*time.Hour - time.Minute)}
	got, err := s.TargetRole(stale, entity.RoleTechnician)
	if err != nil {
		t.Fatalf("Expected escalation past the threshold, got %v", err)
	}
	if got != entity.RoleEngineer {
		t.Errorf("Expected target engineer, got %s", got)
	}
}

func TestTimeBasedStrategyIgnoresSeverity(t *testing.T) {
	now := time.Now()
	s := NewTimeBasedStrategy(4 * time.Hour)
	s.now = func() time.Time { return now }

	fault := &entity.Fault{Severity: entity.FaultSeverityLow, ReportedAt: now.Add(-5 * time.Hour)}
	if _, err := s.TargetRole(fault, entity.RoleEngineer); err != nil {
		t.Fatalf("Time-based strategy must escalate regardless of severity, got %v", err)
	}
}

func TestTimeBasedStrategyTopOfLadder(t *testing.T) {
	now := time.Now()
	s := NewTimeBasedStrategy(4 * time.Hour)
	s.now = func() time.Time { return now }

	fault := &entity.Fault{ReportedAt: now.Add(-24 * time.Hour)}
	if _, err := s.TargetRole(fault, entity.RoleDGM); !errors.Is(err, ErrNoEscalationTarget) {
		t.Fatalf("Expected ErrNoEscalationTarget for dgm, got %v", err)
	}
}
