package service

import (
	"fmt"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
)

// escalationLadder maps each role to the role a fault escalates to. The top
// of the ladder has no entry.
var escalationLadder = map[string]string{
	entity.RoleTechnician: entity.RoleEngineer,
	entity.RoleEngineer:   entity.RoleDM,
	entity.RoleDM:         entity.RoleDGM,
}

// EscalationStrategy decides whether a fault may escalate from the holder's
// role and which role receives it.
type EscalationStrategy interface {
	Name() string
	TargetRole(fault *entity.Fault, fromRole string) (string, error)
}

// SeverityStrategy escalates only high and critical faults, one rung up the
// ladder.
type SeverityStrategy struct{}

func (SeverityStrategy) Name() string { return "severity_based" }

func (SeverityStrategy) TargetRole(fault *entity.Fault, fromRole string) (string, error) {
	if fault.Severity != entity.FaultSeverityHigh && fault.Severity != entity.FaultSeverityCritical {
		return "", fmt.Errorf("%w: severity %s does not qualify for escalation", ErrValidation, fault.Severity)
	}
	target, ok := escalationLadder[fromRole]
	if !ok {
		return "", fmt.Errorf("%w: no role above %s", ErrNoEscalationTarget, fromRole)
	}
	return target, nil
}

// TimeBasedStrategy escalates any fault, whatever its severity, once it has
// been open strictly longer than the threshold.
type TimeBasedStrategy struct {
	Threshold time.Duration
	// now is swappable for tests.
	now func() time.Time
}

func NewTimeBasedStrategy(threshold time.Duration) *TimeBasedStrategy {
	return &TimeBasedStrategy{Threshold: threshold, now: time.Now}
}

func (s *TimeBasedStrategy) Name() string { return "time_based" }

func (s *TimeBasedStrategy) TargetRole(fault *entity.Fault, fromRole string) (string, error) {
	clock := s.now
	if clock == nil {
		clock = time.Now
	}
	open := clock().Sub(fault.ReportedAt)
	if open <= s.Threshold {
		return "", fmt.Errorf("%w: fault open %s, below threshold %s", ErrValidation, open.Round(time.Minute), s.Threshold)
	}
	target, ok := escalationLadder[fromRole]
	if !ok {
		return "", fmt.Errorf("%w: no role above %s", ErrNoEscalationTarget, fromRole)
	}
	return target, nil
}
