package entity

import "time"

// Fault is a reported equipment fault. It owns at most one RCA and one
// resolution report, and any number of escalations and documentation
// packages. ResolvedAt is stamped exactly once, on the transition to
// resolved.
type Fault struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	EquipmentID string     `json:"equipment_id" gorm:"size:32;not null;index"`
	ReportedBy  string     `json:"reported_by" gorm:"size:32;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Severity    string     `json:"severity" gorm:"size:16;not null;default:low"`
	Status      string     `json:"status" gorm:"size:16;not null;default:reported"`
	ReportedAt  time.Time  `json:"reported_at" gorm:"not null"`
	ResolvedAt  *time.Time `json:"resolved_at"`

	Equipment   *Equipment         `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	Reporter    *User              `json:"reporter,omitempty" gorm:"foreignKey:ReportedBy"`
	RCA         *RootCauseAnalysis `json:"rca,omitempty" gorm:"foreignKey:FaultID"`
	Escalations []Escalation       `json:"escalations,omitempty" gorm:"foreignKey:FaultID"`
}

func (Fault) TableName() string {
	return "faults"
}

// Fault status
const (
	FaultStatusReported      = "reported"
	FaultStatusInvestigating = "investigating"
	FaultStatusResolved      = "resolved"
	FaultStatusEscalated     = "escalated"
)

// Fault severity
const (
	FaultSeverityLow      = "low"
	FaultSeverityMedium   = "medium"
	FaultSeverityHigh     = "high"
	FaultSeverityCritical = "critical"
)

// ValidFaultStatuses enumerates the accepted status values.
var ValidFaultStatuses = map[string]bool{
	FaultStatusReported:      true,
	FaultStatusInvestigating: true,
	FaultStatusResolved:      true,
	FaultStatusEscalated:     true,
}

// ValidFaultSeverities enumerates the accepted severity values.
var ValidFaultSeverities = map[string]bool{
	FaultSeverityLow:      true,
	FaultSeverityMedium:   true,
	FaultSeverityHigh:     true,
	FaultSeverityCritical: true,
}

// ValidFaultTransitions maps each status to its allowed successors.
// resolved is terminal; a resolved fault is reopened only by a new report.
// Any non-terminal status may re-enter investigating.
var ValidFaultTransitions = map[string][]string{
	FaultStatusReported:      {FaultStatusInvestigating, FaultStatusEscalated},
	FaultStatusInvestigating: {FaultStatusInvestigating, FaultStatusResolved, FaultStatusEscalated},
	FaultStatusEscalated:     {FaultStatusInvestigating, FaultStatusResolved},
	FaultStatusResolved:      {},
}

// RootCauseAnalysis explains why a fault occurred. A fault owns at most one.
type RootCauseAnalysis struct {
	ID                  string    `json:"id" gorm:"primaryKey;size:32"`
	FaultID             string    `json:"fault_id" gorm:"size:32;not null;uniqueIndex"`
	AnalyzedBy          string    `json:"analyzed_by" gorm:"size:32;not null"`
	RootCause           string    `json:"root_cause" gorm:"type:text;not null"`
	ContributingFactors string    `json:"contributing_factors" gorm:"type:text"`
	AnalysisDate        time.Time `json:"analysis_date" gorm:"not null"`
	CreatedAt           time.Time `json:"created_at"`

	Analyst *User `json:"analyst,omitempty" gorm:"foreignKey:AnalyzedBy"`
}

func (RootCauseAnalysis) TableName() string {
	return "root_cause_analyses"
}
