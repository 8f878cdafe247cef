package entity

import "time"

// Escalation records one hand-off of a fault to a higher role. Level is the
// ordinal count of escalations on the fault, monotonically increasing and
// never reused.
type Escalation struct {
	ID             string     `json:"id" gorm:"primaryKey;size:32"`
	FaultID        string     `json:"fault_id" gorm:"size:32;not null;index"`
	EscalatedFrom  string     `json:"escalated_from" gorm:"size:32;not null"`
	EscalatedTo    string     `json:"escalated_to" gorm:"size:32;not null"`
	Reason         string     `json:"reason" gorm:"type:text;not null"`
	Level          int        `json:"level" gorm:"not null;default:1"`
	Status         string     `json:"status" gorm:"size:16;not null;default:pending"`
	EscalatedAt    time.Time  `json:"escalated_at" gorm:"not null"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	ResolvedAt     *time.Time `json:"resolved_at"`

	Fault  *Fault `json:"fault,omitempty" gorm:"foreignKey:FaultID"`
	Source *User  `json:"source,omitempty" gorm:"foreignKey:EscalatedFrom"`
	Target *User  `json:"target,omitempty" gorm:"foreignKey:EscalatedTo"`
}

func (Escalation) TableName() string {
	return "escalations"
}

// Escalation status
const (
	EscalationStatusPending      = "pending"
	EscalationStatusAcknowledged = "acknowledged"
	EscalationStatusResolved     = "resolved"
)
