package entity

import "time"

// DataReverification re-measures a monitoring record and compares the new
// triple against the snapshotted original. The original readings are copied
// at creation and never touched afterwards. A resolved status implies
// engineer approval.
type DataReverification struct {
	ID                   string    `json:"id" gorm:"primaryKey;size:32"`
	OriginalMonitoringID string    `json:"original_monitoring_id" gorm:"size:32;not null;index"`
	TechnicianID         string    `json:"technician_id" gorm:"size:32;not null;index"`
	EngineerID           *string   `json:"engineer_id" gorm:"size:32"`
	VerificationDate     time.Time `json:"verification_date" gorm:"not null"`

	OriginalVoltage     *float64 `json:"original_voltage"`
	OriginalCurrent     *float64 `json:"original_current"`
	OriginalPowerFactor *float64 `json:"original_power_factor"`
	NewVoltage          *float64 `json:"new_voltage"`
	NewCurrent          *float64 `json:"new_current"`
	NewPowerFactor      *float64 `json:"new_power_factor"`
	VarianceVoltage     *float64 `json:"variance_voltage"`
	VarianceCurrent     *float64 `json:"variance_current"`
	VariancePowerFactor *float64 `json:"variance_power_factor"`

	ToleranceLevels   string    `json:"tolerance_levels" gorm:"size:256"`
	ComparisonResults string    `json:"comparison_results" gorm:"type:text"`
	Status            string    `json:"status" gorm:"size:16;not null;default:pending"`
	EngineerApproval  bool      `json:"engineer_approval" gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Original   *DailyMonitoring `json:"original,omitempty" gorm:"foreignKey:OriginalMonitoringID"`
	Technician *User            `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
}

func (DataReverification) TableName() string {
	return "data_reverifications"
}

// Re-verification status
const (
	ReverificationStatusPending     = "pending"
	ReverificationStatusVerified    = "verified"
	ReverificationStatusDiscrepancy = "discrepancy"
	ReverificationStatusResolved    = "resolved"
)
