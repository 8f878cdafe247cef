package entity

import "time"

// DailyMonitoring is one shift reading of the voltage/current/power-factor
// triple for a piece of equipment. Readings are nullable; an absent reading
// never counts against thresholds.
type DailyMonitoring struct {
	ID                string    `json:"id" gorm:"primaryKey;size:32"`
	EquipmentID       string    `json:"equipment_id" gorm:"size:32;not null;index"`
	TechnicianID      string    `json:"technician_id" gorm:"size:32;not null;index"`
	MonitoringDate    time.Time `json:"monitoring_date" gorm:"not null"`
	Shift             string    `json:"shift" gorm:"size:16"`
	Voltage           *float64  `json:"voltage"`
	Current           *float64  `json:"current"`
	PowerFactor       *float64  `json:"power_factor"`
	OperationalStatus string    `json:"operational_status" gorm:"size:16;not null;default:normal"`
	Observations      string    `json:"observations" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`

	Equipment  *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	Technician *User      `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
}

func (DailyMonitoring) TableName() string {
	return "daily_monitoring"
}

// Operational status of a reading
const (
	MonitoringStatusNormal   = "normal"
	MonitoringStatusWarning  = "warning"
	MonitoringStatusCritical = "critical"
)
