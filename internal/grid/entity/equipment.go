package entity

import "time"

// Equipment is a monitored electrical asset. Equipment is never deleted,
// only status-transitioned.
type Equipment struct {
	ID             string     `json:"id" gorm:"primaryKey;size:32"`
	Code           string     `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name           string     `json:"name" gorm:"size:256;not null"`
	EquipmentType  string     `json:"equipment_type" gorm:"size:64"`
	Location       string     `json:"location" gorm:"size:128"`
	Status         string     `json:"status" gorm:"size:16;not null;default:operational"`
	CommissionedAt *time.Time `json:"commissioned_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Equipment) TableName() string {
	return "equipment"
}

// Equipment status
const (
	EquipmentStatusOperational    = "operational"
	EquipmentStatusMaintenance    = "maintenance"
	EquipmentStatusFaulty         = "faulty"
	EquipmentStatusDecommissioned = "decommissioned"
)

// Vendor supplies or services equipment.
type Vendor struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	Code          string    `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name          string    `json:"name" gorm:"size:256;not null"`
	ContactPerson string    `json:"contact_person" gorm:"size:128"`
	Email         string    `json:"email" gorm:"size:128"`
	Phone         string    `json:"phone" gorm:"size:32"`
	Status        string    `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Vendor) TableName() string {
	return "vendors"
}
