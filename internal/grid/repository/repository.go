package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrBusy is returned when the database stayed locked through every
	// retry attempt.
	ErrBusy = errors.New("database busy")
)

// Repositories is the set of data access objects over one *gorm.DB.
type Repositories struct {
	User                 *UserRepository
	Equipment            *EquipmentRepository
	Vendor               *VendorRepository
	Monitoring           *MonitoringRepository
	Fault                *FaultRepository
	Escalation           *EscalationRepository
	Report               *ReportRepository
	PerformanceReport    *PerformanceReportRepository
	Documentation        *DocumentationRepository
	Reverification       *ReverificationRepository
	DeliveryVerification *DeliveryVerificationRepository
	Notification         *NotificationRepository
}

// NewRepositories creates the repository set.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:                 NewUserRepository(db),
		Equipment:            NewEquipmentRepository(db),
		Vendor:               NewVendorRepository(db),
		Monitoring:           NewMonitoringRepository(db),
		Fault:                NewFaultRepository(db),
		Escalation:           NewEscalationRepository(db),
		Report:               NewReportRepository(db),
		PerformanceReport:    NewPerformanceReportRepository(db),
		Documentation:        NewDocumentationRepository(db),
		Reverification:       NewReverificationRepository(db),
		DeliveryVerification: NewDeliveryVerificationRepository(db),
		Notification:         NewNotificationRepository(db),
	}
}
