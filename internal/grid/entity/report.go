package entity

import "time"

// ResolutionReport documents how a fault was fixed. It follows the shared
// draft → pending_approval → approved/rejected pipeline; approval cascades
// the owning fault to resolved. Unlike the other report kinds it carries no
// submission timestamp.
type ResolutionReport struct {
	ID                    string     `json:"id" gorm:"primaryKey;size:32"`
	FaultID               string     `json:"fault_id" gorm:"size:32;not null;index"`
	RCAID                 *string    `json:"rca_id" gorm:"size:32"`
	PreparedBy            string     `json:"prepared_by" gorm:"size:32;not null"`
	ResolutionDescription string     `json:"resolution_description" gorm:"type:text;not null"`
	ActionsTaken          string     `json:"actions_taken" gorm:"type:text;not null"`
	PreventiveMeasures    string     `json:"preventive_measures" gorm:"type:text"`
	Status                string     `json:"status" gorm:"size:24;not null;default:draft"`
	ApprovedBy            *string    `json:"approved_by" gorm:"size:32"`
	ApprovedAt            *time.Time `json:"approved_at"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	Fault    *Fault             `json:"fault,omitempty" gorm:"foreignKey:FaultID"`
	RCA      *RootCauseAnalysis `json:"rca,omitempty" gorm:"foreignKey:RCAID"`
	Preparer *User              `json:"preparer,omitempty" gorm:"foreignKey:PreparedBy"`
	Approver *User              `json:"approver,omitempty" gorm:"foreignKey:ApprovedBy"`
}

func (ResolutionReport) TableName() string {
	return "resolution_reports"
}

// Resolution report status
const (
	ReportStatusDraft           = "draft"
	ReportStatusPendingApproval = "pending_approval"
	ReportStatusApproved        = "approved"
	ReportStatusRejected        = "rejected"
)

// PerformanceReport summarizes a technician's monitoring readings over a
// period. Same pipeline shape as ResolutionReport, with a submitted state
// name and a submission timestamp.
type PerformanceReport struct {
	ID             string     `json:"id" gorm:"primaryKey;size:32"`
	TechnicianID   string     `json:"technician_id" gorm:"size:32;not null;index"`
	PeriodStart    time.Time  `json:"period_start" gorm:"not null"`
	PeriodEnd      time.Time  `json:"period_end" gorm:"not null"`
	ReportType     string     `json:"report_type" gorm:"size:16;not null;default:weekly"`
	TotalReadings  int        `json:"total_readings" gorm:"default:0"`
	NormalCount    int        `json:"normal_count" gorm:"default:0"`
	WarningCount   int        `json:"warning_count" gorm:"default:0"`
	CriticalCount  int        `json:"critical_count" gorm:"default:0"`
	AvgVoltage     float64    `json:"avg_voltage" gorm:"default:0"`
	AvgCurrent     float64    `json:"avg_current" gorm:"default:0"`
	AvgPowerFactor float64    `json:"avg_power_factor" gorm:"default:0"`
	Analysis       string     `json:"analysis" gorm:"type:text"`
	Recommendations string    `json:"recommendations" gorm:"type:text"`
	Status         string     `json:"status" gorm:"size:16;not null;default:draft"`
	SubmittedAt    *time.Time `json:"submitted_at"`
	ApprovedBy     *string    `json:"approved_by" gorm:"size:32"`
	ApprovedAt     *time.Time `json:"approved_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Technician *User `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	Approver   *User `json:"approver,omitempty" gorm:"foreignKey:ApprovedBy"`
}

func (PerformanceReport) TableName() string {
	return "performance_reports"
}

// Performance report status
const (
	PerfReportStatusDraft     = "draft"
	PerfReportStatusSubmitted = "submitted"
	PerfReportStatusApproved  = "approved"
	PerfReportStatusRejected  = "rejected"
)

// Performance report type
const (
	PerfReportTypeWeekly  = "weekly"
	PerfReportTypeMonthly = "monthly"
)
