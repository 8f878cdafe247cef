package entity

import "time"

// DeliveryServiceVerification tracks a vendor delivery or service visit
// through the two-party verification machine: the engineer maintains
// compliance_status while verification_status is pending; the DGM makes
// the final verified/rejected call, after which the record is frozen.
type DeliveryServiceVerification struct {
	ID                  string     `json:"id" gorm:"primaryKey;size:32"`
	VendorID            string     `json:"vendor_id" gorm:"size:32;not null;index"`
	EquipmentID         string     `json:"equipment_id" gorm:"size:32;not null;index"`
	VerificationType    string     `json:"verification_type" gorm:"size:16;not null"`
	DeliveryDate        *time.Time `json:"delivery_date"`
	ServiceDate         *time.Time `json:"service_date"`
	EngineerID          string     `json:"engineer_id" gorm:"size:32;not null"`
	QualityAssessment   string     `json:"quality_assessment" gorm:"type:text"`
	ComplianceStatus    string     `json:"compliance_status" gorm:"size:24;not null;default:pending"`
	VerificationStatus  string     `json:"verification_status" gorm:"size:16;not null;default:pending"`
	SupportingDocuments string     `json:"supporting_documents" gorm:"type:text"`
	VerifiedBy          *string    `json:"verified_by" gorm:"size:32"`
	VerifiedAt          *time.Time `json:"verified_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	Vendor    *Vendor    `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	Engineer  *User      `json:"engineer,omitempty" gorm:"foreignKey:EngineerID"`
}

func (DeliveryServiceVerification) TableName() string {
	return "delivery_service_verifications"
}

// Verification type
const (
	VerificationTypeDelivery = "delivery"
	VerificationTypeService  = "service"
)

// Compliance status, the engineer's ongoing assessment
const (
	CompliancePending        = "pending"
	ComplianceCompliant      = "compliant"
	ComplianceNonCompliant   = "non_compliant"
	ComplianceRequiresAction = "requires_action"
)

// ValidComplianceStatuses enumerates the accepted compliance values.
var ValidComplianceStatuses = map[string]bool{
	CompliancePending:        true,
	ComplianceCompliant:      true,
	ComplianceNonCompliant:   true,
	ComplianceRequiresAction: true,
}

// Verification status, the DGM's final call
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)
