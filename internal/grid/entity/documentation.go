package entity

import "time"

// DocumentationPackage bundles the documents produced for a fault. Beyond
// the shared pipeline it has an extra completed gate: the package cannot
// reach completed while any item is draft, and items are frozen once the
// package is submitted or approved.
type DocumentationPackage struct {
	ID                string     `json:"id" gorm:"primaryKey;size:32"`
	FaultID           string     `json:"fault_id" gorm:"size:32;not null;index"`
	EngineerID        string     `json:"engineer_id" gorm:"size:32;not null"`
	PackageName       string     `json:"package_name" gorm:"size:256;not null"`
	DocumentationType string     `json:"documentation_type" gorm:"size:64"`
	Status            string     `json:"status" gorm:"size:16;not null;default:in_progress"`
	CompletionDate    *time.Time `json:"completion_date"`
	SubmittedAt       *time.Time `json:"submitted_at"`
	ApprovedBy        *string    `json:"approved_by" gorm:"size:32"`
	ApprovedAt        *time.Time `json:"approved_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Fault    *Fault              `json:"fault,omitempty" gorm:"foreignKey:FaultID"`
	Engineer *User               `json:"engineer,omitempty" gorm:"foreignKey:EngineerID"`
	Items    []DocumentationItem `json:"items,omitempty" gorm:"foreignKey:PackageID"`
}

func (DocumentationPackage) TableName() string {
	return "documentation_packages"
}

// Package status
const (
	PackageStatusInProgress = "in_progress"
	PackageStatusCompleted  = "completed"
	PackageStatusSubmitted  = "submitted"
	PackageStatusApproved   = "approved"
)

// DocumentationItem is a single document inside a package.
type DocumentationItem struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	PackageID     string    `json:"package_id" gorm:"size:32;not null;index"`
	DocumentName  string    `json:"document_name" gorm:"size:256;not null"`
	DocumentType  string    `json:"document_type" gorm:"size:64"`
	Content       string    `json:"content" gorm:"type:text"`
	Version       string    `json:"version" gorm:"size:32"`
	AttachmentURL string    `json:"attachment_url" gorm:"size:512"`
	Status        string    `json:"status" gorm:"size:16;not null;default:draft"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (DocumentationItem) TableName() string {
	return "documentation_items"
}

// Item status
const (
	ItemStatusDraft     = "draft"
	ItemStatusCompleted = "completed"
	ItemStatusApproved  = "approved"
)

// ValidItemStatuses enumerates the accepted item status values.
var ValidItemStatuses = map[string]bool{
	ItemStatusDraft:     true,
	ItemStatusCompleted: true,
	ItemStatusApproved:  true,
}
