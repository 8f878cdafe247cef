package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"github.com/maham-nadeemm/APDS/internal/shared/events"
)

// DeliveryVerificationService runs the two-party vendor verification
// machine: an engineer records and assesses the delivery or service, the
// DGM makes the final call.
type DeliveryVerificationService struct {
	verifRepo     *repository.DeliveryVerificationRepository
	vendorRepo    *repository.VendorRepository
	equipmentRepo *repository.EquipmentRepository
	userRepo      *repository.UserRepository
	dispatcher    *events.Dispatcher
}

func NewDeliveryVerificationService(
	verifRepo *repository.DeliveryVerificationRepository,
	vendorRepo *repository.VendorRepository,
	equipmentRepo *repository.EquipmentRepository,
	userRepo *repository.UserRepository,
	dispatcher *events.Dispatcher,
) *DeliveryVerificationService {
	return &DeliveryVerificationService{
		verifRepo:     verifRepo,
		vendorRepo:    vendorRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		dispatcher:    dispatcher,
	}
}

// CreateVerificationRequest opens a verification record for a vendor
// delivery or service visit.
type CreateVerificationRequest struct {
	VendorID            string     `json:"vendor_id" binding:"required"`
	EquipmentID         string     `json:"equipment_id" binding:"required"`
	VerificationType    string     `json:"verification_type" binding:"required"`
	DeliveryDate        *time.Time `json:"delivery_date"`
	ServiceDate         *time.Time `json:"service_date"`
	QualityAssessment   string     `json:"quality_assessment"`
	SupportingDocuments string     `json:"supporting_documents"`
}

// UpdateComplianceRequest is the engineer's ongoing assessment.
type UpdateComplianceRequest struct {
	ComplianceStatus  string `json:"compliance_status" binding:"required"`
	QualityAssessment string `json:"quality_assessment"`
}

// VerifyRequest is the DGM's final call.
type VerifyRequest struct {
	Decision string `json:"decision" binding:"required"` // verify/reject
}

// VerificationListResult is one page of verification records.
type VerificationListResult struct {
	Items      []entity.DeliveryServiceVerification `json:"items"`
	Total      int64                                `json:"total"`
	Page       int                                  `json:"page"`
	PageSize   int                                  `json:"page_size"`
	TotalPages int                                  `json:"total_pages"`
}

// Create opens the record in pending/pending. A delivery needs a delivery
// date, a service visit a service date.
func (s *DeliveryVerificationService) Create(ctx context.Context, engineerID string, req *CreateVerificationRequest) (*entity.DeliveryServiceVerification, error) {
	switch req.VerificationType {
	case entity.VerificationTypeDelivery:
		if req.DeliveryDate == nil {
			return nil, fmt.Errorf("%w: delivery verification needs a delivery date", ErrValidation)
		}
	case entity.VerificationTypeService:
		if req.ServiceDate == nil {
			return nil, fmt.Errorf("%w: service verification needs a service date", ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown verification type %q", ErrValidation, req.VerificationType)
	}

	if _, err := s.vendorRepo.FindByID(ctx, req.VendorID); err != nil {
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	if _, err := s.equipmentRepo.FindByID(ctx, req.EquipmentID); err != nil {
		return nil, fmt.Errorf("find equipment: %w", err)
	}

	v := &entity.DeliveryServiceVerification{
		ID:                  uuid.New().String()[:32],
		VendorID:            req.VendorID,
		EquipmentID:         req.EquipmentID,
		VerificationType:    req.VerificationType,
		DeliveryDate:        req.DeliveryDate,
		ServiceDate:         req.ServiceDate,
		EngineerID:          engineerID,
		QualityAssessment:   req.QualityAssessment,
		ComplianceStatus:    entity.CompliancePending,
		VerificationStatus:  entity.VerificationPending,
		SupportingDocuments: req.SupportingDocuments,
	}
	if err := s.verifRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create verification: %w", err)
	}
	return v, nil
}

// UpdateCompliance records the engineer's assessment. Once the DGM has
// decided, the record is frozen.
func (s *DeliveryVerificationService) UpdateCompliance(ctx context.Context, id, userID string, req *UpdateComplianceRequest) (*entity.DeliveryServiceVerification, error) {
	if !entity.ValidComplianceStatuses[req.ComplianceStatus] {
		return nil, fmt.Errorf("%w: unknown compliance status %q", ErrValidation, req.ComplianceStatus)
	}

	v, err := s.verifRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find verification: %w", err)
	}
	if v.EngineerID != userID {
		return nil, fmt.Errorf("%w: only the recording engineer may assess compliance", ErrPermission)
	}

	applied, err := s.verifRepo.UpdateCompliance(ctx, id, req.ComplianceStatus, req.QualityAssessment)
	if err != nil {
		return nil, fmt.Errorf("update compliance: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: verification is already decided", ErrImmutable)
	}
	return s.verifRepo.FindByID(ctx, id)
}

// Verify is the DGM's final call. The originating engineer is told either
// way.
func (s *DeliveryVerificationService) Verify(ctx context.Context, id, verifierID string, req *VerifyRequest) (*entity.DeliveryServiceVerification, error) {
	verifier, err := s.userRepo.FindByID(ctx, verifierID)
	if err != nil {
		return nil, fmt.Errorf("find verifier: %w", err)
	}
	if !verifier.HasPermission(entity.RoleDGM) {
		return nil, fmt.Errorf("%w: final verification requires %s", ErrPermission, entity.RoleDGM)
	}

	var status string
	switch req.Decision {
	case "verify":
		status = entity.VerificationVerified
	case "reject":
		status = entity.VerificationRejected
	default:
		return nil, fmt.Errorf("%w: decision must be verify or reject", ErrValidation)
	}

	v, err := s.verifRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find verification: %w", err)
	}

	applied, err := s.verifRepo.Decide(ctx, id, status, verifierID)
	if err != nil {
		return nil, fmt.Errorf("decide verification: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: verification is already decided", ErrInvalidState)
	}

	s.dispatcher.Dispatch(ctx, events.Event{
		Kind:         events.KindVerificationDecided,
		EntityType:   "delivery_service_verification",
		EntityID:     id,
		TargetUserID: v.EngineerID,
		Message:      fmt.Sprintf("Vendor %s verification %s", v.VendorID, status),
	})
	return s.verifRepo.FindByID(ctx, id)
}

func (s *DeliveryVerificationService) Get(ctx context.Context, id string) (*entity.DeliveryServiceVerification, error) {
	v, err := s.verifRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find verification: %w", err)
	}
	return v, nil
}

func (s *DeliveryVerificationService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*VerificationListResult, error) {
	items, total, err := s.verifRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &VerificationListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
