package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"gorm.io/gorm"
)

type DeliveryVerificationRepository struct {
	db *gorm.DB
}

func NewDeliveryVerificationRepository(db *gorm.DB) *DeliveryVerificationRepository {
	return &DeliveryVerificationRepository{db: db}
}

func (r *DeliveryVerificationRepository) FindByID(ctx context.Context, id string) (*entity.DeliveryServiceVerification, error) {
	var v entity.DeliveryServiceVerification
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Equipment").
		Preload("Engineer").
		Where("id = ?", id).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *DeliveryVerificationRepository) Create(ctx context.Context, v *entity.DeliveryServiceVerification) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Create(v).Error
	})
}

// UpdateCompliance sets the engineer assessment fields while the record is
// still awaiting the final verification call. It reports false when the
// record was no longer pending.
func (r *DeliveryVerificationRepository) UpdateCompliance(ctx context.Context, id, complianceStatus, qualityAssessment string) (bool, error) {
	updates := map[string]interface{}{
		"compliance_status": complianceStatus,
		"updated_at":        time.Now(),
	}
	if qualityAssessment != "" {
		updates["quality_assessment"] = qualityAssessment
	}

	var applied bool
	err := withBusyRetry(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&entity.DeliveryServiceVerification{}).
			Where("id = ? AND verification_status = ?", id, entity.VerificationPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0
		return nil
	})
	return applied, err
}

// Decide settles a pending record as verified or rejected and freezes it.
// It reports false when the record was no longer pending.
func (r *DeliveryVerificationRepository) Decide(ctx context.Context, id, status, verifierID string) (bool, error) {
	var applied bool
	err := withBusyRetry(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&entity.DeliveryServiceVerification{}).
			Where("id = ? AND verification_status = ?", id, entity.VerificationPending).
			Updates(map[string]interface{}{
				"verification_status": status,
				"verified_by":         verifierID,
				"verified_at":         time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0
		return nil
	})
	return applied, err
}

func (r *DeliveryVerificationRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.DeliveryServiceVerification, int64, error) {
	var items []entity.DeliveryServiceVerification
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DeliveryServiceVerification{})
	if vendorID, ok := filters["vendor_id"].(string); ok && vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if equipmentID, ok := filters["equipment_id"].(string); ok && equipmentID != "" {
		query = query.Where("equipment_id = ?", equipmentID)
	}
	if vType, ok := filters["verification_type"].(string); ok && vType != "" {
		query = query.Where("verification_type = ?", vType)
	}
	if status, ok := filters["verification_status"].(string); ok && status != "" {
		query = query.Where("verification_status = ?", status)
	}
	if compliance, ok := filters["compliance_status"].(string); ok && compliance != "" {
		query = query.Where("compliance_status = ?", compliance)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Vendor").
		Preload("Equipment").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
