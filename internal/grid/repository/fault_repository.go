package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"gorm.io/gorm"
)

type FaultRepository struct {
	db *gorm.DB
}

func NewFaultRepository(db *gorm.DB) *FaultRepository {
	return &FaultRepository{db: db}
}

func (r *FaultRepository) FindByID(ctx context.Context, id string) (*entity.Fault, error) {
	var fault entity.Fault
	err := r.db.WithContext(ctx).
		Preload("Equipment").
		Preload("Reporter").
		Preload("RCA").
		Preload("Escalations").
		Where("id = ?", id).
		First(&fault).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fault, nil
}

// Create inserts the fault and marks its equipment faulty in one
// transaction.
func (r *FaultRepository) Create(ctx context.Context, fault *entity.Fault) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(fault).Error; err != nil {
				return err
			}
			return tx.Model(&entity.Equipment{}).
				Where("id = ?", fault.EquipmentID).
				Updates(map[string]interface{}{
					"status":     entity.EquipmentStatusFaulty,
					"updated_at": time.Now(),
				}).Error
		})
	})
}

// TransitionStatus moves the fault from one status to another with a
// conditional update. It reports false when the fault was no longer in the
// expected status, so concurrent transitions race to exactly one winner.
func (r *FaultRepository) TransitionStatus(ctx context.Context, id, from, to string) (bool, error) {
	var applied bool
	err := withBusyRetry(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&entity.Fault{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0
		return nil
	})
	return applied, err
}

// Resolve transitions the fault to resolved, stamps resolved_at and restores
// the equipment to operational, all in one transaction. It reports false
// when the fault was not in the expected status.
func (r *FaultRepository) Resolve(ctx context.Context, id, from string) (bool, error) {
	var applied bool
	err := withBusyRetry(ctx, func() error {
		applied = false
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			res := tx.Model(&entity.Fault{}).
				Where("id = ? AND status = ?", id, from).
				Updates(map[string]interface{}{
					"status":      entity.FaultStatusResolved,
					"resolved_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}
			applied = true

			var fault entity.Fault
			if err := tx.Select("equipment_id").Where("id = ?", id).First(&fault).Error; err != nil {
				return err
			}
			return tx.Model(&entity.Equipment{}).
				Where("id = ?", fault.EquipmentID).
				Updates(map[string]interface{}{
					"status":     entity.EquipmentStatusOperational,
					"updated_at": now,
				}).Error
		})
	})
	return applied, err
}

func (r *FaultRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Fault, int64, error) {
	var faults []entity.Fault
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Fault{})
	if equipmentID, ok := filters["equipment_id"].(string); ok && equipmentID != "" {
		query = query.Where("equipment_id = ?", equipmentID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if severity, ok := filters["severity"].(string); ok && severity != "" {
		query = query.Where("severity = ?", severity)
	}
	if reportedBy, ok := filters["reported_by"].(string); ok && reportedBy != "" {
		query = query.Where("reported_by = ?", reportedBy)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Equipment").
		Preload("Reporter").
		Order("reported_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&faults).Error
	if err != nil {
		return nil, 0, err
	}
	return faults, total, nil
}

// CreateRCA inserts the analysis and, in the same transaction, moves a
// still-reported fault to investigating. An escalated fault keeps its
// status. The unique index on fault_id rejects a second analysis for the
// same fault.
func (r *FaultRepository) CreateRCA(ctx context.Context, rca *entity.RootCauseAnalysis) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(rca).Error; err != nil {
				return err
			}
			return tx.Model(&entity.Fault{}).
				Where("id = ? AND status = ?", rca.FaultID, entity.FaultStatusReported).
				Update("status", entity.FaultStatusInvestigating).Error
		})
	})
}

func (r *FaultRepository) FindRCAByFaultID(ctx context.Context, faultID string) (*entity.RootCauseAnalysis, error) {
	var rca entity.RootCauseAnalysis
	err := r.db.WithContext(ctx).
		Preload("Analyst").
		Where("fault_id = ?", faultID).
		First(&rca).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rca, nil
}
