package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*entity.ResolutionReport, error) {
	var report entity.ResolutionReport
	err := r.db.WithContext(ctx).
		Preload("Fault").
		Preload("Fault.Equipment").
		Preload("RCA").
		Preload("Preparer").
		Preload("Approver").
		Where("id = ?", id).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) FindByFaultID(ctx context.Context, faultID string) (*entity.ResolutionReport, error) {
	var report entity.ResolutionReport
	err := r.db.WithContext(ctx).
		Where("fault_id = ?", faultID).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) Create(ctx context.Context, report *entity.ResolutionReport) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Create(report).Error
	})
}

func (r *ReportRepository) Update(ctx context.Context, report *entity.ResolutionReport) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Save(report).Error
	})
}

// TransitionStatus conditionally advances the report status. It reports
// false when the report was not in the expected status.
func (r *ReportRepository) TransitionStatus(ctx context.Context, id, from, to string) (bool, error) {
	var applied bool
	err := withBusyRetry(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&entity.ResolutionReport{}).
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

// Approve marks a pending report approved and cascades: the owning fault
// goes to resolved with resolved_at stamped, and its equipment returns to
// operational, all in one transaction. It reports false when the report was
// not pending approval, which makes concurrent approvals settle on exactly
// one winner.
func (r *ReportRepository) Approve(ctx context.Context, id, approverID string) (bool, error) {
	var applied bool
	err := withBusyRetry(ctx, func() error {
		applied = false
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			res := tx.Model(&entity.ResolutionReport{}).
				Where("id = ? AND status = ?", id, entity.ReportStatusPendingApproval).
				Updates(map[string]interface{}{
					"status":      entity.ReportStatusApproved,
					"approved_by": approverID,
					"approved_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}
			applied = true

			var report entity.ResolutionReport
			if err := tx.Select("fault_id").Where("id = ?", id).First(&report).Error; err != nil {
				return err
			}
			if err := tx.Model(&entity.Fault{}).
				Where("id = ? AND status <> ?", report.FaultID, entity.FaultStatusResolved).
				Updates(map[string]interface{}{
					"status":      entity.FaultStatusResolved,
					"resolved_at": now,
				}).Error; err != nil {
				return err
			}

			var fault entity.Fault
			if err := tx.Select("equipment_id").Where("id = ?", report.FaultID).First(&fault).Error; err != nil {
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

// Reject marks a pending report rejected. The approved_by/approved_at pair
// stays empty; it belongs to approval alone. It reports false when the
// report was not pending approval.
func (r *ReportRepository) Reject(ctx context.Context, id string) (bool, error) {
	var applied bool
	err := withBusyRetry(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&entity.ResolutionReport{}).
			Where("id = ? AND status = ?", id, entity.ReportStatusPendingApproval).
			Update("status", entity.ReportStatusRejected)
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0
		return nil
	})
	return applied, err
}

func (r *ReportRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.ResolutionReport, int64, error) {
	var reports []entity.ResolutionReport
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ResolutionReport{})
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if preparedBy, ok := filters["prepared_by"].(string); ok && preparedBy != "" {
		query = query.Where("prepared_by = ?", preparedBy)
	}
	if faultID, ok := filters["fault_id"].(string); ok && faultID != "" {
		query = query.Where("fault_id = ?", faultID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Fault").
		Preload("Preparer").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
