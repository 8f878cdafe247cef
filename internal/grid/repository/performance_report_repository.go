package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"gorm.io/gorm"
)

type PerformanceReportRepository struct {
	db *gorm.DB
}

func NewPerformanceReportRepository(db *gorm.DB) *PerformanceReportRepository {
	return &PerformanceReportRepository{db: db}
}

func (r *PerformanceReportRepository) FindByID(ctx context.Context, id string) (*entity.PerformanceReport, error) {
	var report entity.PerformanceReport
	err := r.db.WithContext(ctx).
		Preload("Technician").
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

func (r *PerformanceReportRepository) Create(ctx context.Context, report *entity.PerformanceReport) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Create(report).Error
	})
}

func (r *PerformanceReportRepository) Update(ctx context.Context, report *entity.PerformanceReport) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Save(report).Error
	})
}

// Submit conditionally moves a draft report to submitted and stamps
// submitted_at. It reports false when the report was not a draft.
func (r *PerformanceReportRepository) Submit(ctx context.Context, id string) (bool, error) {
	var applied bool
	err := withBusyRetry(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&entity.PerformanceReport{}).
			Where("id = ? AND status = ?", id, entity.PerfReportStatusDraft).
			Updates(map[string]interface{}{
				"status":       entity.PerfReportStatusSubmitted,
				"submitted_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0
		return nil
	})
	return applied, err
}

// Decide settles a submitted report as approved or rejected. It reports
// false when the report was not submitted.
func (r *PerformanceReportRepository) Decide(ctx context.Context, id, status, approverID string) (bool, error) {
	updates := map[string]interface{}{
		"status":      status,
		"approved_by": approverID,
	}
	if status == entity.PerfReportStatusApproved {
		updates["approved_at"] = time.Now()
	}

	var applied bool
	err := withBusyRetry(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&entity.PerformanceReport{}).
			Where("id = ? AND status = ?", id, entity.PerfReportStatusSubmitted).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0
		return nil
	})
	return applied, err
}

func (r *PerformanceReportRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.PerformanceReport, int64, error) {
	var reports []entity.PerformanceReport
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PerformanceReport{})
	if technicianID, ok := filters["technician_id"].(string); ok && technicianID != "" {
		query = query.Where("technician_id = ?", technicianID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if reportType, ok := filters["report_type"].(string); ok && reportType != "" {
		query = query.Where("report_type = ?", reportType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Technician").
		Order("period_start DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
