package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"gorm.io/gorm"
)

type ReverificationRepository struct {
	db *gorm.DB
}

func NewReverificationRepository(db *gorm.DB) *ReverificationRepository {
	return &ReverificationRepository{db: db}
}

func (r *ReverificationRepository) FindByID(ctx context.Context, id string) (*entity.DataReverification, error) {
	var rev entity.DataReverification
	err := r.db.WithContext(ctx).
		Preload("Original").
		Preload("Technician").
		Where("id = ?", id).
		First(&rev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

func (r *ReverificationRepository) Create(ctx context.Context, rev *entity.DataReverification) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Create(rev).Error
	})
}

// Approve records the engineer's sign-off: status goes to resolved,
// engineer_approval is set, and the approval note is appended to the
// comparison results. Any non-resolved record qualifies; it reports false
// when the record was already resolved.
func (r *ReverificationRepository) Approve(ctx context.Context, id, engineerID, results string) (bool, error) {
	var applied bool
	err := withBusyRetry(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&entity.DataReverification{}).
			Where("id = ? AND status <> ?", id, entity.ReverificationStatusResolved).
			Updates(map[string]interface{}{
				"status":             entity.ReverificationStatusResolved,
				"engineer_approval":  true,
				"engineer_id":        engineerID,
				"comparison_results": results,
				"updated_at":         time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0
		return nil
	})
	return applied, err
}

func (r *ReverificationRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.DataReverification, int64, error) {
	var revs []entity.DataReverification
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DataReverification{})
	if technicianID, ok := filters["technician_id"].(string); ok && technicianID != "" {
		query = query.Where("technician_id = ?", technicianID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if monitoringID, ok := filters["original_monitoring_id"].(string); ok && monitoringID != "" {
		query = query.Where("original_monitoring_id = ?", monitoringID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Original").
		Order("verification_date DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&revs).Error
	if err != nil {
		return nil, 0, err
	}
	return revs, total, nil
}
