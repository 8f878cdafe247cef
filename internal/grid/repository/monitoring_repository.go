package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"gorm.io/gorm"
)

type MonitoringRepository struct {
	db *gorm.DB
}

func NewMonitoringRepository(db *gorm.DB) *MonitoringRepository {
	return &MonitoringRepository{db: db}
}

func (r *MonitoringRepository) FindByID(ctx context.Context, id string) (*entity.DailyMonitoring, error) {
	var rec entity.DailyMonitoring
	err := r.db.WithContext(ctx).
		Preload("Equipment").
		Preload("Technician").
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Create inserts the reading and, when it classified as critical, marks the
// equipment faulty in the same transaction.
func (r *MonitoringRepository) Create(ctx context.Context, rec *entity.DailyMonitoring) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
			if rec.OperationalStatus != entity.MonitoringStatusCritical {
				return nil
			}
			return tx.Model(&entity.Equipment{}).
				Where("id = ?", rec.EquipmentID).
				Updates(map[string]interface{}{
					"status":     entity.EquipmentStatusFaulty,
					"updated_at": time.Now(),
				}).Error
		})
	})
}

// ListByTechnicianPeriod returns a technician's readings inside a closed
// date range, oldest first. Performance report aggregation reads from this.
func (r *MonitoringRepository) ListByTechnicianPeriod(ctx context.Context, technicianID string, start, end time.Time) ([]entity.DailyMonitoring, error) {
	var recs []entity.DailyMonitoring
	err := r.db.WithContext(ctx).
		Where("technician_id = ? AND monitoring_date >= ? AND monitoring_date <= ?", technicianID, start, end).
		Order("monitoring_date ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *MonitoringRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.DailyMonitoring, int64, error) {
	var recs []entity.DailyMonitoring
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DailyMonitoring{})
	if equipmentID, ok := filters["equipment_id"].(string); ok && equipmentID != "" {
		query = query.Where("equipment_id = ?", equipmentID)
	}
	if technicianID, ok := filters["technician_id"].(string); ok && technicianID != "" {
		query = query.Where("technician_id = ?", technicianID)
	}
	if status, ok := filters["operational_status"].(string); ok && status != "" {
		query = query.Where("operational_status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Equipment").
		Order("monitoring_date DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&recs).Error
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}
