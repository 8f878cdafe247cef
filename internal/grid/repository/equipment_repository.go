package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"gorm.io/gorm"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id string) (*entity.Equipment, error) {
	var eq entity.Equipment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&eq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &eq, nil
}

func (r *EquipmentRepository) FindByCode(ctx context.Context, code string) (*entity.Equipment, error) {
	var eq entity.Equipment
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&eq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &eq, nil
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *entity.Equipment) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Create(eq).Error
	})
}

func (r *EquipmentRepository) Update(ctx context.Context, eq *entity.Equipment) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Save(eq).Error
	})
}

func (r *EquipmentRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Model(&entity.Equipment{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now(),
			}).Error
	})
}

func (r *EquipmentRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Equipment, int64, error) {
	var items []entity.Equipment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Equipment{})
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if location, ok := filters["location"].(string); ok && location != "" {
		query = query.Where("location = ?", location)
	}
	if eqType, ok := filters["equipment_type"].(string); ok && eqType != "" {
		query = query.Where("equipment_type = ?", eqType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("code ASC").Offset(offset).Limit(pageSize).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
