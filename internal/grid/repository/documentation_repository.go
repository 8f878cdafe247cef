package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"gorm.io/gorm"
)

type DocumentationRepository struct {
	db *gorm.DB
}

func NewDocumentationRepository(db *gorm.DB) *DocumentationRepository {
	return &DocumentationRepository{db: db}
}

func (r *DocumentationRepository) FindByID(ctx context.Context, id string) (*entity.DocumentationPackage, error) {
	var pkg entity.DocumentationPackage
	err := r.db.WithContext(ctx).
		Preload("Fault").
		Preload("Engineer").
		Preload("Items").
		Where("id = ?", id).
		First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *DocumentationRepository) Create(ctx context.Context, pkg *entity.DocumentationPackage) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Create(pkg).Error
	})
}

// TransitionStatus conditionally advances the package, stamping the
// timestamp the target status owns. It reports false when the package was
// not in the expected status.
func (r *DocumentationRepository) TransitionStatus(ctx context.Context, id, from, to string, approverID string) (bool, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": now,
	}
	switch to {
	case entity.PackageStatusCompleted:
		updates["completion_date"] = now
	case entity.PackageStatusSubmitted:
		updates["submitted_at"] = now
	case entity.PackageStatusApproved:
		updates["approved_by"] = approverID
		updates["approved_at"] = now
	}

	var applied bool
	err := withBusyRetry(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&entity.DocumentationPackage{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0
		return nil
	})
	return applied, err
}

// CompleteIfNoDrafts moves an in_progress package to completed and stamps
// completion_date, but only when none of its items is still draft. The
// count and the transition run in one transaction, so a draft item inserted
// concurrently cannot land inside a just-completed package. It returns the
// draft count it saw and whether the transition applied.
func (r *DocumentationRepository) CompleteIfNoDrafts(ctx context.Context, id string) (applied bool, drafts int64, err error) {
	err = withBusyRetry(ctx, func() error {
		applied = false
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&entity.DocumentationItem{}).
				Where("package_id = ? AND status = ?", id, entity.ItemStatusDraft).
				Count(&drafts).Error; err != nil {
				return err
			}
			if drafts > 0 {
				return nil
			}
			now := time.Now()
			res := tx.Model(&entity.DocumentationPackage{}).
				Where("id = ? AND status = ?", id, entity.PackageStatusInProgress).
				Updates(map[string]interface{}{
					"status":          entity.PackageStatusCompleted,
					"completion_date": now,
					"updated_at":      now,
				})
			if res.Error != nil {
				return res.Error
			}
			applied = res.RowsAffected > 0
			return nil
		})
	})
	return applied, drafts, err
}

func (r *DocumentationRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.DocumentationPackage, int64, error) {
	var pkgs []entity.DocumentationPackage
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DocumentationPackage{})
	if faultID, ok := filters["fault_id"].(string); ok && faultID != "" {
		query = query.Where("fault_id = ?", faultID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if engineerID, ok := filters["engineer_id"].(string); ok && engineerID != "" {
		query = query.Where("engineer_id = ?", engineerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&pkgs).Error
	if err != nil {
		return nil, 0, err
	}
	return pkgs, total, nil
}

func (r *DocumentationRepository) FindItemByID(ctx context.Context, id string) (*entity.DocumentationItem, error) {
	var item entity.DocumentationItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *DocumentationRepository) CreateItem(ctx context.Context, item *entity.DocumentationItem) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Create(item).Error
	})
}

func (r *DocumentationRepository) UpdateItem(ctx context.Context, item *entity.DocumentationItem) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Save(item).Error
	})
}

func (r *DocumentationRepository) DeleteItem(ctx context.Context, id string) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Delete(&entity.DocumentationItem{}, "id = ?", id).Error
	})
}
