package repository

import (
	"context"
	"errors"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"gorm.io/gorm"
)

type EscalationRepository struct {
	db *gorm.DB
}

func NewEscalationRepository(db *gorm.DB) *EscalationRepository {
	return &EscalationRepository{db: db}
}

func (r *EscalationRepository) FindByID(ctx context.Context, id string) (*entity.Escalation, error) {
	var esc entity.Escalation
	err := r.db.WithContext(ctx).
		Preload("Fault").
		Preload("Source").
		Preload("Target").
		Where("id = ?", id).
		First(&esc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &esc, nil
}

// CreateWithFaultStatus inserts the escalation and moves the fault to
// escalated in one transaction, so the level count and the fault status
// never drift apart.
func (r *EscalationRepository) CreateWithFaultStatus(ctx context.Context, esc *entity.Escalation) error {
	return withBusyRetry(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(esc).Error; err != nil {
				return err
			}
			return tx.Model(&entity.Fault{}).
				Where("id = ?", esc.FaultID).
				Update("status", entity.FaultStatusEscalated).Error
		})
	})
}

// CountByFault returns the number of escalations already recorded for the
// fault. The next escalation's level is this count plus one.
func (r *EscalationRepository) CountByFault(ctx context.Context, faultID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Escalation{}).
		Where("fault_id = ?", faultID).
		Count(&count).Error
	return count, err
}

// TransitionStatus conditionally advances the escalation status, stamping
// the matching timestamp column. It reports false when the record was not
// in the expected status.
func (r *EscalationRepository) TransitionStatus(ctx context.Context, id, from, to string) (bool, error) {
	updates := map[string]interface{}{"status": to}
	switch to {
	case entity.EscalationStatusAcknowledged:
		updates["acknowledged_at"] = time.Now()
	case entity.EscalationStatusResolved:
		updates["resolved_at"] = time.Now()
	}

	var applied bool
	err := withBusyRetry(ctx, func() error {
		res := r.db.WithContext(ctx).
			Model(&entity.Escalation{}).
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

func (r *EscalationRepository) ListByFault(ctx context.Context, faultID string) ([]entity.Escalation, error) {
	var escs []entity.Escalation
	err := r.db.WithContext(ctx).
		Preload("Target").
		Where("fault_id = ?", faultID).
		Order("level ASC").
		Find(&escs).Error
	if err != nil {
		return nil, err
	}
	return escs, nil
}

// ListPendingForUser returns the open escalations assigned to a user,
// newest first.
func (r *EscalationRepository) ListPendingForUser(ctx context.Context, userID string) ([]entity.Escalation, error) {
	var escs []entity.Escalation
	err := r.db.WithContext(ctx).
		Preload("Fault").
		Where("escalated_to = ? AND status = ?", userID, entity.EscalationStatusPending).
		Order("escalated_at DESC").
		Find(&escs).Error
	if err != nil {
		return nil, err
	}
	return escs, nil
}
