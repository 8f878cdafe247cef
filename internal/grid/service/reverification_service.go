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

// ReverificationService re-measures monitoring records, compares them
// against the snapshotted originals and routes discrepancies to an
// engineer sign-off.
type ReverificationService struct {
	revRepo        *repository.ReverificationRepository
	monitoringRepo *repository.MonitoringRepository
	userRepo       *repository.UserRepository
	dispatcher     *events.Dispatcher
}

func NewReverificationService(
	revRepo *repository.ReverificationRepository,
	monitoringRepo *repository.MonitoringRepository,
	userRepo *repository.UserRepository,
	dispatcher *events.Dispatcher,
) *ReverificationService {
	return &ReverificationService{
		revRepo:        revRepo,
		monitoringRepo: monitoringRepo,
		userRepo:       userRepo,
		dispatcher:     dispatcher,
	}
}

// CreateReverificationRequest carries the re-measured triple.
type CreateReverificationRequest struct {
	OriginalMonitoringID string   `json:"original_monitoring_id" binding:"required"`
	NewVoltage           *float64 `json:"new_voltage"`
	NewCurrent           *float64 `json:"new_current"`
	NewPowerFactor       *float64 `json:"new_power_factor"`
}

// ReverificationListResult is one page of re-verifications.
type ReverificationListResult struct {
	Items      []entity.DataReverification `json:"items"`
	Total      int64                       `json:"total"`
	Page       int                         `json:"page"`
	PageSize   int                         `json:"page_size"`
	TotalPages int                         `json:"total_pages"`
}

// Create snapshots the original triple, compares the new one against it and
// settles the record immediately: verified when everything stays within
// tolerance, discrepancy otherwise. A discrepancy is announced to the
// engineer role.
func (s *ReverificationService) Create(ctx context.Context, technicianID string, req *CreateReverificationRequest) (*entity.DataReverification, error) {
	original, err := s.monitoringRepo.FindByID(ctx, req.OriginalMonitoringID)
	if err != nil {
		return nil, fmt.Errorf("find original record: %w", err)
	}

	varV, varC, varPF, results, within := compareReadings(
		original.Voltage, original.Current, original.PowerFactor,
		req.NewVoltage, req.NewCurrent, req.NewPowerFactor,
	)
	status := entity.ReverificationStatusVerified
	if !within {
		status = entity.ReverificationStatusDiscrepancy
	}

	rev := &entity.DataReverification{
		ID:                   uuid.New().String()[:32],
		OriginalMonitoringID: req.OriginalMonitoringID,
		TechnicianID:         technicianID,
		VerificationDate:     time.Now(),
		OriginalVoltage:      original.Voltage,
		OriginalCurrent:      original.Current,
		OriginalPowerFactor:  original.PowerFactor,
		NewVoltage:           req.NewVoltage,
		NewCurrent:           req.NewCurrent,
		NewPowerFactor:       req.NewPowerFactor,
		VarianceVoltage:      varV,
		VarianceCurrent:      varC,
		VariancePowerFactor:  varPF,
		ToleranceLevels:      toleranceLevels,
		ComparisonResults:    results,
		Status:               status,
	}
	if err := s.revRepo.Create(ctx, rev); err != nil {
		return nil, fmt.Errorf("create re-verification: %w", err)
	}

	if status == entity.ReverificationStatusDiscrepancy {
		s.dispatcher.Dispatch(ctx, events.Event{
			Kind:       events.KindDiscrepancyFound,
			EntityType: "data_reverification",
			EntityID:   rev.ID,
			Message:    fmt.Sprintf("Re-verification of record %s found a discrepancy: %s", req.OriginalMonitoringID, results),
		})
	}
	return rev, nil
}

// Approve is the engineer sign-off. It force-resolves the record from any
// status except resolved itself, so even a discrepancy verdict can be
// settled with an explicit approval.
func (s *ReverificationService) Approve(ctx context.Context, id, engineerID string) (*entity.DataReverification, error) {
	engineer, err := s.userRepo.FindByID(ctx, engineerID)
	if err != nil {
		return nil, fmt.Errorf("find engineer: %w", err)
	}
	if !engineer.HasPermission(entity.RoleEngineer) {
		return nil, fmt.Errorf("%w: approving discrepancies requires %s", ErrPermission, entity.RoleEngineer)
	}

	rev, err := s.revRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find re-verification: %w", err)
	}
	if rev.Status == entity.ReverificationStatusResolved {
		return nil, fmt.Errorf("%w: re-verification is already resolved", ErrInvalidState)
	}

	results := rev.ComparisonResults + "; Engineer approved changes"
	applied, err := s.revRepo.Approve(ctx, id, engineerID, results)
	if err != nil {
		return nil, fmt.Errorf("approve re-verification: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: re-verification changed concurrently", ErrInvalidState)
	}
	return s.revRepo.FindByID(ctx, id)
}

func (s *ReverificationService) Get(ctx context.Context, id string) (*entity.DataReverification, error) {
	rev, err := s.revRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find re-verification: %w", err)
	}
	return rev, nil
}

func (s *ReverificationService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*ReverificationListResult, error) {
	revs, total, err := s.revRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list re-verifications: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &ReverificationListResult{
		Items:      revs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
