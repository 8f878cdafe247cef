package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"github.com/maham-nadeemm/APDS/internal/shared/events"
)

// FaultService owns the fault lifecycle and root cause analyses.
type FaultService struct {
	faultRepo     *repository.FaultRepository
	equipmentRepo *repository.EquipmentRepository
	dispatcher    *events.Dispatcher
}

func NewFaultService(faultRepo *repository.FaultRepository, equipmentRepo *repository.EquipmentRepository, dispatcher *events.Dispatcher) *FaultService {
	return &FaultService{
		faultRepo:     faultRepo,
		equipmentRepo: equipmentRepo,
		dispatcher:    dispatcher,
	}
}

// ReportFaultRequest opens a new fault against a piece of equipment.
type ReportFaultRequest struct {
	EquipmentID string `json:"equipment_id" binding:"required"`
	Description string `json:"description" binding:"required"`
	Severity    string `json:"severity" binding:"required"`
}

// UpdateFaultStatusRequest moves a fault along its lifecycle.
type UpdateFaultStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateRCARequest records the root cause analysis for a fault.
type CreateRCARequest struct {
	RootCause           string     `json:"root_cause" binding:"required"`
	ContributingFactors string     `json:"contributing_factors"`
	AnalysisDate        *time.Time `json:"analysis_date"`
}

// FaultListResult is one page of faults.
type FaultListResult struct {
	Items      []entity.Fault `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Report validates severity and equipment, opens the fault in reported
// status, marks the equipment faulty and announces the fault.
func (s *FaultService) Report(ctx context.Context, reporterID string, req *ReportFaultRequest) (*entity.Fault, error) {
	if !entity.ValidFaultSeverities[req.Severity] {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrValidation, req.Severity)
	}
	equipment, err := s.equipmentRepo.FindByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	if equipment.Status == entity.EquipmentStatusDecommissioned {
		return nil, fmt.Errorf("%w: equipment %s is decommissioned", ErrValidation, equipment.Code)
	}

	fault := &entity.Fault{
		ID:          uuid.New().String()[:32],
		EquipmentID: req.EquipmentID,
		ReportedBy:  reporterID,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      entity.FaultStatusReported,
		ReportedAt:  time.Now(),
	}
	if err := s.faultRepo.Create(ctx, fault); err != nil {
		return nil, fmt.Errorf("create fault: %w", err)
	}

	s.dispatcher.Dispatch(ctx, events.Event{
		Kind:       events.KindFaultReported,
		EntityType: "fault",
		EntityID:   fault.ID,
		Severity:   fault.Severity,
		Message:    fmt.Sprintf("Fault reported on %s: %s", equipment.Name, req.Description),
	})
	return fault, nil
}

// UpdateStatus applies a lifecycle transition. Moving to resolved stamps
// resolved_at and restores the equipment; all transitions are conditional
// on the expected current status, so a concurrent change surfaces as
// ErrInvalidState rather than a silent overwrite.
func (s *FaultService) UpdateStatus(ctx context.Context, id string, req *UpdateFaultStatusRequest) (*entity.Fault, error) {
	if !entity.ValidFaultStatuses[req.Status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	fault, err := s.faultRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find fault: %w", err)
	}
	if !transitionAllowed(entity.ValidFaultTransitions, fault.Status, req.Status) {
		return nil, fmt.Errorf("%w: fault cannot move from %s to %s", ErrInvalidState, fault.Status, req.Status)
	}

	var applied bool
	if req.Status == entity.FaultStatusResolved {
		applied, err = s.faultRepo.Resolve(ctx, id, fault.Status)
	} else {
		applied, err = s.faultRepo.TransitionStatus(ctx, id, fault.Status, req.Status)
	}
	if err != nil {
		return nil, fmt.Errorf("transition fault: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: fault status changed concurrently", ErrInvalidState)
	}
	return s.faultRepo.FindByID(ctx, id)
}

// CreateRCA attaches the single root cause analysis a fault may carry and
// moves a reported fault to investigating. Resolved faults no longer accept
// one.
func (s *FaultService) CreateRCA(ctx context.Context, faultID, analystID string, req *CreateRCARequest) (*entity.RootCauseAnalysis, error) {
	fault, err := s.faultRepo.FindByID(ctx, faultID)
	if err != nil {
		return nil, fmt.Errorf("find fault: %w", err)
	}
	if fault.Status == entity.FaultStatusResolved {
		return nil, fmt.Errorf("%w: fault is already resolved", ErrInvalidState)
	}
	if _, err := s.faultRepo.FindRCAByFaultID(ctx, faultID); err == nil {
		return nil, fmt.Errorf("%w: fault already has a root cause analysis", ErrValidation)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find existing analysis: %w", err)
	}

	date := time.Now()
	if req.AnalysisDate != nil {
		date = *req.AnalysisDate
	}
	rca := &entity.RootCauseAnalysis{
		ID:                  uuid.New().String()[:32],
		FaultID:             faultID,
		AnalyzedBy:          analystID,
		RootCause:           req.RootCause,
		ContributingFactors: req.ContributingFactors,
		AnalysisDate:        date,
	}
	if err := s.faultRepo.CreateRCA(ctx, rca); err != nil {
		return nil, fmt.Errorf("create root cause analysis: %w", err)
	}
	return rca, nil
}

func (s *FaultService) Get(ctx context.Context, id string) (*entity.Fault, error) {
	fault, err := s.faultRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find fault: %w", err)
	}
	return fault, nil
}

func (s *FaultService) GetRCA(ctx context.Context, faultID string) (*entity.RootCauseAnalysis, error) {
	rca, err := s.faultRepo.FindRCAByFaultID(ctx, faultID)
	if err != nil {
		return nil, fmt.Errorf("find root cause analysis: %w", err)
	}
	return rca, nil
}

func (s *FaultService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*FaultListResult, error) {
	faults, total, err := s.faultRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list faults: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &FaultListResult{
		Items:      faults,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// transitionAllowed reports whether the transition table permits moving
// from one status to another.
func transitionAllowed(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}
