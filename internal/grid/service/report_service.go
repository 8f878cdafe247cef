package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"github.com/maham-nadeemm/APDS/internal/shared/events"
)

// ReportService owns resolution reports: draft, submit, and the DM
// approval that cascades the fault to resolved.
type ReportService struct {
	reportRepo *repository.ReportRepository
	faultRepo  *repository.FaultRepository
	userRepo   *repository.UserRepository
	dispatcher *events.Dispatcher
}

func NewReportService(
	reportRepo *repository.ReportRepository,
	faultRepo *repository.FaultRepository,
	userRepo *repository.UserRepository,
	dispatcher *events.Dispatcher,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		faultRepo:  faultRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// CreateReportRequest drafts a resolution report for a fault.
type CreateReportRequest struct {
	FaultID               string  `json:"fault_id" binding:"required"`
	RCAID                 *string `json:"rca_id"`
	ResolutionDescription string  `json:"resolution_description" binding:"required"`
	ActionsTaken          string  `json:"actions_taken" binding:"required"`
	PreventiveMeasures    string  `json:"preventive_measures"`
}

// UpdateReportRequest edits a draft report.
type UpdateReportRequest struct {
	ResolutionDescription string `json:"resolution_description"`
	ActionsTaken          string `json:"actions_taken"`
	PreventiveMeasures    string `json:"preventive_measures"`
}

// ReportListResult is one page of resolution reports.
type ReportListResult struct {
	Items      []entity.ResolutionReport `json:"items"`
	Total      int64                     `json:"total"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"page_size"`
	TotalPages int                       `json:"total_pages"`
}

// Create drafts the single resolution report a fault may carry. The fault
// must still be open.
func (s *ReportService) Create(ctx context.Context, preparerID string, req *CreateReportRequest) (*entity.ResolutionReport, error) {
	fault, err := s.faultRepo.FindByID(ctx, req.FaultID)
	if err != nil {
		return nil, fmt.Errorf("find fault: %w", err)
	}
	if fault.Status == entity.FaultStatusResolved {
		return nil, fmt.Errorf("%w: fault is already resolved", ErrInvalidState)
	}
	if _, err := s.reportRepo.FindByFaultID(ctx, req.FaultID); err == nil {
		return nil, fmt.Errorf("%w: fault already has a resolution report", ErrValidation)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find existing report: %w", err)
	}

	report := &entity.ResolutionReport{
		ID:                    uuid.New().String()[:32],
		FaultID:               req.FaultID,
		RCAID:                 req.RCAID,
		PreparedBy:            preparerID,
		ResolutionDescription: req.ResolutionDescription,
		ActionsTaken:          req.ActionsTaken,
		PreventiveMeasures:    req.PreventiveMeasures,
		Status:                entity.ReportStatusDraft,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

// Update edits a draft. Anything past draft is frozen for the preparer.
func (s *ReportService) Update(ctx context.Context, id, userID string, req *UpdateReportRequest) (*entity.ResolutionReport, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	if report.PreparedBy != userID {
		return nil, fmt.Errorf("%w: only the preparer may edit the report", ErrPermission)
	}
	if report.Status != entity.ReportStatusDraft {
		return nil, fmt.Errorf("%w: report is %s", ErrImmutable, report.Status)
	}

	if req.ResolutionDescription != "" {
		report.ResolutionDescription = req.ResolutionDescription
	}
	if req.ActionsTaken != "" {
		report.ActionsTaken = req.ActionsTaken
	}
	if req.PreventiveMeasures != "" {
		report.PreventiveMeasures = req.PreventiveMeasures
	}
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}
	return report, nil
}

// Submit moves a draft into the approval queue and notifies the DM role.
func (s *ReportService) Submit(ctx context.Context, id, userID string) (*entity.ResolutionReport, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	if report.PreparedBy != userID {
		return nil, fmt.Errorf("%w: only the preparer may submit the report", ErrPermission)
	}

	applied, err := s.reportRepo.TransitionStatus(ctx, id, entity.ReportStatusDraft, entity.ReportStatusPendingApproval)
	if err != nil {
		return nil, fmt.Errorf("submit report: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: report is not a draft", ErrInvalidState)
	}

	s.dispatcher.Dispatch(ctx, events.Event{
		Kind:       events.KindReportSubmitted,
		EntityType: "resolution_report",
		EntityID:   id,
		Message:    fmt.Sprintf("Resolution report for fault %s awaits approval", report.FaultID),
	})
	return s.reportRepo.FindByID(ctx, id)
}

// Approve is the DM decision that settles the report and cascades: the
// fault resolves and its equipment returns to operational. Concurrent
// approvals settle on exactly one winner; the loser gets ErrInvalidState.
func (s *ReportService) Approve(ctx context.Context, id, approverID string) (*entity.ResolutionReport, error) {
	approver, err := s.userRepo.FindByID(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("find approver: %w", err)
	}
	if !approver.HasPermission(entity.RoleDM) {
		return nil, fmt.Errorf("%w: approving reports requires %s", ErrPermission, entity.RoleDM)
	}

	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}

	applied, err := s.reportRepo.Approve(ctx, id, approverID)
	if err != nil {
		return nil, fmt.Errorf("approve report: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: report is not pending approval", ErrInvalidState)
	}

	s.dispatcher.Dispatch(ctx, events.Event{
		Kind:         events.KindReportApproved,
		EntityType:   "resolution_report",
		EntityID:     id,
		TargetUserID: report.PreparedBy,
		Message:      fmt.Sprintf("Resolution report for fault %s approved", report.FaultID),
	})
	return s.reportRepo.FindByID(ctx, id)
}

// Reject is the DM decision that bounces a pending report.
func (s *ReportService) Reject(ctx context.Context, id, approverID string) (*entity.ResolutionReport, error) {
	approver, err := s.userRepo.FindByID(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("find approver: %w", err)
	}
	if !approver.HasPermission(entity.RoleDM) {
		return nil, fmt.Errorf("%w: rejecting reports requires %s", ErrPermission, entity.RoleDM)
	}

	applied, err := s.reportRepo.Reject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reject report: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: report is not pending approval", ErrInvalidState)
	}
	return s.reportRepo.FindByID(ctx, id)
}

func (s *ReportService) Get(ctx context.Context, id string) (*entity.ResolutionReport, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	return report, nil
}

func (s *ReportService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*ReportListResult, error) {
	reports, total, err := s.reportRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &ReportListResult{
		Items:      reports,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Render produces the report document in the requested format.
func (s *ReportService) Render(ctx context.Context, id, format string) (string, string, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("find report: %w", err)
	}

	switch format {
	case "text", "":
		return renderReportText(report), "text/plain; charset=utf-8", nil
	case "html":
		out, err := renderReportHTML(report)
		if err != nil {
			return "", "", fmt.Errorf("render report: %w", err)
		}
		return out, "text/html; charset=utf-8", nil
	default:
		return "", "", fmt.Errorf("%w: unknown format %q", ErrValidation, format)
	}
}
