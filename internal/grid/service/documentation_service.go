package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"github.com/maham-nadeemm/APDS/internal/shared/events"
)

// DocumentationService owns documentation packages and their items. The
// package pipeline adds one gate on top of the shared shape: it cannot
// complete while any item is still draft, and items freeze once the package
// is submitted.
type DocumentationService struct {
	docRepo    *repository.DocumentationRepository
	faultRepo  *repository.FaultRepository
	userRepo   *repository.UserRepository
	dispatcher *events.Dispatcher
}

func NewDocumentationService(
	docRepo *repository.DocumentationRepository,
	faultRepo *repository.FaultRepository,
	userRepo *repository.UserRepository,
	dispatcher *events.Dispatcher,
) *DocumentationService {
	return &DocumentationService{
		docRepo:    docRepo,
		faultRepo:  faultRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// CreatePackageRequest starts a documentation package for a fault.
type CreatePackageRequest struct {
	FaultID           string `json:"fault_id" binding:"required"`
	PackageName       string `json:"package_name" binding:"required"`
	DocumentationType string `json:"documentation_type"`
}

// AddItemRequest adds a document to a package.
type AddItemRequest struct {
	DocumentName string `json:"document_name" binding:"required"`
	DocumentType string `json:"document_type"`
	Content      string `json:"content"`
	Version      string `json:"version"`
}

// UpdateItemRequest edits a document while the package is still mutable.
type UpdateItemRequest struct {
	Content       string `json:"content"`
	Version       string `json:"version"`
	Status        string `json:"status"`
	AttachmentURL string `json:"attachment_url"`
}

// PackageListResult is one page of documentation packages.
type PackageListResult struct {
	Items      []entity.DocumentationPackage `json:"items"`
	Total      int64                         `json:"total"`
	Page       int                           `json:"page"`
	PageSize   int                           `json:"page_size"`
	TotalPages int                           `json:"total_pages"`
}

func (s *DocumentationService) CreatePackage(ctx context.Context, engineerID string, req *CreatePackageRequest) (*entity.DocumentationPackage, error) {
	if _, err := s.faultRepo.FindByID(ctx, req.FaultID); err != nil {
		return nil, fmt.Errorf("find fault: %w", err)
	}

	pkg := &entity.DocumentationPackage{
		ID:                uuid.New().String()[:32],
		FaultID:           req.FaultID,
		EngineerID:        engineerID,
		PackageName:       req.PackageName,
		DocumentationType: req.DocumentationType,
		Status:            entity.PackageStatusInProgress,
	}
	if err := s.docRepo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("create package: %w", err)
	}
	return pkg, nil
}

// AddItem appends a draft document. Submitted and approved packages are
// frozen.
func (s *DocumentationService) AddItem(ctx context.Context, packageID string, req *AddItemRequest) (*entity.DocumentationItem, error) {
	pkg, err := s.docRepo.FindByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("find package: %w", err)
	}
	if pkg.Status == entity.PackageStatusSubmitted || pkg.Status == entity.PackageStatusApproved {
		return nil, fmt.Errorf("%w: package is %s", ErrImmutable, pkg.Status)
	}

	item := &entity.DocumentationItem{
		ID:           uuid.New().String()[:32],
		PackageID:    packageID,
		DocumentName: req.DocumentName,
		DocumentType: req.DocumentType,
		Content:      req.Content,
		Version:      req.Version,
		Status:       entity.ItemStatusDraft,
	}
	if err := s.docRepo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	// Adding a draft item reopens a completed package.
	if pkg.Status == entity.PackageStatusCompleted {
		if _, err := s.docRepo.TransitionStatus(ctx, packageID, entity.PackageStatusCompleted, entity.PackageStatusInProgress, ""); err != nil {
			return nil, fmt.Errorf("reopen package: %w", err)
		}
	}
	return item, nil
}

// UpdateItem edits a document while its package is mutable.
func (s *DocumentationService) UpdateItem(ctx context.Context, itemID string, req *UpdateItemRequest) (*entity.DocumentationItem, error) {
	item, err := s.docRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	pkg, err := s.docRepo.FindByID(ctx, item.PackageID)
	if err != nil {
		return nil, fmt.Errorf("find package: %w", err)
	}
	if pkg.Status == entity.PackageStatusSubmitted || pkg.Status == entity.PackageStatusApproved {
		return nil, fmt.Errorf("%w: package is %s", ErrImmutable, pkg.Status)
	}
	if req.Status != "" && !entity.ValidItemStatuses[req.Status] {
		return nil, fmt.Errorf("%w: unknown item status %q", ErrValidation, req.Status)
	}

	if req.Content != "" {
		item.Content = req.Content
	}
	if req.Version != "" {
		item.Version = req.Version
	}
	if req.Status != "" {
		item.Status = req.Status
	}
	if req.AttachmentURL != "" {
		item.AttachmentURL = req.AttachmentURL
	}
	if err := s.docRepo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	// Dropping an item back to draft reopens a completed package.
	if item.Status == entity.ItemStatusDraft && pkg.Status == entity.PackageStatusCompleted {
		if _, err := s.docRepo.TransitionStatus(ctx, item.PackageID, entity.PackageStatusCompleted, entity.PackageStatusInProgress, ""); err != nil {
			return nil, fmt.Errorf("reopen package: %w", err)
		}
	}
	return item, nil
}

// DeleteItem removes a document while its package is mutable.
func (s *DocumentationService) DeleteItem(ctx context.Context, itemID string) error {
	item, err := s.docRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("find item: %w", err)
	}
	pkg, err := s.docRepo.FindByID(ctx, item.PackageID)
	if err != nil {
		return fmt.Errorf("find package: %w", err)
	}
	if pkg.Status == entity.PackageStatusSubmitted || pkg.Status == entity.PackageStatusApproved {
		return fmt.Errorf("%w: package is %s", ErrImmutable, pkg.Status)
	}

	if err := s.docRepo.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Complete closes the drafting phase. Any item still in draft blocks it;
// the gate and the transition are atomic, so a concurrent draft item cannot
// slip into a completed package.
func (s *DocumentationService) Complete(ctx context.Context, id string) (*entity.DocumentationPackage, error) {
	applied, drafts, err := s.docRepo.CompleteIfNoDrafts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("complete package: %w", err)
	}
	if drafts > 0 {
		return nil, fmt.Errorf("%w: %d items still in draft", ErrIncompleteItems, drafts)
	}
	if !applied {
		return nil, fmt.Errorf("%w: package is not in progress", ErrInvalidState)
	}
	return s.docRepo.FindByID(ctx, id)
}

// Submit freezes a completed package and notifies the DM role.
func (s *DocumentationService) Submit(ctx context.Context, id, userID string) (*entity.DocumentationPackage, error) {
	pkg, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find package: %w", err)
	}
	if pkg.EngineerID != userID {
		return nil, fmt.Errorf("%w: only the owning engineer may submit", ErrPermission)
	}

	applied, err := s.docRepo.TransitionStatus(ctx, id, entity.PackageStatusCompleted, entity.PackageStatusSubmitted, "")
	if err != nil {
		return nil, fmt.Errorf("submit package: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: package is not completed", ErrInvalidState)
	}

	s.dispatcher.Dispatch(ctx, events.Event{
		Kind:       events.KindPackageSubmitted,
		EntityType: "documentation_package",
		EntityID:   id,
		Message:    fmt.Sprintf("Documentation package %q awaits approval", pkg.PackageName),
	})
	return s.docRepo.FindByID(ctx, id)
}

// Approve is the DM sign-off on a submitted package.
func (s *DocumentationService) Approve(ctx context.Context, id, approverID string) (*entity.DocumentationPackage, error) {
	approver, err := s.userRepo.FindByID(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("find approver: %w", err)
	}
	if !approver.HasPermission(entity.RoleDM) {
		return nil, fmt.Errorf("%w: approving packages requires %s", ErrPermission, entity.RoleDM)
	}

	applied, err := s.docRepo.TransitionStatus(ctx, id, entity.PackageStatusSubmitted, entity.PackageStatusApproved, approverID)
	if err != nil {
		return nil, fmt.Errorf("approve package: %w", err)
	}
	if !applied {
		return nil, fmt.Errorf("%w: package is not submitted", ErrInvalidState)
	}
	return s.docRepo.FindByID(ctx, id)
}

func (s *DocumentationService) Get(ctx context.Context, id string) (*entity.DocumentationPackage, error) {
	pkg, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find package: %w", err)
	}
	return pkg, nil
}

func (s *DocumentationService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*PackageListResult, error) {
	pkgs, total, err := s.docRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &PackageListResult{
		Items:      pkgs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
