package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
)

// RegistryService maintains the asset registry: equipment, vendors and the
// user directory reads the other services lean on.
type RegistryService struct {
	equipmentRepo *repository.EquipmentRepository
	vendorRepo    *repository.VendorRepository
	userRepo      *repository.UserRepository
}

func NewRegistryService(
	equipmentRepo *repository.EquipmentRepository,
	vendorRepo *repository.VendorRepository,
	userRepo *repository.UserRepository,
) *RegistryService {
	return &RegistryService{
		equipmentRepo: equipmentRepo,
		vendorRepo:    vendorRepo,
		userRepo:      userRepo,
	}
}

// CreateEquipmentRequest registers an asset.
type CreateEquipmentRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	EquipmentType string `json:"equipment_type"`
	Location      string `json:"location"`
}

// UpdateEquipmentStatusRequest moves equipment between operational states.
type UpdateEquipmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateVendorRequest registers a vendor.
type CreateVendorRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

// EquipmentListResult is one page of equipment.
type EquipmentListResult struct {
	Items      []entity.Equipment `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// VendorListResult is one page of vendors.
type VendorListResult struct {
	Items      []entity.Vendor `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

var validEquipmentStatuses = map[string]bool{
	entity.EquipmentStatusOperational:    true,
	entity.EquipmentStatusMaintenance:    true,
	entity.EquipmentStatusFaulty:         true,
	entity.EquipmentStatusDecommissioned: true,
}

func (s *RegistryService) CreateEquipment(ctx context.Context, req *CreateEquipmentRequest) (*entity.Equipment, error) {
	if _, err := s.equipmentRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: equipment code %s already exists", ErrValidation, req.Code)
	}

	eq := &entity.Equipment{
		ID:            uuid.New().String()[:32],
		Code:          req.Code,
		Name:          req.Name,
		EquipmentType: req.EquipmentType,
		Location:      req.Location,
		Status:        entity.EquipmentStatusOperational,
	}
	if err := s.equipmentRepo.Create(ctx, eq); err != nil {
		return nil, fmt.Errorf("create equipment: %w", err)
	}
	return eq, nil
}

// UpdateEquipmentStatus moves an asset between states. Decommissioned is
// terminal.
func (s *RegistryService) UpdateEquipmentStatus(ctx context.Context, id string, req *UpdateEquipmentStatusRequest) (*entity.Equipment, error) {
	if !validEquipmentStatuses[req.Status] {
		return nil, fmt.Errorf("%w: unknown equipment status %q", ErrValidation, req.Status)
	}
	eq, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	if eq.Status == entity.EquipmentStatusDecommissioned {
		return nil, fmt.Errorf("%w: equipment is decommissioned", ErrInvalidState)
	}

	if err := s.equipmentRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, fmt.Errorf("update equipment status: %w", err)
	}
	return s.equipmentRepo.FindByID(ctx, id)
}

func (s *RegistryService) GetEquipment(ctx context.Context, id string) (*entity.Equipment, error) {
	eq, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	return eq, nil
}

func (s *RegistryService) ListEquipment(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*EquipmentListResult, error) {
	items, total, err := s.equipmentRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &EquipmentListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *RegistryService) CreateVendor(ctx context.Context, req *CreateVendorRequest) (*entity.Vendor, error) {
	vendor := &entity.Vendor{
		ID:            uuid.New().String()[:32],
		Code:          req.Code,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Status:        "active",
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("create vendor: %w", err)
	}
	return vendor, nil
}

func (s *RegistryService) GetVendor(ctx context.Context, id string) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	return vendor, nil
}

func (s *RegistryService) ListVendors(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*VendorListResult, error) {
	vendors, total, err := s.vendorRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &VendorListResult{
		Items:      vendors,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *RegistryService) ListUsers(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.User, int64, error) {
	return s.userRepo.List(ctx, page, pageSize, filters)
}
