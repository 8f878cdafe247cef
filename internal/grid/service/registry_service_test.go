package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
)

func TestEquipmentRegistry(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	eq, err := svc.Registry.CreateEquipment(ctx, &CreateEquipmentRequest{
		Code:          "TR-001",
		Name:          "Main transformer",
		EquipmentType: "transformer",
		Location:      "Substation A",
	})
	if err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}
	if eq.Status != entity.EquipmentStatusOperational {
		t.Errorf("Expected new equipment operational, got %s", eq.Status)
	}

	// codes are unique
	if _, err := svc.Registry.CreateEquipment(ctx, &CreateEquipmentRequest{
		Code: "TR-001",
		Name: "Duplicate",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for duplicate code, got %v", err)
	}

	got, err := svc.Registry.UpdateEquipmentStatus(ctx, eq.ID, &UpdateEquipmentStatusRequest{
		Status: entity.EquipmentStatusMaintenance,
	})
	if err != nil {
		t.Fatalf("UpdateEquipmentStatus: %v", err)
	}
	if got.Status != entity.EquipmentStatusMaintenance {
		t.Errorf("Expected maintenance, got %s", got.Status)
	}

	if _, err := svc.Registry.UpdateEquipmentStatus(ctx, eq.ID, &UpdateEquipmentStatusRequest{
		Status: "melted",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for unknown status, got %v", err)
	}

	// decommissioned is terminal
	if _, err := svc.Registry.UpdateEquipmentStatus(ctx, eq.ID, &UpdateEquipmentStatusRequest{
		Status: entity.EquipmentStatusDecommissioned,
	}); err != nil {
		t.Fatalf("UpdateEquipmentStatus: %v", err)
	}
	if _, err := svc.Registry.UpdateEquipmentStatus(ctx, eq.ID, &UpdateEquipmentStatusRequest{
		Status: entity.EquipmentStatusOperational,
	}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState for decommissioned equipment, got %v", err)
	}
}

func TestVendorRegistry(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	vendor, err := svc.Registry.CreateVendor(ctx, &CreateVendorRequest{
		Code:          "VND-001",
		Name:          "Grid Supplies Ltd",
		ContactPerson: "A. Khan",
	})
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}
	if vendor.Status != "active" {
		t.Errorf("Expected active vendor, got %s", vendor.Status)
	}

	list, err := svc.Registry.ListVendors(ctx, 1, 20, map[string]interface{}{"keyword": "Grid"})
	if err != nil {
		t.Fatalf("ListVendors: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("Expected 1 vendor, got %d", list.Total)
	}
}
