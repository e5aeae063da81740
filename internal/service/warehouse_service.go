package service

import (
	"context"
	"errors"
	"fmt"

	"inventory-api/internal/model"
	"inventory-api/internal/repository"
	"inventory-api/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WarehouseRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Address  string `json:"address" binding:"max=200"`
	City     string `json:"city" binding:"max=100"`
	State    string `json:"state" binding:"max=50"`
	ZipCode  string `json:"zip_code" binding:"max=20"`
	Phone    string `json:"phone" binding:"max=20"`
	Email    string `json:"email" binding:"omitempty,email,max=100"`
	IsActive *bool  `json:"is_active"`
}

type WarehouseService interface {
	Create(ctx context.Context, req WarehouseRequest) (*model.Warehouse, error)
	Get(ctx context.Context, id string) (*model.Warehouse, error)
	List(ctx context.Context, page, limit int) ([]model.Warehouse, int64, error)
	Update(ctx context.Context, id string, req WarehouseRequest) (*model.Warehouse, error)
	Delete(ctx context.Context, id string) error
}

type warehouseService struct {
	warehouseRepo repository.WarehouseRepository
}

func NewWarehouseService(warehouseRepo repository.WarehouseRepository) WarehouseService {
	return &warehouseService{warehouseRepo: warehouseRepo}
}

func (s *warehouseService) Create(ctx context.Context, req WarehouseRequest) (*model.Warehouse, error) {
	warehouse := &model.Warehouse{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}
	if req.IsActive != nil {
		warehouse.IsActive = *req.IsActive
	}
	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}
	return warehouse, nil
}

func (s *warehouseService) Get(ctx context.Context, id string) (*model.Warehouse, error) {
	warehouseID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid warehouse id: %v", apperror.ErrInvalidArgument, err)
	}

	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("warehouse %s: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load warehouse: %w", err)
	}
	return warehouse, nil
}

func (s *warehouseService) List(ctx context.Context, page, limit int) ([]model.Warehouse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.warehouseRepo.List(ctx, page, limit)
}

func (s *warehouseService) Update(ctx context.Context, id string, req WarehouseRequest) (*model.Warehouse, error) {
	warehouseID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid warehouse id: %v", apperror.ErrInvalidArgument, err)
	}

	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("warehouse %s: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load warehouse: %w", err)
	}

	warehouse.Name = req.Name
	warehouse.Address = req.Address
	warehouse.City = req.City
	warehouse.State = req.State
	warehouse.ZipCode = req.ZipCode
	warehouse.Phone = req.Phone
	warehouse.Email = req.Email
	if req.IsActive != nil {
		warehouse.IsActive = *req.IsActive
	}

	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return nil, fmt.Errorf("failed to update warehouse: %w", err)
	}
	return warehouse, nil
}

func (s *warehouseService) Delete(ctx context.Context, id string) error {
	warehouseID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid warehouse id: %v", apperror.ErrInvalidArgument, err)
	}

	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("warehouse %s: %w", id, apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to load warehouse: %w", err)
	}

	return s.warehouseRepo.Delete(ctx, warehouseID)
}
