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

type SupplierRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Address       string `json:"address" binding:"max=200"`
	City          string `json:"city" binding:"max=100"`
	State         string `json:"state" binding:"max=50"`
	ZipCode       string `json:"zip_code" binding:"max=20"`
	Country       string `json:"country" binding:"max=50"`
	Phone         string `json:"phone" binding:"max=20"`
	Email         string `json:"email" binding:"omitempty,email,max=100"`
	ContactPerson string `json:"contact_person" binding:"max=100"`
	TaxID         string `json:"tax_id" binding:"max=50"`
	IsActive      *bool  `json:"is_active"`
}

type SupplierService interface {
	Create(ctx context.Context, req SupplierRequest) (*model.Supplier, error)
	Get(ctx context.Context, id string) (*model.Supplier, error)
	List(ctx context.Context, page, limit int, search string) ([]model.Supplier, int64, error)
	Update(ctx context.Context, id string, req SupplierRequest) (*model.Supplier, error)
	Delete(ctx context.Context, id string) error
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) Create(ctx context.Context, req SupplierRequest) (*model.Supplier, error) {
	supplier := &model.Supplier{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Country:       req.Country,
		Phone:         req.Phone,
		Email:         req.Email,
		ContactPerson: req.ContactPerson,
		TaxID:         req.TaxID,
		IsActive:      true,
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) Get(ctx context.Context, id string) (*model.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid supplier id: %v", apperror.ErrInvalidArgument, err)
	}

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supplier %s: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) List(ctx context.Context, page, limit int, search string) ([]model.Supplier, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.supplierRepo.List(ctx, page, limit, search)
}

func (s *supplierService) Update(ctx context.Context, id string, req SupplierRequest) (*model.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid supplier id: %v", apperror.ErrInvalidArgument, err)
	}

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supplier %s: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}

	supplier.Name = req.Name
	supplier.Address = req.Address
	supplier.City = req.City
	supplier.State = req.State
	supplier.ZipCode = req.ZipCode
	supplier.Country = req.Country
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.ContactPerson = req.ContactPerson
	supplier.TaxID = req.TaxID
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) Delete(ctx context.Context, id string) error {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid supplier id: %v", apperror.ErrInvalidArgument, err)
	}

	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("supplier %s: %w", id, apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to load supplier: %w", err)
	}

	return s.supplierRepo.Delete(ctx, supplierID)
}
