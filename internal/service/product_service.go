package service

import (
	"context"
	"errors"
	"fmt"

	"inventory-api/internal/model"
	"inventory-api/internal/repository"
	"inventory-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs
type CreateProductRequest struct {
	SKU               string          `json:"sku" binding:"required,max=50"`
	Name              string          `json:"name" binding:"required,max=100"`
	Description       string          `json:"description" binding:"max=500"`
	Price             decimal.Decimal `json:"price" binding:"required"`
	Cost              decimal.Decimal `json:"cost" binding:"required"`
	Category          string          `json:"category" binding:"max=100"`
	Brand             string          `json:"brand" binding:"max=100"`
	Unit              string          `json:"unit" binding:"max=50"`
	MinimumStockLevel int             `json:"minimum_stock_level" binding:"min=0"`
	MaximumStockLevel int             `json:"maximum_stock_level" binding:"min=0"`
}

type UpdateProductRequest struct {
	Name              string          `json:"name" binding:"required,max=100"`
	Description       string          `json:"description" binding:"max=500"`
	Price             decimal.Decimal `json:"price" binding:"required"`
	Cost              decimal.Decimal `json:"cost" binding:"required"`
	Category          string          `json:"category" binding:"max=100"`
	Brand             string          `json:"brand" binding:"max=100"`
	Unit              string          `json:"unit" binding:"max=50"`
	MinimumStockLevel int             `json:"minimum_stock_level" binding:"min=0"`
	MaximumStockLevel int             `json:"maximum_stock_level" binding:"min=0"`
	IsActive          *bool           `json:"is_active"`
}

type ProductService interface {
	Create(ctx context.Context, req CreateProductRequest) (*model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)
	List(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	if req.Price.IsNegative() || req.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: price and cost must not be negative", apperror.ErrInvalidArgument)
	}
	if req.MaximumStockLevel > 0 && req.MaximumStockLevel < req.MinimumStockLevel {
		return nil, fmt.Errorf("%w: maximum stock level below minimum", apperror.ErrInvalidArgument)
	}

	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to check SKU: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: SKU %s already in use", apperror.ErrDuplicateKey, req.SKU)
	}

	product := &model.Product{
		SKU:               req.SKU,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Cost:              req.Cost,
		Category:          req.Category,
		Brand:             req.Brand,
		Unit:              req.Unit,
		MinimumStockLevel: req.MinimumStockLevel,
		MaximumStockLevel: req.MaximumStockLevel,
		IsActive:          true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id: %v", apperror.ErrInvalidArgument, err)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return product, nil
}

func (s *productService) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with SKU %s: %w", sku, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.productRepo.List(ctx, page, limit, search)
}

func (s *productService) Update(ctx context.Context, id string, req UpdateProductRequest) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id: %v", apperror.ErrInvalidArgument, err)
	}
	if req.Price.IsNegative() || req.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: price and cost must not be negative", apperror.ErrInvalidArgument)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Cost = req.Cost
	product.Category = req.Category
	product.Brand = req.Brand
	product.Unit = req.Unit
	product.MinimumStockLevel = req.MinimumStockLevel
	product.MaximumStockLevel = req.MaximumStockLevel
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid product id: %v", apperror.ErrInvalidArgument, err)
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", id, apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to load product: %w", err)
	}

	return s.productRepo.Delete(ctx, productID)
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *productService) Brands(ctx context.Context) ([]string, error) {
	brands, err := s.productRepo.ListBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}
