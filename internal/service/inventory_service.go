package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inventory-api/internal/model"
	"inventory-api/internal/repository"
	ws "inventory-api/internal/websocket"
	"inventory-api/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs
type CreateInventoryRequest struct {
	ProductID        string `json:"product_id" binding:"required"`
	WarehouseID      string `json:"warehouse_id" binding:"required"`
	Quantity         int    `json:"quantity" binding:"min=0"`
	ReservedQuantity int    `json:"reserved_quantity" binding:"min=0"`
	Location         string `json:"location"`
	Notes            string `json:"notes"`
}

type AdjustInventoryRequest struct {
	Type   string `json:"type" binding:"required"`
	Amount int    `json:"amount" binding:"required"`
}

type UpdateInventoryRequest struct {
	Quantity         int    `json:"quantity" binding:"min=0"`
	ReservedQuantity int    `json:"reserved_quantity" binding:"min=0"`
	Location         string `json:"location"`
	Notes            string `json:"notes"`
}

type InventoryResponse struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	ProductName       string `json:"product_name,omitempty"`
	ProductSKU        string `json:"product_sku,omitempty"`
	WarehouseID       string `json:"warehouse_id"`
	WarehouseName     string `json:"warehouse_name,omitempty"`
	Quantity          int    `json:"quantity"`
	ReservedQuantity  int    `json:"reserved_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
	LastUpdated       string `json:"last_updated"`
	Location          string `json:"location,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

type InventoryService interface {
	Create(ctx context.Context, userID string, req CreateInventoryRequest) (InventoryResponse, error)
	Get(ctx context.Context, id string) (InventoryResponse, error)
	List(ctx context.Context, page, limit int) ([]InventoryResponse, int64, error)
	ListByProduct(ctx context.Context, productID string) ([]InventoryResponse, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]InventoryResponse, error)
	ListLowStock(ctx context.Context) ([]InventoryResponse, error)
	Adjust(ctx context.Context, userID, id string, req AdjustInventoryRequest) (InventoryResponse, error)
	Update(ctx context.Context, userID, id string, req UpdateInventoryRequest) (InventoryResponse, error)
	Delete(ctx context.Context, userID, id string) error
	Summary(ctx context.Context) (model.InventorySummary, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
	hub           *ws.Hub
}

func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
		hub:           hub,
	}
}

// applyAdjustment mutates the ledger entry in place, rejecting any change
// that would break 0 <= reserved <= quantity. The caller holds the row lock.
func applyAdjustment(inv *model.Inventory, adjType string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: adjustment amount must be positive, got %d", apperror.ErrInvalidArgument, amount)
	}

	switch adjType {
	case model.AdjustmentAdd:
		inv.Quantity += amount
	case model.AdjustmentSubtract:
		if amount > inv.Quantity {
			return fmt.Errorf("%w: on hand %d, requested %d", apperror.ErrInsufficientStock, inv.Quantity, amount)
		}
		inv.Quantity -= amount
	case model.AdjustmentReserve:
		if amount > inv.AvailableQuantity() {
			return fmt.Errorf("%w: available %d, requested %d", apperror.ErrInsufficientAvailable, inv.AvailableQuantity(), amount)
		}
		inv.ReservedQuantity += amount
	case model.AdjustmentRelease:
		if amount > inv.ReservedQuantity {
			return fmt.Errorf("%w: reserved %d, requested %d", apperror.ErrInsufficientReserved, inv.ReservedQuantity, amount)
		}
		inv.ReservedQuantity -= amount
	default:
		return fmt.Errorf("%w: unknown adjustment type %q", apperror.ErrInvalidArgument, adjType)
	}

	return nil
}

func (s *inventoryService) Create(ctx context.Context, userID string, req CreateInventoryRequest) (InventoryResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return InventoryResponse{}, fmt.Errorf("%w: invalid product_id: %v", apperror.ErrInvalidArgument, err)
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return InventoryResponse{}, fmt.Errorf("%w: invalid warehouse_id: %v", apperror.ErrInvalidArgument, err)
	}
	if req.Quantity < 0 || req.ReservedQuantity < 0 {
		return InventoryResponse{}, fmt.Errorf("%w: quantities must not be negative", apperror.ErrInvalidArgument)
	}
	if req.ReservedQuantity > req.Quantity {
		return InventoryResponse{}, fmt.Errorf("%w: reserved quantity exceeds on-hand quantity", apperror.ErrInvalidArgument)
	}

	inv := model.Inventory{
		ProductID:        productID,
		WarehouseID:      warehouseID,
		Quantity:         req.Quantity,
		ReservedQuantity: req.ReservedQuantity,
		Location:         req.Location,
		Notes:            req.Notes,
		LastUpdated:      time.Now().UTC(),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, findErr := s.productRepo.FindByID(txCtx, productID); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", req.ProductID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to look up product: %w", findErr)
		}
		if _, findErr := s.warehouseRepo.FindByID(txCtx, warehouseID); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("warehouse %s: %w", req.WarehouseID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to look up warehouse: %w", findErr)
		}

		exists, existsErr := s.inventoryRepo.ExistsByPair(txCtx, productID, warehouseID)
		if existsErr != nil {
			return fmt.Errorf("failed to check existing inventory: %w", existsErr)
		}
		if exists {
			return fmt.Errorf("%w: inventory already exists for this product and warehouse", apperror.ErrDuplicateKey)
		}

		if createErr := s.inventoryRepo.Create(txCtx, &inv); createErr != nil {
			return fmt.Errorf("failed to create inventory: %w", createErr)
		}

		return s.audit(txCtx, userID, model.ActionCreateInventory, inv.ID.String(), "", map[string]interface{}{
			"product_id":   req.ProductID,
			"warehouse_id": req.WarehouseID,
			"quantity":     req.Quantity,
			"reserved":     req.ReservedQuantity,
		})
	})
	if err != nil {
		return InventoryResponse{}, err
	}

	return toInventoryResponse(&inv), nil
}

func (s *inventoryService) Get(ctx context.Context, id string) (InventoryResponse, error) {
	invID, err := uuid.Parse(id)
	if err != nil {
		return InventoryResponse{}, fmt.Errorf("%w: invalid inventory id: %v", apperror.ErrInvalidArgument, err)
	}

	inv, err := s.inventoryRepo.FindByID(ctx, invID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InventoryResponse{}, fmt.Errorf("inventory %s: %w", id, apperror.ErrNotFound)
		}
		return InventoryResponse{}, fmt.Errorf("failed to load inventory: %w", err)
	}

	return toInventoryResponse(inv), nil
}

func (s *inventoryService) List(ctx context.Context, page, limit int) ([]InventoryResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	entries, total, err := s.inventoryRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	return toInventoryResponses(entries), total, nil
}

func (s *inventoryService) ListByProduct(ctx context.Context, productID string) ([]InventoryResponse, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id: %v", apperror.ErrInvalidArgument, err)
	}

	entries, err := s.inventoryRepo.ListByProduct(ctx, pid)
	if err != nil {
		return nil, err
	}
	return toInventoryResponses(entries), nil
}

func (s *inventoryService) ListByWarehouse(ctx context.Context, warehouseID string) ([]InventoryResponse, error) {
	wid, err := uuid.Parse(warehouseID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid warehouse id: %v", apperror.ErrInvalidArgument, err)
	}

	entries, err := s.inventoryRepo.ListByWarehouse(ctx, wid)
	if err != nil {
		return nil, err
	}
	return toInventoryResponses(entries), nil
}

func (s *inventoryService) ListLowStock(ctx context.Context) ([]InventoryResponse, error) {
	entries, err := s.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toInventoryResponses(entries), nil
}

func (s *inventoryService) Adjust(ctx context.Context, userID, id string, req AdjustInventoryRequest) (InventoryResponse, error) {
	invID, err := uuid.Parse(id)
	if err != nil {
		return InventoryResponse{}, fmt.Errorf("%w: invalid inventory id: %v", apperror.ErrInvalidArgument, err)
	}

	var inv *model.Inventory
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		inv, findErr = s.inventoryRepo.FindByIDForUpdate(txCtx, invID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("inventory %s: %w", id, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to lock inventory: %w", findErr)
		}

		if adjErr := applyAdjustment(inv, req.Type, req.Amount); adjErr != nil {
			return adjErr
		}
		inv.LastUpdated = time.Now().UTC()

		if saveErr := s.inventoryRepo.Save(txCtx, inv); saveErr != nil {
			return fmt.Errorf("failed to save inventory: %w", saveErr)
		}

		return s.audit(txCtx, userID, model.ActionAdjustInventory, inv.ID.String(), "", map[string]interface{}{
			"type":      req.Type,
			"amount":    req.Amount,
			"quantity":  inv.Quantity,
			"reserved":  inv.ReservedQuantity,
			"available": inv.AvailableQuantity(),
		})
	})
	if err != nil {
		return InventoryResponse{}, err
	}

	s.broadcast("inventory.adjusted", map[string]interface{}{
		"inventory_id": inv.ID.String(),
		"type":         req.Type,
		"amount":       req.Amount,
		"available":    inv.AvailableQuantity(),
	})

	return toInventoryResponse(inv), nil
}

func (s *inventoryService) Update(ctx context.Context, userID, id string, req UpdateInventoryRequest) (InventoryResponse, error) {
	invID, err := uuid.Parse(id)
	if err != nil {
		return InventoryResponse{}, fmt.Errorf("%w: invalid inventory id: %v", apperror.ErrInvalidArgument, err)
	}
	if req.ReservedQuantity > req.Quantity {
		return InventoryResponse{}, fmt.Errorf("%w: reserved quantity exceeds on-hand quantity", apperror.ErrInvalidArgument)
	}

	// Optimistic write keyed on last_updated; one retry with a fresh read
	// before giving up.
	for attempt := 0; attempt < 2; attempt++ {
		inv, findErr := s.inventoryRepo.FindByID(ctx, invID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return InventoryResponse{}, fmt.Errorf("inventory %s: %w", id, apperror.ErrNotFound)
			}
			return InventoryResponse{}, fmt.Errorf("failed to load inventory: %w", findErr)
		}

		prev := inv.LastUpdated
		inv.Quantity = req.Quantity
		inv.ReservedQuantity = req.ReservedQuantity
		inv.Location = req.Location
		inv.Notes = req.Notes
		inv.LastUpdated = time.Now().UTC()

		rows, saveErr := s.inventoryRepo.SaveChecked(ctx, inv, prev)
		if saveErr != nil {
			return InventoryResponse{}, fmt.Errorf("failed to update inventory: %w", saveErr)
		}
		if rows == 0 {
			continue
		}

		if auditErr := s.audit(ctx, userID, model.ActionUpdateInventory, inv.ID.String(), "", map[string]interface{}{
			"quantity": req.Quantity,
			"reserved": req.ReservedQuantity,
		}); auditErr != nil {
			return InventoryResponse{}, auditErr
		}

		return toInventoryResponse(inv), nil
	}

	return InventoryResponse{}, fmt.Errorf("inventory %s: %w", id, apperror.ErrConcurrencyConflict)
}

func (s *inventoryService) Delete(ctx context.Context, userID, id string) error {
	invID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid inventory id: %v", apperror.ErrInvalidArgument, err)
	}

	inv, err := s.inventoryRepo.FindByID(ctx, invID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("inventory %s: %w", id, apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.inventoryRepo.Delete(txCtx, invID); delErr != nil {
			return fmt.Errorf("failed to delete inventory: %w", delErr)
		}
		return s.audit(txCtx, userID, model.ActionDeleteInventory, inv.ID.String(), "", map[string]interface{}{
			"product_id":   inv.ProductID.String(),
			"warehouse_id": inv.WarehouseID.String(),
		})
	})
}

func (s *inventoryService) Summary(ctx context.Context) (model.InventorySummary, error) {
	return s.inventoryRepo.Summary(ctx)
}

func (s *inventoryService) audit(ctx context.Context, userID, action, entityID, entityName string, payload map[string]interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	details, _ := json.Marshal(payload)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *inventoryService) broadcast(event string, data map[string]interface{}) {
	s.hub.Publish(event, data)
}

func toInventoryResponse(inv *model.Inventory) InventoryResponse {
	resp := InventoryResponse{
		ID:                inv.ID.String(),
		ProductID:         inv.ProductID.String(),
		WarehouseID:       inv.WarehouseID.String(),
		Quantity:          inv.Quantity,
		ReservedQuantity:  inv.ReservedQuantity,
		AvailableQuantity: inv.AvailableQuantity(),
		LastUpdated:       inv.LastUpdated.Format(time.RFC3339),
		Location:          inv.Location,
		Notes:             inv.Notes,
	}
	if inv.Product.ID != uuid.Nil {
		resp.ProductName = inv.Product.Name
		resp.ProductSKU = inv.Product.SKU
	}
	if inv.Warehouse.ID != uuid.Nil {
		resp.WarehouseName = inv.Warehouse.Name
	}
	return resp
}

func toInventoryResponses(entries []model.Inventory) []InventoryResponse {
	res := make([]InventoryResponse, 0, len(entries))
	for i := range entries {
		res = append(res, toInventoryResponse(&entries[i]))
	}
	return res
}
