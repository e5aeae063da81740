package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inventory-api/internal/model"
	"inventory-api/internal/repository"
	"inventory-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs
type CreatePurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Notes     string          `json:"notes"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID           string                           `json:"supplier_id" binding:"required"`
	WarehouseID          string                           `json:"warehouse_id" binding:"required"`
	ExpectedDeliveryDate *time.Time                       `json:"expected_delivery_date"`
	Notes                string                           `json:"notes" binding:"max=500"`
	TaxAmount            decimal.Decimal                  `json:"tax_amount"`
	ShippingAmount       decimal.Decimal                  `json:"shipping_amount"`
	Items                []CreatePurchaseOrderItemRequest `json:"items"`
}

type UpdatePurchaseOrderRequest struct {
	SupplierID           string          `json:"supplier_id" binding:"required"`
	WarehouseID          string          `json:"warehouse_id" binding:"required"`
	ExpectedDeliveryDate *time.Time      `json:"expected_delivery_date"`
	Notes                string          `json:"notes" binding:"max=500"`
	TaxAmount            decimal.Decimal `json:"tax_amount"`
	ShippingAmount       decimal.Decimal `json:"shipping_amount"`
}

type ChangeOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateOrderItemRequest struct {
	Quantity         int             `json:"quantity" binding:"required,min=1"`
	ReceivedQuantity int             `json:"received_quantity" binding:"min=0"`
	UnitPrice        decimal.Decimal `json:"unit_price" binding:"required"`
	Notes            string          `json:"notes"`
}

type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name,omitempty"`
	ProductSKU       string          `json:"product_sku,omitempty"`
	Quantity         int             `json:"quantity"`
	ReceivedQuantity int             `json:"received_quantity"`
	PendingQuantity  int             `json:"pending_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	Notes            string          `json:"notes,omitempty"`
}

type PurchaseOrderResponse struct {
	ID                   string                      `json:"id"`
	OrderNumber          string                      `json:"order_number"`
	SupplierID           string                      `json:"supplier_id"`
	SupplierName         string                      `json:"supplier_name,omitempty"`
	WarehouseID          string                      `json:"warehouse_id"`
	WarehouseName        string                      `json:"warehouse_name,omitempty"`
	OrderDate            string                      `json:"order_date"`
	ExpectedDeliveryDate string                      `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   string                      `json:"actual_delivery_date,omitempty"`
	Status               string                      `json:"status"`
	Notes                string                      `json:"notes,omitempty"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	TaxAmount            decimal.Decimal             `json:"tax_amount"`
	ShippingAmount       decimal.Decimal             `json:"shipping_amount"`
	GrandTotal           decimal.Decimal             `json:"grand_total"`
	Items                []PurchaseOrderItemResponse `json:"items,omitempty"`
}

type PurchaseOrderService interface {
	Create(ctx context.Context, userID string, req CreatePurchaseOrderRequest) (PurchaseOrderResponse, error)
	Get(ctx context.Context, id string) (PurchaseOrderResponse, error)
	List(ctx context.Context, status string, page, limit int) ([]PurchaseOrderResponse, int64, error)
	Update(ctx context.Context, userID, id string, req UpdatePurchaseOrderRequest) (PurchaseOrderResponse, error)
	ChangeStatus(ctx context.Context, userID, id string, req ChangeOrderStatusRequest) (PurchaseOrderResponse, error)
	AddItem(ctx context.Context, userID, orderID string, req CreatePurchaseOrderItemRequest) (PurchaseOrderResponse, error)
	GetItem(ctx context.Context, orderID, itemID string) (PurchaseOrderItemResponse, error)
	UpdateItem(ctx context.Context, userID, orderID, itemID string, req UpdateOrderItemRequest) (PurchaseOrderResponse, error)
	RemoveItem(ctx context.Context, userID, orderID, itemID string) (PurchaseOrderResponse, error)
	Summary(ctx context.Context) (model.PurchaseOrderSummary, error)
}

type purchaseOrderService struct {
	orderRepo     repository.PurchaseOrderRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
	now           func() time.Time
}

func NewPurchaseOrderService(
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) PurchaseOrderService {
	return &purchaseOrderService{
		orderRepo:     orderRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *purchaseOrderService) Create(ctx context.Context, userID string, req CreatePurchaseOrderRequest) (PurchaseOrderResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid supplier_id: %v", apperror.ErrInvalidArgument, err)
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid warehouse_id: %v", apperror.ErrInvalidArgument, err)
	}
	if req.TaxAmount.IsNegative() || req.ShippingAmount.IsNegative() {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: tax and shipping amounts must not be negative", apperror.ErrInvalidArgument)
	}

	order := model.PurchaseOrder{
		SupplierID:           supplierID,
		WarehouseID:          warehouseID,
		OrderDate:            s.now(),
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Status:               model.POStatusDraft,
		Notes:                req.Notes,
		TaxAmount:            req.TaxAmount,
		ShippingAmount:       req.ShippingAmount,
	}

	for _, it := range req.Items {
		productID, parseErr := uuid.Parse(it.ProductID)
		if parseErr != nil {
			return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid product_id: %v", apperror.ErrInvalidArgument, parseErr)
		}
		if it.Quantity <= 0 {
			return PurchaseOrderResponse{}, fmt.Errorf("%w: item quantity must be positive", apperror.ErrInvalidArgument)
		}
		if it.UnitPrice.IsNegative() {
			return PurchaseOrderResponse{}, fmt.Errorf("%w: unit price must not be negative", apperror.ErrInvalidArgument)
		}
		order.Items = append(order.Items, model.PurchaseOrderItem{
			ProductID: productID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Notes:     it.Notes,
		})
		order.TotalAmount = order.TotalAmount.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, findErr := s.supplierRepo.FindByID(txCtx, supplierID); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("supplier %s: %w", req.SupplierID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to look up supplier: %w", findErr)
		}
		if _, findErr := s.warehouseRepo.FindByID(txCtx, warehouseID); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("warehouse %s: %w", req.WarehouseID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to look up warehouse: %w", findErr)
		}
		for _, it := range order.Items {
			if _, findErr := s.productRepo.FindByID(txCtx, it.ProductID); findErr != nil {
				if errors.Is(findErr, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s: %w", it.ProductID, apperror.ErrNotFound)
				}
				return fmt.Errorf("failed to look up product: %w", findErr)
			}
		}

		number, numErr := s.orderRepo.NextOrderNumber(txCtx)
		if numErr != nil {
			return fmt.Errorf("failed to allocate order number: %w", numErr)
		}
		order.OrderNumber = number

		if createErr := s.orderRepo.Create(txCtx, &order); createErr != nil {
			return fmt.Errorf("failed to create purchase order: %w", createErr)
		}

		return s.audit(txCtx, userID, model.ActionCreatePurchaseOrder, order.ID.String(), order.OrderNumber, map[string]interface{}{
			"supplier_id":  req.SupplierID,
			"warehouse_id": req.WarehouseID,
			"items":        len(order.Items),
			"total_amount": order.TotalAmount,
		})
	})
	if err != nil {
		return PurchaseOrderResponse{}, err
	}

	return toOrderResponse(&order), nil
}

func (s *purchaseOrderService) Get(ctx context.Context, id string) (PurchaseOrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid order id: %v", apperror.ErrInvalidArgument, err)
	}

	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PurchaseOrderResponse{}, fmt.Errorf("purchase order %s: %w", id, apperror.ErrNotFound)
		}
		return PurchaseOrderResponse{}, fmt.Errorf("failed to load purchase order: %w", err)
	}

	return toOrderResponse(order), nil
}

func (s *purchaseOrderService) List(ctx context.Context, status string, page, limit int) ([]PurchaseOrderResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if status != "" && !model.ValidPOStatus(status) {
		return nil, 0, fmt.Errorf("%w: unknown order status %q", apperror.ErrInvalidArgument, status)
	}

	var (
		orders []model.PurchaseOrder
		total  int64
		err    error
	)
	if status != "" {
		orders, total, err = s.orderRepo.ListByStatus(ctx, status, page, limit)
	} else {
		orders, total, err = s.orderRepo.List(ctx, page, limit)
	}
	if err != nil {
		return nil, 0, err
	}

	res := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, toOrderResponse(&orders[i]))
	}
	return res, total, nil
}

// Update changes header fields of a DRAFT or SUBMITTED order. The stored
// total is recomputed from the item lines inside the same transaction.
func (s *purchaseOrderService) Update(ctx context.Context, userID, id string, req UpdatePurchaseOrderRequest) (PurchaseOrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid order id: %v", apperror.ErrInvalidArgument, err)
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid supplier_id: %v", apperror.ErrInvalidArgument, err)
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid warehouse_id: %v", apperror.ErrInvalidArgument, err)
	}
	if req.TaxAmount.IsNegative() || req.ShippingAmount.IsNegative() {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: tax and shipping amounts must not be negative", apperror.ErrInvalidArgument)
	}

	var order *model.PurchaseOrder
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		order, findErr = s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("purchase order %s: %w", id, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to lock purchase order: %w", findErr)
		}

		if order.Status != model.POStatusDraft && order.Status != model.POStatusSubmitted {
			return fmt.Errorf("%w: cannot edit order in status %s", apperror.ErrInvalidTransition, order.Status)
		}

		if _, findErr := s.supplierRepo.FindByID(txCtx, supplierID); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("supplier %s: %w", req.SupplierID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to look up supplier: %w", findErr)
		}
		if _, findErr := s.warehouseRepo.FindByID(txCtx, warehouseID); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("warehouse %s: %w", req.WarehouseID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to look up warehouse: %w", findErr)
		}

		order.SupplierID = supplierID
		order.WarehouseID = warehouseID
		order.ExpectedDeliveryDate = req.ExpectedDeliveryDate
		order.Notes = req.Notes
		order.TaxAmount = req.TaxAmount
		order.ShippingAmount = req.ShippingAmount

		total, sumErr := s.orderRepo.SumItemTotals(txCtx, order.ID)
		if sumErr != nil {
			return fmt.Errorf("failed to total order items: %w", sumErr)
		}
		order.TotalAmount = total

		if saveErr := s.orderRepo.Save(txCtx, order); saveErr != nil {
			return fmt.Errorf("failed to save purchase order: %w", saveErr)
		}

		return s.audit(txCtx, userID, model.ActionUpdatePurchaseOrder, order.ID.String(), order.OrderNumber, map[string]interface{}{
			"tax_amount":      req.TaxAmount,
			"shipping_amount": req.ShippingAmount,
		})
	})
	if err != nil {
		return PurchaseOrderResponse{}, err
	}

	return toOrderResponse(order), nil
}

// ChangeStatus advances the order through its workflow. Transitions are
// forward-only; receiving stamps the actual delivery date.
func (s *purchaseOrderService) ChangeStatus(ctx context.Context, userID, id string, req ChangeOrderStatusRequest) (PurchaseOrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid order id: %v", apperror.ErrInvalidArgument, err)
	}
	if !model.ValidPOStatus(req.Status) {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: unknown order status %q", apperror.ErrInvalidArgument, req.Status)
	}

	var order *model.PurchaseOrder
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		order, findErr = s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("purchase order %s: %w", id, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to lock purchase order: %w", findErr)
		}

		if !order.CanTransitionTo(req.Status) {
			return fmt.Errorf("%w: cannot move order from %s to %s", apperror.ErrInvalidTransition, order.Status, req.Status)
		}

		previous := order.Status
		order.Status = req.Status
		if req.Status == model.POStatusReceived {
			now := s.now()
			order.ActualDeliveryDate = &now
		}

		if saveErr := s.orderRepo.Save(txCtx, order); saveErr != nil {
			return fmt.Errorf("failed to save purchase order: %w", saveErr)
		}

		return s.audit(txCtx, userID, model.ActionChangeOrderStatus, order.ID.String(), order.OrderNumber, map[string]interface{}{
			"from": previous,
			"to":   req.Status,
		})
	})
	if err != nil {
		return PurchaseOrderResponse{}, err
	}

	return toOrderResponse(order), nil
}

func (s *purchaseOrderService) AddItem(ctx context.Context, userID, orderID string, req CreatePurchaseOrderItemRequest) (PurchaseOrderResponse, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid order id: %v", apperror.ErrInvalidArgument, err)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid product_id: %v", apperror.ErrInvalidArgument, err)
	}
	if req.Quantity <= 0 {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: item quantity must be positive", apperror.ErrInvalidArgument)
	}
	if req.UnitPrice.IsNegative() {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: unit price must not be negative", apperror.ErrInvalidArgument)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, findErr := s.orderRepo.FindByIDForUpdate(txCtx, oid)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("purchase order %s: %w", orderID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to lock purchase order: %w", findErr)
		}

		if order.Status != model.POStatusDraft && order.Status != model.POStatusSubmitted {
			return fmt.Errorf("%w: cannot edit items of order in status %s", apperror.ErrInvalidTransition, order.Status)
		}

		if _, findErr := s.productRepo.FindByID(txCtx, productID); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", req.ProductID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to look up product: %w", findErr)
		}

		item := model.PurchaseOrderItem{
			PurchaseOrderID: oid,
			ProductID:       productID,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			Notes:           req.Notes,
		}
		if createErr := s.orderRepo.CreateItem(txCtx, &item); createErr != nil {
			return fmt.Errorf("failed to add order item: %w", createErr)
		}

		if recalcErr := s.recalcTotal(txCtx, order); recalcErr != nil {
			return recalcErr
		}

		return s.audit(txCtx, userID, model.ActionUpdatePurchaseOrder, order.ID.String(), order.OrderNumber, map[string]interface{}{
			"item_added": req.ProductID,
			"quantity":   req.Quantity,
		})
	})
	if err != nil {
		return PurchaseOrderResponse{}, err
	}

	return s.Get(ctx, orderID)
}

func (s *purchaseOrderService) GetItem(ctx context.Context, orderID, itemID string) (PurchaseOrderItemResponse, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return PurchaseOrderItemResponse{}, fmt.Errorf("%w: invalid order id: %v", apperror.ErrInvalidArgument, err)
	}
	iid, err := uuid.Parse(itemID)
	if err != nil {
		return PurchaseOrderItemResponse{}, fmt.Errorf("%w: invalid item id: %v", apperror.ErrInvalidArgument, err)
	}

	item, err := s.orderRepo.FindItemByID(ctx, iid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PurchaseOrderItemResponse{}, fmt.Errorf("order item %s: %w", itemID, apperror.ErrNotFound)
		}
		return PurchaseOrderItemResponse{}, fmt.Errorf("failed to load order item: %w", err)
	}
	if item.PurchaseOrderID != oid {
		return PurchaseOrderItemResponse{}, fmt.Errorf("order item %s: %w", itemID, apperror.ErrNotFound)
	}

	resp := PurchaseOrderItemResponse{
		ID:               item.ID.String(),
		ProductID:        item.ProductID.String(),
		Quantity:         item.Quantity,
		ReceivedQuantity: item.ReceivedQuantity,
		PendingQuantity:  item.PendingQuantity(),
		UnitPrice:        item.UnitPrice,
		TotalPrice:       item.TotalPrice(),
		Notes:            item.Notes,
	}
	if item.Product.ID != uuid.Nil {
		resp.ProductName = item.Product.Name
		resp.ProductSKU = item.Product.SKU
	}
	return resp, nil
}

func (s *purchaseOrderService) UpdateItem(ctx context.Context, userID, orderID, itemID string, req UpdateOrderItemRequest) (PurchaseOrderResponse, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid order id: %v", apperror.ErrInvalidArgument, err)
	}
	iid, err := uuid.Parse(itemID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid item id: %v", apperror.ErrInvalidArgument, err)
	}
	if req.Quantity <= 0 {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: item quantity must be positive", apperror.ErrInvalidArgument)
	}
	if req.ReceivedQuantity < 0 || req.ReceivedQuantity > req.Quantity {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: received quantity must be between 0 and the ordered quantity", apperror.ErrInvalidArgument)
	}
	if req.UnitPrice.IsNegative() {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: unit price must not be negative", apperror.ErrInvalidArgument)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, findErr := s.orderRepo.FindByIDForUpdate(txCtx, oid)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("purchase order %s: %w", orderID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to lock purchase order: %w", findErr)
		}

		if order.IsTerminal() {
			return fmt.Errorf("%w: cannot edit items of order in status %s", apperror.ErrInvalidTransition, order.Status)
		}

		item, itemErr := s.orderRepo.FindItemByID(txCtx, iid)
		if itemErr != nil {
			if errors.Is(itemErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order item %s: %w", itemID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to load order item: %w", itemErr)
		}
		if item.PurchaseOrderID != oid {
			return fmt.Errorf("order item %s: %w", itemID, apperror.ErrNotFound)
		}

		item.Quantity = req.Quantity
		item.ReceivedQuantity = req.ReceivedQuantity
		item.UnitPrice = req.UnitPrice
		item.Notes = req.Notes

		if saveErr := s.orderRepo.SaveItem(txCtx, item); saveErr != nil {
			return fmt.Errorf("failed to save order item: %w", saveErr)
		}

		if recalcErr := s.recalcTotal(txCtx, order); recalcErr != nil {
			return recalcErr
		}

		return s.audit(txCtx, userID, model.ActionUpdatePurchaseOrder, order.ID.String(), order.OrderNumber, map[string]interface{}{
			"item_updated": itemID,
			"quantity":     req.Quantity,
			"received":     req.ReceivedQuantity,
		})
	})
	if err != nil {
		return PurchaseOrderResponse{}, err
	}

	return s.Get(ctx, orderID)
}

func (s *purchaseOrderService) RemoveItem(ctx context.Context, userID, orderID, itemID string) (PurchaseOrderResponse, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid order id: %v", apperror.ErrInvalidArgument, err)
	}
	iid, err := uuid.Parse(itemID)
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: invalid item id: %v", apperror.ErrInvalidArgument, err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, findErr := s.orderRepo.FindByIDForUpdate(txCtx, oid)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("purchase order %s: %w", orderID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to lock purchase order: %w", findErr)
		}

		if order.Status != model.POStatusDraft && order.Status != model.POStatusSubmitted {
			return fmt.Errorf("%w: cannot edit items of order in status %s", apperror.ErrInvalidTransition, order.Status)
		}

		item, itemErr := s.orderRepo.FindItemByID(txCtx, iid)
		if itemErr != nil {
			if errors.Is(itemErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order item %s: %w", itemID, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to load order item: %w", itemErr)
		}
		if item.PurchaseOrderID != oid {
			return fmt.Errorf("order item %s: %w", itemID, apperror.ErrNotFound)
		}

		if delErr := s.orderRepo.DeleteItem(txCtx, iid); delErr != nil {
			return fmt.Errorf("failed to delete order item: %w", delErr)
		}

		if recalcErr := s.recalcTotal(txCtx, order); recalcErr != nil {
			return recalcErr
		}

		return s.audit(txCtx, userID, model.ActionUpdatePurchaseOrder, order.ID.String(), order.OrderNumber, map[string]interface{}{
			"item_removed": itemID,
		})
	})
	if err != nil {
		return PurchaseOrderResponse{}, err
	}

	return s.Get(ctx, orderID)
}

func (s *purchaseOrderService) Summary(ctx context.Context) (model.PurchaseOrderSummary, error) {
	return s.orderRepo.Summary(ctx)
}

// recalcTotal re-derives the stored total from the item lines. Called after
// every item mutation, inside the transaction that made the change.
func (s *purchaseOrderService) recalcTotal(ctx context.Context, order *model.PurchaseOrder) error {
	total, err := s.orderRepo.SumItemTotals(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("failed to total order items: %w", err)
	}
	order.TotalAmount = total
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return fmt.Errorf("failed to save purchase order: %w", err)
	}
	return nil
}

func (s *purchaseOrderService) audit(ctx context.Context, userID, action, entityID, entityName string, payload map[string]interface{}) error {
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

func toOrderResponse(order *model.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:             order.ID.String(),
		OrderNumber:    order.OrderNumber,
		SupplierID:     order.SupplierID.String(),
		WarehouseID:    order.WarehouseID.String(),
		OrderDate:      order.OrderDate.Format(time.RFC3339),
		Status:         order.Status,
		Notes:          order.Notes,
		TotalAmount:    order.TotalAmount,
		TaxAmount:      order.TaxAmount,
		ShippingAmount: order.ShippingAmount,
		GrandTotal:     order.GrandTotal(),
	}
	if order.Supplier.ID != uuid.Nil {
		resp.SupplierName = order.Supplier.Name
	}
	if order.Warehouse.ID != uuid.Nil {
		resp.WarehouseName = order.Warehouse.Name
	}
	if order.ExpectedDeliveryDate != nil {
		resp.ExpectedDeliveryDate = order.ExpectedDeliveryDate.Format(time.RFC3339)
	}
	if order.ActualDeliveryDate != nil {
		resp.ActualDeliveryDate = order.ActualDeliveryDate.Format(time.RFC3339)
	}
	for i := range order.Items {
		it := &order.Items[i]
		itemResp := PurchaseOrderItemResponse{
			ID:               it.ID.String(),
			ProductID:        it.ProductID.String(),
			Quantity:         it.Quantity,
			ReceivedQuantity: it.ReceivedQuantity,
			PendingQuantity:  it.PendingQuantity(),
			UnitPrice:        it.UnitPrice,
			TotalPrice:       it.TotalPrice(),
			Notes:            it.Notes,
		}
		if it.Product.ID != uuid.Nil {
			itemResp.ProductName = it.Product.Name
			itemResp.ProductSKU = it.Product.SKU
		}
		resp.Items = append(resp.Items, itemResp)
	}
	return resp
}
