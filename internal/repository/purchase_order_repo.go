package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"inventory-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const orderNumberPrefix = "PO-"

type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *model.PurchaseOrder) error
	Save(ctx context.Context, order *model.PurchaseOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	// FindByIDForUpdate locks the order row for the surrounding transaction,
	// serializing status changes and total recalculations per order.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	List(ctx context.Context, page, limit int) ([]model.PurchaseOrder, int64, error)
	ListByStatus(ctx context.Context, status string, page, limit int) ([]model.PurchaseOrder, int64, error)
	// NextOrderNumber allocates the next sequential PO-NNNNNN. Must be called
	// inside the transaction that inserts the order; an advisory lock keyed on
	// the prefix keeps concurrent allocations from reading the same maximum.
	NextOrderNumber(ctx context.Context) (string, error)
	// SumItemTotals recomputes the order's total from its current line items.
	SumItemTotals(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
	CreateItem(ctx context.Context, item *model.PurchaseOrderItem) error
	SaveItem(ctx context.Context, item *model.PurchaseOrderItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrderItem, error)
	Summary(ctx context.Context) (model.PurchaseOrderSummary, error)
}

type purchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, order *model.PurchaseOrder) error {
	return GetDB(ctx, r.db).Create(order).Error
}

func (r *purchaseOrderRepository) Save(ctx context.Context, order *model.PurchaseOrder) error {
	return GetDB(ctx, r.db).Omit("Items", "Supplier", "Warehouse").Save(order).Error
}

func (r *purchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	if err := GetDB(ctx, r.db).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *purchaseOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *purchaseOrderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	if err := GetDB(ctx, r.db).
		Preload("Supplier").
		Preload("Warehouse").
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *purchaseOrderRepository) List(ctx context.Context, page, limit int) ([]model.PurchaseOrder, int64, error) {
	return r.list(ctx, page, limit, "")
}

func (r *purchaseOrderRepository) ListByStatus(ctx context.Context, status string, page, limit int) ([]model.PurchaseOrder, int64, error) {
	return r.list(ctx, page, limit, status)
}

func (r *purchaseOrderRepository) list(ctx context.Context, page, limit int, status string) ([]model.PurchaseOrder, int64, error) {
	var orders []model.PurchaseOrder
	var total int64

	db := GetDB(ctx, r.db).Model(&model.PurchaseOrder{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("Supplier").
		Preload("Warehouse").
		Preload("Items").
		Preload("Items.Product").
		Order("order_date desc").Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *purchaseOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	db := GetDB(ctx, r.db)

	// Serialize allocation: concurrent creators block here until the
	// inserting transaction commits, so no two orders read the same maximum.
	if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", orderNumberPrefix).Error; err != nil {
		return "", err
	}

	// Longer numbers sort after shorter ones, so the numeric maximum wins
	// even once the sequence outgrows the zero padding (PO-1000000 and up).
	var last model.PurchaseOrder
	err := db.Select("order_number").
		Order("length(order_number) desc, order_number desc").
		First(&last).Error

	switch {
	case err == nil:
		return nextOrderNumberAfter(last.OrderNumber)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first order ever
		return fmt.Sprintf("%s%06d", orderNumberPrefix, 1), nil
	default:
		return "", err
	}
}

func nextOrderNumberAfter(last string) (string, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(last, orderNumberPrefix))
	if err != nil {
		return "", fmt.Errorf("malformed order number %q: %w", last, err)
	}
	return fmt.Sprintf("%s%06d", orderNumberPrefix, n+1), nil
}

func (r *purchaseOrderRepository) SumItemTotals(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := GetDB(ctx, r.db).Model(&model.PurchaseOrderItem{}).
		Select("COALESCE(SUM(quantity * unit_price), 0) as total").
		Where("purchase_order_id = ?", orderID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *purchaseOrderRepository) CreateItem(ctx context.Context, item *model.PurchaseOrderItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *purchaseOrderRepository) SaveItem(ctx context.Context, item *model.PurchaseOrderItem) error {
	return GetDB(ctx, r.db).Omit("Product").Save(item).Error
}

func (r *purchaseOrderRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.PurchaseOrderItem{}).Error
}

func (r *purchaseOrderRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrderItem, error) {
	var item model.PurchaseOrderItem
	if err := GetDB(ctx, r.db).Preload("Product").
		First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *purchaseOrderRepository) Summary(ctx context.Context) (model.PurchaseOrderSummary, error) {
	var summary model.PurchaseOrderSummary
	db := GetDB(ctx, r.db)

	if err := db.Model(&model.PurchaseOrder{}).Count(&summary.TotalOrders).Error; err != nil {
		return summary, err
	}
	if err := db.Model(&model.PurchaseOrder{}).Where("status = ?", model.POStatusDraft).
		Count(&summary.DraftOrders).Error; err != nil {
		return summary, err
	}
	if err := db.Model(&model.PurchaseOrder{}).
		Where("status IN ?", []string{model.POStatusSubmitted, model.POStatusApproved, model.POStatusOrdered}).
		Count(&summary.PendingOrders).Error; err != nil {
		return summary, err
	}
	if err := db.Model(&model.PurchaseOrder{}).Where("status = ?", model.POStatusReceived).
		Count(&summary.ReceivedOrders).Error; err != nil {
		return summary, err
	}

	var value struct {
		Total decimal.Decimal
	}
	if err := db.Model(&model.PurchaseOrder{}).
		Select("COALESCE(SUM(total_amount + tax_amount + shipping_amount), 0) as total").
		Scan(&value).Error; err != nil {
		return summary, err
	}
	summary.TotalValue = value.Total

	return summary, nil
}
