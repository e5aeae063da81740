package repository

import (
	"context"
	"time"

	"inventory-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	Create(ctx context.Context, inv *model.Inventory) error
	Save(ctx context.Context, inv *model.Inventory) error
	// SaveChecked persists inv only if the row's last_updated still matches
	// prevUpdated. Returns the number of rows written.
	SaveChecked(ctx context.Context, inv *model.Inventory, prevUpdated time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error)
	// FindByIDForUpdate locks the row for the duration of the surrounding
	// transaction. Callers must be inside RunInTx.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Inventory, error)
	ExistsByPair(ctx context.Context, productID, warehouseID uuid.UUID) (bool, error)
	List(ctx context.Context, page, limit int) ([]model.Inventory, int64, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Inventory, error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]model.Inventory, error)
	// ListLowStock returns entries whose available quantity is at or below the
	// product's minimum stock level, product and warehouse preloaded.
	ListLowStock(ctx context.Context) ([]model.Inventory, error)
	Summary(ctx context.Context) (model.InventorySummary, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, inv *model.Inventory) error {
	return GetDB(ctx, r.db).Create(inv).Error
}

func (r *inventoryRepository) Save(ctx context.Context, inv *model.Inventory) error {
	return GetDB(ctx, r.db).Save(inv).Error
}

func (r *inventoryRepository) SaveChecked(ctx context.Context, inv *model.Inventory, prevUpdated time.Time) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Inventory{}).
		Where("id = ? AND last_updated = ?", inv.ID, prevUpdated).
		Updates(map[string]interface{}{
			"quantity":          inv.Quantity,
			"reserved_quantity": inv.ReservedQuantity,
			"location":          inv.Location,
			"notes":             inv.Notes,
			"last_updated":      inv.LastUpdated,
		})
	return res.RowsAffected, res.Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Inventory{}).Error
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	if err := GetDB(ctx, r.db).Preload("Product").Preload("Warehouse").
		First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepository) ExistsByPair(ctx context.Context, productID, warehouseID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Inventory{}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *inventoryRepository) List(ctx context.Context, page, limit int) ([]model.Inventory, int64, error) {
	var entries []model.Inventory
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Inventory{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Product").Preload("Warehouse").
		Order("last_updated desc").Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *inventoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Inventory, error) {
	var entries []model.Inventory
	if err := GetDB(ctx, r.db).Preload("Product").Preload("Warehouse").
		Where("product_id = ?", productID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *inventoryRepository) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]model.Inventory, error) {
	var entries []model.Inventory
	if err := GetDB(ctx, r.db).Preload("Product").Preload("Warehouse").
		Where("warehouse_id = ?", warehouseID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *inventoryRepository) ListLowStock(ctx context.Context) ([]model.Inventory, error) {
	var entries []model.Inventory
	if err := GetDB(ctx, r.db).Preload("Product").Preload("Warehouse").
		Joins("JOIN products ON products.id = inventories.product_id AND products.deleted_at IS NULL").
		Where("inventories.quantity - inventories.reserved_quantity <= products.minimum_stock_level").
		Order("inventories.quantity - inventories.reserved_quantity asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *inventoryRepository) Summary(ctx context.Context) (model.InventorySummary, error) {
	var summary model.InventorySummary
	db := GetDB(ctx, r.db)

	if err := db.Model(&model.Product{}).Where("is_active = ?", true).
		Count(&summary.TotalProducts).Error; err != nil {
		return summary, err
	}
	if err := db.Model(&model.Warehouse{}).Where("is_active = ?", true).
		Count(&summary.TotalWarehouses).Error; err != nil {
		return summary, err
	}
	if err := db.Model(&model.Inventory{}).Count(&summary.TotalInventoryItems).Error; err != nil {
		return summary, err
	}
	if err := db.Model(&model.Inventory{}).
		Joins("JOIN products ON products.id = inventories.product_id AND products.deleted_at IS NULL").
		Where("inventories.quantity - inventories.reserved_quantity <= products.minimum_stock_level").
		Count(&summary.LowStockItems).Error; err != nil {
		return summary, err
	}
	if err := db.Model(&model.Inventory{}).
		Where("quantity - reserved_quantity = 0").
		Count(&summary.OutOfStockItems).Error; err != nil {
		return summary, err
	}

	var value struct {
		Value decimal.Decimal
	}
	if err := db.Model(&model.Inventory{}).
		Select("COALESCE(SUM(inventories.quantity * products.cost), 0) as value").
		Joins("JOIN products ON products.id = inventories.product_id AND products.deleted_at IS NULL").
		Scan(&value).Error; err != nil {
		return summary, err
	}
	summary.TotalValue = value.Value

	return summary, nil
}
