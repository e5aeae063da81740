package service

import (
	"context"
	"fmt"

	"inventory-api/internal/model"

	"gorm.io/gorm"
)

// DashboardService answers cross-entity report queries. It reads straight
// from the database: these are aggregate scans, not entity round trips, and
// they never write.
type DashboardService interface {
	Overview(ctx context.Context) (model.DashboardOverview, error)
	InventoryValue(ctx context.Context) ([]model.InventoryValueRow, error)
	LowStockReport(ctx context.Context) ([]model.LowStockRow, error)
	WarehouseSummary(ctx context.Context) ([]model.WarehouseSummaryRow, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProductRow, error)
}

type dashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardService{db: db}
}

func (s *dashboardService) Overview(ctx context.Context) (model.DashboardOverview, error) {
	var overview model.DashboardOverview
	db := s.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&overview.TotalProducts, db.Model(&model.Product{}).Where("is_active = ?", true)},
		{&overview.TotalWarehouses, db.Model(&model.Warehouse{}).Where("is_active = ?", true)},
		{&overview.TotalSuppliers, db.Model(&model.Supplier{}).Where("is_active = ?", true)},
		{&overview.TotalInventoryItems, db.Model(&model.Inventory{})},
		{&overview.ActiveAlerts, db.Model(&model.StockAlert{}).Where("status = ?", model.AlertStatusActive)},
		{&overview.PendingPurchaseOrders, db.Model(&model.PurchaseOrder{}).
			Where("status IN ?", []string{model.POStatusSubmitted, model.POStatusApproved, model.POStatusOrdered, model.POStatusPartiallyReceived})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return model.DashboardOverview{}, fmt.Errorf("failed to count dashboard totals: %w", err)
		}
	}

	if err := db.Model(&model.Inventory{}).
		Joins("JOIN products ON products.id = inventories.product_id AND products.deleted_at IS NULL").
		Where("inventories.quantity - inventories.reserved_quantity <= products.minimum_stock_level").
		Count(&overview.LowStockItems).Error; err != nil {
		return model.DashboardOverview{}, fmt.Errorf("failed to count low stock items: %w", err)
	}

	if err := db.Model(&model.Inventory{}).
		Where("quantity - reserved_quantity = 0").
		Count(&overview.OutOfStockItems).Error; err != nil {
		return model.DashboardOverview{}, fmt.Errorf("failed to count out of stock items: %w", err)
	}

	if err := db.Model(&model.Inventory{}).
		Joins("JOIN products ON products.id = inventories.product_id AND products.deleted_at IS NULL").
		Select("COALESCE(SUM(inventories.quantity * products.cost), 0)").
		Scan(&overview.TotalInventoryValue).Error; err != nil {
		return model.DashboardOverview{}, fmt.Errorf("failed to total inventory value: %w", err)
	}

	return overview, nil
}

func (s *dashboardService) InventoryValue(ctx context.Context) ([]model.InventoryValueRow, error) {
	var rows []model.InventoryValueRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT products.category AS category,
		       warehouses.name AS warehouse,
		       COALESCE(SUM(inventories.quantity), 0) AS total_quantity,
		       COALESCE(SUM(inventories.quantity * products.cost), 0) AS total_value,
		       COALESCE(AVG(products.cost), 0) AS average_cost
		FROM inventories
		JOIN products ON products.id = inventories.product_id AND products.deleted_at IS NULL
		JOIN warehouses ON warehouses.id = inventories.warehouse_id
		GROUP BY products.category, warehouses.name
		ORDER BY total_value DESC`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory value report: %w", err)
	}
	return rows, nil
}

// LowStockReport lists entries at or below threshold with a rough runway
// estimate assuming a burn rate of 10 units per day.
func (s *dashboardService) LowStockReport(ctx context.Context) ([]model.LowStockRow, error) {
	var rows []model.LowStockRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT products.id AS product_id,
		       products.name AS product_name,
		       products.sku AS sku,
		       warehouses.name AS warehouse_name,
		       inventories.quantity - inventories.reserved_quantity AS current_stock,
		       products.minimum_stock_level AS minimum_stock,
		       products.maximum_stock_level AS maximum_stock,
		       products.cost AS unit_cost,
		       (inventories.quantity - inventories.reserved_quantity) * products.cost AS stock_value,
		       CEIL((inventories.quantity - inventories.reserved_quantity) / 10.0) AS days_until_out_of_stock
		FROM inventories
		JOIN products ON products.id = inventories.product_id AND products.deleted_at IS NULL
		JOIN warehouses ON warehouses.id = inventories.warehouse_id
		WHERE inventories.quantity - inventories.reserved_quantity <= products.minimum_stock_level
		ORDER BY current_stock ASC`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build low stock report: %w", err)
	}
	return rows, nil
}

func (s *dashboardService) WarehouseSummary(ctx context.Context) ([]model.WarehouseSummaryRow, error) {
	var rows []model.WarehouseSummaryRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT warehouses.id AS warehouse_id,
		       warehouses.name AS warehouse_name,
		       CONCAT(warehouses.city, ', ', warehouses.state) AS location,
		       COUNT(DISTINCT inventories.product_id) AS total_products,
		       COALESCE(SUM(inventories.quantity), 0) AS total_quantity,
		       COALESCE(SUM(inventories.quantity * products.cost), 0) AS total_value,
		       COUNT(*) FILTER (WHERE inventories.quantity - inventories.reserved_quantity <= products.minimum_stock_level) AS low_stock_items,
		       COUNT(*) FILTER (WHERE inventories.quantity - inventories.reserved_quantity = 0) AS out_of_stock_items
		FROM warehouses
		LEFT JOIN inventories ON inventories.warehouse_id = warehouses.id
		LEFT JOIN products ON products.id = inventories.product_id AND products.deleted_at IS NULL
		WHERE warehouses.is_active = true AND warehouses.deleted_at IS NULL
		GROUP BY warehouses.id, warehouses.name, warehouses.city, warehouses.state
		ORDER BY total_value DESC`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build warehouse summary: %w", err)
	}
	return rows, nil
}

func (s *dashboardService) TopProducts(ctx context.Context, limit int) ([]model.TopProductRow, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []model.TopProductRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT products.id AS product_id,
		       products.name AS product_name,
		       products.sku AS sku,
		       products.category AS category,
		       COALESCE(SUM(inventories.quantity), 0) AS total_quantity,
		       COALESCE(SUM(inventories.quantity * products.cost), 0) AS total_value,
		       COALESCE(AVG(products.cost), 0) AS average_cost,
		       COUNT(DISTINCT inventories.warehouse_id) AS warehouse_count
		FROM products
		JOIN inventories ON inventories.product_id = products.id
		WHERE products.deleted_at IS NULL
		GROUP BY products.id, products.name, products.sku, products.category
		ORDER BY total_value DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build top products report: %w", err)
	}
	return rows, nil
}
