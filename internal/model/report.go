package model

import "github.com/shopspring/decimal"

// DashboardOverview aggregates headline counts and total stock value
type DashboardOverview struct {
	TotalProducts         int64           `json:"total_products"`
	TotalWarehouses       int64           `json:"total_warehouses"`
	TotalSuppliers        int64           `json:"total_suppliers"`
	TotalInventoryItems   int64           `json:"total_inventory_items"`
	LowStockItems         int64           `json:"low_stock_items"`
	OutOfStockItems       int64           `json:"out_of_stock_items"`
	ActiveAlerts          int64           `json:"active_alerts"`
	PendingPurchaseOrders int64           `json:"pending_purchase_orders"`
	TotalInventoryValue   decimal.Decimal `json:"total_inventory_value"`
}

// InventoryValueRow values stock grouped by product category and warehouse
type InventoryValueRow struct {
	Category      string          `json:"category"`
	Warehouse     string          `json:"warehouse"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	AverageCost   decimal.Decimal `json:"average_cost"`
}

// LowStockRow describes one inventory entry at or below its product threshold
type LowStockRow struct {
	ProductID           string          `json:"product_id"`
	ProductName         string          `json:"product_name"`
	SKU                 string          `json:"sku"`
	WarehouseName       string          `json:"warehouse_name"`
	CurrentStock        int             `json:"current_stock"`
	MinimumStock        int             `json:"minimum_stock"`
	MaximumStock        int             `json:"maximum_stock"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	StockValue          decimal.Decimal `json:"stock_value"`
	DaysUntilOutOfStock int             `json:"days_until_out_of_stock"`
}

// WarehouseSummaryRow aggregates stock metrics per active warehouse
type WarehouseSummaryRow struct {
	WarehouseID     string          `json:"warehouse_id"`
	WarehouseName   string          `json:"warehouse_name"`
	Location        string          `json:"location"`
	TotalProducts   int64           `json:"total_products"`
	TotalQuantity   int             `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockItems   int64           `json:"low_stock_items"`
	OutOfStockItems int64           `json:"out_of_stock_items"`
}

// TopProductRow ranks a product by total stock value across warehouses
type TopProductRow struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	SKU            string          `json:"sku"`
	Category       string          `json:"category"`
	TotalQuantity  int             `json:"total_quantity"`
	TotalValue     decimal.Decimal `json:"total_value"`
	AverageCost    decimal.Decimal `json:"average_cost"`
	WarehouseCount int64           `json:"warehouse_count"`
}

// InventorySummary aggregates ledger-wide counts and value
type InventorySummary struct {
	TotalProducts       int64           `json:"total_products"`
	TotalWarehouses     int64           `json:"total_warehouses"`
	TotalInventoryItems int64           `json:"total_inventory_items"`
	LowStockItems       int64           `json:"low_stock_items"`
	OutOfStockItems     int64           `json:"out_of_stock_items"`
	TotalValue          decimal.Decimal `json:"total_value"`
}

// StockAlertSummary counts alerts per status and type
type StockAlertSummary struct {
	TotalAlerts        int64 `json:"total_alerts"`
	ActiveAlerts       int64 `json:"active_alerts"`
	AcknowledgedAlerts int64 `json:"acknowledged_alerts"`
	ResolvedAlerts     int64 `json:"resolved_alerts"`
	LowStockAlerts     int64 `json:"low_stock_alerts"`
	OutOfStockAlerts   int64 `json:"out_of_stock_alerts"`
}

// PurchaseOrderSummary counts orders per workflow bucket plus total value
type PurchaseOrderSummary struct {
	TotalOrders    int64           `json:"total_orders"`
	DraftOrders    int64           `json:"draft_orders"`
	PendingOrders  int64           `json:"pending_orders"`
	ReceivedOrders int64           `json:"received_orders"`
	TotalValue     decimal.Decimal `json:"total_value"`
}
