package service

import (
	"context"
	"time"

	"inventory-api/internal/model"
	"inventory-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// passthroughTxManager runs the callback directly, simulating a transaction
// without a real database.
type passthroughTxManager struct{}

var _ repository.TransactionManager = passthroughTxManager{}

func (passthroughTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

var _ repository.InventoryRepository = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) Create(ctx context.Context, inv *model.Inventory) error {
	args := m.Called(ctx, inv)
	if args.Error(0) == nil && inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockInventoryRepository) Save(ctx context.Context, inv *model.Inventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInventoryRepository) SaveChecked(ctx context.Context, inv *model.Inventory, prevUpdated time.Time) (int64, error) {
	args := m.Called(ctx, inv, prevUpdated)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Inventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) ExistsByPair(ctx context.Context, productID, warehouseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID, warehouseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryRepository) List(ctx context.Context, page, limit int) ([]model.Inventory, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]model.Inventory), args.Get(1).(int64), args.Error(2)
}

func (m *MockInventoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Inventory, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]model.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]model.Inventory, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).([]model.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) ListLowStock(ctx context.Context) ([]model.Inventory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) Summary(ctx context.Context) (model.InventorySummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.InventorySummary), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

var _ repository.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil && product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error) {
	args := m.Called(ctx, page, limit, search)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) ListBrands(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockWarehouseRepository is a mock implementation of WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

var _ repository.WarehouseRepository = (*MockWarehouseRepository)(nil)

func (m *MockWarehouseRepository) Create(ctx context.Context, warehouse *model.Warehouse) error {
	args := m.Called(ctx, warehouse)
	if args.Error(0) == nil && warehouse.ID == uuid.Nil {
		warehouse.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, warehouse *model.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) List(ctx context.Context, page, limit int) ([]model.Warehouse, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]model.Warehouse), args.Get(1).(int64), args.Error(2)
}

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

var _ repository.SupplierRepository = (*MockSupplierRepository)(nil)

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *model.Supplier) error {
	args := m.Called(ctx, supplier)
	if args.Error(0) == nil && supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *model.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) List(ctx context.Context, page, limit int, search string) ([]model.Supplier, int64, error) {
	args := m.Called(ctx, page, limit, search)
	return args.Get(0).([]model.Supplier), args.Get(1).(int64), args.Error(2)
}

// MockStockAlertRepository is a mock implementation of StockAlertRepository
type MockStockAlertRepository struct {
	mock.Mock
}

var _ repository.StockAlertRepository = (*MockStockAlertRepository)(nil)

func (m *MockStockAlertRepository) Create(ctx context.Context, alert *model.StockAlert) error {
	args := m.Called(ctx, alert)
	if args.Error(0) == nil && alert.ID == uuid.Nil {
		alert.ID = uuid.New()
		alert.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockStockAlertRepository) Save(ctx context.Context, alert *model.StockAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockStockAlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StockAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StockAlert), args.Error(1)
}

func (m *MockStockAlertRepository) ActiveExistsForPair(ctx context.Context, productID, warehouseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID, warehouseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockAlertRepository) List(ctx context.Context, page, limit int) ([]model.StockAlert, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]model.StockAlert), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockAlertRepository) ListByStatus(ctx context.Context, status string, page, limit int) ([]model.StockAlert, int64, error) {
	args := m.Called(ctx, status, page, limit)
	return args.Get(0).([]model.StockAlert), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockAlertRepository) ListByType(ctx context.Context, alertType string, page, limit int) ([]model.StockAlert, int64, error) {
	args := m.Called(ctx, alertType, page, limit)
	return args.Get(0).([]model.StockAlert), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockAlertRepository) Summary(ctx context.Context) (model.StockAlertSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.StockAlertSummary), args.Error(1)
}

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

var _ repository.PurchaseOrderRepository = (*MockPurchaseOrderRepository)(nil)

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, order *model.PurchaseOrder) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil && order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *model.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) List(ctx context.Context, page, limit int) ([]model.PurchaseOrder, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]model.PurchaseOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseOrderRepository) ListByStatus(ctx context.Context, status string, page, limit int) ([]model.PurchaseOrder, int64, error) {
	args := m.Called(ctx, status, page, limit)
	return args.Get(0).([]model.PurchaseOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) SumItemTotals(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CreateItem(ctx context.Context, item *model.PurchaseOrderItem) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil && item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) SaveItem(ctx context.Context, item *model.PurchaseOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseOrderItem), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Summary(ctx context.Context) (model.PurchaseOrderSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.PurchaseOrderSummary), args.Error(1)
}

// MockAuditRepository is a mock implementation of AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

var _ repository.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]model.AuditLog), args.Get(1).(int64), args.Error(2)
}
