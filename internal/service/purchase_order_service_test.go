package service

import (
	"context"
	"testing"

	"inventory-api/internal/model"
	"inventory-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderServiceForTest(orderRepo *MockPurchaseOrderRepository, supplierRepo *MockSupplierRepository, warehouseRepo *MockWarehouseRepository, productRepo *MockProductRepository, auditRepo *MockAuditRepository) PurchaseOrderService {
	return NewPurchaseOrderService(orderRepo, supplierRepo, warehouseRepo, productRepo, auditRepo, passthroughTxManager{})
}

func TestCreateOrderAllocatesNumberAndTotals(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	supplierRepo := new(MockSupplierRepository)
	warehouseRepo := new(MockWarehouseRepository)
	productRepo := new(MockProductRepository)
	auditRepo := new(MockAuditRepository)
	svc := newOrderServiceForTest(orderRepo, supplierRepo, warehouseRepo, productRepo, auditRepo)

	supplierID := uuid.New()
	warehouseID := uuid.New()
	productID := uuid.New()

	supplierRepo.On("FindByID", mock.Anything, supplierID).Return(&model.Supplier{ID: supplierID}, nil)
	warehouseRepo.On("FindByID", mock.Anything, warehouseID).Return(&model.Warehouse{ID: warehouseID}, nil)
	productRepo.On("FindByID", mock.Anything, productID).Return(&model.Product{ID: productID}, nil)
	orderRepo.On("NextOrderNumber", mock.Anything).Return("PO-000042", nil)
	orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Create(context.Background(), uuid.NewString(), CreatePurchaseOrderRequest{
		SupplierID:     supplierID.String(),
		WarehouseID:    warehouseID.String(),
		TaxAmount:      decimal.NewFromInt(10),
		ShippingAmount: decimal.NewFromInt(5),
		Items: []CreatePurchaseOrderItemRequest{
			{ProductID: productID.String(), Quantity: 3, UnitPrice: decimal.NewFromInt(20)},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "PO-000042", resp.OrderNumber)
	assert.Equal(t, model.POStatusDraft, resp.Status)
	assert.True(t, decimal.NewFromInt(60).Equal(resp.TotalAmount), "total = 3 * 20")
	assert.True(t, decimal.NewFromInt(75).Equal(resp.GrandTotal), "grand total = 60 + 10 + 5")
}

func TestCreateOrderRejectsBadItems(t *testing.T) {
	svc := newOrderServiceForTest(new(MockPurchaseOrderRepository), new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), new(MockAuditRepository))

	_, err := svc.Create(context.Background(), uuid.NewString(), CreatePurchaseOrderRequest{
		SupplierID:  uuid.NewString(),
		WarehouseID: uuid.NewString(),
		Items: []CreatePurchaseOrderItemRequest{
			{ProductID: uuid.NewString(), Quantity: 0, UnitPrice: decimal.NewFromInt(20)},
		},
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = svc.Create(context.Background(), uuid.NewString(), CreatePurchaseOrderRequest{
		SupplierID:  uuid.NewString(),
		WarehouseID: uuid.NewString(),
		Items: []CreatePurchaseOrderItemRequest{
			{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
		},
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestChangeStatusFollowsWorkflow(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	auditRepo := new(MockAuditRepository)
	svc := newOrderServiceForTest(orderRepo, new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), auditRepo)

	order := &model.PurchaseOrder{ID: uuid.New(), OrderNumber: "PO-000001", Status: model.POStatusDraft}
	orderRepo.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.ChangeStatus(context.Background(), uuid.NewString(), order.ID.String(), ChangeOrderStatusRequest{
		Status: model.POStatusSubmitted,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.POStatusSubmitted, resp.Status)
}

func TestChangeStatusRejectsSkippedSteps(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	svc := newOrderServiceForTest(orderRepo, new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), new(MockAuditRepository))

	order := &model.PurchaseOrder{ID: uuid.New(), Status: model.POStatusDraft}
	orderRepo.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.ChangeStatus(context.Background(), uuid.NewString(), order.ID.String(), ChangeOrderStatusRequest{
		Status: model.POStatusReceived,
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestChangeStatusRejectsTerminalOrders(t *testing.T) {
	for _, status := range []string{model.POStatusReceived, model.POStatusCancelled} {
		orderRepo := new(MockPurchaseOrderRepository)
		svc := newOrderServiceForTest(orderRepo, new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), new(MockAuditRepository))

		order := &model.PurchaseOrder{ID: uuid.New(), Status: status}
		orderRepo.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

		_, err := svc.ChangeStatus(context.Background(), uuid.NewString(), order.ID.String(), ChangeOrderStatusRequest{
			Status: model.POStatusCancelled,
		})

		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	}
}

func TestChangeStatusReceivedStampsDeliveryDate(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	auditRepo := new(MockAuditRepository)
	svc := newOrderServiceForTest(orderRepo, new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), auditRepo)

	order := &model.PurchaseOrder{ID: uuid.New(), Status: model.POStatusOrdered}
	orderRepo.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.ChangeStatus(context.Background(), uuid.NewString(), order.ID.String(), ChangeOrderStatusRequest{
		Status: model.POStatusReceived,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.POStatusReceived, resp.Status)
	assert.NotNil(t, order.ActualDeliveryDate)
	assert.NotEmpty(t, resp.ActualDeliveryDate)
}

func TestUpdateItemEnforcesReceivedBounds(t *testing.T) {
	svc := newOrderServiceForTest(new(MockPurchaseOrderRepository), new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), new(MockAuditRepository))

	_, err := svc.UpdateItem(context.Background(), uuid.NewString(), uuid.NewString(), uuid.NewString(), UpdateOrderItemRequest{
		Quantity:         5,
		ReceivedQuantity: 6,
		UnitPrice:        decimal.NewFromInt(10),
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestUpdateItemRecalculatesTotal(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	auditRepo := new(MockAuditRepository)
	svc := newOrderServiceForTest(orderRepo, new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), auditRepo)

	order := &model.PurchaseOrder{ID: uuid.New(), OrderNumber: "PO-000007", Status: model.POStatusOrdered}
	item := &model.PurchaseOrderItem{ID: uuid.New(), PurchaseOrderID: order.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(10)}

	orderRepo.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("FindItemByID", mock.Anything, item.ID).Return(item, nil)
	orderRepo.On("SaveItem", mock.Anything, item).Return(nil)
	orderRepo.On("SumItemTotals", mock.Anything, order.ID).Return(decimal.NewFromInt(50), nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)
	orderRepo.On("FindByIDWithItems", mock.Anything, order.ID).Return(order, nil)
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.UpdateItem(context.Background(), uuid.NewString(), order.ID.String(), item.ID.String(), UpdateOrderItemRequest{
		Quantity:         5,
		ReceivedQuantity: 3,
		UnitPrice:        decimal.NewFromInt(10),
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, item.ReceivedQuantity)
	assert.Equal(t, 2, item.PendingQuantity())
	assert.True(t, decimal.NewFromInt(50).Equal(order.TotalAmount))
	orderRepo.AssertCalled(t, "SumItemTotals", mock.Anything, order.ID)
}

func TestUpdateItemRejectsForeignItem(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	svc := newOrderServiceForTest(orderRepo, new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), new(MockAuditRepository))

	order := &model.PurchaseOrder{ID: uuid.New(), Status: model.POStatusDraft}
	item := &model.PurchaseOrderItem{ID: uuid.New(), PurchaseOrderID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(1)}

	orderRepo.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("FindItemByID", mock.Anything, item.ID).Return(item, nil)

	_, err := svc.UpdateItem(context.Background(), uuid.NewString(), order.ID.String(), item.ID.String(), UpdateOrderItemRequest{
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(1),
	})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAddItemRejectsNonEditableStatus(t *testing.T) {
	for _, status := range []string{model.POStatusApproved, model.POStatusOrdered, model.POStatusReceived, model.POStatusCancelled} {
		orderRepo := new(MockPurchaseOrderRepository)
		svc := newOrderServiceForTest(orderRepo, new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), new(MockAuditRepository))

		order := &model.PurchaseOrder{ID: uuid.New(), Status: status}
		orderRepo.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

		_, err := svc.AddItem(context.Background(), uuid.NewString(), order.ID.String(), CreatePurchaseOrderItemRequest{
			ProductID: uuid.NewString(),
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(1),
		})

		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
		orderRepo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
	}
}

func TestRemoveItemRecalculatesTotal(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	auditRepo := new(MockAuditRepository)
	svc := newOrderServiceForTest(orderRepo, new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), auditRepo)

	order := &model.PurchaseOrder{ID: uuid.New(), OrderNumber: "PO-000009", Status: model.POStatusDraft, TotalAmount: decimal.NewFromInt(100)}
	item := &model.PurchaseOrderItem{ID: uuid.New(), PurchaseOrderID: order.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(25)}

	orderRepo.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("FindItemByID", mock.Anything, item.ID).Return(item, nil)
	orderRepo.On("DeleteItem", mock.Anything, item.ID).Return(nil)
	orderRepo.On("SumItemTotals", mock.Anything, order.ID).Return(decimal.NewFromInt(50), nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)
	orderRepo.On("FindByIDWithItems", mock.Anything, order.ID).Return(order, nil)
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.RemoveItem(context.Background(), uuid.NewString(), order.ID.String(), item.ID.String())

	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(resp.TotalAmount))
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc := newOrderServiceForTest(new(MockPurchaseOrderRepository), new(MockSupplierRepository), new(MockWarehouseRepository), new(MockProductRepository), new(MockAuditRepository))

	_, _, err := svc.List(context.Background(), "SHIPPED", 1, 20)

	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}
