package service

import (
	"context"
	"testing"
	"time"

	"inventory-api/internal/model"
	"inventory-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newTestInventory(quantity, reserved int) *model.Inventory {
	return &model.Inventory{
		ID:               uuid.New(),
		ProductID:        uuid.New(),
		WarehouseID:      uuid.New(),
		Quantity:         quantity,
		ReservedQuantity: reserved,
		LastUpdated:      time.Now().UTC(),
	}
}

func newInventoryServiceForTest(invRepo *MockInventoryRepository, productRepo *MockProductRepository, warehouseRepo *MockWarehouseRepository, auditRepo *MockAuditRepository) InventoryService {
	return NewInventoryService(invRepo, productRepo, warehouseRepo, auditRepo, passthroughTxManager{}, nil)
}

func TestApplyAdjustment(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		reserved     int
		adjType      string
		amount       int
		wantErr      error
		wantQuantity int
		wantReserved int
	}{
		{"add increases on hand", 10, 0, model.AdjustmentAdd, 5, nil, 15, 0},
		{"subtract decreases on hand", 10, 0, model.AdjustmentSubtract, 4, nil, 6, 0},
		{"subtract beyond on hand fails", 10, 0, model.AdjustmentSubtract, 11, apperror.ErrInsufficientStock, 10, 0},
		{"subtract may dip below reserved", 10, 8, model.AdjustmentSubtract, 5, nil, 5, 8},
		{"reserve within available", 10, 3, model.AdjustmentReserve, 7, nil, 10, 10},
		{"reserve beyond available fails", 10, 3, model.AdjustmentReserve, 8, apperror.ErrInsufficientAvailable, 10, 3},
		{"release within reserved", 10, 6, model.AdjustmentRelease, 6, nil, 10, 0},
		{"release beyond reserved fails", 10, 3, model.AdjustmentRelease, 4, apperror.ErrInsufficientReserved, 10, 3},
		{"zero amount fails", 10, 0, model.AdjustmentAdd, 0, apperror.ErrInvalidArgument, 10, 0},
		{"negative amount fails", 10, 0, model.AdjustmentAdd, -3, apperror.ErrInvalidArgument, 10, 0},
		{"unknown type fails", 10, 0, "transfer", 1, apperror.ErrInvalidArgument, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newTestInventory(tt.quantity, tt.reserved)
			err := applyAdjustment(inv, tt.adjType, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantQuantity, inv.Quantity)
			assert.Equal(t, tt.wantReserved, inv.ReservedQuantity)
			assert.GreaterOrEqual(t, inv.ReservedQuantity, 0)
			assert.LessOrEqual(t, inv.ReservedQuantity, inv.Quantity+tt.reserved)
		})
	}
}

func TestAdjustLocksAndSaves(t *testing.T) {
	invRepo := new(MockInventoryRepository)
	auditRepo := new(MockAuditRepository)
	svc := newInventoryServiceForTest(invRepo, new(MockProductRepository), new(MockWarehouseRepository), auditRepo)

	inv := newTestInventory(10, 2)
	before := inv.LastUpdated

	invRepo.On("FindByIDForUpdate", mock.Anything, inv.ID).Return(inv, nil)
	invRepo.On("Save", mock.Anything, inv).Return(nil)
	auditRepo.On("Log", mock.Anything, mock.MatchedBy(func(e *model.AuditLog) bool {
		return e.Action == model.ActionAdjustInventory
	})).Return(nil)

	resp, err := svc.Adjust(context.Background(), uuid.NewString(), inv.ID.String(), AdjustInventoryRequest{
		Type:   model.AdjustmentReserve,
		Amount: 5,
	})

	assert.NoError(t, err)
	assert.Equal(t, 10, resp.Quantity)
	assert.Equal(t, 7, resp.ReservedQuantity)
	assert.Equal(t, 3, resp.AvailableQuantity)
	assert.True(t, inv.LastUpdated.After(before) || inv.LastUpdated.Equal(before))
	invRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestAdjustRejectsInvalidAmountWithoutSaving(t *testing.T) {
	invRepo := new(MockInventoryRepository)
	svc := newInventoryServiceForTest(invRepo, new(MockProductRepository), new(MockWarehouseRepository), new(MockAuditRepository))

	inv := newTestInventory(10, 0)
	invRepo.On("FindByIDForUpdate", mock.Anything, inv.ID).Return(inv, nil)

	_, err := svc.Adjust(context.Background(), uuid.NewString(), inv.ID.String(), AdjustInventoryRequest{
		Type:   model.AdjustmentSubtract,
		Amount: -1,
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	invRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdjustNotFound(t *testing.T) {
	invRepo := new(MockInventoryRepository)
	svc := newInventoryServiceForTest(invRepo, new(MockProductRepository), new(MockWarehouseRepository), new(MockAuditRepository))

	id := uuid.New()
	invRepo.On("FindByIDForUpdate", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Adjust(context.Background(), uuid.NewString(), id.String(), AdjustInventoryRequest{
		Type:   model.AdjustmentAdd,
		Amount: 1,
	})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateRejectsDuplicatePair(t *testing.T) {
	invRepo := new(MockInventoryRepository)
	productRepo := new(MockProductRepository)
	warehouseRepo := new(MockWarehouseRepository)
	svc := newInventoryServiceForTest(invRepo, productRepo, warehouseRepo, new(MockAuditRepository))

	productID := uuid.New()
	warehouseID := uuid.New()
	productRepo.On("FindByID", mock.Anything, productID).Return(&model.Product{ID: productID}, nil)
	warehouseRepo.On("FindByID", mock.Anything, warehouseID).Return(&model.Warehouse{ID: warehouseID}, nil)
	invRepo.On("ExistsByPair", mock.Anything, productID, warehouseID).Return(true, nil)

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateInventoryRequest{
		ProductID:   productID.String(),
		WarehouseID: warehouseID.String(),
		Quantity:    5,
	})

	assert.ErrorIs(t, err, apperror.ErrDuplicateKey)
	invRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRejectsReservedAboveQuantity(t *testing.T) {
	svc := newInventoryServiceForTest(new(MockInventoryRepository), new(MockProductRepository), new(MockWarehouseRepository), new(MockAuditRepository))

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateInventoryRequest{
		ProductID:        uuid.NewString(),
		WarehouseID:      uuid.NewString(),
		Quantity:         3,
		ReservedQuantity: 5,
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestUpdateRetriesOnceThenConflicts(t *testing.T) {
	invRepo := new(MockInventoryRepository)
	svc := newInventoryServiceForTest(invRepo, new(MockProductRepository), new(MockWarehouseRepository), new(MockAuditRepository))

	inv := newTestInventory(10, 2)
	invRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)
	invRepo.On("SaveChecked", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := svc.Update(context.Background(), uuid.NewString(), inv.ID.String(), UpdateInventoryRequest{
		Quantity:         20,
		ReservedQuantity: 1,
	})

	assert.ErrorIs(t, err, apperror.ErrConcurrencyConflict)
	invRepo.AssertNumberOfCalls(t, "SaveChecked", 2)
}

func TestUpdateSucceedsOnSecondAttempt(t *testing.T) {
	invRepo := new(MockInventoryRepository)
	auditRepo := new(MockAuditRepository)
	svc := newInventoryServiceForTest(invRepo, new(MockProductRepository), new(MockWarehouseRepository), auditRepo)

	inv := newTestInventory(10, 2)
	invRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)
	invRepo.On("SaveChecked", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	invRepo.On("SaveChecked", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Update(context.Background(), uuid.NewString(), inv.ID.String(), UpdateInventoryRequest{
		Quantity:         20,
		ReservedQuantity: 1,
	})

	assert.NoError(t, err)
	assert.Equal(t, 20, resp.Quantity)
	assert.Equal(t, 1, resp.ReservedQuantity)
	assert.Equal(t, 19, resp.AvailableQuantity)
}

func TestUpdateRejectsReservedAboveQuantity(t *testing.T) {
	svc := newInventoryServiceForTest(new(MockInventoryRepository), new(MockProductRepository), new(MockWarehouseRepository), new(MockAuditRepository))

	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), UpdateInventoryRequest{
		Quantity:         1,
		ReservedQuantity: 2,
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}
