package service

import (
	"context"
	"testing"

	"inventory-api/internal/model"
	"inventory-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAlertServiceForTest(alertRepo *MockStockAlertRepository, invRepo *MockInventoryRepository, auditRepo *MockAuditRepository) AlertService {
	return NewAlertService(alertRepo, invRepo, auditRepo, passthroughTxManager{}, nil)
}

func lowStockEntry(productName, warehouseName string, quantity, reserved, minimum int) model.Inventory {
	return model.Inventory{
		ID:               uuid.New(),
		ProductID:        uuid.New(),
		WarehouseID:      uuid.New(),
		Quantity:         quantity,
		ReservedQuantity: reserved,
		Product: model.Product{
			ID:                uuid.New(),
			Name:              productName,
			MinimumStockLevel: minimum,
		},
		Warehouse: model.Warehouse{
			ID:   uuid.New(),
			Name: warehouseName,
		},
	}
}

func TestRunScanCreatesTypedAlerts(t *testing.T) {
	alertRepo := new(MockStockAlertRepository)
	invRepo := new(MockInventoryRepository)
	auditRepo := new(MockAuditRepository)
	svc := newAlertServiceForTest(alertRepo, invRepo, auditRepo)

	depleted := lowStockEntry("Widget", "North", 5, 5, 10)
	running := lowStockEntry("Gadget", "South", 8, 2, 10)

	invRepo.On("ListLowStock", mock.Anything).Return([]model.Inventory{depleted, running}, nil)
	alertRepo.On("ActiveExistsForPair", mock.Anything, depleted.ProductID, depleted.WarehouseID).Return(false, nil)
	alertRepo.On("ActiveExistsForPair", mock.Anything, running.ProductID, running.WarehouseID).Return(false, nil)
	alertRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RunScan(context.Background(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Equal(t, 2, result.Created)
	assert.Len(t, result.Alerts, 2)

	assert.Equal(t, model.AlertTypeOutOfStock, result.Alerts[0].AlertType)
	assert.Equal(t, "Product Widget is out of stock in North", result.Alerts[0].Message)
	assert.Equal(t, 0, result.Alerts[0].CurrentStock)

	assert.Equal(t, model.AlertTypeLowStock, result.Alerts[1].AlertType)
	assert.Equal(t, "Product Gadget is running low on stock in South", result.Alerts[1].Message)
	assert.Equal(t, 6, result.Alerts[1].CurrentStock)
	assert.Equal(t, 10, result.Alerts[1].ThresholdLevel)
}

func TestRunScanSkipsPairsWithActiveAlert(t *testing.T) {
	alertRepo := new(MockStockAlertRepository)
	invRepo := new(MockInventoryRepository)
	svc := newAlertServiceForTest(alertRepo, invRepo, new(MockAuditRepository))

	entry := lowStockEntry("Widget", "North", 2, 0, 10)
	invRepo.On("ListLowStock", mock.Anything).Return([]model.Inventory{entry}, nil)
	alertRepo.On("ActiveExistsForPair", mock.Anything, entry.ProductID, entry.WarehouseID).Return(true, nil)

	result, err := svc.RunScan(context.Background(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Checked)
	assert.Equal(t, 0, result.Created)
	alertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRunScanSkipsEntriesWithoutProduct(t *testing.T) {
	alertRepo := new(MockStockAlertRepository)
	invRepo := new(MockInventoryRepository)
	auditRepo := new(MockAuditRepository)
	svc := newAlertServiceForTest(alertRepo, invRepo, auditRepo)

	// A ledger row whose product was soft-deleted loads with a zero-value
	// Product; raising an alert for it would produce an empty message.
	orphaned := lowStockEntry("", "North", 0, 0, 0)
	orphaned.Product = model.Product{}
	kept := lowStockEntry("Widget", "South", 2, 0, 10)

	invRepo.On("ListLowStock", mock.Anything).Return([]model.Inventory{orphaned, kept}, nil)
	alertRepo.On("ActiveExistsForPair", mock.Anything, kept.ProductID, kept.WarehouseID).Return(false, nil)
	alertRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.RunScan(context.Background(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, "Product Widget is running low on stock in South", result.Alerts[0].Message)
	assert.Equal(t, 10, result.Alerts[0].ThresholdLevel)
	alertRepo.AssertNotCalled(t, "ActiveExistsForPair", mock.Anything, orphaned.ProductID, orphaned.WarehouseID)
}

func TestRunScanEmptyLedger(t *testing.T) {
	alertRepo := new(MockStockAlertRepository)
	invRepo := new(MockInventoryRepository)
	svc := newAlertServiceForTest(alertRepo, invRepo, new(MockAuditRepository))

	invRepo.On("ListLowStock", mock.Anything).Return([]model.Inventory{}, nil)

	result, err := svc.RunScan(context.Background(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Checked)
	assert.Equal(t, 0, result.Created)
	assert.NotNil(t, result.Alerts)
}

func TestAcknowledgeActiveAlert(t *testing.T) {
	alertRepo := new(MockStockAlertRepository)
	auditRepo := new(MockAuditRepository)
	svc := newAlertServiceForTest(alertRepo, new(MockInventoryRepository), auditRepo)

	alert := &model.StockAlert{ID: uuid.New(), Status: model.AlertStatusActive}
	alertRepo.On("FindByID", mock.Anything, alert.ID).Return(alert, nil)
	alertRepo.On("Save", mock.Anything, alert).Return(nil)
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Acknowledge(context.Background(), uuid.NewString(), alert.ID.String(), AcknowledgeAlertRequest{
		AcknowledgedBy: "warehouse lead",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.AlertStatusAcknowledged, resp.Status)
	assert.Equal(t, "warehouse lead", resp.AcknowledgedBy)
	assert.NotEmpty(t, resp.AcknowledgedAt)
}

func TestAcknowledgeRejectsNonActive(t *testing.T) {
	for _, status := range []string{model.AlertStatusAcknowledged, model.AlertStatusResolved} {
		alertRepo := new(MockStockAlertRepository)
		svc := newAlertServiceForTest(alertRepo, new(MockInventoryRepository), new(MockAuditRepository))

		alert := &model.StockAlert{ID: uuid.New(), Status: status}
		alertRepo.On("FindByID", mock.Anything, alert.ID).Return(alert, nil)

		_, err := svc.Acknowledge(context.Background(), uuid.NewString(), alert.ID.String(), AcknowledgeAlertRequest{
			AcknowledgedBy: "warehouse lead",
		})

		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
		alertRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	}
}

func TestResolveFromActiveOrAcknowledged(t *testing.T) {
	for _, status := range []string{model.AlertStatusActive, model.AlertStatusAcknowledged} {
		alertRepo := new(MockStockAlertRepository)
		auditRepo := new(MockAuditRepository)
		svc := newAlertServiceForTest(alertRepo, new(MockInventoryRepository), auditRepo)

		alert := &model.StockAlert{ID: uuid.New(), Status: status}
		alertRepo.On("FindByID", mock.Anything, alert.ID).Return(alert, nil)
		alertRepo.On("Save", mock.Anything, alert).Return(nil)
		auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Resolve(context.Background(), uuid.NewString(), alert.ID.String(), ResolveAlertRequest{
			ResolutionNotes: "restocked from PO-000042",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.AlertStatusResolved, resp.Status)
		assert.Equal(t, "restocked from PO-000042", resp.ResolutionNotes)
		assert.NotEmpty(t, resp.ResolvedAt)
	}
}

func TestResolveRejectsAlreadyResolved(t *testing.T) {
	alertRepo := new(MockStockAlertRepository)
	svc := newAlertServiceForTest(alertRepo, new(MockInventoryRepository), new(MockAuditRepository))

	alert := &model.StockAlert{ID: uuid.New(), Status: model.AlertStatusResolved}
	alertRepo.On("FindByID", mock.Anything, alert.ID).Return(alert, nil)

	_, err := svc.Resolve(context.Background(), uuid.NewString(), alert.ID.String(), ResolveAlertRequest{})

	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestUpdateAlertEditsFieldsInPlace(t *testing.T) {
	alertRepo := new(MockStockAlertRepository)
	auditRepo := new(MockAuditRepository)
	svc := newAlertServiceForTest(alertRepo, new(MockInventoryRepository), auditRepo)

	alert := &model.StockAlert{ID: uuid.New(), Status: model.AlertStatusActive, Message: "old"}
	alertRepo.On("FindByID", mock.Anything, alert.ID).Return(alert, nil)
	alertRepo.On("Save", mock.Anything, alert).Return(nil)
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Update(context.Background(), uuid.NewString(), alert.ID.String(), UpdateAlertRequest{
		Status:  model.AlertStatusActive,
		Message: "threshold raised to 20",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.AlertStatusActive, resp.Status)
	assert.Equal(t, "threshold raised to 20", resp.Message)
	assert.Empty(t, resp.AcknowledgedAt)
}

func TestUpdateAlertMovesStatusForward(t *testing.T) {
	alertRepo := new(MockStockAlertRepository)
	auditRepo := new(MockAuditRepository)
	svc := newAlertServiceForTest(alertRepo, new(MockInventoryRepository), auditRepo)

	alert := &model.StockAlert{ID: uuid.New(), Status: model.AlertStatusActive}
	alertRepo.On("FindByID", mock.Anything, alert.ID).Return(alert, nil)
	alertRepo.On("Save", mock.Anything, alert).Return(nil)
	auditRepo.On("Log", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Update(context.Background(), uuid.NewString(), alert.ID.String(), UpdateAlertRequest{
		Status:         model.AlertStatusAcknowledged,
		AcknowledgedBy: "warehouse lead",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.AlertStatusAcknowledged, resp.Status)
	assert.Equal(t, "warehouse lead", resp.AcknowledgedBy)
	assert.NotEmpty(t, resp.AcknowledgedAt)

	resp, err = svc.Update(context.Background(), uuid.NewString(), alert.ID.String(), UpdateAlertRequest{
		Status:          model.AlertStatusResolved,
		ResolutionNotes: "restocked",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.AlertStatusResolved, resp.Status)
	assert.Equal(t, "restocked", resp.ResolutionNotes)
	assert.NotEmpty(t, resp.ResolvedAt)
}

func TestUpdateAlertRejectsReopening(t *testing.T) {
	for _, status := range []string{model.AlertStatusAcknowledged, model.AlertStatusResolved} {
		alertRepo := new(MockStockAlertRepository)
		svc := newAlertServiceForTest(alertRepo, new(MockInventoryRepository), new(MockAuditRepository))

		alert := &model.StockAlert{ID: uuid.New(), Status: status}
		alertRepo.On("FindByID", mock.Anything, alert.ID).Return(alert, nil)

		_, err := svc.Update(context.Background(), uuid.NewString(), alert.ID.String(), UpdateAlertRequest{
			Status: model.AlertStatusActive,
		})

		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
		alertRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	}
}

func TestUpdateAlertRejectsUnknownStatus(t *testing.T) {
	svc := newAlertServiceForTest(new(MockStockAlertRepository), new(MockInventoryRepository), new(MockAuditRepository))

	_, err := svc.Update(context.Background(), uuid.NewString(), uuid.NewString(), UpdateAlertRequest{
		Status: "SNOOZED",
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestCreateAlertRejectsUnknownType(t *testing.T) {
	svc := newAlertServiceForTest(new(MockStockAlertRepository), new(MockInventoryRepository), new(MockAuditRepository))

	_, err := svc.Create(context.Background(), uuid.NewString(), CreateAlertRequest{
		ProductID:   uuid.NewString(),
		WarehouseID: uuid.NewString(),
		AlertType:   "SOMETHING_ELSE",
		Message:     "nope",
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}
