package service

import (
	"context"
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
type CreateAlertRequest struct {
	ProductID      string `json:"product_id" binding:"required"`
	WarehouseID    string `json:"warehouse_id" binding:"required"`
	AlertType      string `json:"alert_type" binding:"required"`
	Message        string `json:"message" binding:"required,max=200"`
	CurrentStock   int    `json:"current_stock" binding:"min=0"`
	ThresholdLevel int    `json:"threshold_level" binding:"min=0"`
}

type UpdateAlertRequest struct {
	Status          string `json:"status" binding:"required"`
	Message         string `json:"message" binding:"omitempty,max=200"`
	AcknowledgedBy  string `json:"acknowledged_by" binding:"omitempty,max=100"`
	ResolutionNotes string `json:"resolution_notes" binding:"omitempty,max=500"`
}

type AcknowledgeAlertRequest struct {
	AcknowledgedBy string `json:"acknowledged_by" binding:"required,max=100"`
}

type ResolveAlertRequest struct {
	ResolutionNotes string `json:"resolution_notes" binding:"max=500"`
}

type StockAlertResponse struct {
	ID              string `json:"id"`
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name,omitempty"`
	ProductSKU      string `json:"product_sku,omitempty"`
	WarehouseID     string `json:"warehouse_id"`
	WarehouseName   string `json:"warehouse_name,omitempty"`
	AlertType       string `json:"alert_type"`
	Status          string `json:"status"`
	Message         string `json:"message"`
	CurrentStock    int    `json:"current_stock"`
	ThresholdLevel  int    `json:"threshold_level"`
	CreatedAt       string `json:"created_at"`
	AcknowledgedAt  string `json:"acknowledged_at,omitempty"`
	AcknowledgedBy  string `json:"acknowledged_by,omitempty"`
	ResolvedAt      string `json:"resolved_at,omitempty"`
	ResolutionNotes string `json:"resolution_notes,omitempty"`
}

type ScanResult struct {
	Checked int                  `json:"checked"`
	Created int                  `json:"created"`
	Alerts  []StockAlertResponse `json:"alerts"`
}

type AlertService interface {
	Create(ctx context.Context, userID string, req CreateAlertRequest) (StockAlertResponse, error)
	Get(ctx context.Context, id string) (StockAlertResponse, error)
	List(ctx context.Context, status, alertType string, page, limit int) ([]StockAlertResponse, int64, error)
	Update(ctx context.Context, userID, id string, req UpdateAlertRequest) (StockAlertResponse, error)
	Acknowledge(ctx context.Context, userID, id string, req AcknowledgeAlertRequest) (StockAlertResponse, error)
	Resolve(ctx context.Context, userID, id string, req ResolveAlertRequest) (StockAlertResponse, error)
	Delete(ctx context.Context, userID, id string) error
	RunScan(ctx context.Context, userID string) (ScanResult, error)
	Summary(ctx context.Context) (model.StockAlertSummary, error)
}

type alertService struct {
	alertRepo     repository.StockAlertRepository
	inventoryRepo repository.InventoryRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
	hub           *ws.Hub
	now           func() time.Time
}

func NewAlertService(
	alertRepo repository.StockAlertRepository,
	inventoryRepo repository.InventoryRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) AlertService {
	return &alertService{
		alertRepo:     alertRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
		hub:           hub,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *alertService) Create(ctx context.Context, userID string, req CreateAlertRequest) (StockAlertResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return StockAlertResponse{}, fmt.Errorf("%w: invalid product_id: %v", apperror.ErrInvalidArgument, err)
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return StockAlertResponse{}, fmt.Errorf("%w: invalid warehouse_id: %v", apperror.ErrInvalidArgument, err)
	}
	if !validAlertType(req.AlertType) {
		return StockAlertResponse{}, fmt.Errorf("%w: unknown alert type %q", apperror.ErrInvalidArgument, req.AlertType)
	}

	alert := model.StockAlert{
		ProductID:      productID,
		WarehouseID:    warehouseID,
		AlertType:      req.AlertType,
		Status:         model.AlertStatusActive,
		Message:        req.Message,
		CurrentStock:   req.CurrentStock,
		ThresholdLevel: req.ThresholdLevel,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.alertRepo.Create(txCtx, &alert); createErr != nil {
			return fmt.Errorf("failed to create stock alert: %w", createErr)
		}
		return s.audit(txCtx, userID, model.ActionCreateStockAlert, alert.ID.String(), req.Message)
	})
	if err != nil {
		return StockAlertResponse{}, err
	}

	s.broadcast("alert.created", &alert)

	return toAlertResponse(&alert), nil
}

func (s *alertService) Get(ctx context.Context, id string) (StockAlertResponse, error) {
	alertID, err := uuid.Parse(id)
	if err != nil {
		return StockAlertResponse{}, fmt.Errorf("%w: invalid alert id: %v", apperror.ErrInvalidArgument, err)
	}

	alert, err := s.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StockAlertResponse{}, fmt.Errorf("stock alert %s: %w", id, apperror.ErrNotFound)
		}
		return StockAlertResponse{}, fmt.Errorf("failed to load stock alert: %w", err)
	}

	return toAlertResponse(alert), nil
}

func (s *alertService) List(ctx context.Context, status, alertType string, page, limit int) ([]StockAlertResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var (
		alerts []model.StockAlert
		total  int64
		err    error
	)
	switch {
	case status != "":
		alerts, total, err = s.alertRepo.ListByStatus(ctx, status, page, limit)
	case alertType != "":
		alerts, total, err = s.alertRepo.ListByType(ctx, alertType, page, limit)
	default:
		alerts, total, err = s.alertRepo.List(ctx, page, limit)
	}
	if err != nil {
		return nil, 0, err
	}

	res := make([]StockAlertResponse, 0, len(alerts))
	for i := range alerts {
		res = append(res, toAlertResponse(&alerts[i]))
	}
	return res, total, nil
}

// Update edits the alert header in place. A status change rides along only
// when it follows the lifecycle: ACTIVE may be acknowledged, anything not yet
// resolved may be resolved, and a resolved alert never reopens.
func (s *alertService) Update(ctx context.Context, userID, id string, req UpdateAlertRequest) (StockAlertResponse, error) {
	alertID, err := uuid.Parse(id)
	if err != nil {
		return StockAlertResponse{}, fmt.Errorf("%w: invalid alert id: %v", apperror.ErrInvalidArgument, err)
	}
	if !validAlertStatus(req.Status) {
		return StockAlertResponse{}, fmt.Errorf("%w: unknown alert status %q", apperror.ErrInvalidArgument, req.Status)
	}

	var alert *model.StockAlert
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		alert, findErr = s.alertRepo.FindByID(txCtx, alertID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("stock alert %s: %w", id, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to load stock alert: %w", findErr)
		}

		if req.Status != alert.Status {
			now := s.now()
			switch {
			case alert.Status == model.AlertStatusActive && req.Status == model.AlertStatusAcknowledged:
				alert.Status = model.AlertStatusAcknowledged
				alert.AcknowledgedAt = &now
			case alert.Status != model.AlertStatusResolved && req.Status == model.AlertStatusResolved:
				alert.Status = model.AlertStatusResolved
				alert.ResolvedAt = &now
			default:
				return fmt.Errorf("%w: cannot move alert from %s to %s", apperror.ErrInvalidTransition, alert.Status, req.Status)
			}
		}

		if req.Message != "" {
			alert.Message = req.Message
		}
		if req.AcknowledgedBy != "" {
			alert.AcknowledgedBy = req.AcknowledgedBy
		}
		if req.ResolutionNotes != "" {
			alert.ResolutionNotes = req.ResolutionNotes
		}

		if saveErr := s.alertRepo.Save(txCtx, alert); saveErr != nil {
			return fmt.Errorf("failed to save stock alert: %w", saveErr)
		}
		return s.audit(txCtx, userID, model.ActionUpdateStockAlert, alert.ID.String(), alert.Status)
	})
	if err != nil {
		return StockAlertResponse{}, err
	}

	return toAlertResponse(alert), nil
}

func (s *alertService) Acknowledge(ctx context.Context, userID, id string, req AcknowledgeAlertRequest) (StockAlertResponse, error) {
	alertID, err := uuid.Parse(id)
	if err != nil {
		return StockAlertResponse{}, fmt.Errorf("%w: invalid alert id: %v", apperror.ErrInvalidArgument, err)
	}

	var alert *model.StockAlert
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		alert, findErr = s.alertRepo.FindByID(txCtx, alertID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("stock alert %s: %w", id, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to load stock alert: %w", findErr)
		}

		if alert.Status != model.AlertStatusActive {
			return fmt.Errorf("%w: cannot acknowledge alert in status %s", apperror.ErrInvalidTransition, alert.Status)
		}

		now := s.now()
		alert.Status = model.AlertStatusAcknowledged
		alert.AcknowledgedAt = &now
		alert.AcknowledgedBy = req.AcknowledgedBy

		if saveErr := s.alertRepo.Save(txCtx, alert); saveErr != nil {
			return fmt.Errorf("failed to save stock alert: %w", saveErr)
		}
		return s.audit(txCtx, userID, model.ActionAcknowledgeStockAlert, alert.ID.String(), req.AcknowledgedBy)
	})
	if err != nil {
		return StockAlertResponse{}, err
	}

	return toAlertResponse(alert), nil
}

func (s *alertService) Resolve(ctx context.Context, userID, id string, req ResolveAlertRequest) (StockAlertResponse, error) {
	alertID, err := uuid.Parse(id)
	if err != nil {
		return StockAlertResponse{}, fmt.Errorf("%w: invalid alert id: %v", apperror.ErrInvalidArgument, err)
	}

	var alert *model.StockAlert
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		alert, findErr = s.alertRepo.FindByID(txCtx, alertID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("stock alert %s: %w", id, apperror.ErrNotFound)
			}
			return fmt.Errorf("failed to load stock alert: %w", findErr)
		}

		if alert.Status == model.AlertStatusResolved {
			return fmt.Errorf("%w: alert is already resolved", apperror.ErrInvalidTransition)
		}

		now := s.now()
		alert.Status = model.AlertStatusResolved
		alert.ResolvedAt = &now
		alert.ResolutionNotes = req.ResolutionNotes

		if saveErr := s.alertRepo.Save(txCtx, alert); saveErr != nil {
			return fmt.Errorf("failed to save stock alert: %w", saveErr)
		}
		return s.audit(txCtx, userID, model.ActionResolveStockAlert, alert.ID.String(), req.ResolutionNotes)
	})
	if err != nil {
		return StockAlertResponse{}, err
	}

	return toAlertResponse(alert), nil
}

func (s *alertService) Delete(ctx context.Context, userID, id string) error {
	alertID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid alert id: %v", apperror.ErrInvalidArgument, err)
	}

	if _, err := s.alertRepo.FindByID(ctx, alertID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("stock alert %s: %w", id, apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to load stock alert: %w", err)
	}

	return s.alertRepo.Delete(ctx, alertID)
}

// RunScan walks every ledger entry at or below its product's minimum stock
// level and raises one alert per product/warehouse pair. Pairs with an
// ACTIVE alert already open are skipped, so repeated scans with no stock
// movement create nothing. The whole scan runs in one transaction.
func (s *alertService) RunScan(ctx context.Context, userID string) (ScanResult, error) {
	result := ScanResult{Alerts: []StockAlertResponse{}}
	var created []model.StockAlert

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		entries, listErr := s.inventoryRepo.ListLowStock(txCtx)
		if listErr != nil {
			return fmt.Errorf("failed to list low stock entries: %w", listErr)
		}
		result.Checked = len(entries)

		for i := range entries {
			inv := &entries[i]

			// Preload is soft-delete scoped, so an entry whose product is
			// deleted comes back with a zero-value Product. No alert for those.
			if inv.Product.ID == uuid.Nil {
				continue
			}

			exists, existsErr := s.alertRepo.ActiveExistsForPair(txCtx, inv.ProductID, inv.WarehouseID)
			if existsErr != nil {
				return fmt.Errorf("failed to check existing alerts: %w", existsErr)
			}
			if exists {
				continue
			}

			alert := buildScanAlert(inv)
			if createErr := s.alertRepo.Create(txCtx, &alert); createErr != nil {
				return fmt.Errorf("failed to create stock alert: %w", createErr)
			}
			created = append(created, alert)
		}

		if len(created) == 0 {
			return nil
		}
		return s.audit(txCtx, userID, model.ActionRunStockScan, "", fmt.Sprintf("created %d alerts", len(created)))
	})
	if err != nil {
		return ScanResult{}, err
	}

	result.Created = len(created)
	for i := range created {
		resp := toAlertResponse(&created[i])
		result.Alerts = append(result.Alerts, resp)
		s.broadcast("alert.created", &created[i])
	}

	return result, nil
}

func (s *alertService) Summary(ctx context.Context) (model.StockAlertSummary, error) {
	return s.alertRepo.Summary(ctx)
}

// buildScanAlert snapshots the ledger entry into a new ACTIVE alert.
// Zero available stock outranks a low-stock condition.
func buildScanAlert(inv *model.Inventory) model.StockAlert {
	available := inv.AvailableQuantity()
	alert := model.StockAlert{
		ProductID:      inv.ProductID,
		WarehouseID:    inv.WarehouseID,
		Status:         model.AlertStatusActive,
		CurrentStock:   available,
		ThresholdLevel: inv.Product.MinimumStockLevel,
	}

	if available <= 0 {
		alert.AlertType = model.AlertTypeOutOfStock
		alert.Message = fmt.Sprintf("Product %s is out of stock in %s", inv.Product.Name, inv.Warehouse.Name)
	} else {
		alert.AlertType = model.AlertTypeLowStock
		alert.Message = fmt.Sprintf("Product %s is running low on stock in %s", inv.Product.Name, inv.Warehouse.Name)
	}

	return alert
}

func validAlertStatus(s string) bool {
	switch s {
	case model.AlertStatusActive, model.AlertStatusAcknowledged, model.AlertStatusResolved:
		return true
	}
	return false
}

func validAlertType(t string) bool {
	switch t {
	case model.AlertTypeLowStock, model.AlertTypeOutOfStock, model.AlertTypeReorderPoint, model.AlertTypeOverStock:
		return true
	}
	return false
}

func (s *alertService) audit(ctx context.Context, userID, action, entityID, detail string) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	entry := &model.AuditLog{
		UserID:   uid,
		Action:   action,
		EntityID: entityID,
		Details:  fmt.Sprintf(`{"detail":%q}`, detail),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *alertService) broadcast(event string, alert *model.StockAlert) {
	s.hub.Publish(event, map[string]interface{}{
		"alert_id":     alert.ID.String(),
		"product_id":   alert.ProductID.String(),
		"warehouse_id": alert.WarehouseID.String(),
		"alert_type":   alert.AlertType,
		"message":      alert.Message,
	})
}

func toAlertResponse(alert *model.StockAlert) StockAlertResponse {
	resp := StockAlertResponse{
		ID:              alert.ID.String(),
		ProductID:       alert.ProductID.String(),
		WarehouseID:     alert.WarehouseID.String(),
		AlertType:       alert.AlertType,
		Status:          alert.Status,
		Message:         alert.Message,
		CurrentStock:    alert.CurrentStock,
		ThresholdLevel:  alert.ThresholdLevel,
		CreatedAt:       alert.CreatedAt.Format(time.RFC3339),
		AcknowledgedBy:  alert.AcknowledgedBy,
		ResolutionNotes: alert.ResolutionNotes,
	}
	if alert.Product.ID != uuid.Nil {
		resp.ProductName = alert.Product.Name
		resp.ProductSKU = alert.Product.SKU
	}
	if alert.Warehouse.ID != uuid.Nil {
		resp.WarehouseName = alert.Warehouse.Name
	}
	if alert.AcknowledgedAt != nil {
		resp.AcknowledgedAt = alert.AcknowledgedAt.Format(time.RFC3339)
	}
	if alert.ResolvedAt != nil {
		resp.ResolvedAt = alert.ResolvedAt.Format(time.RFC3339)
	}
	return resp
}
