package repository

import (
	"context"

	"inventory-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockAlertRepository interface {
	Create(ctx context.Context, alert *model.StockAlert) error
	Save(ctx context.Context, alert *model.StockAlert) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockAlert, error)
	// ActiveExistsForPair reports whether an ACTIVE alert already covers the
	// product+warehouse pair. Used by the scan for dedup; must be called
	// inside the scan transaction.
	ActiveExistsForPair(ctx context.Context, productID, warehouseID uuid.UUID) (bool, error)
	List(ctx context.Context, page, limit int) ([]model.StockAlert, int64, error)
	ListByStatus(ctx context.Context, status string, page, limit int) ([]model.StockAlert, int64, error)
	ListByType(ctx context.Context, alertType string, page, limit int) ([]model.StockAlert, int64, error)
	Summary(ctx context.Context) (model.StockAlertSummary, error)
}

type stockAlertRepository struct {
	db *gorm.DB
}

func NewStockAlertRepository(db *gorm.DB) StockAlertRepository {
	return &stockAlertRepository{db: db}
}

func (r *stockAlertRepository) Create(ctx context.Context, alert *model.StockAlert) error {
	return GetDB(ctx, r.db).Create(alert).Error
}

func (r *stockAlertRepository) Save(ctx context.Context, alert *model.StockAlert) error {
	return GetDB(ctx, r.db).Save(alert).Error
}

func (r *stockAlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.StockAlert{}).Error
}

func (r *stockAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StockAlert, error) {
	var alert model.StockAlert
	if err := GetDB(ctx, r.db).Preload("Product").Preload("Warehouse").
		First(&alert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *stockAlertRepository) ActiveExistsForPair(ctx context.Context, productID, warehouseID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.StockAlert{}).
		Where("product_id = ? AND warehouse_id = ? AND status = ?",
			productID, warehouseID, model.AlertStatusActive).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *stockAlertRepository) List(ctx context.Context, page, limit int) ([]model.StockAlert, int64, error) {
	return r.list(ctx, page, limit, "", "")
}

func (r *stockAlertRepository) ListByStatus(ctx context.Context, status string, page, limit int) ([]model.StockAlert, int64, error) {
	return r.list(ctx, page, limit, "status = ?", status)
}

func (r *stockAlertRepository) ListByType(ctx context.Context, alertType string, page, limit int) ([]model.StockAlert, int64, error) {
	return r.list(ctx, page, limit, "alert_type = ?", alertType)
}

func (r *stockAlertRepository) list(ctx context.Context, page, limit int, cond string, arg string) ([]model.StockAlert, int64, error) {
	var alerts []model.StockAlert
	var total int64

	db := GetDB(ctx, r.db).Model(&model.StockAlert{})
	if cond != "" {
		db = db.Where(cond, arg)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Product").Preload("Warehouse").
		Order("created_at desc").Offset(offset).Limit(limit).
		Find(&alerts).Error; err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}

func (r *stockAlertRepository) Summary(ctx context.Context) (model.StockAlertSummary, error) {
	var summary model.StockAlertSummary
	db := GetDB(ctx, r.db)

	counts := []struct {
		dest *int64
		cond string
		arg  string
	}{
		{&summary.TotalAlerts, "", ""},
		{&summary.ActiveAlerts, "status = ?", model.AlertStatusActive},
		{&summary.AcknowledgedAlerts, "status = ?", model.AlertStatusAcknowledged},
		{&summary.ResolvedAlerts, "status = ?", model.AlertStatusResolved},
		{&summary.LowStockAlerts, "alert_type = ?", model.AlertTypeLowStock},
		{&summary.OutOfStockAlerts, "alert_type = ?", model.AlertTypeOutOfStock},
	}
	for _, c := range counts {
		q := db.Model(&model.StockAlert{})
		if c.cond != "" {
			q = q.Where(c.cond, c.arg)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return summary, err
		}
	}

	return summary, nil
}
