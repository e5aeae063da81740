package model

import (
	"time"

	"github.com/google/uuid"
)

// AlertType enum constants
const (
	AlertTypeLowStock     = "LOW_STOCK"
	AlertTypeOutOfStock   = "OUT_OF_STOCK"
	AlertTypeReorderPoint = "REORDER_POINT"
	AlertTypeOverStock    = "OVER_STOCK"
)

// AlertStatus enum constants
const (
	AlertStatusActive       = "ACTIVE"
	AlertStatusAcknowledged = "ACKNOWLEDGED"
	AlertStatusResolved     = "RESOLVED"
)

// StockAlert records a threshold breach for a product in a warehouse.
// CurrentStock and ThresholdLevel are snapshots taken at creation time.
type StockAlert struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_stock_alerts_pair" json:"product_id"`
	Product         Product    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	WarehouseID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_stock_alerts_pair" json:"warehouse_id"`
	Warehouse       Warehouse  `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE" json:"warehouse,omitempty"`
	AlertType       string     `gorm:"type:varchar(20);not null;index" json:"alert_type"`
	Status          string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	Message         string     `gorm:"type:varchar(200);not null" json:"message"`
	CurrentStock    int        `gorm:"type:int;not null" json:"current_stock"`
	ThresholdLevel  int        `gorm:"type:int;not null" json:"threshold_level"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	AcknowledgedAt  *time.Time `json:"acknowledged_at,omitempty"`
	AcknowledgedBy  string     `gorm:"type:varchar(100)" json:"acknowledged_by,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	ResolutionNotes string     `gorm:"type:varchar(500)" json:"resolution_notes,omitempty"`
}
