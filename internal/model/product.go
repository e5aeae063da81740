package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable item tracked across warehouses
type Product struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU               string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	Name              string          `gorm:"type:varchar(100);not null" json:"name"`
	Description       string          `gorm:"type:varchar(500)" json:"description"`
	Price             decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	Cost              decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"cost"`
	Category          string          `gorm:"type:varchar(100);index" json:"category"`
	Brand             string          `gorm:"type:varchar(100)" json:"brand"`
	Unit              string          `gorm:"type:varchar(50)" json:"unit"`
	MinimumStockLevel int             `gorm:"type:int;default:0;not null" json:"minimum_stock_level"`
	MaximumStockLevel int             `gorm:"type:int;default:0;not null" json:"maximum_stock_level"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}
