package model

import (
	"time"

	"github.com/google/uuid"
)

// AdjustmentType enum constants
const (
	AdjustmentAdd      = "add"
	AdjustmentSubtract = "subtract"
	AdjustmentReserve  = "reserve"
	AdjustmentRelease  = "release"
)

// Inventory holds the stock ledger entry for one product in one warehouse.
// Invariant: 0 <= ReservedQuantity <= Quantity.
type Inventory struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_warehouse" json:"product_id"`
	Product          Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	WarehouseID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_warehouse" json:"warehouse_id"`
	Warehouse        Warehouse `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE" json:"warehouse,omitempty"`
	Quantity         int       `gorm:"type:int;not null;default:0" json:"quantity"`
	ReservedQuantity int       `gorm:"type:int;not null;default:0" json:"reserved_quantity"`
	LastUpdated      time.Time `gorm:"not null" json:"last_updated"`
	Location         string    `gorm:"type:varchar(100)" json:"location"`
	Notes            string    `gorm:"type:text" json:"notes"`
}

// AvailableQuantity is the portion of on-hand stock not held by reservations.
// Derived, never stored.
func (i *Inventory) AvailableQuantity() int {
	return i.Quantity - i.ReservedQuantity
}
