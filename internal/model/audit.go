package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateInventory = "CREATE_INVENTORY"
	ActionAdjustInventory = "ADJUST_INVENTORY"
	ActionUpdateInventory = "UPDATE_INVENTORY"
	ActionDeleteInventory = "DELETE_INVENTORY"

	ActionCreatePurchaseOrder   = "CREATE_PURCHASE_ORDER"
	ActionUpdatePurchaseOrder   = "UPDATE_PURCHASE_ORDER"
	ActionChangeOrderStatus     = "CHANGE_ORDER_STATUS"
	ActionCreateStockAlert      = "CREATE_STOCK_ALERT"
	ActionUpdateStockAlert      = "UPDATE_STOCK_ALERT"
	ActionAcknowledgeStockAlert = "ACKNOWLEDGE_STOCK_ALERT"
	ActionResolveStockAlert     = "RESOLVE_STOCK_ALERT"
	ActionRunStockScan          = "RUN_STOCK_SCAN"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated scan
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
