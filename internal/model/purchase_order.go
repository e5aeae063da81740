package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus enum constants
const (
	POStatusDraft             = "DRAFT"
	POStatusSubmitted         = "SUBMITTED"
	POStatusApproved          = "APPROVED"
	POStatusOrdered           = "ORDERED"
	POStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	POStatusReceived          = "RECEIVED"
	POStatusCancelled         = "CANCELLED"
)

// poTransitions maps each status to the set of statuses it may move to.
// Progression is forward-only; CANCELLED is reachable from any non-terminal
// state; RECEIVED and CANCELLED are terminal.
var poTransitions = map[string][]string{
	POStatusDraft:             {POStatusSubmitted, POStatusCancelled},
	POStatusSubmitted:         {POStatusApproved, POStatusCancelled},
	POStatusApproved:          {POStatusOrdered, POStatusCancelled},
	POStatusOrdered:           {POStatusPartiallyReceived, POStatusReceived, POStatusCancelled},
	POStatusPartiallyReceived: {POStatusReceived, POStatusCancelled},
	POStatusReceived:          {},
	POStatusCancelled:         {},
}

// ValidPOStatus reports whether s is a known purchase order status value.
func ValidPOStatus(s string) bool {
	_, ok := poTransitions[s]
	return ok
}

// PurchaseOrder tracks a replenishment order placed with a supplier.
type PurchaseOrder struct {
	ID                   uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber          string              `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	SupplierID           uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier             Supplier            `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT" json:"supplier,omitempty"`
	WarehouseID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Warehouse            Warehouse           `gorm:"foreignKey:WarehouseID;constraint:OnDelete:RESTRICT" json:"warehouse,omitempty"`
	OrderDate            time.Time           `gorm:"not null" json:"order_date"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time          `json:"actual_delivery_date,omitempty"`
	Status               string              `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	Notes                string              `gorm:"type:varchar(500)" json:"notes"`
	TotalAmount          decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0" json:"total_amount"`
	TaxAmount            decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0" json:"tax_amount"`
	ShippingAmount       decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0" json:"shipping_amount"`
	Items                []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// GrandTotal is the payable amount: line totals plus tax and shipping.
// Derived, never stored.
func (po *PurchaseOrder) GrandTotal() decimal.Decimal {
	return po.TotalAmount.Add(po.TaxAmount).Add(po.ShippingAmount)
}

// CanTransitionTo reports whether the order may move to newStatus from its
// current status.
func (po *PurchaseOrder) CanTransitionTo(newStatus string) bool {
	for _, s := range poTransitions[po.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the order has reached a final status.
func (po *PurchaseOrder) IsTerminal() bool {
	return len(poTransitions[po.Status]) == 0
}

// PurchaseOrderItem is a single product line within a purchase order.
// Invariant: 0 <= ReceivedQuantity <= Quantity.
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product          Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Quantity         int             `gorm:"type:int;not null" json:"quantity"`
	ReceivedQuantity int             `gorm:"type:int;not null;default:0" json:"received_quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	Notes            string          `gorm:"type:varchar(200)" json:"notes"`
}

// PendingQuantity is the quantity ordered but not yet received. Derived.
func (it *PurchaseOrderItem) PendingQuantity() int {
	return it.Quantity - it.ReceivedQuantity
}

// TotalPrice is the line total: ordered quantity times unit price. Derived.
func (it *PurchaseOrderItem) TotalPrice() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
