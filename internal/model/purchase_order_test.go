package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	allowed := map[string]map[string]bool{
		POStatusDraft:             {POStatusSubmitted: true, POStatusCancelled: true},
		POStatusSubmitted:         {POStatusApproved: true, POStatusCancelled: true},
		POStatusApproved:          {POStatusOrdered: true, POStatusCancelled: true},
		POStatusOrdered:           {POStatusPartiallyReceived: true, POStatusReceived: true, POStatusCancelled: true},
		POStatusPartiallyReceived: {POStatusReceived: true, POStatusCancelled: true},
		POStatusReceived:          {},
		POStatusCancelled:         {},
	}

	statuses := []string{
		POStatusDraft, POStatusSubmitted, POStatusApproved, POStatusOrdered,
		POStatusPartiallyReceived, POStatusReceived, POStatusCancelled,
	}
	for _, from := range statuses {
		po := &PurchaseOrder{Status: from}
		for _, to := range statuses {
			assert.Equal(t, allowed[from][to], po.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, (&PurchaseOrder{Status: POStatusReceived}).IsTerminal())
	assert.True(t, (&PurchaseOrder{Status: POStatusCancelled}).IsTerminal())
	assert.False(t, (&PurchaseOrder{Status: POStatusDraft}).IsTerminal())
	assert.False(t, (&PurchaseOrder{Status: POStatusPartiallyReceived}).IsTerminal())
}

func TestValidPOStatus(t *testing.T) {
	assert.True(t, ValidPOStatus(POStatusDraft))
	assert.True(t, ValidPOStatus(POStatusPartiallyReceived))
	assert.False(t, ValidPOStatus("SHIPPED"))
	assert.False(t, ValidPOStatus("draft"))
	assert.False(t, ValidPOStatus(""))
}

func TestGrandTotal(t *testing.T) {
	po := &PurchaseOrder{
		TotalAmount:    decimal.NewFromInt(100),
		TaxAmount:      decimal.NewFromFloat(8.25),
		ShippingAmount: decimal.NewFromInt(12),
	}
	assert.True(t, decimal.NewFromFloat(120.25).Equal(po.GrandTotal()))
}

func TestItemDerivedValues(t *testing.T) {
	it := &PurchaseOrderItem{Quantity: 10, ReceivedQuantity: 4, UnitPrice: decimal.NewFromFloat(2.5)}
	assert.Equal(t, 6, it.PendingQuantity())
	assert.True(t, decimal.NewFromInt(25).Equal(it.TotalPrice()))
}
