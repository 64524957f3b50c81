package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderRecord_AddItem(t *testing.T) {
	order := &OrderRecord{AmazonOrderID: "114-1234567-1234567"}

	order.AddItem(OrderItem{SKU: "SKU-A", Quantity: 1, UnitPrice: 10}, decimal.RequireFromString("10.00"))
	order.AddItem(OrderItem{SKU: "SKU-B", Quantity: 1, UnitPrice: 5}, decimal.RequireFromString("5.00"))

	assert.Len(t, order.Items, 2)
	assert.Equal(t, 15.00, order.OrderTotal)
	assert.Equal(t, 2.25, order.EstimatedFees)
	assert.Equal(t, 12.75, order.EstimatedProceeds)
}

func TestUnitPriceFromLine(t *testing.T) {
	assert.Equal(t, 12.5, UnitPriceFromLine(decimal.RequireFromString("25.00"), 2))
	assert.Equal(t, 7.0, UnitPriceFromLine(decimal.RequireFromString("7"), 0))
	assert.Equal(t, 3.33, UnitPriceFromLine(decimal.RequireFromString("10"), 3))
}

func TestInventoryRecord_Fields(t *testing.T) {
	rec := &InventoryRecord{AccountID: "acc", Marketplace: "US", SKU: "SKU-1", StockLevel: 0, Status: StatusForStock(0)}

	assert.Equal(t, "acc_US_SKU-1", rec.DocumentID())
	fields := rec.Fields()
	assert.Equal(t, "OutOfStock", fields["status"])
	assert.NotContains(t, fields, "last_sold")
	assert.NotContains(t, fields, "cogs")
}

func TestLookupMarketplace(t *testing.T) {
	mp, ok := LookupMarketplace(" uk ")
	assert.True(t, ok)
	assert.Equal(t, "A1F83G8C2ARO7P", mp.ID)
	assert.Equal(t, "GBP", mp.Currency)

	_, ok = LookupMarketplace("BR")
	assert.False(t, ok)
}

func TestParseReportStatus(t *testing.T) {
	assert.Equal(t, ReportStatusRequested, ParseReportStatus("IN_QUEUE"))
	assert.Equal(t, ReportStatusDone, ParseReportStatus("DONE"))
	assert.Equal(t, ReportStatusFatal, ParseReportStatus("???"))
	assert.True(t, ReportStatusCancelled.Terminal())
	assert.False(t, ReportStatusInProgress.Terminal())
}
