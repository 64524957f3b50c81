package spapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/seller-sync/internal/domain"
)

func TestParseOrderReport(t *testing.T) {
	t.Run("agrupa linhas do mesmo pedido", func(t *testing.T) {
		orders, errs := ParseOrderReport(orderReportTSV, "acc-1", usMarketplace)

		assert.Empty(t, errs)
		require.Len(t, orders, 1)

		order := orders[0]
		assert.Equal(t, "114-1234567-1234567", order.AmazonOrderID)
		assert.Equal(t, 15.00, order.OrderTotal)
		assert.Equal(t, 2.25, order.EstimatedFees)
		assert.Equal(t, 12.75, order.EstimatedProceeds)
		assert.Equal(t, "Amazon", order.FulfillmentChannel)
		assert.Equal(t, time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC), order.PurchaseDate)
		assert.Equal(t, []domain.OrderItem{
			{SKU: "SKU-1", Title: "Caneca", Quantity: 1, UnitPrice: 10},
			{SKU: "SKU-2", Title: "Prato", Quantity: 1, UnitPrice: 5},
		}, order.Items)
	})

	t.Run("colunas fora de ordem e opcionais ausentes", func(t *testing.T) {
		content := "sku\titem-price\tamazon-order-id\tpurchase-date\n" +
			"SKU-9\t7.5\t200-1\t2024-01-02T03:04:05Z\n"

		orders, errs := ParseOrderReport(content, "acc-1", usMarketplace)

		assert.Empty(t, errs)
		require.Len(t, orders, 1)
		assert.Equal(t, "USD", orders[0].Currency)
		assert.Equal(t, 0, orders[0].Items[0].Quantity)
		assert.Equal(t, 7.5, orders[0].Items[0].UnitPrice)
		assert.Equal(t, "", orders[0].OrderStatus)
	})

	t.Run("linhas inválidas são puladas", func(t *testing.T) {
		content := "amazon-order-id\tpurchase-date\tsku\tquantity\titem-price\n" +
			"300-1\t2024-01-02T03:04:05Z\tSKU-1\t1\t10.00\n" +
			"300-2\t2024-01-02T03:04:05Z\tSKU-2\tdois\t10.00\n" +
			"300-3\t2024-01-02T03:04:05Z\tSKU-3\t1\tabc\n" +
			"\t2024-01-02T03:04:05Z\tSKU-4\t1\t1.00\n" +
			"300-5\tontem\tSKU-5\t1\t1.00\n" +
			"300-6\t2024-01-02T03:04:05Z\t\t1\t1.00\n" +
			"\n"

		orders, errs := ParseOrderReport(content, "acc-1", usMarketplace)

		require.Len(t, orders, 1)
		assert.Equal(t, "300-1", orders[0].AmazonOrderID)
		require.Len(t, errs, 5)

		var parseErr *ParseError
		require.ErrorAs(t, errs[0], &parseErr)
		assert.Equal(t, colQuantity, parseErr.Column)
		assert.Equal(t, 3, parseErr.Line)
	})

	t.Run("sem coluna de pedido", func(t *testing.T) {
		orders, errs := ParseOrderReport("sku\tprice\nA\t1\n", "acc-1", usMarketplace)
		assert.Empty(t, orders)
		assert.Len(t, errs, 1)
	})

	t.Run("conteúdo vazio", func(t *testing.T) {
		orders, errs := ParseOrderReport("", "acc-1", usMarketplace)
		assert.Empty(t, orders)
		assert.Empty(t, errs)
	})
}

func TestParseListingPrices(t *testing.T) {
	content := "item-name\tseller-sku\tprice\tquantity\tasin1\n" +
		"Caneca\tSKU-1\t19.99\t5\tB001\n" +
		"Prato\tSKU-2\t\t0\tB002\n" +
		"Copo\tSKU-3\t0.00\t1\tB003\n" +
		"Jarra\tSKU-4\t12,50\t1\tB004\n" +
		"Sem sku\t\t3.00\t1\tB005\n"

	prices, errs := ParseListingPrices(content)

	assert.Equal(t, map[string]float64{"SKU-1": 19.99, "SKU-4": 12.5}, prices)
	assert.Len(t, errs, 1)
}
