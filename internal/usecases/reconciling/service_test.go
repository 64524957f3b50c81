package reconciling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/seller-sync/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 12, 0, 0, 0, time.UTC)
}

func order(id string, purchase time.Time, items ...domain.OrderItem) domain.OrderRecord {
	return domain.OrderRecord{AmazonOrderID: id, AccountID: "acc", Marketplace: "US", PurchaseDate: purchase, Items: items}
}

func TestService_MergeInventoryPrices(t *testing.T) {
	tests := []struct {
		name         string
		existing     []domain.InventoryRecord
		fetched      domain.InventoryRecord
		listing      map[string]float64
		live         map[string]float64
		orders       []domain.OrderRecord
		wantPrice    float64
		wantFees     float64
		wantProceeds float64
		wantLastSold *time.Time
		wantStatus   domain.InventoryStatus
	}{
		{
			name:         "preço do listing como base",
			fetched:      domain.InventoryRecord{SKU: "SKU-1", ASIN: "A1", StockLevel: 3},
			listing:      map[string]float64{"SKU-1": 100},
			wantPrice:    100,
			wantFees:     15,
			wantProceeds: 85,
			wantStatus:   domain.InventoryStatusHealthy,
		},
		{
			name:         "preço ao vivo sobrescreve o listing",
			fetched:      domain.InventoryRecord{SKU: "SKU-1", ASIN: "A1", StockLevel: 3},
			listing:      map[string]float64{"SKU-1": 100},
			live:         map[string]float64{"A1": 19.99},
			wantPrice:    19.99,
			wantFees:     3,
			wantProceeds: 16.99,
			wantStatus:   domain.InventoryStatusHealthy,
		},
		{
			name:         "preço ao vivo zerado é ignorado",
			fetched:      domain.InventoryRecord{SKU: "SKU-1", ASIN: "A1"},
			listing:      map[string]float64{"SKU-1": 100},
			live:         map[string]float64{"A1": 0},
			wantPrice:    100,
			wantFees:     15,
			wantProceeds: 85,
			wantStatus:   domain.InventoryStatusOutOfStock,
		},
		{
			name:    "fallback pela última venda quando não há preço",
			fetched: domain.InventoryRecord{SKU: "SKU-1", ASIN: "A1", StockLevel: 1},
			orders: []domain.OrderRecord{
				order("o-old", day(2), domain.OrderItem{SKU: "SKU-1", Quantity: 1, UnitPrice: 9}),
				order("o-new", day(9), domain.OrderItem{SKU: "SKU-1", Quantity: 2, UnitPrice: 12.5}),
			},
			wantPrice:    12.5,
			wantFees:     1.88,
			wantProceeds: 10.62,
			wantLastSold: ptr(day(9)),
			wantStatus:   domain.InventoryStatusHealthy,
		},
		{
			name:    "fallback não sobrescreve preço existente",
			fetched: domain.InventoryRecord{SKU: "SKU-1", ASIN: "A1"},
			listing: map[string]float64{"SKU-1": 40},
			orders: []domain.OrderRecord{
				order("o-1", day(5), domain.OrderItem{SKU: "SKU-1", Quantity: 1, UnitPrice: 12.5}),
			},
			wantPrice:    40,
			wantFees:     6,
			wantProceeds: 34,
			wantLastSold: ptr(day(5)),
			wantStatus:   domain.InventoryStatusOutOfStock,
		},
		{
			name:         "preço salvo sobrevive quando nenhuma camada se aplica",
			existing:     []domain.InventoryRecord{{SKU: "SKU-1", Price: 30}},
			fetched:      domain.InventoryRecord{SKU: "SKU-1", ASIN: "A1", StockLevel: 2},
			wantPrice:    30,
			wantFees:     4.5,
			wantProceeds: 25.5,
			wantStatus:   domain.InventoryStatusHealthy,
		},
		{
			name:         "sem preço e sem vendas fica zerado",
			fetched:      domain.InventoryRecord{SKU: "SKU-1", ASIN: "A1"},
			wantPrice:    0,
			wantFees:     0,
			wantProceeds: 0,
			wantStatus:   domain.InventoryStatusOutOfStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewService().Merge(Input{
				ExistingInventory: tt.existing,
				FetchedInventory:  []domain.InventoryRecord{tt.fetched},
				ListingPrices:     tt.listing,
				LivePrices:        tt.live,
				ExistingOrders:    tt.orders,
			})

			require.Len(t, result.Inventory, 1)
			rec := result.Inventory[0]
			assert.Equal(t, tt.wantPrice, rec.Price)
			assert.Equal(t, tt.wantFees, rec.EstimatedFees)
			assert.Equal(t, tt.wantProceeds, rec.EstimatedProceeds)
			assert.Equal(t, tt.wantStatus, rec.Status)
			assert.Equal(t, tt.wantLastSold, rec.LastSold)
		})
	}
}

func TestService_MergeLastSoldAcrossOrders(t *testing.T) {
	result := NewService().Merge(Input{
		FetchedInventory: []domain.InventoryRecord{{SKU: "SKU-1"}, {SKU: "SKU-2"}},
		ExistingOrders: []domain.OrderRecord{
			order("o-1", day(3), domain.OrderItem{SKU: "SKU-1", UnitPrice: 5}),
			order("o-2", day(20), domain.OrderItem{SKU: "SKU-2", UnitPrice: 7}),
		},
		FetchedOrders: []domain.OrderRecord{
			order("o-3", day(15), domain.OrderItem{SKU: "SKU-1", UnitPrice: 6}, domain.OrderItem{SKU: "SKU-2", UnitPrice: 8}),
		},
	})

	require.Len(t, result.Inventory, 2)
	assert.Equal(t, ptr(day(15)), result.Inventory[0].LastSold)
	assert.Equal(t, 6.0, result.Inventory[0].Price)
	assert.Equal(t, ptr(day(20)), result.Inventory[1].LastSold)
	assert.Equal(t, 7.0, result.Inventory[1].Price)

	require.Len(t, result.Orders, 1, "apenas pedidos buscados são regravados")
	assert.Equal(t, "o-3", result.Orders[0].AmazonOrderID)
}

func TestService_MergeKeepsExistingOnlyInventory(t *testing.T) {
	result := NewService().Merge(Input{
		ExistingInventory: []domain.InventoryRecord{
			{SKU: "SKU-B", ASIN: "AB", StockLevel: 4, Price: 10},
			{SKU: "SKU-A", ASIN: "AA", StockLevel: 9, Title: "Antigo"},
		},
		FetchedInventory: []domain.InventoryRecord{
			{SKU: "SKU-A", ASIN: "AA", StockLevel: 0, Title: "Novo"},
		},
		LivePrices: map[string]float64{"AB": 11},
	})

	require.Len(t, result.Inventory, 2)
	assert.Equal(t, "SKU-A", result.Inventory[0].SKU)
	assert.Equal(t, "Novo", result.Inventory[0].Title, "dados buscados vencem para identidade e estoque")
	assert.Equal(t, domain.InventoryStatusOutOfStock, result.Inventory[0].Status)

	assert.Equal(t, "SKU-B", result.Inventory[1].SKU)
	assert.Equal(t, 4, result.Inventory[1].StockLevel)
	assert.Equal(t, 11.0, result.Inventory[1].Price)
}

func TestService_MergeOrdersAndShipments(t *testing.T) {
	result := NewService().Merge(Input{
		ExistingOrders: []domain.OrderRecord{
			order("o-1", day(1), domain.OrderItem{SKU: "SKU-1", Quantity: 1}),
		},
		FetchedOrders: []domain.OrderRecord{
			order("o-2", day(4), domain.OrderItem{SKU: "SKU-2"}),
			order("o-1", day(1)),
			{AmazonOrderID: ""},
			order("o-2", day(4), domain.OrderItem{SKU: "SKU-2", Quantity: 3}),
		},
		ExistingShipments: []domain.ShipmentRecord{
			{ShipmentID: "FBA2", Status: "WORKING", Items: []domain.ShipmentItem{{SKU: "SKU-1", QuantityShipped: 5}}},
		},
		FetchedShipments: []domain.ShipmentRecord{
			{ShipmentID: "FBA2", Status: "SHIPPED"},
			{ShipmentID: "FBA1", Status: "CLOSED", Items: []domain.ShipmentItem{{SKU: "SKU-9", QuantityShipped: 1}}},
		},
	})

	require.Len(t, result.Orders, 2)
	assert.Equal(t, "o-1", result.Orders[0].AmazonOrderID)
	assert.Equal(t, []domain.OrderItem{{SKU: "SKU-1", Quantity: 1}}, result.Orders[0].Items, "itens salvos são mantidos")
	assert.Equal(t, "o-2", result.Orders[1].AmazonOrderID)
	assert.Equal(t, 3, result.Orders[1].Items[0].Quantity)

	require.Len(t, result.Shipments, 2)
	assert.Equal(t, "FBA1", result.Shipments[0].ShipmentID)
	assert.Equal(t, "SHIPPED", result.Shipments[1].Status)
	assert.Equal(t, []domain.ShipmentItem{{SKU: "SKU-1", QuantityShipped: 5}}, result.Shipments[1].Items)
}

func ptr(t time.Time) *time.Time {
	return &t
}
