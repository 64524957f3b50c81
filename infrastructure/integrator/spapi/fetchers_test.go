package spapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/spapiclient"
	"github.com/vfg2006/seller-sync/internal/domain"
)

func TestFetchInventory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fba/inventory/v1/summaries", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ATVPDKIKX0DER", r.URL.Query().Get("granularityId"))
		assert.Equal(t, "Atza|test", r.Header.Get(spapiclient.HeaderAccessToken))

		switch r.URL.Query().Get("nextToken") {
		case "":
			writeJSON(w, `{"payload":{"inventorySummaries":[
				{"asin":"B001","sellerSku":"SKU-1","productName":"Caneca","inventoryDetails":{"fulfillableQuantity":12}},
				{"asin":"B002","sellerSku":"","productName":"Sem SKU"}
			]},"pagination":{"nextToken":"page-2"}}`)
		case "page-2":
			writeJSON(w, `{"payload":{"inventorySummaries":[
				{"asin":"B003","sellerSku":"SKU-3","inventoryDetails":{"fulfillableQuantity":0}}
			]}}`)
		default:
			t.Errorf("token inesperado %q", r.URL.Query().Get("nextToken"))
		}
	})

	connector, _, _ := newTestConnector(t, mux)

	records, err := connector.FetchInventory(context.Background(), usMarketplace)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, domain.InventoryRecord{
		AccountID:   "acc-1",
		Marketplace: "US",
		SKU:         "SKU-1",
		ASIN:        "B001",
		Title:       "Caneca",
		StockLevel:  12,
		Currency:    "USD",
		Status:      domain.InventoryStatusHealthy,
	}, records[0])
	assert.Equal(t, "SKU-3", records[1].SKU)
	assert.Equal(t, unknownProductTitle, records[1].Title)
	assert.Equal(t, domain.InventoryStatusOutOfStock, records[1].Status)
}

func TestFetchInventory_KeepsPagesBeforeFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fba/inventory/v1/summaries", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("nextToken") == "" {
			writeJSON(w, `{"payload":{"inventorySummaries":[{"asin":"B001","sellerSku":"SKU-1"}]},"pagination":{"nextToken":"p2"}}`)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	})

	connector, _, _ := newTestConnector(t, mux)

	records, err := connector.FetchInventory(context.Background(), usMarketplace)
	assert.Error(t, err)
	assert.Len(t, records, 1)
}

func TestFetchOrders(t *testing.T) {
	var itemCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/v0/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("NextToken") == "" {
			assert.Equal(t, "2024-05-02T12:00:00Z", r.URL.Query().Get("CreatedAfter"))
			writeJSON(w, `{"payload":{"Orders":[
				{"AmazonOrderId":"111-0000001-0000001","PurchaseDate":"2024-05-10T08:00:00Z","OrderStatus":"Shipped","FulfillmentChannel":"AFN","OrderTotal":{"CurrencyCode":"USD","Amount":"100.00"}},
				{"AmazonOrderId":"111-0000002-0000002","PurchaseDate":"2024-05-11T08:00:00Z","OrderStatus":"Pending"}
			],"NextToken":"next-1"}}`)
			return
		}
		writeJSON(w, `{"payload":{"Orders":[
			{"AmazonOrderId":"111-0000003-0000003","PurchaseDate":"2024-05-12T08:00:00Z","OrderStatus":"Unshipped"}
		]}}`)
	})
	mux.HandleFunc("GET /orders/v0/orders/{id}/orderItems", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&itemCalls, 1)
		switch r.PathValue("id") {
		case "111-0000001-0000001":
			writeJSON(w, `{"payload":{"OrderItems":[
				{"SellerSKU":"SKU-1","Title":"Caneca","QuantityOrdered":2,"ItemPrice":{"CurrencyCode":"USD","Amount":"60.00"}},
				{"SellerSKU":"SKU-2","Title":"Prato","QuantityOrdered":1,"ItemPrice":{"CurrencyCode":"USD","Amount":"40.00"}}
			]}}`)
		case "111-0000002-0000002":
			writeJSON(w, `{"payload":{"OrderItems":[]}}`)
		default:
			writeJSON(w, `{"payload":{"OrderItems":[{"SellerSKU":"SKU-3","QuantityOrdered":1,"ItemPrice":{"Amount":"9.90"}}]}}`)
		}
	})

	connector, clock, _ := newTestConnector(t, mux)

	orders, err := connector.FetchOrders(context.Background(), usMarketplace, clock.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, orders, 2, "pedidos sem itens são descartados")
	assert.Equal(t, int32(3), atomic.LoadInt32(&itemCalls))

	first := orders[0]
	assert.Equal(t, "111-0000001-0000001", first.AmazonOrderID)
	assert.Equal(t, 100.00, first.OrderTotal)
	assert.Equal(t, 15.00, first.EstimatedFees)
	assert.Equal(t, 85.00, first.EstimatedProceeds)
	assert.Equal(t, "AFN", first.FulfillmentChannel)
	assert.Equal(t, time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC), first.PurchaseDate)
	require.Len(t, first.Items, 2)
	assert.Equal(t, 30.00, first.Items[0].UnitPrice)

	second := orders[1]
	assert.Equal(t, "111-0000003-0000003", second.AmazonOrderID)
	assert.Equal(t, 9.90, second.OrderTotal, "sem OrderTotal o total vem das linhas")
	assert.Equal(t, "USD", second.Currency)
}

func TestFetchOrders_PageWithoutUsableOrdersKeepsPaginating(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/v0/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("NextToken") == "" {
			writeJSON(w, `{"payload":{"Orders":[{"AmazonOrderId":"111-A","PurchaseDate":"2024-05-10T08:00:00Z"}],"NextToken":"t1"}}`)
			return
		}
		writeJSON(w, `{"payload":{"Orders":[{"AmazonOrderId":"111-B","PurchaseDate":"2024-05-11T08:00:00Z"}]}}`)
	})
	mux.HandleFunc("GET /orders/v0/orders/{id}/orderItems", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "111-A" {
			writeJSON(w, `{"payload":{"OrderItems":[]}}`)
			return
		}
		writeJSON(w, `{"payload":{"OrderItems":[{"SellerSKU":"SKU-1","QuantityOrdered":1,"ItemPrice":{"Amount":"10.00"}}]}}`)
	})

	connector, clock, _ := newTestConnector(t, mux)

	orders, err := connector.FetchOrders(context.Background(), usMarketplace, clock.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "111-B", orders[0].AmazonOrderID)
}

func TestFetchOrders_CancelledContextKeepsResolvedOrders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/v0/orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"payload":{"Orders":[
			{"AmazonOrderId":"111-A","PurchaseDate":"2024-05-10T08:00:00Z"},
			{"AmazonOrderId":"111-B","PurchaseDate":"2024-05-11T08:00:00Z"}
		],"NextToken":"t1"}}`)
	})
	mux.HandleFunc("GET /orders/v0/orders/{id}/orderItems", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "111-B" {
			cancel()
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, `{"payload":{"OrderItems":[{"SellerSKU":"SKU-1","QuantityOrdered":1,"ItemPrice":{"Amount":"10.00"}}]}}`)
	})

	connector, clock, _ := newTestConnector(t, mux)

	orders, err := connector.FetchOrders(ctx, usMarketplace, clock.Now().Add(-24*time.Hour))
	require.Error(t, err)
	require.Len(t, orders, 1, "pedidos já resolvidos na página não se perdem")
	assert.Equal(t, "111-A", orders[0].AmazonOrderID)
}

func TestFetchInventory_PageWithoutSKUsKeepsPaginating(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fba/inventory/v1/summaries", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("nextToken") == "" {
			writeJSON(w, `{"payload":{"inventorySummaries":[{"asin":"B001","sellerSku":""}]},"pagination":{"nextToken":"p2"}}`)
			return
		}
		writeJSON(w, `{"payload":{"inventorySummaries":[{"asin":"B002","sellerSku":"SKU-2"}]}}`)
	})

	connector, _, _ := newTestConnector(t, mux)

	records, err := connector.FetchInventory(context.Background(), usMarketplace)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "SKU-2", records[0].SKU)
}

func TestFetchShipments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fba/inbound/v0/shipments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DATE_RANGE", r.URL.Query().Get("QueryType"))
		writeJSON(w, `{"payload":{"ShipmentData":[
			{"ShipmentId":"FBA15ABC","ShipmentName":"Remessa 1","ShipmentStatus":"RECEIVING","DestinationFulfillmentCenterId":"PHX7"},
			{"ShipmentId":"FBA15DEF","ShipmentName":"Remessa 2","ShipmentStatus":"WORKING","DestinationFulfillmentCenterId":"ONT8"}
		]}}`)
	})
	mux.HandleFunc("GET /fba/inbound/v0/shipments/{id}/items", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "FBA15DEF" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, `{"payload":{"ItemData":[{"SellerSKU":"SKU-1","QuantityShipped":10,"QuantityReceived":4}]}}`)
	})

	connector, clock, _ := newTestConnector(t, mux)

	shipments, err := connector.FetchShipments(context.Background(), usMarketplace, clock.Now().Add(-90*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, shipments, 2)

	assert.Equal(t, "PHX7", shipments[0].Destination)
	assert.Equal(t, []domain.ShipmentItem{{SKU: "SKU-1", QuantityShipped: 10, QuantityReceived: 4}}, shipments[0].Items)
	assert.Empty(t, shipments[1].Items)
}

func TestFetchLivePrices(t *testing.T) {
	var (
		calls      int32
		mu         sync.Mutex
		batchSizes []int
	)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/pricing/v0/price", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		asins := strings.Split(r.URL.Query().Get("Asins"), ",")
		mu.Lock()
		batchSizes = append(batchSizes, len(asins))
		mu.Unlock()

		results := make([]string, 0, len(asins))
		for _, asin := range asins {
			switch asin {
			case "A0":
				results = append(results, `{"status":"Success","ASIN":"A0","Product":{"Offers":[{"BuyingPrice":{"ListingPrice":{"Amount":"19.99"}},"RegularPrice":{"Amount":"24.99"}}]}}`)
			case "A1":
				results = append(results, `{"status":"Success","ASIN":"A1","Product":{"Offers":[{"BuyingPrice":{"ListingPrice":{"Amount":"0"}},"RegularPrice":{"Amount":"24.99"}}]}}`)
			case "A2":
				results = append(results, `{"status":"Success","ASIN":"A2","Product":{"Offers":[{"BuyingPrice":{}}]}}`)
			default:
				results = append(results, fmt.Sprintf(`{"status":"ClientError","ASIN":%q}`, asin))
			}
		}
		writeJSON(w, `{"payload":[`+strings.Join(results, ",")+`]}`)
	})

	connector, _, _ := newTestConnector(t, mux)

	asins := make([]string, 0, 45)
	for i := 0; i < 45; i++ {
		asins = append(asins, fmt.Sprintf("A%d", i))
	}
	asins = append(asins, "A0", "")

	prices, err := connector.FetchLivePrices(context.Background(), usMarketplace, asins)
	require.NoError(t, err)

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []int{20, 20, 5}, batchSizes)
	assert.Equal(t, map[string]float64{"A0": 19.99, "A1": 24.99}, prices)
}

func TestChunkStrings(t *testing.T) {
	assert.Nil(t, chunkStrings(nil, 20))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunkStrings([]string{"a", "b", "c"}, 2))
}
