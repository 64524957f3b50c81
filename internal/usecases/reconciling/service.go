package reconciling

import (
	"sort"
	"time"

	"github.com/vfg2006/seller-sync/internal/domain"
)

// Input reúne o que já está salvo e o que acabou de ser buscado para uma conta/marketplace.
type Input struct {
	ExistingInventory []domain.InventoryRecord
	FetchedInventory  []domain.InventoryRecord

	// ListingPrices vem do relatório de listings, por seller sku.
	ListingPrices map[string]float64
	// LivePrices vem da API de preços, por ASIN.
	LivePrices map[string]float64

	ExistingOrders []domain.OrderRecord
	FetchedOrders  []domain.OrderRecord

	ExistingShipments []domain.ShipmentRecord
	FetchedShipments  []domain.ShipmentRecord
}

// Result contém apenas os registros que devem ser gravados.
type Result struct {
	Inventory []domain.InventoryRecord
	Orders    []domain.OrderRecord
	Shipments []domain.ShipmentRecord
}

type Merger interface {
	Merge(in Input) Result
}

type Service struct{}

func NewService() Merger {
	return &Service{}
}

func (s *Service) Merge(in Input) Result {
	orders := mergeOrders(in.ExistingOrders, in.FetchedOrders)

	allOrders := make([]domain.OrderRecord, 0, len(in.ExistingOrders)+len(orders))
	allOrders = append(allOrders, orders...)
	fetchedIDs := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		fetchedIDs[o.AmazonOrderID] = struct{}{}
	}
	for _, o := range in.ExistingOrders {
		if _, ok := fetchedIDs[o.AmazonOrderID]; !ok {
			allOrders = append(allOrders, o)
		}
	}

	return Result{
		Inventory: mergeInventory(in, salesBySKU(allOrders)),
		Orders:    orders,
		Shipments: mergeShipments(in.ExistingShipments, in.FetchedShipments),
	}
}

// skuSales guarda a última venda de cada sku.
type skuSales struct {
	lastSold      time.Time
	lastUnitPrice float64
}

func salesBySKU(orders []domain.OrderRecord) map[string]skuSales {
	sales := make(map[string]skuSales)
	for _, order := range orders {
		for _, item := range order.Items {
			if item.SKU == "" {
				continue
			}

			current, ok := sales[item.SKU]
			if ok && !order.PurchaseDate.After(current.lastSold) {
				continue
			}

			entry := skuSales{lastSold: order.PurchaseDate, lastUnitPrice: current.lastUnitPrice}
			if item.UnitPrice > 0 {
				entry.lastUnitPrice = item.UnitPrice
			}
			sales[item.SKU] = entry
		}
	}
	return sales
}

func mergeInventory(in Input, sales map[string]skuSales) []domain.InventoryRecord {
	existing := make(map[string]domain.InventoryRecord, len(in.ExistingInventory))
	for _, rec := range in.ExistingInventory {
		existing[rec.SKU] = rec
	}

	merged := make(map[string]domain.InventoryRecord, len(in.FetchedInventory)+len(existing))
	for _, rec := range in.FetchedInventory {
		if prev, ok := existing[rec.SKU]; ok {
			if rec.Price == 0 {
				rec.Price = prev.Price
			}
			if rec.LastSold == nil {
				rec.LastSold = prev.LastSold
			}
		}
		merged[rec.SKU] = rec
	}
	for sku, rec := range existing {
		if _, ok := merged[sku]; !ok {
			merged[sku] = rec
		}
	}

	out := make([]domain.InventoryRecord, 0, len(merged))
	for _, rec := range merged {
		out = append(out, enrich(rec, in.ListingPrices, in.LivePrices, sales))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// enrich aplica as camadas de preço em ordem (listing, preço ao vivo, última venda) e recalcula taxas.
func enrich(rec domain.InventoryRecord, listing, live map[string]float64, sales map[string]skuSales) domain.InventoryRecord {
	if price := listing[rec.SKU]; price > 0 {
		rec.Price = price
	}
	if price := live[rec.ASIN]; rec.ASIN != "" && price > 0 {
		rec.Price = price
	}

	sale, sold := sales[rec.SKU]
	if rec.Price <= 0 && sold && sale.lastUnitPrice > 0 {
		rec.Price = sale.lastUnitPrice
	}
	if sold {
		lastSold := sale.lastSold.UTC()
		if rec.LastSold == nil || lastSold.After(*rec.LastSold) {
			rec.LastSold = &lastSold
		}
	}

	rec.Status = domain.StatusForStock(rec.StockLevel)
	rec.EstimatedFees, rec.EstimatedProceeds = domain.EstimateFees(rec.Price)
	return rec
}

// mergeOrders deduplica os pedidos buscados; a última ocorrência vence. Itens salvos são mantidos
// quando o pedido buscado veio sem itens.
func mergeOrders(existing, fetched []domain.OrderRecord) []domain.OrderRecord {
	saved := make(map[string]domain.OrderRecord, len(existing))
	for _, o := range existing {
		saved[o.AmazonOrderID] = o
	}

	byID := make(map[string]domain.OrderRecord, len(fetched))
	for _, o := range fetched {
		if o.AmazonOrderID == "" {
			continue
		}
		if len(o.Items) == 0 {
			if prev, ok := saved[o.AmazonOrderID]; ok {
				o.Items = prev.Items
			}
		}
		byID[o.AmazonOrderID] = o
	}

	out := make([]domain.OrderRecord, 0, len(byID))
	for _, o := range byID {
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.Before(out[j].PurchaseDate)
		}
		return out[i].AmazonOrderID < out[j].AmazonOrderID
	})
	return out
}

func mergeShipments(existing, fetched []domain.ShipmentRecord) []domain.ShipmentRecord {
	saved := make(map[string]domain.ShipmentRecord, len(existing))
	for _, s := range existing {
		saved[s.ShipmentID] = s
	}

	byID := make(map[string]domain.ShipmentRecord, len(fetched))
	for _, s := range fetched {
		if s.ShipmentID == "" {
			continue
		}
		if len(s.Items) == 0 {
			if prev, ok := saved[s.ShipmentID]; ok {
				s.Items = prev.Items
			}
		}
		byID[s.ShipmentID] = s
	}

	out := make([]domain.ShipmentRecord, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ShipmentID < out[j].ShipmentID })
	return out
}
