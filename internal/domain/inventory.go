package domain

import "time"

type InventoryStatus string

const (
	InventoryStatusHealthy    InventoryStatus = "Healthy"
	InventoryStatusOutOfStock InventoryStatus = "OutOfStock"
)

func StatusForStock(stock int) InventoryStatus {
	if stock > 0 {
		return InventoryStatusHealthy
	}
	return InventoryStatusOutOfStock
}

type InventoryRecord struct {
	AccountID         string          `firestore:"account_id" json:"account_id"`
	Marketplace       string          `firestore:"marketplace" json:"marketplace"`
	SKU               string          `firestore:"sku" json:"sku"`
	ASIN              string          `firestore:"asin" json:"asin"`
	Title             string          `firestore:"title" json:"title"`
	StockLevel        int             `firestore:"stock_level" json:"stock_level"`
	Price             float64         `firestore:"price" json:"price"`
	Currency          string          `firestore:"currency" json:"currency"`
	Status            InventoryStatus `firestore:"status" json:"status"`
	EstimatedFees     float64         `firestore:"estimated_fees" json:"estimated_fees"`
	EstimatedProceeds float64         `firestore:"estimated_proceeds" json:"estimated_proceeds"`
	LastSold          *time.Time      `firestore:"last_sold" json:"last_sold,omitempty"`
}

func InventoryDocumentID(accountID, marketplace, sku string) string {
	return accountID + "_" + marketplace + "_" + sku
}

func (r *InventoryRecord) DocumentID() string {
	return InventoryDocumentID(r.AccountID, r.Marketplace, r.SKU)
}

// Fields devolve os campos gravados com merge. Campos mantidos fora do sync (ex.: COGS) não aparecem aqui.
func (r *InventoryRecord) Fields() map[string]any {
	fields := map[string]any{
		"account_id":         r.AccountID,
		"marketplace":        r.Marketplace,
		"sku":                r.SKU,
		"asin":               r.ASIN,
		"title":              r.Title,
		"stock_level":        r.StockLevel,
		"price":              r.Price,
		"currency":           r.Currency,
		"status":             string(r.Status),
		"estimated_fees":     r.EstimatedFees,
		"estimated_proceeds": r.EstimatedProceeds,
	}
	if r.LastSold != nil {
		fields["last_sold"] = r.LastSold.UTC()
	}
	return fields
}
