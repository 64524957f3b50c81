package spapidomain

// InventorySummariesResponse é a resposta de GET /fba/inventory/v1/summaries.
type InventorySummariesResponse struct {
	Payload struct {
		InventorySummaries []InventorySummary `json:"inventorySummaries"`
	} `json:"payload"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	NextToken string `json:"nextToken"`
}

type InventorySummary struct {
	ASIN             string            `json:"asin"`
	FnSKU            string            `json:"fnSku"`
	SellerSKU        string            `json:"sellerSku"`
	ProductName      string            `json:"productName"`
	TotalQuantity    int               `json:"totalQuantity"`
	InventoryDetails *InventoryDetails `json:"inventoryDetails,omitempty"`
}

type InventoryDetails struct {
	FulfillableQuantity int `json:"fulfillableQuantity"`
}
