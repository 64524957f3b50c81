package spapidomain

// Money é o formato monetário da SP-API; o valor vem como string decimal.
type Money struct {
	CurrencyCode string `json:"CurrencyCode"`
	Amount       string `json:"Amount"`
}

type OrdersResponse struct {
	Payload struct {
		Orders    []Order `json:"Orders"`
		NextToken string  `json:"NextToken"`
	} `json:"payload"`
}

type Order struct {
	AmazonOrderID      string `json:"AmazonOrderId"`
	PurchaseDate       string `json:"PurchaseDate"`
	OrderStatus        string `json:"OrderStatus"`
	FulfillmentChannel string `json:"FulfillmentChannel"`
	OrderTotal         *Money `json:"OrderTotal,omitempty"`
	MarketplaceID      string `json:"MarketplaceId"`
}

type OrderItemsResponse struct {
	Payload struct {
		AmazonOrderID string      `json:"AmazonOrderId"`
		OrderItems    []OrderItem `json:"OrderItems"`
		NextToken     string      `json:"NextToken"`
	} `json:"payload"`
}

type OrderItem struct {
	ASIN            string `json:"ASIN"`
	SellerSKU       string `json:"SellerSKU"`
	Title           string `json:"Title"`
	QuantityOrdered int    `json:"QuantityOrdered"`
	ItemPrice       *Money `json:"ItemPrice,omitempty"`
}
