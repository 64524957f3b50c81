package spapidomain

// PricingResponse é a resposta de GET /products/pricing/v0/price com ItemType=Asin.
type PricingResponse struct {
	Payload []PriceResult `json:"payload"`
}

type PriceResult struct {
	Status  string `json:"status"`
	ASIN    string `json:"ASIN"`
	Product struct {
		Offers []Offer `json:"Offers"`
	} `json:"Product"`
}

type Offer struct {
	BuyingPrice struct {
		ListingPrice *Money `json:"ListingPrice,omitempty"`
	} `json:"BuyingPrice"`
	RegularPrice *Money `json:"RegularPrice,omitempty"`
}
