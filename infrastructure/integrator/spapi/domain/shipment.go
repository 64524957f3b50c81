package spapidomain

type ShipmentsResponse struct {
	Payload struct {
		ShipmentData []InboundShipment `json:"ShipmentData"`
		NextToken    string            `json:"NextToken"`
	} `json:"payload"`
}

type InboundShipment struct {
	ShipmentID                     string `json:"ShipmentId"`
	ShipmentName                   string `json:"ShipmentName"`
	ShipmentStatus                 string `json:"ShipmentStatus"`
	DestinationFulfillmentCenterID string `json:"DestinationFulfillmentCenterId"`
}

type ShipmentItemsResponse struct {
	Payload struct {
		ItemData  []InboundShipmentItem `json:"ItemData"`
		NextToken string                `json:"NextToken"`
	} `json:"payload"`
}

type InboundShipmentItem struct {
	ShipmentID       string `json:"ShipmentId"`
	SellerSKU        string `json:"SellerSKU"`
	QuantityShipped  int    `json:"QuantityShipped"`
	QuantityReceived int    `json:"QuantityReceived"`
}
