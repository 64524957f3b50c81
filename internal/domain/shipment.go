package domain

type ShipmentItem struct {
	SKU              string `firestore:"sku" json:"sku"`
	QuantityShipped  int    `firestore:"quantity_shipped" json:"quantity_shipped"`
	QuantityReceived int    `firestore:"quantity_received" json:"quantity_received"`
}

type ShipmentRecord struct {
	ShipmentID   string         `firestore:"shipment_id" json:"shipment_id"`
	ShipmentName string         `firestore:"shipment_name" json:"shipment_name"`
	Destination  string         `firestore:"destination" json:"destination"`
	Status       string         `firestore:"status" json:"status"`
	AccountID    string         `firestore:"account_id" json:"account_id"`
	Marketplace  string         `firestore:"marketplace" json:"marketplace"`
	Items        []ShipmentItem `firestore:"items" json:"items"`
}

func (s *ShipmentRecord) DocumentID() string {
	return s.ShipmentID
}

func (s *ShipmentRecord) Fields() map[string]any {
	items := make([]any, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, map[string]any{
			"sku":               item.SKU,
			"quantity_shipped":  item.QuantityShipped,
			"quantity_received": item.QuantityReceived,
		})
	}

	return map[string]any{
		"shipment_id":   s.ShipmentID,
		"shipment_name": s.ShipmentName,
		"destination":   s.Destination,
		"status":        s.Status,
		"account_id":    s.AccountID,
		"marketplace":   s.Marketplace,
		"items":         items,
	}
}
