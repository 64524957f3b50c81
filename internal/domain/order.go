package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	SKU       string  `firestore:"sku" json:"sku"`
	Title     string  `firestore:"title" json:"title"`
	Quantity  int     `firestore:"quantity" json:"quantity"`
	UnitPrice float64 `firestore:"item_price" json:"item_price"`
}

type OrderRecord struct {
	AmazonOrderID      string      `firestore:"amazon_order_id" json:"amazon_order_id"`
	AccountID          string      `firestore:"account_id" json:"account_id"`
	Marketplace        string      `firestore:"marketplace" json:"marketplace"`
	PurchaseDate       time.Time   `firestore:"purchase_date" json:"purchase_date"`
	OrderStatus        string      `firestore:"order_status" json:"order_status"`
	OrderTotal         float64     `firestore:"order_total" json:"order_total"`
	Currency           string      `firestore:"currency" json:"currency"`
	FulfillmentChannel string      `firestore:"fulfillment_channel" json:"fulfillment_channel"`
	Items              []OrderItem `firestore:"items" json:"items"`
	EstimatedFees      float64     `firestore:"estimated_fees" json:"estimated_fees"`
	EstimatedProceeds  float64     `firestore:"estimated_proceeds" json:"estimated_proceeds"`
}

func (o *OrderRecord) DocumentID() string {
	return o.AmazonOrderID
}

// AddItem acrescenta uma linha ao pedido somando o valor da linha ao total.
func (o *OrderRecord) AddItem(item OrderItem, lineAmount decimal.Decimal) {
	o.Items = append(o.Items, item)
	o.OrderTotal = Money(decimal.NewFromFloat(o.OrderTotal).Add(lineAmount))
	o.EstimatedFees, o.EstimatedProceeds = EstimateFees(o.OrderTotal)
}

// SetTotal define o total informado pela API e recalcula as estimativas.
func (o *OrderRecord) SetTotal(total decimal.Decimal) {
	o.OrderTotal = Money(total)
	o.EstimatedFees, o.EstimatedProceeds = EstimateFees(o.OrderTotal)
}

func (o *OrderRecord) Fields() map[string]any {
	items := make([]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, map[string]any{
			"sku":        item.SKU,
			"title":      item.Title,
			"quantity":   item.Quantity,
			"item_price": item.UnitPrice,
		})
	}

	return map[string]any{
		"amazon_order_id":     o.AmazonOrderID,
		"account_id":          o.AccountID,
		"marketplace":         o.Marketplace,
		"purchase_date":       o.PurchaseDate.UTC(),
		"order_status":        o.OrderStatus,
		"order_total":         o.OrderTotal,
		"currency":            o.Currency,
		"fulfillment_channel": o.FulfillmentChannel,
		"items":               items,
		"estimated_fees":      o.EstimatedFees,
		"estimated_proceeds":  o.EstimatedProceeds,
	}
}

// UnitPriceFromLine divide o valor da linha pela quantidade; quantidade zero devolve o próprio valor.
func UnitPriceFromLine(lineAmount decimal.Decimal, quantity int) float64 {
	if quantity <= 0 {
		return Money(lineAmount)
	}
	return Money(lineAmount.Div(decimal.NewFromInt(int64(quantity))))
}
