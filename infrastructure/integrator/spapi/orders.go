package spapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	spapidomain "github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/domain"
	"github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/spapiclient"
	"github.com/vfg2006/seller-sync/internal/domain"
)

const ordersPath = "/orders/v0/orders"

var syncedOrderStatuses = []string{"Shipped", "Unshipped", "PartiallyShipped", "Pending"}

// FetchOrders busca os pedidos criados depois de createdAfter e, para cada um, os itens.
// Pedidos sem itens são descartados.
func (c *AccountConnector) FetchOrders(ctx context.Context, mp domain.Marketplace, createdAfter time.Time) ([]domain.OrderRecord, error) {
	return paginate(ctx, func(ctx context.Context, token string) (page[domain.OrderRecord], error) {
		query := url.Values{}
		query.Set("MarketplaceIds", mp.ID)
		if token != "" {
			query.Set("NextToken", token)
		} else {
			query.Set("CreatedAfter", createdAfter.UTC().Format(time.RFC3339))
			query.Set("OrderStatuses", strings.Join(syncedOrderStatuses, ","))
		}

		resp, err := c.client.Do(ctx, spapiclient.Request{
			Method: http.MethodGet,
			Path:   ordersPath,
			Query:  query,
			Class:  spapiclient.ClassStandard,
		})
		if err != nil {
			return page[domain.OrderRecord]{}, err
		}

		var body spapidomain.OrdersResponse
		if err := resp.Decode(&body); err != nil {
			return page[domain.OrderRecord]{}, err
		}

		records := make([]domain.OrderRecord, 0, len(body.Payload.Orders))
		for _, order := range body.Payload.Orders {
			items, lineTotal, err := c.FetchOrderItems(ctx, order.AmazonOrderID)
			if err != nil {
				if ctx.Err() != nil || spapiclient.IsAuthError(err) {
					return page[domain.OrderRecord]{items: records}, err
				}
				logrus.WithFields(logrus.Fields{
					"account_id": c.accountID,
					"order_id":   order.AmazonOrderID,
					"error":      err.Error(),
				}).Warn("spapi: failed to fetch order items, order dropped")
				continue
			}
			if len(items) == 0 {
				continue
			}

			records = append(records, c.orderRecord(mp, order, items, lineTotal))
		}

		return page[domain.OrderRecord]{items: records, next: body.Payload.NextToken, raw: len(body.Payload.Orders)}, nil
	})
}

// FetchOrderItems devolve os itens do pedido e a soma dos valores das linhas.
func (c *AccountConnector) FetchOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, decimal.Decimal, error) {
	path := fmt.Sprintf("%s/%s/orderItems", ordersPath, url.PathEscape(orderID))
	lineTotal := decimal.Zero

	items, err := paginate(ctx, func(ctx context.Context, token string) (page[domain.OrderItem], error) {
		var query url.Values
		if token != "" {
			query = url.Values{"NextToken": {token}}
		}

		resp, err := c.client.Do(ctx, spapiclient.Request{
			Method: http.MethodGet,
			Path:   path,
			Query:  query,
			Class:  spapiclient.ClassItemDetail,
		})
		if err != nil {
			return page[domain.OrderItem]{}, err
		}

		var body spapidomain.OrderItemsResponse
		if err := resp.Decode(&body); err != nil {
			return page[domain.OrderItem]{}, err
		}

		items := make([]domain.OrderItem, 0, len(body.Payload.OrderItems))
		for _, item := range body.Payload.OrderItems {
			if item.SellerSKU == "" {
				continue
			}

			amount := moneyAmount(item.ItemPrice)
			lineTotal = lineTotal.Add(amount)
			items = append(items, domain.OrderItem{
				SKU:       item.SellerSKU,
				Title:     item.Title,
				Quantity:  item.QuantityOrdered,
				UnitPrice: domain.UnitPriceFromLine(amount, item.QuantityOrdered),
			})
		}

		return page[domain.OrderItem]{items: items, next: body.Payload.NextToken, raw: len(body.Payload.OrderItems)}, nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	return items, lineTotal, nil
}

func (c *AccountConnector) orderRecord(mp domain.Marketplace, order spapidomain.Order, items []domain.OrderItem, lineTotal decimal.Decimal) domain.OrderRecord {
	record := domain.OrderRecord{
		AmazonOrderID:      order.AmazonOrderID,
		AccountID:          c.accountID,
		Marketplace:        mp.Code,
		OrderStatus:        order.OrderStatus,
		Currency:           mp.Currency,
		FulfillmentChannel: order.FulfillmentChannel,
		Items:              items,
	}

	if purchased, err := parseTimestamp(order.PurchaseDate); err == nil {
		record.PurchaseDate = purchased
	} else {
		logrus.WithFields(logrus.Fields{
			"order_id":      order.AmazonOrderID,
			"purchase_date": order.PurchaseDate,
		}).Warn("spapi: unparseable purchase date")
	}

	total := lineTotal
	if order.OrderTotal != nil && order.OrderTotal.Amount != "" {
		total = moneyAmount(order.OrderTotal)
		if order.OrderTotal.CurrencyCode != "" {
			record.Currency = order.OrderTotal.CurrencyCode
		}
	}
	record.SetTotal(total)

	return record
}

func moneyAmount(m *spapidomain.Money) decimal.Decimal {
	if m == nil || m.Amount == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(m.Amount))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de data desconhecido: %q", value)
}
