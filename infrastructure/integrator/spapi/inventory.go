package spapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	spapidomain "github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/domain"
	"github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/spapiclient"
	"github.com/vfg2006/seller-sync/internal/domain"
)

const inventorySummariesPath = "/fba/inventory/v1/summaries"

const unknownProductTitle = "Unknown Product"

func (c *AccountConnector) FetchInventory(ctx context.Context, mp domain.Marketplace) ([]domain.InventoryRecord, error) {
	return paginate(ctx, func(ctx context.Context, token string) (page[domain.InventoryRecord], error) {
		query := url.Values{}
		query.Set("details", "true")
		query.Set("granularityType", "Marketplace")
		query.Set("granularityId", mp.ID)
		query.Set("marketplaceIds", mp.ID)
		if token != "" {
			query.Set("nextToken", token)
		}

		resp, err := c.client.Do(ctx, spapiclient.Request{
			Method: http.MethodGet,
			Path:   inventorySummariesPath,
			Query:  query,
			Class:  spapiclient.ClassStandard,
		})
		if err != nil {
			return page[domain.InventoryRecord]{}, err
		}

		var body spapidomain.InventorySummariesResponse
		if err := resp.Decode(&body); err != nil {
			return page[domain.InventoryRecord]{}, err
		}

		records := make([]domain.InventoryRecord, 0, len(body.Payload.InventorySummaries))
		for _, summary := range body.Payload.InventorySummaries {
			if summary.SellerSKU == "" {
				logrus.WithFields(logrus.Fields{
					"account_id":  c.accountID,
					"marketplace": mp.Code,
					"asin":        summary.ASIN,
				}).Warn("spapi: inventory summary without seller sku ignored")
				continue
			}
			records = append(records, c.inventoryRecord(mp, summary))
		}

		next := ""
		if body.Pagination != nil {
			next = body.Pagination.NextToken
		}

		return page[domain.InventoryRecord]{items: records, next: next, raw: len(body.Payload.InventorySummaries)}, nil
	})
}

func (c *AccountConnector) inventoryRecord(mp domain.Marketplace, summary spapidomain.InventorySummary) domain.InventoryRecord {
	stock := 0
	if summary.InventoryDetails != nil {
		stock = summary.InventoryDetails.FulfillableQuantity
	}

	title := summary.ProductName
	if title == "" {
		title = unknownProductTitle
	}

	return domain.InventoryRecord{
		AccountID:   c.accountID,
		Marketplace: mp.Code,
		SKU:         summary.SellerSKU,
		ASIN:        summary.ASIN,
		Title:       title,
		StockLevel:  stock,
		Currency:    mp.Currency,
		Status:      domain.StatusForStock(stock),
	}
}
