package spapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	spapidomain "github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/domain"
	"github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/spapiclient"
	"github.com/vfg2006/seller-sync/internal/domain"
)

const shipmentsPath = "/fba/inbound/v0/shipments"

// FetchShipments busca uma única página de remessas por intervalo de datas e depois os itens de cada uma.
// Remessas cujos itens falharem seguem sem itens; o merge mantém os itens já persistidos.
func (c *AccountConnector) FetchShipments(ctx context.Context, mp domain.Marketplace, updatedAfter time.Time) ([]domain.ShipmentRecord, error) {
	query := url.Values{}
	query.Set("QueryType", "DATE_RANGE")
	query.Set("MarketplaceId", mp.ID)
	query.Set("LastUpdatedAfter", updatedAfter.UTC().Format(time.RFC3339))
	query.Set("LastUpdatedBefore", c.now().UTC().Format(time.RFC3339))

	resp, err := c.client.Do(ctx, spapiclient.Request{
		Method: http.MethodGet,
		Path:   shipmentsPath,
		Query:  query,
		Class:  spapiclient.ClassStandard,
	})
	if err != nil {
		return nil, err
	}

	var body spapidomain.ShipmentsResponse
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}

	records := make([]domain.ShipmentRecord, 0, len(body.Payload.ShipmentData))
	for _, shipment := range body.Payload.ShipmentData {
		if shipment.ShipmentID == "" {
			continue
		}

		record := domain.ShipmentRecord{
			ShipmentID:   shipment.ShipmentID,
			ShipmentName: shipment.ShipmentName,
			Destination:  shipment.DestinationFulfillmentCenterID,
			Status:       shipment.ShipmentStatus,
			AccountID:    c.accountID,
			Marketplace:  mp.Code,
		}

		items, err := c.FetchShipmentItems(ctx, mp, shipment.ShipmentID)
		if err != nil {
			if ctx.Err() != nil {
				return records, err
			}
			logrus.WithFields(logrus.Fields{
				"account_id":  c.accountID,
				"shipment_id": shipment.ShipmentID,
				"error":       err.Error(),
			}).Warn("spapi: failed to fetch shipment items")
		}
		record.Items = items

		records = append(records, record)
	}

	return records, nil
}

func (c *AccountConnector) FetchShipmentItems(ctx context.Context, mp domain.Marketplace, shipmentID string) ([]domain.ShipmentItem, error) {
	path := fmt.Sprintf("%s/%s/items", shipmentsPath, url.PathEscape(shipmentID))

	return paginate(ctx, func(ctx context.Context, token string) (page[domain.ShipmentItem], error) {
		query := url.Values{"MarketplaceId": {mp.ID}}
		if token != "" {
			query.Set("NextToken", token)
		}

		resp, err := c.client.Do(ctx, spapiclient.Request{
			Method: http.MethodGet,
			Path:   path,
			Query:  query,
			Class:  spapiclient.ClassItemDetail,
		})
		if err != nil {
			return page[domain.ShipmentItem]{}, err
		}

		var body spapidomain.ShipmentItemsResponse
		if err := resp.Decode(&body); err != nil {
			return page[domain.ShipmentItem]{}, err
		}

		items := make([]domain.ShipmentItem, 0, len(body.Payload.ItemData))
		for _, item := range body.Payload.ItemData {
			items = append(items, domain.ShipmentItem{
				SKU:              item.SellerSKU,
				QuantityShipped:  item.QuantityShipped,
				QuantityReceived: item.QuantityReceived,
			})
		}

		return page[domain.ShipmentItem]{items: items, next: body.Payload.NextToken, raw: len(body.Payload.ItemData)}, nil
	})
}
