package spapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	spapidomain "github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/domain"
	"github.com/vfg2006/seller-sync/infrastructure/integrator/spapi/spapiclient"
	"github.com/vfg2006/seller-sync/internal/domain"
)

const (
	pricingPath = "/products/pricing/v0/price"

	// limite de ASINs por chamada do endpoint de preços
	pricingBatchSize = 20
)

// FetchLivePrices consulta o preço atual por ASIN em lotes de 20. ASINs sem preço não aparecem no mapa.
func (c *AccountConnector) FetchLivePrices(ctx context.Context, mp domain.Marketplace, asins []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(asins))

	for _, chunk := range chunkStrings(uniqueStrings(asins), pricingBatchSize) {
		query := url.Values{}
		query.Set("MarketplaceId", mp.ID)
		query.Set("ItemType", "Asin")
		query.Set("Asins", strings.Join(chunk, ","))

		resp, err := c.client.Do(ctx, spapiclient.Request{
			Method: http.MethodGet,
			Path:   pricingPath,
			Query:  query,
			Class:  spapiclient.ClassItemDetail,
		})
		if err != nil {
			return prices, err
		}

		var body spapidomain.PricingResponse
		if err := resp.Decode(&body); err != nil {
			return prices, err
		}

		for _, result := range body.Payload {
			if price := representativePrice(result); price > 0 {
				prices[result.ASIN] = price
			}
		}
	}

	return prices, nil
}

// representativePrice usa o ListingPrice da primeira oferta, senão o RegularPrice.
func representativePrice(result spapidomain.PriceResult) float64 {
	if result.Status != "" && result.Status != "Success" {
		return 0
	}

	for _, offer := range result.Product.Offers {
		if listing := moneyAmount(offer.BuyingPrice.ListingPrice); listing.IsPositive() {
			return domain.Money(listing)
		}
		if regular := moneyAmount(offer.RegularPrice); regular.IsPositive() {
			return domain.Money(regular)
		}
	}

	return 0
}

func chunkStrings(values []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(values); start += size {
		end := start + size
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[start:end])
	}
	return chunks
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
