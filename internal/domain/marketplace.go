package domain

import "strings"

// Marketplace liga o código usado na configuração ao id do marketplace na Amazon.
type Marketplace struct {
	Code     string
	ID       string
	Currency string
}

var marketplaces = map[string]Marketplace{
	"US": {Code: "US", ID: "ATVPDKIKX0DER", Currency: "USD"},
	"CA": {Code: "CA", ID: "A2EUQ1WTGCTBG2", Currency: "CAD"},
	"MX": {Code: "MX", ID: "A1AM78C64UM0Y8", Currency: "MXN"},
	"UK": {Code: "UK", ID: "A1F83G8C2ARO7P", Currency: "GBP"},
	"DE": {Code: "DE", ID: "A1PA6795UKMFR9", Currency: "EUR"},
	"FR": {Code: "FR", ID: "A13V1IB3VIYZZH", Currency: "EUR"},
	"IT": {Code: "IT", ID: "APJ6JRA9NG5V4", Currency: "EUR"},
	"ES": {Code: "ES", ID: "A1RKKUPIHCS9HS", Currency: "EUR"},
}

func LookupMarketplace(code string) (Marketplace, bool) {
	mp, ok := marketplaces[strings.ToUpper(strings.TrimSpace(code))]
	return mp, ok
}
