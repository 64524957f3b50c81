package syncing

import "errors"

const (
	ResourceAccounts      = "accounts"
	ResourceAuth          = "auth"
	ResourceStore         = "store"
	ResourceInventory     = "inventory"
	ResourceOrders        = "orders"
	ResourceShipments     = "shipments"
	ResourceListingPrices = "listing_prices"
	ResourceLivePrices    = "live_prices"
	ResourceMarkSynced    = "mark_synced"
)

// ErrNoAccounts indica que nenhuma conta pôde ser carregada para a execução.
var ErrNoAccounts = errors.New("nenhuma conta disponível para sincronizar")
