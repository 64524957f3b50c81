package documentstore

import "context"

const (
	CollectionInventory      = "inventory"
	CollectionOrders         = "orders"
	CollectionShipments      = "shipments"
	CollectionSellerAccounts = "seller_accounts"
	CollectionSyncState      = "sync_state"
)

// FieldUpdatedAt é preenchido pelo store em toda escrita.
const FieldUpdatedAt = "updated_at"

type Document struct {
	ID     string
	Fields map[string]any
}

type Filter struct {
	Field string
	Value any
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Store é um banco de documentos endereçado por coleção e id.
// CommitBatch grava os documentos com merge: campos ausentes no documento são preservados.
type Store interface {
	CommitBatch(ctx context.Context, collection string, docs []Document) error
	Find(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
	Close() error
}

func withoutID(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if k == "_id" || k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}
