package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/infrastructure/database/documentstore"
	"github.com/vfg2006/seller-sync/internal/domain"
)

type InventoryRepository interface {
	ListByMarketplace(ctx context.Context, accountID, marketplace string) ([]domain.InventoryRecord, error)
	UpsertAll(ctx context.Context, records []domain.InventoryRecord) (int, error)
}

type inventoryRepository struct {
	store  documentstore.Store
	writer BatchWriter
}

// NewInventoryRepository cria uma nova instância do repositório de inventário.
func NewInventoryRepository(store documentstore.Store, writer BatchWriter) InventoryRepository {
	return &inventoryRepository{
		store:  store,
		writer: writer,
	}
}

func (r *inventoryRepository) ListByMarketplace(ctx context.Context, accountID, marketplace string) ([]domain.InventoryRecord, error) {
	docs, err := r.store.Find(ctx, documentstore.CollectionInventory,
		documentstore.Eq("account_id", accountID),
		documentstore.Eq("marketplace", marketplace),
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar inventário: %w", err)
	}

	records := make([]domain.InventoryRecord, 0, len(docs))
	for _, doc := range docs {
		var rec domain.InventoryRecord
		if err := decodeDocument(doc.Fields, &rec); err != nil {
			logrus.WithFields(logrus.Fields{"document_id": doc.ID, "error": err}).Warn("writer: skipping undecodable inventory document")
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *inventoryRepository) UpsertAll(ctx context.Context, records []domain.InventoryRecord) (int, error) {
	return r.writer.UpsertAll(ctx, documentstore.CollectionInventory, toDocuments(records))
}
