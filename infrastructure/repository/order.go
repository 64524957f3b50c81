package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/infrastructure/database/documentstore"
	"github.com/vfg2006/seller-sync/internal/domain"
)

type OrderRepository interface {
	ListByMarketplace(ctx context.Context, accountID, marketplace string) ([]domain.OrderRecord, error)
	UpsertAll(ctx context.Context, records []domain.OrderRecord) (int, error)
}

type orderRepository struct {
	store  documentstore.Store
	writer BatchWriter
}

// NewOrderRepository cria uma nova instância do repositório de pedidos.
func NewOrderRepository(store documentstore.Store, writer BatchWriter) OrderRepository {
	return &orderRepository{
		store:  store,
		writer: writer,
	}
}

func (r *orderRepository) ListByMarketplace(ctx context.Context, accountID, marketplace string) ([]domain.OrderRecord, error) {
	docs, err := r.store.Find(ctx, documentstore.CollectionOrders,
		documentstore.Eq("account_id", accountID),
		documentstore.Eq("marketplace", marketplace),
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}

	orders := make([]domain.OrderRecord, 0, len(docs))
	for _, doc := range docs {
		var order domain.OrderRecord
		if err := decodeDocument(doc.Fields, &order); err != nil {
			logrus.WithFields(logrus.Fields{"document_id": doc.ID, "error": err}).Warn("writer: skipping undecodable order document")
			continue
		}
		if order.AmazonOrderID == "" {
			order.AmazonOrderID = doc.ID
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) UpsertAll(ctx context.Context, records []domain.OrderRecord) (int, error) {
	return r.writer.UpsertAll(ctx, documentstore.CollectionOrders, toDocuments(records))
}
