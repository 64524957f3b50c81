package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/infrastructure/database/documentstore"
	"github.com/vfg2006/seller-sync/internal/domain"
)

type ShipmentRepository interface {
	ListByMarketplace(ctx context.Context, accountID, marketplace string) ([]domain.ShipmentRecord, error)
	UpsertAll(ctx context.Context, records []domain.ShipmentRecord) (int, error)
}

type shipmentRepository struct {
	store  documentstore.Store
	writer BatchWriter
}

func NewShipmentRepository(store documentstore.Store, writer BatchWriter) ShipmentRepository {
	return &shipmentRepository{
		store:  store,
		writer: writer,
	}
}

func (r *shipmentRepository) ListByMarketplace(ctx context.Context, accountID, marketplace string) ([]domain.ShipmentRecord, error) {
	docs, err := r.store.Find(ctx, documentstore.CollectionShipments,
		documentstore.Eq("account_id", accountID),
		documentstore.Eq("marketplace", marketplace),
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar remessas: %w", err)
	}

	shipments := make([]domain.ShipmentRecord, 0, len(docs))
	for _, doc := range docs {
		var shipment domain.ShipmentRecord
		if err := decodeDocument(doc.Fields, &shipment); err != nil {
			logrus.WithFields(logrus.Fields{"document_id": doc.ID, "error": err}).Warn("writer: skipping undecodable shipment document")
			continue
		}
		if shipment.ShipmentID == "" {
			shipment.ShipmentID = doc.ID
		}
		shipments = append(shipments, shipment)
	}

	return shipments, nil
}

func (r *shipmentRepository) UpsertAll(ctx context.Context, records []domain.ShipmentRecord) (int, error) {
	return r.writer.UpsertAll(ctx, documentstore.CollectionShipments, toDocuments(records))
}
