package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/infrastructure/database/documentstore"
)

// DefaultBatchSize fica abaixo do limite de 500 operações por escrita atômica do Firestore.
const DefaultBatchSize = 400

// Record é qualquer registro gravável por chave natural.
type Record interface {
	DocumentID() string
	Fields() map[string]any
}

// PersistenceError indica que um lote falhou. Os lotes seguintes da mesma coleção não são enviados.
type PersistenceError struct {
	Collection string
	Batch      int
	Written    int
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("erro ao gravar lote %d de %s (%d documentos já gravados): %v", e.Batch, e.Collection, e.Written, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type BatchWriter interface {
	UpsertAll(ctx context.Context, collection string, docs []documentstore.Document) (int, error)
}

type batchWriter struct {
	store     documentstore.Store
	batchSize int
}

// NewBatchWriter cria o escritor em lotes; batchSize não positivo usa DefaultBatchSize.
func NewBatchWriter(store documentstore.Store, batchSize int) BatchWriter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &batchWriter{
		store:     store,
		batchSize: batchSize,
	}
}

// UpsertAll grava os documentos em lotes de até batchSize, com merge. Retorna quantos foram gravados.
func (w *batchWriter) UpsertAll(ctx context.Context, collection string, docs []documentstore.Document) (int, error) {
	written := 0
	for batch, start := 0, 0; start < len(docs); batch, start = batch+1, start+w.batchSize {
		if err := ctx.Err(); err != nil {
			return written, &PersistenceError{Collection: collection, Batch: batch, Written: written, Err: err}
		}

		end := min(start+w.batchSize, len(docs))
		if err := w.store.CommitBatch(ctx, collection, docs[start:end]); err != nil {
			logrus.WithFields(logrus.Fields{
				"collection": collection,
				"batch":      batch,
				"written":    written,
				"error":      err,
			}).Error("writer: batch commit failed, aborting remaining batches")

			return written, &PersistenceError{Collection: collection, Batch: batch, Written: written, Err: err}
		}

		written += end - start
		logrus.WithFields(logrus.Fields{
			"collection": collection,
			"batch":      batch,
			"size":       end - start,
		}).Debug("writer: batch committed")
	}

	return written, nil
}

func toDocuments[T any, P interface {
	*T
	Record
}](records []T) []documentstore.Document {
	docs := make([]documentstore.Document, 0, len(records))
	for i := range records {
		rec := P(&records[i])
		docs = append(docs, documentstore.Document{ID: rec.DocumentID(), Fields: rec.Fields()})
	}
	return docs
}
