package documentstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore abre o cliente Firestore do projeto. credentialsFile vazio usa as credenciais padrão.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar no firestore: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

// CommitBatch grava todos os documentos em um único WriteBatch com MergeAll.
func (s *FirestoreStore) CommitBatch(ctx context.Context, collection string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	coll := s.client.Collection(collection)
	batch := s.client.Batch()
	for _, doc := range docs {
		data := withoutID(doc.Fields)
		data[FieldUpdatedAt] = firestore.ServerTimestamp
		batch.Set(coll.Doc(doc.ID), data, firestore.MergeAll)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao gravar lote em %s: %w", collection, err)
	}

	return nil
}

func (s *FirestoreStore) Find(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	query := s.client.Collection(collection).Query
	for _, f := range filters {
		query = query.Where(f.Field, "==", f.Value)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao consultar %s: %w", collection, err)
		}

		docs = append(docs, Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}

	return docs, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
