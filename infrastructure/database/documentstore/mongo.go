package documentstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// NewMongoStore conecta no MongoDB e valida a conexão com um ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(20).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar no mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("erro ao pingar o mongodb: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(database), now: time.Now}, nil
}

// CommitBatch envia um BulkWrite ordenado de upserts com $set, preservando campos não enviados.
func (s *MongoStore) CommitBatch(ctx context.Context, collection string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	now := s.now().UTC()
	models := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		set := bson.M{}
		for k, v := range withoutID(doc.Fields) {
			set[k] = v
		}
		set[FieldUpdatedAt] = now

		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetUpdate(bson.M{"$set": set}).
			SetUpsert(true))
	}

	_, err := s.db.Collection(collection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("erro ao gravar lote em %s: %w", collection, err)
	}

	return nil
}

func (s *MongoStore) Find(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	query := bson.M{}
	for _, f := range filters {
		query[f.Field] = f.Value
	}

	cursor, err := s.db.Collection(collection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("erro ao decodificar documento de %s: %w", collection, err)
		}

		id := fmt.Sprint(raw["_id"])
		delete(raw, "_id")
		docs = append(docs, Document{ID: id, Fields: normalizeBSON(raw).(map[string]any)})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer %s: %w", collection, err)
	}

	return docs, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// normalizeBSON converte os tipos do driver para os tipos Go que o resto do código espera.
func normalizeBSON(v any) any {
	switch value := v.(type) {
	case bson.M:
		out := make(map[string]any, len(value))
		for k, inner := range value {
			out[k] = normalizeBSON(inner)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, inner := range value {
			out[k] = normalizeBSON(inner)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(value))
		for _, e := range value {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, 0, len(value))
		for _, inner := range value {
			out = append(out, normalizeBSON(inner))
		}
		return out
	case primitive.DateTime:
		return value.Time().UTC()
	case int32:
		return int64(value)
	default:
		return value
	}
}
