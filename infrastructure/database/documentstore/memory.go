package documentstore

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore guarda documentos em memória. Usado em dry runs e nos testes.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	commits     map[string][]int
	now         func() time.Time

	// OnCommit, se definido, é chamado antes de cada lote; um erro impede a gravação.
	OnCommit func(collection string, batch int, docs []Document) error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: map[string]map[string]map[string]any{},
		commits:     map[string][]int{},
		now:         time.Now,
	}
}

func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) CommitBatch(_ context.Context, collection string, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(docs) == 0 {
		return nil
	}

	if s.OnCommit != nil {
		if err := s.OnCommit(collection, len(s.commits[collection]), docs); err != nil {
			return err
		}
	}

	coll, ok := s.collections[collection]
	if !ok {
		coll = map[string]map[string]any{}
		s.collections[collection] = coll
	}

	now := s.now().UTC()
	for _, doc := range docs {
		current, exists := coll[doc.ID]
		if !exists {
			current = map[string]any{}
			coll[doc.ID] = current
		}
		for k, v := range withoutID(doc.Fields) {
			current[k] = v
		}
		current[FieldUpdatedAt] = now
	}

	s.commits[collection] = append(s.commits[collection], len(docs))
	return nil
}

func (s *MemoryStore) Find(_ context.Context, collection string, filters ...Filter) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []Document
	for id, fields := range s.collections[collection] {
		if !matches(fields, filters) {
			continue
		}
		docs = append(docs, Document{ID: id, Fields: copyFields(fields)})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Seed grava documentos sem registrar commits nem passar pelo OnCommit.
func (s *MemoryStore) Seed(collection string, docs ...Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		coll = map[string]map[string]any{}
		s.collections[collection] = coll
	}
	for _, doc := range docs {
		coll[doc.ID] = withoutID(doc.Fields)
	}
}

// Commits retorna o tamanho de cada lote gravado na coleção, em ordem.
func (s *MemoryStore) Commits(collection string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]int(nil), s.commits[collection]...)
}

// Snapshot devolve o conteúdo da coleção sem o campo updated_at.
func (s *MemoryStore) Snapshot(collection string) map[string]map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]map[string]any, len(s.collections[collection]))
	for id, fields := range s.collections[collection] {
		doc := copyFields(fields)
		delete(doc, FieldUpdatedAt)
		out[id] = doc
	}
	return out
}

func matches(fields map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if fields[f.Field] != f.Value {
			return false
		}
	}
	return true
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
