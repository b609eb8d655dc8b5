package repository

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process RecordStore. Documents are returned in
// insertion order and copied on the way in and out.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	docs  map[string]bson.M
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

func (s *MemoryStore) collection(name string) *memoryCollection {
	coll, ok := s.collections[name]
	if !ok {
		coll = &memoryCollection{docs: make(map[string]bson.M)}
		s.collections[name] = coll
	}
	return coll
}

func (s *MemoryStore) Query(ctx context.Context, collection string, filter bson.M, limit int) ([]bson.M, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[collection]
	if !ok {
		return []bson.M{}, nil
	}

	docs := []bson.M{}
	for _, id := range coll.order {
		doc := coll.docs[id]
		if !matches(doc, filter) {
			continue
		}
		docs = append(docs, copyDocument(doc))
		if limit > 0 && len(docs) == limit {
			break
		}
	}
	return docs, nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, fields bson.M) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	doc := copyDocument(fields)
	doc["_id"] = id

	coll := s.collection(collection)
	coll.docs[id] = doc
	coll.order = append(coll.order, id)
	return id, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(collection)
	doc, ok := coll.docs[id]
	if !ok {
		return fmt.Errorf("update %s/%s: %w", collection, id, ErrDocumentNotFound)
	}
	for k, v := range copyDocument(fields) {
		if k != "_id" {
			doc[k] = v
		}
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(collection)
	if _, ok := coll.docs[id]; !ok {
		return fmt.Errorf("delete %s/%s: %w", collection, id, ErrDocumentNotFound)
	}
	delete(coll.docs, id)
	for i, existing := range coll.order {
		if existing == id {
			coll.order = append(coll.order[:i], coll.order[i+1:]...)
			break
		}
	}
	return nil
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}

func copyDocument(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.M:
		return copyDocument(val)
	case primitive.A:
		out := make(primitive.A, len(val))
		for i := range val {
			out[i] = copyValue(val[i])
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i := range val {
			out[i] = copyValue(val[i])
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
