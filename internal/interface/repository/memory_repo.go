package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryDocument struct {
	seq uint64
	raw bson.Raw
}

// MemoryDocumentStore keeps collections in process. Documents are stored as
// BSON so decoding behaves the same as with MongoDB.
type MemoryDocumentStore struct {
	mu          sync.RWMutex
	seq         uint64
	collections map[string]map[string]memoryDocument
}

// NewMemoryDocumentStore creates an empty in-memory document store
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		collections: make(map[string]map[string]memoryDocument),
	}
}

// Insert stores doc under a freshly generated identifier and returns it
func (s *MemoryDocumentStore) Insert(ctx context.Context, collection string, doc map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := primitive.NewObjectID().Hex()
	stored := bson.M{}
	for k, v := range doc {
		stored[k] = v
	}
	stored[entity.FieldID] = id

	raw, err := bson.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("failed to encode document for %s: %w", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]memoryDocument)
		s.collections[collection] = docs
	}
	s.seq++
	docs[id] = memoryDocument{seq: s.seq, raw: raw}

	return id, nil
}

// Query lists a collection newest first, optionally bounded from below.
// Documents with equal order values come back most recently inserted first.
func (s *MemoryDocumentStore) Query(ctx context.Context, collection string, opts repository.QueryOptions) ([]repository.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type candidate struct {
		id    string
		key   int64
		entry memoryDocument
	}

	s.mu.RLock()
	candidates := make([]candidate, 0, len(s.collections[collection]))
	for id, entry := range s.collections[collection] {
		key, ok := numericField(entry.raw, opts.OrderField)
		if opts.LowerBound != nil && (!ok || key < *opts.LowerBound) {
			continue
		}
		candidates = append(candidates, candidate{id: id, key: key, entry: entry})
	}
	s.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].key != candidates[j].key {
			return candidates[i].key > candidates[j].key
		}
		return candidates[i].entry.seq > candidates[j].entry.seq
	})

	docs := make([]repository.Document, 0, len(candidates))
	for _, c := range candidates {
		raw := make([]byte, len(c.entry.raw))
		copy(raw, c.entry.raw)
		docs = append(docs, repository.Document{ID: c.id, Raw: raw})
	}
	return docs, nil
}

// Patch sets the given fields on one document, leaving the rest untouched
func (s *MemoryDocumentStore) Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("no document found with id %s in %s: %w", id, collection, repository.ErrDocumentNotFound)
	}

	var doc bson.M
	if err := bson.Unmarshal(entry.raw, &doc); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	for k, v := range fields {
		doc[k] = v
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}
	s.collections[collection][id] = memoryDocument{seq: entry.seq, raw: raw}

	return nil
}

// Remove hard-deletes one document
func (s *MemoryDocumentStore) Remove(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return fmt.Errorf("no document found with id %s in %s: %w", id, collection, repository.ErrDocumentNotFound)
	}
	delete(s.collections[collection], id)

	return nil
}

func numericField(raw bson.Raw, field string) (int64, bool) {
	value, err := raw.LookupErr(field)
	if err != nil {
		return 0, false
	}
	switch value.Type {
	case bsontype.Int64:
		return value.Int64(), true
	case bsontype.Int32:
		return int64(value.Int32()), true
	case bsontype.Double:
		return int64(value.Double()), true
	default:
		return 0, false
	}
}
