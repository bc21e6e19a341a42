package repository

import (
	"context"
	"testing"

	"qtholidays-service/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func insertAt(t *testing.T, s *MemoryDocumentStore, collection string, createdAt int64, extra map[string]interface{}) string {
	t.Helper()
	doc := map[string]interface{}{"createdAt": createdAt, "updatedAt": createdAt}
	for k, v := range extra {
		doc[k] = v
	}
	id, err := s.Insert(context.Background(), collection, doc)
	require.NoError(t, err)
	require.Len(t, id, 24)
	return id
}

func TestMemoryStoreQueryOrdersDescending(t *testing.T) {
	s := NewMemoryDocumentStore()
	oldest := insertAt(t, s, "visas", 100, nil)
	newest := insertAt(t, s, "visas", 300, nil)
	middle := insertAt(t, s, "visas", 200, nil)
	insertAt(t, s, "carRentals", 999, nil)

	docs, err := s.Query(context.Background(), "visas", repository.QueryOptions{OrderField: "createdAt"})
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, []string{newest, middle, oldest}, []string{docs[0].ID, docs[1].ID, docs[2].ID})
}

func TestMemoryStoreQueryLowerBound(t *testing.T) {
	s := NewMemoryDocumentStore()
	insertAt(t, s, "visas", 100, nil)
	kept := insertAt(t, s, "visas", 200, nil)
	edge := insertAt(t, s, "visas", 150, nil)

	bound := int64(150)
	docs, err := s.Query(context.Background(), "visas", repository.QueryOptions{OrderField: "createdAt", LowerBound: &bound})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, kept, docs[0].ID)
	assert.Equal(t, edge, docs[1].ID)
}

func TestMemoryStoreQueryUnknownCollection(t *testing.T) {
	s := NewMemoryDocumentStore()

	docs, err := s.Query(context.Background(), "nothing", repository.QueryOptions{OrderField: "createdAt"})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStorePatchKeepsOtherFields(t *testing.T) {
	s := NewMemoryDocumentStore()
	id := insertAt(t, s, "carRentals", 100, map[string]interface{}{"destination": "Goa", "seaters": 4})

	err := s.Patch(context.Background(), "carRentals", id, map[string]interface{}{"seaters": 7, "updatedAt": int64(150)})
	require.NoError(t, err)

	docs, err := s.Query(context.Background(), "carRentals", repository.QueryOptions{OrderField: "createdAt"})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(docs[0].Raw, &doc))
	assert.Equal(t, "Goa", doc["destination"])
	assert.EqualValues(t, 7, doc["seaters"])
	assert.EqualValues(t, 100, doc["createdAt"])
	assert.EqualValues(t, 150, doc["updatedAt"])
}

func TestMemoryStoreMissingDocument(t *testing.T) {
	s := NewMemoryDocumentStore()
	insertAt(t, s, "visas", 100, nil)

	err := s.Patch(context.Background(), "visas", "missing", map[string]interface{}{"country": "X"})
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)

	err = s.Remove(context.Background(), "visas", "missing")
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)
}

func TestMemoryStoreRemove(t *testing.T) {
	s := NewMemoryDocumentStore()
	id := insertAt(t, s, "visas", 100, nil)

	require.NoError(t, s.Remove(context.Background(), "visas", id))

	docs, err := s.Query(context.Background(), "visas", repository.QueryOptions{OrderField: "createdAt"})
	require.NoError(t, err)
	assert.Empty(t, docs)

	assert.ErrorIs(t, s.Remove(context.Background(), "visas", id), repository.ErrDocumentNotFound)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	s := NewMemoryDocumentStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Insert(ctx, "visas", map[string]interface{}{"createdAt": int64(1)})
	assert.ErrorIs(t, err, context.Canceled)
}
