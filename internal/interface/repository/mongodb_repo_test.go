package repository

import (
	"context"
	"testing"

	"qtholidays-service/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoDocumentStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert returns generated id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := NewMongoDocumentStore(mt.DB)

		id, err := store.Insert(context.Background(), "flightBookings", map[string]interface{}{"from": "DEL"})
		require.NoError(t, err)

		_, err = primitive.ObjectIDFromHex(id)
		assert.NoError(t, err)
	})

	mt.Run("insert failure is returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Message: "shutdown in progress",
			Name:    "ShutdownInProgress",
		}))
		store := NewMongoDocumentStore(mt.DB)

		_, err := store.Insert(context.Background(), "flightBookings", map[string]interface{}{"from": "DEL"})
		assert.Error(t, err)
	})

	mt.Run("query decodes ids in order", func(mt *mtest.T) {
		legacy := primitive.NewObjectID()
		first := mtest.CreateCursorResponse(0, "test.carRentals", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "a1"}, {Key: "createdAt", Value: int64(300)}, {Key: "customerQuote", Value: 2000.0}},
			bson.D{{Key: "_id", Value: legacy}, {Key: "createdAt", Value: int64(200)}, {Key: "customerQuote", Value: 1000.0}},
		)
		mt.AddMockResponses(first)
		store := NewMongoDocumentStore(mt.DB)

		bound := int64(100)
		docs, err := store.Query(context.Background(), "carRentals", repository.QueryOptions{OrderField: "createdAt", LowerBound: &bound})
		require.NoError(t, err)
		require.Len(t, docs, 2)

		assert.Equal(t, "a1", docs[0].ID)
		assert.Equal(t, legacy.Hex(), docs[1].ID)

		var doc bson.M
		require.NoError(t, bson.Unmarshal(docs[0].Raw, &doc))
		assert.Equal(t, 2000.0, doc["customerQuote"])
	})

	mt.Run("patch on missing id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		store := NewMongoDocumentStore(mt.DB)

		err := store.Patch(context.Background(), "visas", "missing", map[string]interface{}{"country": "Japan"})
		assert.ErrorIs(t, err, repository.ErrDocumentNotFound)
	})

	mt.Run("patch matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		store := NewMongoDocumentStore(mt.DB)

		err := store.Patch(context.Background(), "visas", "a1", map[string]interface{}{"country": "Japan"})
		assert.NoError(t, err)
	})

	mt.Run("remove", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)
		store := NewMongoDocumentStore(mt.DB)

		assert.NoError(t, store.Remove(context.Background(), "visas", "a1"))
		assert.ErrorIs(t, store.Remove(context.Background(), "visas", "a1"), repository.ErrDocumentNotFound)
	})
}

func TestIDFilter(t *testing.T) {
	plain := idFilter("not-hex")
	assert.Equal(t, bson.M{"_id": "not-hex"}, plain)

	oid := primitive.NewObjectID()
	both := idFilter(oid.Hex())
	in := both["_id"].(bson.M)["$in"].(bson.A)
	assert.Equal(t, oid.Hex(), in[0])
	assert.Equal(t, oid, in[1])
}
