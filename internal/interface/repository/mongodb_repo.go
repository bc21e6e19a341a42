package repository

import (
	"context"
	"fmt"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDocumentStore implements the DocumentStore interface
type MongoDocumentStore struct {
	db *mongo.Database
}

// NewMongoDocumentStore creates a new MongoDB document store
func NewMongoDocumentStore(db *mongo.Database) *MongoDocumentStore {
	return &MongoDocumentStore{
		db: db,
	}
}

// EnsureIndexes creates the createdAt index every list and summary query sorts on
func (s *MongoDocumentStore) EnsureIndexes(ctx context.Context, collections ...string) error {
	for _, name := range collections {
		createdAtIndex := mongo.IndexModel{
			Keys: bson.D{{Key: entity.FieldCreatedAt, Value: -1}},
		}
		if _, err := s.db.Collection(name).Indexes().CreateOne(ctx, createdAtIndex); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}
	return nil
}

// Insert stores doc under a freshly generated identifier and returns it
func (s *MongoDocumentStore) Insert(ctx context.Context, collection string, doc map[string]interface{}) (string, error) {
	id := primitive.NewObjectID().Hex()

	insertDoc := bson.M{}
	for k, v := range doc {
		insertDoc[k] = v
	}
	insertDoc[entity.FieldID] = id

	if _, err := s.db.Collection(collection).InsertOne(ctx, insertDoc); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return id, nil
}

// Query lists a collection newest first, optionally bounded from below
func (s *MongoDocumentStore) Query(ctx context.Context, collection string, opts repository.QueryOptions) ([]repository.Document, error) {
	filter := bson.M{}
	if opts.LowerBound != nil {
		filter[opts.OrderField] = bson.M{"$gte": *opts.LowerBound}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: opts.OrderField, Value: -1}})
	cursor, err := s.db.Collection(collection).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	docs := make([]repository.Document, 0)
	for cursor.Next(ctx) {
		id, ok := cursor.Current.Lookup(entity.FieldID).StringValueOK()
		if !ok {
			// Documents not written by this service carry ObjectID keys
			oid, isOID := cursor.Current.Lookup(entity.FieldID).ObjectIDOK()
			if !isOID {
				continue
			}
			id = oid.Hex()
		}

		raw := make([]byte, len(cursor.Current))
		copy(raw, cursor.Current)
		docs = append(docs, repository.Document{ID: id, Raw: raw})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}

	return docs, nil
}

// Patch sets the given fields on one document, leaving the rest untouched
func (s *MongoDocumentStore) Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	result, err := s.db.Collection(collection).UpdateOne(
		ctx,
		idFilter(id),
		bson.M{"$set": fields},
	)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with id %s in %s: %w", id, collection, repository.ErrDocumentNotFound)
	}

	return nil
}

// Remove hard-deletes one document
func (s *MongoDocumentStore) Remove(ctx context.Context, collection, id string) error {
	result, err := s.db.Collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no document found with id %s in %s: %w", id, collection, repository.ErrDocumentNotFound)
	}

	return nil
}

// idFilter matches both string keys and ObjectID keys with the same hex value
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{entity.FieldID: bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{entity.FieldID: id}
}
