package repository

import (
	"context"
	"errors"
)

// ErrDocumentNotFound is returned by Patch and Remove when no document has the id
var ErrDocumentNotFound = errors.New("document not found")

// Document is one stored document with its store-assigned identifier
type Document struct {
	ID  string
	Raw []byte // BSON
}

// QueryOptions orders results descending by OrderField and optionally keeps
// only documents whose OrderField is >= LowerBound.
type QueryOptions struct {
	OrderField string
	LowerBound *int64
}

// DocumentStore defines the operations on named collections of the external document store
type DocumentStore interface {
	Insert(ctx context.Context, collection string, doc map[string]interface{}) (string, error)
	Query(ctx context.Context, collection string, opts QueryOptions) ([]Document, error)
	Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Remove(ctx context.Context, collection, id string) error
}
