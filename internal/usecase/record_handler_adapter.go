package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"qtholidays-service/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
)

// RecordHandlerAdapter adapts a typed RecordService to the RecordHandler interface
type RecordHandlerAdapter[T any, PT entity.RecordPtr[T]] struct {
	service *RecordService[T, PT]
}

// NewRecordHandlerAdapter creates a new adapter around service
func NewRecordHandlerAdapter[T any, PT entity.RecordPtr[T]](service *RecordService[T, PT]) *RecordHandlerAdapter[T, PT] {
	return &RecordHandlerAdapter[T, PT]{
		service: service,
	}
}

// Descriptor returns the wrapped service's descriptor
func (a *RecordHandlerAdapter[T, PT]) Descriptor() entity.Descriptor {
	return a.service.Descriptor()
}

// List returns flattened records newest first
func (a *RecordHandlerAdapter[T, PT]) List(ctx context.Context, since *time.Time) ([]entity.FlatRecord, error) {
	return a.service.ListFlat(ctx, since)
}

// CreateFromJSON decodes body into the typed record and creates it.
// Fields the record kind does not know are rejected.
func (a *RecordHandlerAdapter[T, PT]) CreateFromJSON(ctx context.Context, body []byte) (entity.FlatRecord, error) {
	var data T
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&data); err != nil {
		return entity.FlatRecord{}, fmt.Errorf("%w: %v", entity.ErrInvalidRecord, err)
	}

	created, err := a.service.Create(ctx, data)
	if err != nil {
		return entity.FlatRecord{}, err
	}

	raw, err := bson.Marshal(created)
	if err != nil {
		return entity.FlatRecord{}, err
	}
	return entity.Flatten(a.service.Descriptor(), PT(&created).Base().ID, raw)
}

// Update applies a partial update
func (a *RecordHandlerAdapter[T, PT]) Update(ctx context.Context, id string, patch entity.Patch) (entity.Patch, error) {
	return a.service.Update(ctx, id, patch)
}

// Delete removes one record
func (a *RecordHandlerAdapter[T, PT]) Delete(ctx context.Context, id string) (string, error) {
	return a.service.Delete(ctx, id)
}
