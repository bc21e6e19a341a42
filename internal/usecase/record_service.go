package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/domain/repository"
	"qtholidays-service/pkg/logger"
	"qtholidays-service/pkg/metrics"
)

// RecordService handles create/update/delete/list for one record kind
type RecordService[T any, PT entity.RecordPtr[T]] struct {
	descriptor entity.Descriptor
	store      repository.DocumentStore
	clock      Clock
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewRecordService creates a record service bound to descriptor's collection
func NewRecordService[T any, PT entity.RecordPtr[T]](
	descriptor entity.Descriptor,
	store repository.DocumentStore,
	clock Clock,
	m *metrics.Metrics,
	logger logger.Logger,
) *RecordService[T, PT] {
	return &RecordService[T, PT]{
		descriptor: descriptor,
		store:      store,
		clock:      clock,
		metrics:    m,
		logger:     logger.With("collection", descriptor.Collection),
	}
}

// Descriptor returns the descriptor the service validates against
func (s *RecordService[T, PT]) Descriptor() entity.Descriptor {
	return s.descriptor
}

// Create validates data, stamps both timestamps with the same instant and
// stores it. Any incoming id or timestamps are ignored.
func (s *RecordService[T, PT]) Create(ctx context.Context, data T) (T, error) {
	var zero T
	defer s.observe("create", time.Now())

	base := PT(&data).Base()
	base.ID = ""
	now := s.clock.Now().UnixMilli()
	base.CreatedAt = now
	base.UpdatedAt = now

	doc, err := entity.ToDocument(data)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", entity.ErrInvalidRecord, err)
	}
	if err := s.descriptor.Validate(doc); err != nil {
		return zero, err
	}

	id, err := s.store.Insert(ctx, s.descriptor.Collection, doc)
	if err != nil {
		s.fail("create", err)
		return zero, fmt.Errorf("failed to create %s record: %w: %w", s.descriptor.Collection, entity.ErrStoreUnavailable, err)
	}
	base.ID = id

	s.logger.Info("Record created", "id", id)
	s.metrics.RecordOperations.WithLabelValues(s.descriptor.Collection, "create").Inc()
	return data, nil
}

// Update writes only the fields in patch plus a fresh updatedAt. Fields not
// named in patch keep their stored values.
func (s *RecordService[T, PT]) Update(ctx context.Context, id string, patch entity.Patch) (entity.Patch, error) {
	defer s.observe("update", time.Now())

	if err := s.descriptor.ValidatePatch(patch); err != nil {
		return nil, err
	}

	applied := make(entity.Patch, len(patch)+1)
	for k, v := range patch {
		applied[k] = v
	}
	s.descriptor.Normalize(applied)
	applied[entity.FieldUpdatedAt] = s.clock.Now().UnixMilli()

	if err := s.store.Patch(ctx, s.descriptor.Collection, id, applied); err != nil {
		return nil, s.storeError("update", id, err)
	}

	s.logger.Info("Record updated", "id", id, "fields", len(patch))
	s.metrics.RecordOperations.WithLabelValues(s.descriptor.Collection, "update").Inc()
	return applied, nil
}

// Delete hard-deletes one record
func (s *RecordService[T, PT]) Delete(ctx context.Context, id string) (string, error) {
	defer s.observe("delete", time.Now())

	if err := s.store.Remove(ctx, s.descriptor.Collection, id); err != nil {
		return "", s.storeError("delete", id, err)
	}

	s.logger.Info("Record deleted", "id", id)
	s.metrics.RecordOperations.WithLabelValues(s.descriptor.Collection, "delete").Inc()
	return id, nil
}

// List returns typed records newest first. A stored document that does not
// decode fails the whole listing.
func (s *RecordService[T, PT]) List(ctx context.Context, since *time.Time) ([]T, error) {
	docs, err := s.query(ctx, since)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(docs))
	for _, doc := range docs {
		record, err := entity.FromDocument[T, PT](doc.ID, doc.Raw)
		if err != nil {
			return nil, s.decodeError(doc.ID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// ListFlat returns records newest first, flattened through the descriptor
func (s *RecordService[T, PT]) ListFlat(ctx context.Context, since *time.Time) ([]entity.FlatRecord, error) {
	docs, err := s.query(ctx, since)
	if err != nil {
		return nil, err
	}

	records := make([]entity.FlatRecord, 0, len(docs))
	for _, doc := range docs {
		record, err := entity.Flatten(s.descriptor, doc.ID, doc.Raw)
		if err != nil {
			return nil, s.decodeError(doc.ID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *RecordService[T, PT]) query(ctx context.Context, since *time.Time) ([]repository.Document, error) {
	defer s.observe("list", time.Now())

	opts := repository.QueryOptions{OrderField: entity.FieldCreatedAt}
	if since != nil {
		bound := since.UnixMilli()
		opts.LowerBound = &bound
	}

	docs, err := s.store.Query(ctx, s.descriptor.Collection, opts)
	if err != nil {
		s.fail("list", err)
		return nil, fmt.Errorf("failed to list %s: %w: %w", s.descriptor.Collection, entity.ErrStoreUnavailable, err)
	}

	s.metrics.RecordOperations.WithLabelValues(s.descriptor.Collection, "list").Inc()
	return docs, nil
}

func (s *RecordService[T, PT]) storeError(operation, id string, err error) error {
	if errors.Is(err, repository.ErrDocumentNotFound) {
		return fmt.Errorf("%s %s/%s: %w", operation, s.descriptor.Collection, id, entity.ErrNotFound)
	}
	s.fail(operation, err)
	return fmt.Errorf("failed to %s %s/%s: %w: %w", operation, s.descriptor.Collection, id, entity.ErrStoreUnavailable, err)
}

func (s *RecordService[T, PT]) decodeError(id string, err error) error {
	s.fail("decode", err)
	return fmt.Errorf("failed to decode %s/%s: %w: %w", s.descriptor.Collection, id, entity.ErrCorruptRecord, err)
}

func (s *RecordService[T, PT]) fail(operation string, err error) {
	s.logger.Error("Store operation failed", "operation", operation, "error", err)
	s.metrics.ErrorsCount.WithLabelValues(operation).Inc()
}

func (s *RecordService[T, PT]) observe(operation string, start time.Time) {
	s.metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
