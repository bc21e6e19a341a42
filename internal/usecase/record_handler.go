package usecase

import (
	"context"
	"time"

	"qtholidays-service/internal/domain/entity"
)

// RecordHandler is the untyped face of one record service, used by the
// HTTP layer and the summary fetch
type RecordHandler interface {
	// Descriptor describes the record kind this handler serves
	Descriptor() entity.Descriptor

	// List returns the collection newest first, bounded below by since when set
	List(ctx context.Context, since *time.Time) ([]entity.FlatRecord, error)

	// CreateFromJSON decodes a record body and creates it
	CreateFromJSON(ctx context.Context, body []byte) (entity.FlatRecord, error)

	// Update applies a partial update and returns the fields written
	Update(ctx context.Context, id string, patch entity.Patch) (entity.Patch, error)

	// Delete removes one record and returns its id
	Delete(ctx context.Context, id string) (string, error)
}

// ServiceRouter resolves record handlers by service slug
type ServiceRouter interface {
	// Register adds a handler under its descriptor's slug
	Register(handler RecordHandler)

	// GetHandler returns the handler for slug, or nil when none is registered
	GetHandler(slug string) RecordHandler

	// Handlers returns every handler in registration order
	Handlers() []RecordHandler
}
