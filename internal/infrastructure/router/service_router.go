package router

import (
	"qtholidays-service/internal/usecase"
	"qtholidays-service/pkg/logger"
)

// ServiceRouter routes requests to record handlers by service slug
type ServiceRouter struct {
	handlers []usecase.RecordHandler
	bySlug   map[string]usecase.RecordHandler
	logger   logger.Logger
}

// NewServiceRouter creates a new service router
func NewServiceRouter(logger logger.Logger) *ServiceRouter {
	return &ServiceRouter{
		handlers: make([]usecase.RecordHandler, 0),
		bySlug:   make(map[string]usecase.RecordHandler),
		logger:   logger,
	}
}

// Register registers a handler under its slug. A later registration for the
// same slug replaces the earlier one.
func (r *ServiceRouter) Register(handler usecase.RecordHandler) {
	d := handler.Descriptor()
	if existing, ok := r.bySlug[d.Slug]; ok {
		for i, h := range r.handlers {
			if h == existing {
				r.handlers[i] = handler
			}
		}
		r.logger.Warn("Replaced handler", "slug", d.Slug, "collection", d.Collection)
	} else {
		r.handlers = append(r.handlers, handler)
		r.logger.Info("Registered handler", "slug", d.Slug, "collection", d.Collection)
	}
	r.bySlug[d.Slug] = handler
}

// GetHandler returns the handler for slug, or nil
func (r *ServiceRouter) GetHandler(slug string) usecase.RecordHandler {
	return r.bySlug[slug]
}

// Handlers returns every handler in registration order
func (r *ServiceRouter) Handlers() []usecase.RecordHandler {
	out := make([]usecase.RecordHandler, len(r.handlers))
	copy(out, r.handlers)
	return out
}
