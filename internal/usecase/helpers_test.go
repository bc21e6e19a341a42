package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/domain/repository"
	memrepo "qtholidays-service/internal/interface/repository"
	"qtholidays-service/pkg/logger"
	"qtholidays-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

var errConnectionReset = errors.New("connection reset by peer")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.May, 17, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// flakyStore fails every call on the named collections
type flakyStore struct {
	repository.DocumentStore
	failing map[string]bool
}

func (s *flakyStore) Insert(ctx context.Context, collection string, doc map[string]interface{}) (string, error) {
	if s.failing[collection] {
		return "", errConnectionReset
	}
	return s.DocumentStore.Insert(ctx, collection, doc)
}

func (s *flakyStore) Query(ctx context.Context, collection string, opts repository.QueryOptions) ([]repository.Document, error) {
	if s.failing[collection] {
		return nil, errConnectionReset
	}
	return s.DocumentStore.Query(ctx, collection, opts)
}

func (s *flakyStore) Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if s.failing[collection] {
		return errConnectionReset
	}
	return s.DocumentStore.Patch(ctx, collection, id, fields)
}

func (s *flakyStore) Remove(ctx context.Context, collection, id string) error {
	if s.failing[collection] {
		return errConnectionReset
	}
	return s.DocumentStore.Remove(ctx, collection, id)
}

// staticRouter keeps handlers in registration order
type staticRouter struct {
	handlers []RecordHandler
}

func (r *staticRouter) Register(handler RecordHandler) {
	r.handlers = append(r.handlers, handler)
}

func (r *staticRouter) GetHandler(slug string) RecordHandler {
	for _, h := range r.handlers {
		if h.Descriptor().Slug == slug {
			return h
		}
	}
	return nil
}

func (r *staticRouter) Handlers() []RecordHandler {
	return r.handlers
}

type fixture struct {
	store   *memrepo.MemoryDocumentStore
	clock   *fakeClock
	metrics *metrics.Metrics
	logger  logger.Logger
}

func newFixture() *fixture {
	return &fixture{
		store:   memrepo.NewMemoryDocumentStore(),
		clock:   newFakeClock(),
		metrics: metrics.NewMetrics("test", prometheus.NewRegistry()),
		logger:  logger.NewNopLogger(),
	}
}

func (f *fixture) router(store repository.DocumentStore) *staticRouter {
	r := &staticRouter{}
	RegisterRecordServices(r, store, f.clock, f.metrics, f.logger)
	return r
}

func flight(from, to string, quote, cost float64) entity.FlightBooking {
	return entity.FlightBooking{
		BaseRecord: entity.BaseRecord{CustomerQuote: quote, SupplierCost: cost},
		From:       from,
		To:         to,
		FlightDate: "2024-05-01",
	}
}
