package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/usecase/aggregation"
	"qtholidays-service/pkg/logger"
	"qtholidays-service/pkg/metrics"
	"qtholidays-service/pkg/utils"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ExportSheetName names the single sheet of a spreadsheet export
const ExportSheetName = "QT Holidays Data"

// ExportSink writes export rows in one file format
type ExportSink interface {
	Format() string
	ContentType() string
	Write(w io.Writer, sheet string, headers []string, rows []aggregation.Row) error
}

// ExportFile is a generated download
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Snapshot is the result of one summary fetch. It is never mutated after
// Fetch returns.
type Snapshot struct {
	Period      entity.Period       `json:"period"`
	From        *time.Time          `json:"from,omitempty"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Summary     aggregation.Summary `json:"summary"`
	Records     []entity.FlatRecord `json:"records"`
}

// ServiceTile is one entry of the dashboard
type ServiceTile struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"displayName"`
	Title       string `json:"title"`
	Description string `json:"description"`
	RecordCount int    `json:"recordCount"`
}

// SummaryService fetches every collection and aggregates the result
type SummaryService struct {
	router  ServiceRouter
	sinks   map[string]ExportSink
	clock   Clock
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	router ServiceRouter,
	clock Clock,
	m *metrics.Metrics,
	logger logger.Logger,
	sinks ...ExportSink,
) *SummaryService {
	return &SummaryService{
		router:  router,
		sinks:   lo.KeyBy(sinks, func(s ExportSink) string { return s.Format() }),
		clock:   clock,
		metrics: m,
		logger:  logger,
	}
}

// Fetch lists every registered collection concurrently, bounded by period.
// One failed collection fails the whole fetch.
func (s *SummaryService) Fetch(ctx context.Context, period entity.Period) (*Snapshot, error) {
	start := time.Now()
	defer func() {
		s.metrics.SummaryFetchTime.Observe(time.Since(start).Seconds())
	}()

	now := s.clock.Now()
	since := period.Since(now)
	handlers := s.router.Handlers()

	results := make([][]entity.FlatRecord, len(handlers))
	g, gctx := errgroup.WithContext(ctx)
	for i, handler := range handlers {
		i, handler := i, handler
		g.Go(func() error {
			records, err := handler.List(gctx, since)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("Summary fetch failed", "period", period, "error", err)
		s.metrics.ErrorsCount.WithLabelValues("summary").Inc()
		return nil, fmt.Errorf("summary fetch aborted: %w", err)
	}

	groups := make([]aggregation.Group[entity.FlatRecord], 0, len(handlers))
	for i, handler := range handlers {
		groups = append(groups, aggregation.Group[entity.FlatRecord]{
			DisplayName: handler.Descriptor().DisplayName,
			Records:     results[i],
		})
	}

	snapshot := &Snapshot{
		Period:      period,
		From:        since,
		GeneratedAt: now,
		Summary:     aggregation.Summarize(groups),
		Records:     lo.Flatten(results),
	}

	s.logger.Debug("Summary fetched", "period", period, "records", snapshot.Summary.TotalCount)
	return snapshot, nil
}

// Export fetches the period and renders it through the sink for format
func (s *SummaryService) Export(ctx context.Context, period entity.Period, format string) (*ExportFile, error) {
	sink, ok := s.sinks[format]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported export format %q", entity.ErrInvalidRecord, format)
	}

	snapshot, err := s.Fetch(ctx, period)
	if err != nil {
		return nil, err
	}

	rows := aggregation.Export(snapshot.Records, snapshot.GeneratedAt.Location())

	var buf bytes.Buffer
	if err := sink.Write(&buf, ExportSheetName, aggregation.Headers(rows), rows); err != nil {
		s.metrics.ErrorsCount.WithLabelValues("export").Inc()
		return nil, fmt.Errorf("failed to write %s export: %w", format, err)
	}

	s.metrics.ExportsWritten.WithLabelValues(format).Inc()
	s.logger.Info("Export generated", "period", period, "format", format, "rows", len(rows))

	return &ExportFile{
		Name:        fmt.Sprintf("QT_Holidays_Data_%s.%s", snapshot.GeneratedAt.Format(utils.DATE_LAYOUT), sink.Format()),
		ContentType: sink.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// Dashboard lists every service with its all-time record count
func (s *SummaryService) Dashboard(ctx context.Context) ([]ServiceTile, error) {
	snapshot, err := s.Fetch(ctx, entity.PeriodAll)
	if err != nil {
		return nil, err
	}

	return lo.Map(s.router.Handlers(), func(h RecordHandler, _ int) ServiceTile {
		d := h.Descriptor()
		return ServiceTile{
			Slug:        d.Slug,
			DisplayName: d.DisplayName,
			Title:       d.Title,
			Description: d.Description,
			RecordCount: snapshot.Summary.PerCollection[d.DisplayName].Count,
		}
	}), nil
}
