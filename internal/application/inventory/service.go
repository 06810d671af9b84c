package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/marketops/backoffice/internal/domain/inventory"
	"github.com/marketops/backoffice/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// recordsCacheKey is the gate key under which the full upstream record list
// is memoized.
const recordsCacheKey = "products"

// Gate throttles and memoizes upstream fetches. Implementations are shared by
// every request in the process.
type Gate interface {
	Do(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error)
	Invalidate(ctx context.Context) error
}

// QueryService runs the inventory query pipeline on top of a record source.
type QueryService struct {
	source inventory.RecordSource
	gate   Gate
	logger *zap.Logger
}

// ServiceOption configures a QueryService
type ServiceOption func(*QueryService)

// WithLogger sets the logger used by the service
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *QueryService) {
		s.logger = logger
	}
}

// NewQueryService creates a new QueryService
func NewQueryService(source inventory.RecordSource, gate Gate, opts ...ServiceOption) *QueryService {
	s := &QueryService{
		source: source,
		gate:   gate,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ inventory.Provider = (*QueryService)(nil)

// SourceName returns the name of the configured upstream
func (s *QueryService) SourceName() string {
	return s.source.Name()
}

// GetStockLevels filters, sorts and paginates the upstream inventory.
// Missing upstream credentials resolve with an empty page and Error set. An
// upstream error answer resolves with the records fetched before it and Error
// set. Every other upstream failure is returned as an error.
func (s *QueryService) GetStockLevels(ctx context.Context, opts inventory.QueryOptions) (*inventory.StockLevelsResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "get_stock_levels")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrPage, opts.Page,
		telemetry.SpanAttrLimit, opts.Limit,
		telemetry.SpanAttrProvider, s.source.Name(),
		telemetry.SpanAttrGateKey, recordsCacheKey,
	)
	if opts.SortBy != nil {
		telemetry.SetAttributes(span, telemetry.SpanAttrSortBy, *opts.SortBy)
	}

	var resolved string
	items, err := s.loadItems(ctx)
	if err != nil && s.partialUpstream(err) {
		telemetry.SetAttributes(span, telemetry.SpanAttrUpstreamError, true)
		resolved = err.Error()
	} else if err != nil {
		var cfgErr *inventory.ConfigError
		if errors.As(err, &cfgErr) {
			s.logger.Warn("Inventory source not configured",
				zap.String("source", s.source.Name()),
				zap.Strings("missing", cfgErr.Missing),
			)
			telemetry.SetAttributes(span, telemetry.SpanAttrConfigError, true)
			return &inventory.StockLevelsResult{
				PaginatedResult: inventory.Paginate([]inventory.InventoryItem{}, opts.Page, opts.Limit),
				QueryOptions:    opts,
				Error:           cfgErr.Error(),
			}, nil
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	filtered := inventory.Filter(items, opts)
	sorted := inventory.ApplySort(filtered, opts)
	page := inventory.Paginate(sorted, opts.Page, opts.Limit)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRecordCount, len(items),
		telemetry.SpanAttrResultTotal, page.Total,
	)
	s.logger.Debug("Inventory query served",
		zap.Int("total", len(items)),
		zap.Int("matched", page.Total),
		zap.Int("returned", len(page.Data)),
	)

	return &inventory.StockLevelsResult{
		PaginatedResult: page,
		QueryOptions:    opts,
		Error:           resolved,
	}, nil
}

// GetFilterStats aggregates filter control values over the full dataset, or
// over the records fetched before an upstream error answer.
// A *inventory.ConfigError is returned unchanged so callers can tell it
// apart from upstream failures.
func (s *QueryService) GetFilterStats(ctx context.Context) (*inventory.FilterStats, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "get_filter_stats")
	defer span.End()

	items, err := s.loadItems(ctx)
	if err != nil && !s.partialUpstream(err) {
		telemetry.RecordError(span, err)
		return nil, err
	}

	stats := inventory.ComputeFilterStats(items)
	return &stats, nil
}

// GetSummary computes stock and valuation metrics over the full dataset.
func (s *QueryService) GetSummary(ctx context.Context) (*inventory.Summary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "get_summary")
	defer span.End()

	items, err := s.loadItems(ctx)
	if err != nil && !s.partialUpstream(err) {
		telemetry.RecordError(span, err)
		return nil, err
	}

	summary := inventory.Summarize(items)
	return &summary, nil
}

// RefreshCache drops every memoized upstream response. The throttle is left
// untouched, so the next fetch still waits out the minimum interval.
func (s *QueryService) RefreshCache(ctx context.Context) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "refresh_cache")
	defer span.End()

	if err := s.gate.Invalidate(ctx); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to invalidate inventory cache: %w", err)
	}
	s.logger.Info("Inventory cache invalidated", zap.String("source", s.source.Name()))
	return nil
}

// partialUpstream reports whether err is an upstream error answer whose
// partial records can still be served.
func (s *QueryService) partialUpstream(err error) bool {
	var upErr *inventory.UpstreamError
	if !errors.As(err, &upErr) {
		return false
	}
	s.logger.Warn("Serving partial inventory after upstream error",
		zap.String("source", s.source.Name()),
		zap.String("message", upErr.Message),
		zap.Int("records", len(upErr.Records)),
	)
	return true
}

// loadItems returns the normalized upstream dataset, going through the gate.
// On an *inventory.UpstreamError the records collected before it are
// returned alongside the error and nothing is cached.
func (s *QueryService) loadItems(ctx context.Context) ([]inventory.InventoryItem, error) {
	if err := s.source.Validate(); err != nil {
		return nil, err
	}

	payload, err := s.gate.Do(ctx, recordsCacheKey, func(ctx context.Context) ([]byte, error) {
		var records []inventory.RawRecord
		var fetchErr error
		labels := telemetry.RegionLabels("upstream_fetch", map[string]string{
			telemetry.ProfilingLabelProvider: s.source.Name(),
		})
		telemetry.WithProfilingLabels(ctx, labels, func(ctx context.Context) {
			records, fetchErr = s.source.FetchRecords(ctx)
		})
		if fetchErr != nil {
			return nil, fetchErr
		}
		return json.Marshal(records)
	})
	if err != nil {
		var upErr *inventory.UpstreamError
		if errors.As(err, &upErr) {
			return inventory.NormalizeAll(upErr.Records), err
		}
		return nil, err
	}

	records, err := decodeRecords(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: cached payload: %v", inventory.ErrSourceInvalidResponse, err)
	}
	return inventory.NormalizeAll(records), nil
}

func decodeRecords(payload []byte) ([]inventory.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var records []inventory.RawRecord
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}
