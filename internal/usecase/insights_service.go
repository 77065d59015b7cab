package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"adpulse/internal/domain"
	"adpulse/internal/insights"
	"adpulse/pkg/logger"
	"adpulse/pkg/metrics"
)

const dateLayout = "2006-01-02"

// InsightsService runs the insights engine over record sets fetched from the
// ads platform. All computation is delegated to the pure insights package;
// this layer only fetches, caches, and reports.
type InsightsService struct {
	source     domain.RecordSource
	cache      domain.SnapshotStore
	classifier *insights.Classifier
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// NewInsightsService creates a new insights service
func NewInsightsService(
	source domain.RecordSource,
	cache domain.SnapshotStore,
	classifier *insights.Classifier,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *InsightsService {
	return &InsightsService{
		source:     source,
		cache:      cache,
		classifier: classifier,
		logger:     logger,
		metrics:    metrics,
	}
}

// Summary aggregates the filtered record set and, when the query requests
// comparison, computes period-over-period deltas for every metric.
func (s *InsightsService) Summary(ctx context.Context, q domain.Query, f domain.Filter) (*domain.SummaryReport, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)

	records, err := s.loadRecords(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	filtered := insights.Apply(records, f)
	agg := insights.Aggregate(filtered)
	hasValue := insights.HasConversionValue(filtered)

	report := &domain.SummaryReport{
		Query:              q,
		Aggregate:          agg,
		Derived:            insights.Derive(agg.PeriodCounters),
		HasConversionValue: hasValue,
	}
	if q.Compare {
		report.Comparisons = insights.Compare(agg, hasValue)
	}

	s.metrics.RecordInsightQuery("summary", time.Since(start))

	log.WithFields(map[string]any{
		"level":    q.Level,
		"records":  len(records),
		"filtered": len(filtered),
		"compare":  q.Compare,
	}).Info("Computed summary report")

	return report, nil
}

// Breakdown partitions the record set by the query's dimension and
// aggregates each bucket. The "demographic" dimension groups by the
// age+gender composite.
func (s *InsightsService) Breakdown(ctx context.Context, q domain.Query, f domain.Filter) (*domain.BreakdownReport, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)

	if q.Dimension == "" {
		return nil, fmt.Errorf("breakdown requires a dimension")
	}

	records, err := s.loadRecords(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	filtered := insights.Apply(records, f)

	keyFn := insights.DimensionKey(q.Dimension)
	if q.Dimension == "demographic" {
		keyFn = insights.DemographicKey()
	}
	breakdown := insights.GroupBy(filtered, keyFn)

	report := &domain.BreakdownReport{
		Query:              q,
		Dimension:          q.Dimension,
		Groups:             make([]domain.BreakdownGroup, 0, len(breakdown.Groups)),
		Total:              breakdown.Total,
		TotalDerived:       insights.Derive(breakdown.Total.PeriodCounters),
		HasConversionValue: insights.HasConversionValue(filtered),
	}
	for _, g := range breakdown.Groups {
		report.Groups = append(report.Groups, domain.BreakdownGroup{
			Key:       g.Key,
			Aggregate: g.Aggregate,
			Derived:   insights.Derive(g.Aggregate.PeriodCounters),
		})
	}

	s.metrics.RecordInsightQuery("breakdown", time.Since(start))

	log.WithFields(map[string]any{
		"level":     q.Level,
		"dimension": q.Dimension,
		"groups":    len(report.Groups),
		"records":   len(filtered),
	}).Info("Computed breakdown report")

	return report, nil
}

// Health classifies every entity in the record set and rolls the results up
// to an account status.
func (s *InsightsService) Health(ctx context.Context, q domain.Query) (*domain.AccountReport, error) {
	start := time.Now()
	log := s.logger.WithContext(ctx)

	records, err := s.loadRecords(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	entities := make([]domain.EntityHealth, 0, len(records))
	for _, r := range records {
		agg := insights.Aggregate([]domain.PerformanceRecord{r})
		entities = append(entities, domain.EntityHealth{
			EntityID:   r.EntityID,
			EntityName: r.EntityName,
			Status:     r.Status,
			Health:     s.classifier.Classify(agg),
		})
	}

	report := &domain.AccountReport{
		Query:    q,
		Status:   insights.ClassifyAccount(entities),
		Entities: entities,
	}

	s.metrics.RecordInsightQuery("health", time.Since(start))

	log.WithFields(map[string]any{
		"level":    q.Level,
		"entities": len(entities),
		"status":   report.Status,
	}).Info("Computed account health report")

	return report, nil
}

// loadRecords serves the query from the snapshot cache when possible,
// otherwise fetches from the platform. When the query requests comparison
// the current and previous periods are fetched concurrently and previous
// counters are matched onto current records by entity id.
func (s *InsightsService) loadRecords(ctx context.Context, q domain.Query) ([]domain.PerformanceRecord, error) {
	if cached, ok := s.cache.Get(q.Key()); ok {
		s.metrics.RecordCacheHit()
		return cached, nil
	}
	s.metrics.RecordCacheMiss()

	from := q.From.Format(dateLayout)
	to := q.To.Format(dateLayout)

	if !q.Compare {
		records, err := s.source.FetchRecords(ctx, q.Level, from, to, q.Dimension)
		if err != nil {
			return nil, err
		}
		s.cache.Put(q.Key(), records)
		return records, nil
	}

	prevFrom, prevTo := q.PreviousRange()

	var current, previous []domain.PerformanceRecord
	var curErr, prevErr error

	// fetch both periods concurrently
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		current, curErr = s.source.FetchRecords(ctx, q.Level, from, to, q.Dimension)
	}()

	go func() {
		defer wg.Done()
		previous, prevErr = s.source.FetchRecords(ctx, q.Level, prevFrom.Format(dateLayout), prevTo.Format(dateLayout), q.Dimension)
	}()

	wg.Wait()

	if curErr != nil {
		return nil, fmt.Errorf("current period fetch failed: %w", curErr)
	}
	if prevErr != nil {
		// degraded mode: serve current-period data without comparisons
		s.logger.WithContext(ctx).WithError(prevErr).Warn("Previous period fetch failed, comparison suppressed")
		s.cache.Put(q.Key(), current)
		return current, nil
	}

	merged := matchPrevious(current, previous)
	s.cache.Put(q.Key(), merged)
	return merged, nil
}

// matchPrevious attaches previous-period counters to current records by
// entity id. Entities absent from the previous period keep a nil Previous,
// which downstream reads as "no baseline".
func matchPrevious(current, previous []domain.PerformanceRecord) []domain.PerformanceRecord {
	byID := make(map[string]domain.PeriodCounters, len(previous))
	for _, p := range previous {
		byID[p.EntityID] = p.PeriodCounters
	}

	merged := make([]domain.PerformanceRecord, len(current))
	for i, r := range current {
		if prev, ok := byID[r.EntityID]; ok {
			counters := prev
			r.Previous = &counters
		}
		merged[i] = r
	}
	return merged
}
