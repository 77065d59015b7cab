package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpulse/internal/domain"
	"adpulse/internal/insights"
	"adpulse/pkg/logger"
	"adpulse/pkg/metrics"
)

var sharedMetrics = metrics.New()

type fakeSource struct {
	records map[string][]domain.PerformanceRecord // keyed by from date
	err     error
	calls   int
}

func (f *fakeSource) FetchRecords(_ context.Context, _ domain.Level, from, _ string, _ string) ([]domain.PerformanceRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[from], nil
}

type fakeCache struct {
	data map[string][]domain.PerformanceRecord
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]domain.PerformanceRecord)}
}

func (c *fakeCache) Get(key string) ([]domain.PerformanceRecord, bool) {
	records, ok := c.data[key]
	return records, ok
}

func (c *fakeCache) Put(key string, records []domain.PerformanceRecord) {
	c.data[key] = records
}

func newService(source *fakeSource, cache *fakeCache) *InsightsService {
	return NewInsightsService(
		source,
		cache,
		insights.NewClassifier(insights.DefaultThresholds()),
		logger.New("error"),
		sharedMetrics,
	)
}

func testQuery(compare bool) domain.Query {
	return domain.Query{
		Level:   domain.LevelCampaign,
		From:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		Compare: compare,
	}
}

func TestSummary(t *testing.T) {
	source := &fakeSource{records: map[string][]domain.PerformanceRecord{
		"2026-08-01": {
			{EntityID: "1", EntityName: "Brand", Status: domain.StatusActive, PeriodCounters: domain.PeriodCounters{Spend: 100, Impressions: 10000, Clicks: 200, Conversions: 5, ConversionValue: 300}},
			{EntityID: "2", EntityName: "Retargeting", Status: domain.StatusActive, PeriodCounters: domain.PeriodCounters{Spend: 50, Impressions: 2000, Clicks: 100, Conversions: 5, ConversionValue: 200}},
		},
	}}
	svc := newService(source, newFakeCache())

	report, err := svc.Summary(context.Background(), testQuery(false), domain.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Aggregate.Count)
	assert.Equal(t, 150.0, report.Aggregate.Spend)
	assert.InDelta(t, 300.0/12000.0*100, report.Derived.CTR, 0.0001)
	assert.True(t, report.HasConversionValue)
	assert.Empty(t, report.Comparisons, "comparisons only on request")
}

func TestSummary_WithComparison(t *testing.T) {
	source := &fakeSource{records: map[string][]domain.PerformanceRecord{
		"2026-08-01": {
			{EntityID: "1", Status: domain.StatusActive, PeriodCounters: domain.PeriodCounters{Spend: 120, Clicks: 60}},
		},
		// previous period: 28 days immediately before
		"2026-07-04": {
			{EntityID: "1", Status: domain.StatusActive, PeriodCounters: domain.PeriodCounters{Spend: 100, Clicks: 50}},
			{EntityID: "gone", Status: domain.StatusActive, PeriodCounters: domain.PeriodCounters{Spend: 999}},
		},
	}}
	svc := newService(source, newFakeCache())

	report, err := svc.Summary(context.Background(), testQuery(true), domain.Filter{})
	require.NoError(t, err)
	require.NotNil(t, report.Aggregate.Previous)
	assert.Equal(t, 100.0, report.Aggregate.Previous.Spend, "previous matched by entity id, unmatched entities ignored")
	require.NotEmpty(t, report.Comparisons)

	for _, c := range report.Comparisons {
		if c.Metric == domain.MetricSpend {
			require.NotNil(t, c.ChangePct)
			assert.InDelta(t, 20.0, *c.ChangePct, 0.0001)
			require.NotNil(t, c.IsFavorable)
			assert.False(t, *c.IsFavorable)
		}
	}
}

func TestSummary_PreviousFetchFailureDegrades(t *testing.T) {
	source := &fakeSource{records: map[string][]domain.PerformanceRecord{
		"2026-08-01": {{EntityID: "1", PeriodCounters: domain.PeriodCounters{Spend: 10}}},
	}}
	svc := newService(source, newFakeCache())
	svc.source = &flakySource{inner: source}

	report, err := svc.Summary(context.Background(), testQuery(true), domain.Filter{})
	require.NoError(t, err)
	assert.Nil(t, report.Aggregate.Previous)
	require.NotEmpty(t, report.Comparisons)
	assert.Nil(t, report.Comparisons[0].ChangePct)
}

// flakySource fails every fetch except the current-period one.
type flakySource struct {
	inner *fakeSource
}

func (f *flakySource) FetchRecords(ctx context.Context, level domain.Level, from, to string, dimension string) ([]domain.PerformanceRecord, error) {
	if from != "2026-08-01" {
		return nil, errors.New("platform unavailable")
	}
	return f.inner.FetchRecords(ctx, level, from, to, dimension)
}

func TestSummary_UsesCache(t *testing.T) {
	source := &fakeSource{records: map[string][]domain.PerformanceRecord{
		"2026-08-01": {{EntityID: "1", PeriodCounters: domain.PeriodCounters{Spend: 10}}},
	}}
	svc := newService(source, newFakeCache())

	_, err := svc.Summary(context.Background(), testQuery(false), domain.Filter{})
	require.NoError(t, err)
	_, err = svc.Summary(context.Background(), testQuery(false), domain.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls, "second query must be served from cache")
}

func TestBreakdown(t *testing.T) {
	q := testQuery(false)
	q.Dimension = "platform"

	source := &fakeSource{records: map[string][]domain.PerformanceRecord{
		"2026-08-01": {
			{EntityID: "1", PeriodCounters: domain.PeriodCounters{Spend: 30}, Dimensions: map[string]string{"platform": "facebook"}},
			{EntityID: "2", PeriodCounters: domain.PeriodCounters{Spend: 70}, Dimensions: map[string]string{"platform": "instagram"}},
			{EntityID: "3", PeriodCounters: domain.PeriodCounters{Spend: 5}},
		},
	}}
	svc := newService(source, newFakeCache())

	report, err := svc.Breakdown(context.Background(), q, domain.Filter{})
	require.NoError(t, err)

	require.Len(t, report.Groups, 3)
	assert.Equal(t, "instagram", report.Groups[0].Key)
	assert.Equal(t, insights.UnknownBucket, report.Groups[2].Key)
	assert.Equal(t, 105.0, report.Total.Spend)
}

func TestBreakdown_RequiresDimension(t *testing.T) {
	svc := newService(&fakeSource{}, newFakeCache())

	_, err := svc.Breakdown(context.Background(), testQuery(false), domain.Filter{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	source := &fakeSource{records: map[string][]domain.PerformanceRecord{
		"2026-08-01": {
			{EntityID: "1", EntityName: "ok", Status: domain.StatusActive, PeriodCounters: domain.PeriodCounters{Spend: 10, Conversions: 2, Clicks: 20, Impressions: 500}},
			{EntityID: "2", EntityName: "bad", Status: domain.StatusActive, PeriodCounters: domain.PeriodCounters{Spend: 80, Clicks: 3}},
		},
	}}
	svc := newService(source, newFakeCache())

	report, err := svc.Health(context.Background(), testQuery(false))
	require.NoError(t, err)

	assert.Equal(t, domain.AccountIssues, report.Status)
	require.Len(t, report.Entities, 2)
	assert.Equal(t, domain.ReasonGettingResults, report.Entities[0].Health.Reason)
	assert.Equal(t, domain.ReasonNoResults, report.Entities[1].Health.Reason)
}

func TestHealth_EmptyAccount(t *testing.T) {
	source := &fakeSource{records: map[string][]domain.PerformanceRecord{}}
	svc := newService(source, newFakeCache())

	report, err := svc.Health(context.Background(), testQuery(false))
	require.NoError(t, err)
	assert.Equal(t, domain.AccountNewUser, report.Status)
	assert.Empty(t, report.Entities)
}

func TestLoadRecords_FetchError(t *testing.T) {
	source := &fakeSource{err: errors.New("boom")}
	svc := newService(source, newFakeCache())

	_, err := svc.Summary(context.Background(), testQuery(false), domain.Filter{})
	assert.Error(t, err)
}
