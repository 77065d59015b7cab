package insights

import "adpulse/internal/domain"

// CompareMetric computes the period-over-period delta for one metric value.
//
// Baseline policy, pinned here and applied everywhere:
//   - previous nil: no baseline, ChangePct and IsFavorable stay nil.
//   - previous 0, current > 0: reported as a 100% increase.
//   - previous 0, current 0: 0% change.
//
// IsFavorable is judged from the metric's declared polarity and is nil when
// the metric did not move or the metric has no declared polarity.
func CompareMetric(metric domain.Metric, current float64, previous *float64) domain.ComparisonResult {
	res := domain.ComparisonResult{
		Metric:       metric,
		CurrentValue: current,
	}
	if previous == nil {
		return res
	}
	res.PreviousValue = previous

	var pct float64
	switch {
	case *previous == 0 && current == 0:
		pct = 0
	case *previous == 0:
		pct = 100
	default:
		pct = (current - *previous) / *previous * 100
	}
	res.ChangePct = &pct

	if pct != 0 {
		if polarity, ok := metric.Polarity(); ok {
			favorable := (pct > 0) == (polarity == domain.PolarityPerformance)
			res.IsFavorable = &favorable
		}
	}
	return res
}

// Compare runs CompareMetric across every metric of an aggregate against its
// previous-period counters. When the aggregate has no previous block the
// results carry current values only.
//
// CPA deltas are suppressed (previous treated as absent) when either period
// has zero conversions: a 0-CPA side is "no acquisitions", not "free
// acquisitions", and a percentage against it is meaningless. ROAS and
// conversion-value rows are omitted when includeROAS is false, which callers
// set from HasConversionValue over the full data set.
func Compare(agg domain.AggregateRecord, includeROAS bool) []domain.ComparisonResult {
	results := make([]domain.ComparisonResult, 0, len(domain.AllMetrics))
	for _, metric := range domain.AllMetrics {
		if !includeROAS && (metric == domain.MetricROAS || metric == domain.MetricConversionValue) {
			continue
		}

		current := MetricValue(agg.PeriodCounters, metric)

		var previous *float64
		if agg.Previous != nil {
			v := MetricValue(*agg.Previous, metric)
			previous = &v
			if metric == domain.MetricCPA && (agg.Conversions == 0 || agg.Previous.Conversions == 0) {
				previous = nil
			}
		}

		results = append(results, CompareMetric(metric, current, previous))
	}
	return results
}
