// Package insights is the pure computation core: metric derivation,
// aggregation, period comparison, dimensional breakdowns, and health
// classification. Nothing in this package performs I/O or holds state;
// every function returns identical output for identical input.
package insights

import "adpulse/internal/domain"

// Derive computes the rate metrics from one counter block. All divisions are
// guarded: a zero denominator yields 0 for that metric, never NaN or Inf.
func Derive(c domain.PeriodCounters) domain.DerivedMetrics {
	var m domain.DerivedMetrics
	if c.Impressions > 0 {
		m.CTR = c.Clicks / c.Impressions * 100
	}
	if c.Clicks > 0 {
		m.CPC = c.Spend / c.Clicks
		m.ConversionRate = c.Conversions / c.Clicks * 100
	}
	if c.Conversions > 0 {
		m.CPA = c.Spend / c.Conversions
	}
	if c.Spend > 0 {
		m.ROAS = c.ConversionValue / c.Spend
	}
	return m
}

// HasConversionValue reports whether any record in the set carries conversion
// value. Computed once per data set; when false, consumers omit ROAS and
// conversion-value columns entirely instead of showing rows of zeros.
func HasConversionValue(records []domain.PerformanceRecord) bool {
	for _, r := range records {
		if r.ConversionValue > 0 {
			return true
		}
		if r.Previous != nil && r.Previous.ConversionValue > 0 {
			return true
		}
	}
	return false
}

// MetricValue reads one metric off a counter block, deriving rates on the
// fly. Unknown metrics read as 0.
func MetricValue(c domain.PeriodCounters, metric domain.Metric) float64 {
	switch metric {
	case domain.MetricSpend:
		return c.Spend
	case domain.MetricImpressions:
		return c.Impressions
	case domain.MetricClicks:
		return c.Clicks
	case domain.MetricConversions:
		return c.Conversions
	case domain.MetricConversionValue:
		return c.ConversionValue
	}
	d := Derive(c)
	switch metric {
	case domain.MetricCTR:
		return d.CTR
	case domain.MetricCPC:
		return d.CPC
	case domain.MetricCPA:
		return d.CPA
	case domain.MetricROAS:
		return d.ROAS
	case domain.MetricConversionRate:
		return d.ConversionRate
	}
	return 0
}
