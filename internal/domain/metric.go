package domain

// Metric identifies one reported or derived metric.
type Metric string

const (
	MetricSpend           Metric = "spend"
	MetricImpressions     Metric = "impressions"
	MetricClicks          Metric = "clicks"
	MetricConversions     Metric = "conversions"
	MetricConversionValue Metric = "conversion_value"
	MetricCTR             Metric = "ctr"
	MetricCPC             Metric = "cpc"
	MetricCPA             Metric = "cpa"
	MetricROAS            Metric = "roas"
	MetricConversionRate  Metric = "conversion_rate"
)

// Polarity states which direction of movement is favorable for a metric.
type Polarity string

const (
	// PolarityCost marks metrics where a decrease is favorable.
	PolarityCost Polarity = "cost"
	// PolarityPerformance marks metrics where an increase is favorable.
	PolarityPerformance Polarity = "performance"
)

// metricPolarity is the single source of truth for favorability direction.
// Every metric used anywhere in the system must have an entry here; a metric
// without one cannot be compared (see Metric.Polarity).
var metricPolarity = map[Metric]Polarity{
	MetricSpend:           PolarityCost,
	MetricCPC:             PolarityCost,
	MetricCPA:             PolarityCost,
	MetricImpressions:     PolarityPerformance,
	MetricClicks:          PolarityPerformance,
	MetricConversions:     PolarityPerformance,
	MetricConversionValue: PolarityPerformance,
	MetricCTR:             PolarityPerformance,
	MetricROAS:            PolarityPerformance,
	MetricConversionRate:  PolarityPerformance,
}

// AllMetrics lists every metric in stable report order.
var AllMetrics = []Metric{
	MetricSpend,
	MetricImpressions,
	MetricClicks,
	MetricConversions,
	MetricConversionValue,
	MetricCTR,
	MetricCPC,
	MetricCPA,
	MetricROAS,
	MetricConversionRate,
}

// Polarity returns the declared polarity for the metric and whether one is
// declared.
func (m Metric) Polarity() (Polarity, bool) {
	p, ok := metricPolarity[m]
	return p, ok
}

// ComparisonResult is the period-over-period delta for one metric.
// PreviousValue, ChangePct and IsFavorable are nil when no baseline exists;
// IsFavorable is also nil when the metric did not move.
type ComparisonResult struct {
	Metric        Metric   `json:"metric"`
	CurrentValue  float64  `json:"current_value"`
	PreviousValue *float64 `json:"previous_value,omitempty"`
	ChangePct     *float64 `json:"change_pct,omitempty"`
	IsFavorable   *bool    `json:"is_favorable,omitempty"`
}
