package domain

import "time"

// Query identifies one record set requested from the ads platform.
type Query struct {
	Level     Level     `json:"level"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Dimension string    `json:"dimension,omitempty"`
	Compare   bool      `json:"compare"`
}

// Key returns a stable cache key for the query.
func (q Query) Key() string {
	key := string(q.Level) + "|" + q.From.Format("2006-01-02") + "|" + q.To.Format("2006-01-02") + "|" + q.Dimension
	if q.Compare {
		key += "|cmp"
	}
	return key
}

// PreviousRange returns the immediately preceding period of equal length.
func (q Query) PreviousRange() (from, to time.Time) {
	span := q.To.Sub(q.From) + 24*time.Hour
	return q.From.Add(-span), q.To.Add(-span)
}

// SummaryReport is the aggregate view over a filtered record set, with
// optional period-over-period comparisons.
type SummaryReport struct {
	Query              Query              `json:"query"`
	Aggregate          AggregateRecord    `json:"aggregate"`
	Derived            DerivedMetrics     `json:"derived"`
	Comparisons        []ComparisonResult `json:"comparisons,omitempty"`
	HasConversionValue bool               `json:"has_conversion_value"`
}

// BreakdownGroup is one dimension bucket in a breakdown report.
type BreakdownGroup struct {
	Key       string          `json:"key"`
	Aggregate AggregateRecord `json:"aggregate"`
	Derived   DerivedMetrics  `json:"derived"`
}

// BreakdownReport is the per-dimension view over a record set plus the
// whole-set total.
type BreakdownReport struct {
	Query              Query            `json:"query"`
	Dimension          string           `json:"dimension"`
	Groups             []BreakdownGroup `json:"groups"`
	Total              AggregateRecord  `json:"total"`
	TotalDerived       DerivedMetrics   `json:"total_derived"`
	HasConversionValue bool             `json:"has_conversion_value"`
}

// AccountReport is the health classification of every entity plus the
// account-level roll-up.
type AccountReport struct {
	Query    Query          `json:"query"`
	Status   AccountStatus  `json:"status"`
	Entities []EntityHealth `json:"entities"`
}
