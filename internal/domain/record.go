package domain

import "strings"

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusPaused   Status = "PAUSED"
	StatusArchived Status = "ARCHIVED"
)

// Entity levels served by the ads platform API
type Level string

const (
	LevelCampaign Level = "campaign"
	LevelAdSet    Level = "adset"
	LevelAd       Level = "ad"
)

// PeriodCounters holds the raw counters for one entity over one period.
// All counters are non-negative; the API never reports negative activity.
type PeriodCounters struct {
	Spend           float64 `json:"spend"`
	Impressions     float64 `json:"impressions"`
	Clicks          float64 `json:"clicks"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
}

// Add accumulates another counter block into this one.
func (p *PeriodCounters) Add(other PeriodCounters) {
	p.Spend += other.Spend
	p.Impressions += other.Impressions
	p.Clicks += other.Clicks
	p.Conversions += other.Conversions
	p.ConversionValue += other.ConversionValue
}

// IsZero reports whether every counter is zero. An all-zero previous-period
// block is treated the same as an absent one: no comparison baseline.
func (p PeriodCounters) IsZero() bool {
	return p.Spend == 0 && p.Impressions == 0 && p.Clicks == 0 &&
		p.Conversions == 0 && p.ConversionValue == 0
}

// PerformanceRecord is one entity (campaign, ad set, ad, or breakdown bucket)
// over one reporting period. Previous is nil when no comparison period was
// requested upstream; nil means "no prior data", not zero activity.
type PerformanceRecord struct {
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Status     Status `json:"status"`
	PeriodCounters
	Previous   *PeriodCounters   `json:"previous,omitempty"`
	Dimensions map[string]string `json:"dimensions,omitempty"`
}

// Dimension returns the value of a breakdown dimension, or "" when the
// record does not carry it.
func (r PerformanceRecord) Dimension(name string) string {
	if r.Dimensions == nil {
		return ""
	}
	return r.Dimensions[name]
}

// AggregateRecord is the fold of a set of PerformanceRecords: summed
// counters plus the number of entities folded in. Produced only by the
// aggregator, never supplied externally.
type AggregateRecord struct {
	PeriodCounters
	Previous *PeriodCounters `json:"previous,omitempty"`
	Count    int             `json:"count"`
}

// DerivedMetrics are the rate metrics recomputed from raw counters. They are
// never stored; every consumer derives them from the counters it holds.
type DerivedMetrics struct {
	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	CPA            float64 `json:"cpa"`
	ROAS           float64 `json:"roas"`
	ConversionRate float64 `json:"conversion_rate"`
}

// Filter narrows a record set before aggregation. Zero values match
// everything.
type Filter struct {
	IDs    []string `json:"ids,omitempty"`
	Status Status   `json:"status,omitempty"`
	Search string   `json:"search,omitempty"`
}

// Matches reports whether a record passes the filter. Search is a
// case-insensitive substring match on the entity name.
func (f Filter) Matches(r PerformanceRecord) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(r.EntityName), strings.ToLower(f.Search)) {
		return false
	}
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if id == r.EntityID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
