package insights

import (
	"sort"

	"adpulse/internal/domain"
)

// UnknownBucket collects records whose key function produced no value.
// Every input record lands in exactly one bucket; nothing is dropped.
const UnknownBucket = "Unknown"

// AllSentinel is the platform's "no specific value" marker for demographic
// sub-dimensions.
const AllSentinel = "All"

// KeyFunc maps a record to its group key. An empty return routes the record
// to the Unknown bucket. Keys are stable internal identifiers; any
// user-facing label translation happens in the presentation layer.
type KeyFunc func(domain.PerformanceRecord) string

// DimensionKey groups by a single breakdown dimension.
func DimensionKey(name string) KeyFunc {
	return func(r domain.PerformanceRecord) string {
		return r.Dimension(name)
	}
}

// DemographicKey groups by the age+gender composite. The composite is built
// only when both parts are present and neither is the "All" sentinel;
// otherwise the record has no usable demographic key.
func DemographicKey() KeyFunc {
	return func(r domain.PerformanceRecord) string {
		age := r.Dimension("age")
		gender := r.Dimension("gender")
		if age == "" || gender == "" || age == AllSentinel || gender == AllSentinel {
			return ""
		}
		return age + "|" + gender
	}
}

// Group is one aggregated partition of a breakdown.
type Group struct {
	Key       string
	Aggregate domain.AggregateRecord
}

// Breakdown is the result of partitioning a record set by a dimension.
// Total is accumulated from the same per-group folds, so it always agrees
// with Aggregate over the whole input.
type Breakdown struct {
	Groups []Group
	Total  domain.AggregateRecord
}

// GroupBy partitions records by keyFn, aggregates each partition, and sorts
// groups by descending spend (ties broken by key for determinism).
func GroupBy(records []domain.PerformanceRecord, keyFn KeyFunc) Breakdown {
	buckets := make(map[string][]domain.PerformanceRecord)
	for _, r := range records {
		key := keyFn(r)
		if key == "" {
			key = UnknownBucket
		}
		buckets[key] = append(buckets[key], r)
	}

	b := Breakdown{Groups: make([]Group, 0, len(buckets))}
	var prevTotal domain.PeriodCounters
	hasPrev := false
	for key, rs := range buckets {
		agg := Aggregate(rs)
		b.Groups = append(b.Groups, Group{Key: key, Aggregate: agg})

		b.Total.PeriodCounters.Add(agg.PeriodCounters)
		b.Total.Count += agg.Count
		if agg.Previous != nil {
			hasPrev = true
			prevTotal.Add(*agg.Previous)
		}
	}
	if hasPrev {
		b.Total.Previous = &prevTotal
	}

	b.SortBy(domain.MetricSpend)
	return b
}

// SortBy reorders groups by descending value of the given metric, deriving
// rates per group when the metric is a rate. Equal values fall back to key
// order so output is deterministic.
func (b *Breakdown) SortBy(metric domain.Metric) {
	sort.Slice(b.Groups, func(i, j int) bool {
		vi := MetricValue(b.Groups[i].Aggregate.PeriodCounters, metric)
		vj := MetricValue(b.Groups[j].Aggregate.PeriodCounters, metric)
		if vi != vj {
			return vi > vj
		}
		return b.Groups[i].Key < b.Groups[j].Key
	})
}
