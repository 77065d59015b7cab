package insights

import "adpulse/internal/domain"

// Aggregate folds a record set into summed counters. Derived metrics are
// always recomputed from the summed counters via Derive; averaging
// per-record rates would weight a 100-impression ad the same as a
// 100k-impression one and is deliberately impossible here.
//
// The previous-period block is summed independently and attached only when
// at least one record carries previous data with activity; otherwise
// Previous stays nil so downstream comparison is suppressed rather than run
// against a fabricated zero baseline.
func Aggregate(records []domain.PerformanceRecord) domain.AggregateRecord {
	agg := domain.AggregateRecord{Count: len(records)}

	var prev domain.PeriodCounters
	hasPrev := false
	for _, r := range records {
		agg.PeriodCounters.Add(r.PeriodCounters)
		if r.Previous != nil && !r.Previous.IsZero() {
			hasPrev = true
		}
		if r.Previous != nil {
			prev.Add(*r.Previous)
		}
	}
	if hasPrev {
		agg.Previous = &prev
	}
	return agg
}

// Apply returns the records matching the filter. The input is never
// mutated; an empty filter returns the input slice as-is.
func Apply(records []domain.PerformanceRecord, f domain.Filter) []domain.PerformanceRecord {
	if f.Status == "" && f.Search == "" && len(f.IDs) == 0 {
		return records
	}
	out := make([]domain.PerformanceRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
