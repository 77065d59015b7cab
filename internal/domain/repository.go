package domain

import "context"

// interface for the ads platform API
type RecordSource interface {
	FetchRecords(ctx context.Context, level Level, from, to string, dimension string) ([]PerformanceRecord, error)
}

// interface for the in-process snapshot cache
type SnapshotStore interface {
	Get(key string) ([]PerformanceRecord, bool)
	Put(key string, records []PerformanceRecord)
}
