package infrastructure

import (
	"sync"
	"time"

	"adpulse/internal/domain"
	"adpulse/pkg/logger"
)

type snapshot struct {
	records  []domain.PerformanceRecord
	storedAt time.Time
}

// implements domain.SnapshotStore: an in-memory, TTL-bounded cache of
// fetched record sets. Dashboard polling tends to repeat the same query;
// this keeps repeat queries off the platform API. Last write wins.
type SnapshotRepository struct {
	data   map[string]snapshot
	ttl    time.Duration
	mutex  sync.RWMutex
	logger *logger.Logger

	now func() time.Time
}

// creates a new snapshot repository
func NewSnapshotRepository(ttl time.Duration, logger *logger.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		data:   make(map[string]snapshot),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func (r *SnapshotRepository) Get(key string) ([]domain.PerformanceRecord, bool) {
	r.mutex.RLock()
	snap, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists {
		return nil, false
	}
	if r.now().Sub(snap.storedAt) > r.ttl {
		r.mutex.Lock()
		// re-check under the write lock; a newer write must survive
		if cur, ok := r.data[key]; ok && r.now().Sub(cur.storedAt) > r.ttl {
			delete(r.data, key)
		}
		r.mutex.Unlock()
		return nil, false
	}
	return snap.records, true
}

func (r *SnapshotRepository) Put(key string, records []domain.PerformanceRecord) {
	r.mutex.Lock()
	r.data[key] = snapshot{records: records, storedAt: r.now()}
	size := len(r.data)
	r.mutex.Unlock()

	r.logger.WithFields(map[string]any{
		"key":     key,
		"records": len(records),
		"entries": size,
	}).Debug("Stored snapshot")
}
