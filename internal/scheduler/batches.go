package scheduler

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type batchEntry struct {
	shiftIDs  []int64
	expiresAt time.Time
}

// BatchRegistry remembers, per opaque handle, which shift records a run
// produced, so the caller can revoke or publish the batch later. Entries
// expire after the configured TTL; expired and unknown handles behave the
// same so a double revoke is a clean no-op.
type BatchRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]batchEntry
}

func NewBatchRegistry(ttl time.Duration) *BatchRegistry {
	return &BatchRegistry{
		ttl:     ttl,
		entries: make(map[uuid.UUID]batchEntry),
	}
}

func (r *BatchRegistry) Put(handle uuid.UUID, shiftIDs []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[handle] = batchEntry{
		shiftIDs:  shiftIDs,
		expiresAt: time.Now().Add(r.ttl),
	}
}

// Take removes and returns the batch for a handle. The second return value
// is false when the handle is unknown, already consumed, or expired.
func (r *BatchRegistry) Take(handle uuid.UUID) ([]int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[handle]
	if !exists {
		return nil, false
	}
	delete(r.entries, handle)

	if time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.shiftIDs, true
}
