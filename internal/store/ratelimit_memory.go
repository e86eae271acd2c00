package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/ratelimit"
)

const rateLimitSweepInterval = time.Minute

// window holds one client bucket's request times, oldest first.
type window struct {
	times  []time.Time
	length time.Duration
}

// RateLimitMemoryStore is an in-memory sliding-window implementation of ratelimit.Store.
// Buckets whose window has fully elapsed are dropped on a periodic sweep.
type RateLimitMemoryStore struct {
	mu        sync.Mutex
	requests  map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimitMemoryStore creates a new in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		requests: make(map[string]*window),
		now:      time.Now,
	}
}

func (s *RateLimitMemoryStore) Record(_ context.Context, key string, length time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	w, ok := s.requests[key]
	if !ok {
		w = &window{length: length}
		s.requests[key] = w
	}

	w.length = length
	w.times = append(w.times[expired(w.times, now.Add(-length)):], now)

	return int64(len(w.times)), nil
}

// sweep removes buckets with no request inside their window.
func (s *RateLimitMemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < rateLimitSweepInterval {
		return
	}

	s.lastSweep = now

	for key, w := range s.requests {
		if expired(w.times, now.Add(-w.length)) == len(w.times) {
			delete(s.requests, key)
		}
	}
}

// expired counts the leading timestamps at or before cutoff.
func expired(times []time.Time, cutoff time.Time) int {
	n := 0
	for n < len(times) && !times[n].After(cutoff) {
		n++
	}

	return n
}

var _ ratelimit.Store = (*RateLimitMemoryStore)(nil)
