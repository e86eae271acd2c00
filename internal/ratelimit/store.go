package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per bucket over a sliding window. The memory store suits a
// single server process; the Redis store lets replicas share one set of counters.
type Store interface {
	// Record adds one request to bucket at the current time and returns how many
	// requests the bucket holds within window, this one included.
	Record(ctx context.Context, bucket string, window time.Duration) (int64, error)
}
