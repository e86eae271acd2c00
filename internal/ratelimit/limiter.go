package ratelimit

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// LimitExceeded describes the limit a rejected request ran into.
type LimitExceeded struct {
	// Bucket is the scope name or the operation path for endpoint limits.
	Bucket string
	Config LimitConfig
	Count  int64
}

// Limiter enforces endpoint limits from operation metadata, falling back to the policy.
type Limiter struct {
	store  Store
	policy *Policy
}

// NewLimiter creates a new rate limiter.
func NewLimiter(store Store, policy *Policy) *Limiter {
	return &Limiter{
		store:  store,
		policy: policy,
	}
}

// Allow records a request from clientKey against op and reports the first limit it
// exceeds, or nil when the request is allowed.
func (l *Limiter) Allow(ctx context.Context, clientKey, method string, op *huma.Operation) (*LimitExceeded, error) {
	cfg := EndpointConfigFor(op)
	if cfg != nil && cfg.Disabled {
		return nil, nil
	}

	// Endpoint counters are keyed by route template so every key of /{key} shares one budget.
	if cfg != nil && len(cfg.Limits) > 0 {
		return l.check(ctx, clientKey, "route:"+op.Path, cfg.Limits)
	}

	for _, scope := range ScopesFor(method) {
		exceeded, err := l.check(ctx, clientKey, string(scope), l.policy.Limits[scope])
		if err != nil || exceeded != nil {
			return exceeded, err
		}
	}

	return nil, nil
}

func (l *Limiter) check(ctx context.Context, clientKey, bucket string, limits []LimitConfig) (*LimitExceeded, error) {
	for _, limit := range limits {
		key := fmt.Sprintf("%s:%s:%d", clientKey, bucket, limit.Window.Milliseconds())

		count, err := l.store.Record(ctx, key, limit.Window)
		if err != nil {
			return nil, err
		}

		if count > limit.Max {
			return &LimitExceeded{Bucket: bucket, Config: limit, Count: count}, nil
		}
	}

	return nil, nil
}
