package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/ratelimit"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Record(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

func tightPolicy() *ratelimit.Policy {
	return &ratelimit.Policy{
		Limits: map[ratelimit.Scope][]ratelimit.LimitConfig{
			ratelimit.ScopeRead:  {{Window: time.Minute, Max: 2}},
			ratelimit.ScopeWrite: {{Window: time.Minute, Max: 1}},
		},
	}
}

func TestLimiter_Allow(t *testing.T) {
	t.Run("applies scope limits by method", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), tightPolicy())

		exceeded, err := limiter.Allow(context.Background(), "client", http.MethodPost, nil)
		require.NoError(t, err)
		assert.Nil(t, exceeded)

		exceeded, err = limiter.Allow(context.Background(), "client", http.MethodPost, nil)
		require.NoError(t, err)
		require.NotNil(t, exceeded)
		assert.Equal(t, "write", exceeded.Bucket)
		assert.Equal(t, int64(2), exceeded.Count)

		// Reads have their own budget.
		exceeded, err = limiter.Allow(context.Background(), "client", http.MethodGet, nil)
		require.NoError(t, err)
		assert.Nil(t, exceeded)
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), tightPolicy())

		_, _ = limiter.Allow(context.Background(), "client-a", http.MethodPost, nil)

		exceeded, err := limiter.Allow(context.Background(), "client-b", http.MethodPost, nil)

		require.NoError(t, err)
		assert.Nil(t, exceeded)
	})

	t.Run("endpoint limits replace scope limits", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), tightPolicy())
		op := &huma.Operation{
			Path: "/shorten",
			Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{
					Limits: []ratelimit.LimitConfig{{Window: time.Minute, Max: 3}},
				},
			},
		}

		for range 3 {
			exceeded, err := limiter.Allow(context.Background(), "client", http.MethodPost, op)
			require.NoError(t, err)
			assert.Nil(t, exceeded)
		}

		exceeded, err := limiter.Allow(context.Background(), "client", http.MethodPost, op)
		require.NoError(t, err)
		require.NotNil(t, exceeded)
		assert.Equal(t, "route:/shorten", exceeded.Bucket)
	})

	t.Run("disabled endpoints are never limited", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(failingStore{}, tightPolicy())
		op := &huma.Operation{
			Metadata: map[string]any{ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true}},
		}

		exceeded, err := limiter.Allow(context.Background(), "client", http.MethodGet, op)

		require.NoError(t, err)
		assert.Nil(t, exceeded)
	})

	t.Run("returns store errors", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(failingStore{}, tightPolicy())

		_, err := limiter.Allow(context.Background(), "client", http.MethodGet, nil)

		assert.Error(t, err)
	})
}

func TestScopesFor(t *testing.T) {
	assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}, ratelimit.ScopesFor(http.MethodGet))
	assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}, ratelimit.ScopesFor(http.MethodPost))
}

func TestEndpointConfigFor(t *testing.T) {
	t.Run("returns nil without metadata", func(t *testing.T) {
		assert.Nil(t, ratelimit.EndpointConfigFor(nil))
		assert.Nil(t, ratelimit.EndpointConfigFor(&huma.Operation{}))
	})

	t.Run("ignores foreign metadata types", func(t *testing.T) {
		op := &huma.Operation{Metadata: map[string]any{ratelimit.MetadataKey: "nope"}}

		assert.Nil(t, ratelimit.EndpointConfigFor(op))
	})
}
