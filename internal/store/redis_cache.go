package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// RedisCacheRepository wraps a Repository with Redis caching for point lookups.
// Only found links are cached; misses always reach the underlying store.
type RedisCacheRepository struct {
	store  shortener.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "cache:link:",
		ttl:    ttl,
	}
}

// Get retrieves a link by key, checking the cache first.
func (r *RedisCacheRepository) Get(ctx context.Context, key shortener.Key) (*shortener.ShortLink, error) {
	if data, err := r.client.Get(ctx, r.prefix+string(key)).Bytes(); err == nil {
		if link, err := unmarshalLink(data); err == nil {
			return link, nil
		}
	}

	link, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	r.cache(ctx, link)

	return link, nil
}

// Upsert writes through to the store, then refreshes the cache.
func (r *RedisCacheRepository) Upsert(ctx context.Context, link *shortener.ShortLink) error {
	if err := r.store.Upsert(ctx, link); err != nil {
		return err
	}

	r.cache(ctx, link)

	return nil
}

// Create writes through to the store, then populates the cache.
func (r *RedisCacheRepository) Create(ctx context.Context, link *shortener.ShortLink) error {
	if err := r.store.Create(ctx, link); err != nil {
		return err
	}

	r.cache(ctx, link)

	return nil
}

func (r *RedisCacheRepository) cache(ctx context.Context, link *shortener.ShortLink) {
	payload, err := marshalLink(link)
	if err != nil {
		return
	}

	_ = r.client.Set(ctx, r.prefix+string(link.Key), payload, r.ttl).Err()
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

var _ shortener.Repository = (*RedisCacheRepository)(nil)
