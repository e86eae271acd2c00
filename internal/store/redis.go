package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// RedisStore is a Redis implementation of shortener.Repository.
// Each link is a JSON string under "link:<key>".
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis-backed link store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "link:",
	}
}

func (r *RedisStore) Get(ctx context.Context, key shortener.Key) (*shortener.ShortLink, error) {
	data, err := r.client.Get(ctx, r.prefix+string(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return unmarshalLink(data)
}

func (r *RedisStore) Upsert(ctx context.Context, link *shortener.ShortLink) error {
	payload, err := marshalLink(link)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.prefix+string(link.Key), payload, 0).Err()
}

func (r *RedisStore) Create(ctx context.Context, link *shortener.ShortLink) error {
	payload, err := marshalLink(link)
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, r.prefix+string(link.Key), payload, 0).Result()
	if err != nil {
		return err
	}

	if !ok {
		return shortener.ErrConflict
	}

	return nil
}

var _ shortener.Repository = (*RedisStore)(nil)
