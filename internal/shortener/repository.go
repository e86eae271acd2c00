package shortener

import "context"

// Repository is the key-value store holding short links, addressed and partitioned by key.
type Repository interface {
	// Get performs a point lookup. It returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key Key) (*ShortLink, error)
	// Upsert creates the link or replaces an existing one with the same key.
	Upsert(ctx context.Context, link *ShortLink) error
	// Create stores the link only if its key is absent, returning ErrConflict otherwise.
	Create(ctx context.Context, link *ShortLink) error
}
