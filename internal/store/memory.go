package store

import (
	"context"
	"sync"

	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[shortener.Key]shortener.ShortLink
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[shortener.Key]shortener.ShortLink),
	}
}

func (m *MemoryStore) Get(_ context.Context, key shortener.Key) (*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[key]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &link, nil
}

func (m *MemoryStore) Upsert(_ context.Context, link *shortener.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links[link.Key] = *link

	return nil
}

func (m *MemoryStore) Create(_ context.Context, link *shortener.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[link.Key]; ok {
		return shortener.ErrConflict
	}

	m.links[link.Key] = *link

	return nil
}

var _ shortener.Repository = (*MemoryStore)(nil)
