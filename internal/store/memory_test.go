package store_test

import (
	"context"
	"testing"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Get(t *testing.T) {
	t.Run("returns link when found", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Create(context.Background(), &shortener.ShortLink{Key: "abc123", LongURL: "https://example.com"})

		link, err := s.Get(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, shortener.Key("abc123"), link.Key)
		assert.Equal(t, "https://example.com", link.LongURL)
	})

	t.Run("returns ErrNotFound when key does not exist", func(t *testing.T) {
		s := store.NewMemoryStore()

		link, err := s.Get(context.Background(), "notfound")

		assert.Nil(t, link)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("returned link is a copy", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Create(context.Background(), &shortener.ShortLink{Key: "abc123", LongURL: "https://example.com"})

		link, _ := s.Get(context.Background(), "abc123")
		link.LongURL = "https://mutated.com"

		again, _ := s.Get(context.Background(), "abc123")
		assert.Equal(t, "https://example.com", again.LongURL)
	})
}

func TestMemoryStore_Upsert(t *testing.T) {
	t.Run("overwrites existing link", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Upsert(context.Background(), &shortener.ShortLink{Key: "abc123", LongURL: "https://example.com"})

		err := s.Upsert(context.Background(), &shortener.ShortLink{Key: "abc123", LongURL: "https://other.com"})
		require.NoError(t, err)

		link, _ := s.Get(context.Background(), "abc123")
		assert.Equal(t, "https://other.com", link.LongURL)
	})
}

func TestMemoryStore_Create(t *testing.T) {
	t.Run("returns ErrConflict and keeps the first link", func(t *testing.T) {
		s := store.NewMemoryStore()
		require.NoError(t, s.Create(context.Background(), &shortener.ShortLink{Key: "abc123", LongURL: "https://old.com"}))

		err := s.Create(context.Background(), &shortener.ShortLink{Key: "abc123", LongURL: "https://new.com"})

		require.ErrorIs(t, err, shortener.ErrConflict)

		link, _ := s.Get(context.Background(), "abc123")
		assert.Equal(t, "https://old.com", link.LongURL)
	})
}
