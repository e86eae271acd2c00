package shortener_test

import (
	"context"
	"errors"

	"github.com/serroba/shortlink/internal/shortener"
)

var errMock = errors.New("mock error")

// mockRepository is a test double for shortener.Repository.
type mockRepository struct {
	taken     map[shortener.Key]bool
	getErr    error
	upsertErr error
	createErr error
	// conflicts makes the next N Create calls fail with ErrConflict.
	conflicts int
	lookups   int
	created   []*shortener.ShortLink
	upserted  []*shortener.ShortLink
}

func newMockRepository(taken ...shortener.Key) *mockRepository {
	m := &mockRepository{taken: make(map[shortener.Key]bool)}
	for _, k := range taken {
		m.taken[k] = true
	}

	return m
}

func (m *mockRepository) Get(_ context.Context, key shortener.Key) (*shortener.ShortLink, error) {
	m.lookups++

	if m.getErr != nil {
		return nil, m.getErr
	}

	if !m.taken[key] {
		return nil, shortener.ErrNotFound
	}

	return &shortener.ShortLink{Key: key, LongURL: "https://taken.example"}, nil
}

func (m *mockRepository) Upsert(_ context.Context, link *shortener.ShortLink) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}

	m.upserted = append(m.upserted, link)

	return nil
}

func (m *mockRepository) Create(_ context.Context, link *shortener.ShortLink) error {
	if m.createErr != nil {
		return m.createErr
	}

	if m.conflicts > 0 {
		m.conflicts--

		return shortener.ErrConflict
	}

	m.created = append(m.created, link)

	return nil
}

// sequence returns a generator cycling through keys.
func sequence(keys ...string) shortener.CodeGenerator {
	i := 0

	return func() string {
		k := keys[i%len(keys)]
		i++

		return k
	}
}
