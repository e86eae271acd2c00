package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// WriteMode selects how a new link is persisted.
type WriteMode string

const (
	// WriteModeCreate stores links with a create-if-absent write and picks a new key on conflict.
	WriteModeCreate WriteMode = "create"
	// WriteModeUpsert stores links with create-or-replace. Two writers racing on the
	// same key can overwrite each other.
	WriteModeUpsert WriteMode = "upsert"
)

// ParseWriteMode converts a configuration value into a WriteMode.
func ParseWriteMode(s string) (WriteMode, error) {
	switch mode := WriteMode(s); mode {
	case WriteModeCreate, WriteModeUpsert:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid write mode %q: must be 'create' or 'upsert'", s)
	}
}

// ShortenInput is the validated input of Service.Shorten.
type ShortenInput struct {
	URL string `validate:"required"`
}

// Service creates and resolves short links.
type Service struct {
	store    Repository
	keys     *KeyGenerator
	mode     WriteMode
	validate *validator.Validate
}

// NewService creates a shortener service.
func NewService(store Repository, keys *KeyGenerator, mode WriteMode) *Service {
	return &Service{
		store:    store,
		keys:     keys,
		mode:     mode,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Shorten generates a free key for longURL and stores the mapping.
func (s *Service) Shorten(ctx context.Context, longURL string) (*ShortLink, error) {
	if err := s.validate.Struct(ShortenInput{URL: longURL}); err != nil {
		return nil, ErrMissingURL
	}

	attempts := 0

	for {
		key, spent, err := s.keys.next(ctx, attempts)
		if err != nil {
			return nil, err
		}

		attempts = spent

		link := &ShortLink{
			Key:       key,
			LongURL:   longURL,
			CreatedAt: time.Now().UTC(),
		}

		if s.mode == WriteModeUpsert {
			if err = s.store.Upsert(ctx, link); err != nil {
				return nil, fmt.Errorf("upsert short link: %w", err)
			}

			return link, nil
		}

		err = s.store.Create(ctx, link)
		if err == nil {
			return link, nil
		}

		if !errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("create short link: %w", err)
		}
	}
}

// Resolve looks up the link stored under key.
func (s *Service) Resolve(ctx context.Context, key Key) (*ShortLink, error) {
	return s.store.Get(ctx, key)
}
