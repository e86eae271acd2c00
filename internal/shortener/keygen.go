package shortener

import (
	"context"
	"errors"
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the set of symbols short keys are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	DefaultKeyLength   = 6
	DefaultMaxAttempts = 10
)

// CodeGenerator returns a random candidate key on every call.
type CodeGenerator func() string

// NewCodeGenerator samples length symbols uniformly from Alphabet.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("create code generator: %w", err)
	}

	return CodeGenerator(gen), nil
}

// KeyGenerator draws candidate keys until one is absent from the store.
type KeyGenerator struct {
	store       Repository
	generate    CodeGenerator
	maxAttempts int
}

// NewKeyGenerator creates a key generator. A maxAttempts of zero never gives up.
func NewKeyGenerator(store Repository, generate CodeGenerator, maxAttempts int) *KeyGenerator {
	return &KeyGenerator{
		store:       store,
		generate:    generate,
		maxAttempts: maxAttempts,
	}
}

// Next returns a key that did not exist in the store when it was checked.
// Another writer may still claim it before the caller stores its link.
func (g *KeyGenerator) Next(ctx context.Context) (Key, error) {
	key, _, err := g.next(ctx, 0)

	return key, err
}

// next probes candidates starting at attempt and returns the attempts spent so far,
// so callers retrying after a lost race stay within one budget.
func (g *KeyGenerator) next(ctx context.Context, attempt int) (Key, int, error) {
	for ; !g.exhausted(attempt); attempt++ {
		if err := ctx.Err(); err != nil {
			return "", attempt, err
		}

		key := Key(g.generate())

		_, err := g.store.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			return key, attempt + 1, nil
		}

		if err != nil {
			return "", attempt, fmt.Errorf("look up candidate key: %w", err)
		}
	}

	return "", attempt, ErrKeyspaceExhausted
}

func (g *KeyGenerator) exhausted(attempts int) bool {
	return g.maxAttempts > 0 && attempts >= g.maxAttempts
}
