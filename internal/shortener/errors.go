package shortener

import "errors"

var (
	// ErrNotFound is returned by a Repository when no link exists for a key.
	ErrNotFound = errors.New("short link not found")
	// ErrConflict is returned by Repository.Create when the key is already taken.
	ErrConflict = errors.New("short key already exists")
	// ErrMissingURL is returned when a shorten request carries no URL.
	ErrMissingURL = errors.New("url is required")
	// ErrKeyspaceExhausted is returned when no free key was found within the attempt budget.
	ErrKeyspaceExhausted = errors.New("no free short key found")
)
