package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Get(ctx context.Context, key shortener.Key) (*shortener.ShortLink, error) {
	query := `
		SELECT short_key, long_url, created_at
		FROM short_links
		WHERE short_key = $1
	`

	var link shortener.ShortLink

	err := p.pool.QueryRow(ctx, query, string(key)).Scan(
		&link.Key,
		&link.LongURL,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &link, nil
}

func (p *PostgresStore) Upsert(ctx context.Context, link *shortener.ShortLink) error {
	query := `
		INSERT INTO short_links (short_key, long_url, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (short_key) DO UPDATE
		SET long_url = EXCLUDED.long_url, created_at = EXCLUDED.created_at
	`

	_, err := p.pool.Exec(ctx, query, string(link.Key), link.LongURL, link.CreatedAt)

	return err
}

func (p *PostgresStore) Create(ctx context.Context, link *shortener.ShortLink) error {
	query := `
		INSERT INTO short_links (short_key, long_url, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (short_key) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query, string(link.Key), link.LongURL, link.CreatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrConflict
	}

	return nil
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

var _ shortener.Repository = (*PostgresStore)(nil)
