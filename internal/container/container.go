package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/config"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreCosmos   = "cosmos"
)

type Options struct {
	Port        int    `default:"8888"           help:"Port to listen on"                                                 short:"p"`
	BaseURL     string `help:"Public base URL of short links, derived from each request when empty"                      short:"b"`
	KeyLength   int    `default:"6"              help:"Length of generated short keys"                                    short:"k"`
	KeyAttempts int    `default:"10"             help:"Key generation attempts before giving up (0 retries forever)"`
	WriteMode   string `default:"create"         help:"Link write mode: create or upsert"`
	Store       string `default:"redis"          help:"Link store backend: memory, redis, postgres or cosmos"             short:"s"`
	RedisAddr   string `default:"localhost:6379" help:"Redis server address"                                              short:"r"`
	CacheTTL    int    `default:"3600"           help:"Redis read cache TTL in seconds for postgres and cosmos (0 disables)"`
	Analytics   bool   `default:"true"           help:"Publish analytics events to Redis streams"`
	RateLimit   bool   `default:"true"           help:"Enable per-client rate limiting"`
	LogFormat   string `default:"console"        help:"Log format: console or json"`
}

// RedisClient lets the injector close the Redis connection on shutdown.
type RedisClient struct {
	*redis.Client
}

func (c *RedisClient) Shutdown() error {
	return c.Close()
}

// PostgresPool lets the injector close the pgx pool on shutdown.
type PostgresPool struct {
	*pgxpool.Pool
}

func (p *PostgresPool) Shutdown() error {
	p.Close()

	return nil
}

func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.LogFormat {
		case "json":
			return zap.NewProduction()
		case "console", "":
			return zap.NewDevelopment()
		default:
			return nil, fmt.Errorf("unknown log format %q", opts.LogFormat)
		}
	})
}

func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*RedisClient, error) {
		opts := do.MustInvoke[*Options](i)

		return &RedisClient{Client: redis.NewClient(&redis.Options{Addr: opts.RedisAddr})}, nil
	})
}

func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*PostgresPool, error) {
		cfg, err := config.Load[config.Postgres]()
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		return &PostgresPool{Pool: pool}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*store.PostgresStore, error) {
		pool := do.MustInvoke[*PostgresPool](i)

		return store.NewPostgresStore(pool.Pool), nil
	})
}

func CosmosPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*store.CosmosStore, error) {
		cfg, err := config.Load[config.Cosmos]()
		if err != nil {
			return nil, err
		}

		container, err := store.NewCosmosContainer(cfg.URI, cfg.Key, cfg.Database, cfg.Container)
		if err != nil {
			return nil, err
		}

		return store.NewCosmosStore(container), nil
	})
}

// RepositoryPackage provides the link store selected by Options.Store. Postgres and
// Cosmos are fronted by the Redis read cache unless CacheTTL is zero.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)

		var backend shortener.Repository

		switch opts.Store {
		case StoreMemory:
			return store.NewMemoryStore(), nil
		case StoreRedis:
			return store.NewRedisStore(do.MustInvoke[*RedisClient](i).Client), nil
		case StorePostgres:
			pg, err := do.Invoke[*store.PostgresStore](i)
			if err != nil {
				return nil, err
			}

			backend = pg
		case StoreCosmos:
			cosmos, err := do.Invoke[*store.CosmosStore](i)
			if err != nil {
				return nil, err
			}

			backend = cosmos
		default:
			return nil, fmt.Errorf("unknown store %q", opts.Store)
		}

		if opts.CacheTTL <= 0 {
			return backend, nil
		}

		client := do.MustInvoke[*RedisClient](i)

		return store.NewRedisCacheRepository(backend, client.Client, time.Duration(opts.CacheTTL)*time.Second), nil
	})
}

func ShortenerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		opts := do.MustInvoke[*Options](i)
		repo := do.MustInvoke[shortener.Repository](i)

		mode, err := shortener.ParseWriteMode(opts.WriteMode)
		if err != nil {
			return nil, err
		}

		generate, err := shortener.NewCodeGenerator(opts.KeyLength)
		if err != nil {
			return nil, err
		}

		keys := shortener.NewKeyGenerator(repo, generate, opts.KeyAttempts)

		return shortener.NewService(repo, keys, mode), nil
	})
}
