package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/health"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/serroba/shortlink/internal/ratelimit"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

// RateLimitPackage provides the limiter. Counters live in memory for the memory
// store and in Redis otherwise.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.Limiter, error) {
		opts := do.MustInvoke[*Options](i)

		var counters ratelimit.Store
		if opts.Store == StoreMemory {
			counters = store.NewRateLimitMemoryStore()
		} else {
			counters = store.NewRateLimitRedisStore(do.MustInvoke[*RedisClient](i).Client)
		}

		return ratelimit.NewLimiter(counters, ratelimit.DefaultPolicy()), nil
	})
}

// HealthPackage provides a health handler covering every backend the options enable.
func HealthPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*health.Handler, error) {
		opts := do.MustInvoke[*Options](i)
		checkers := map[string]health.Checker{}

		usesRedis := opts.Analytics || opts.Store == StoreRedis ||
			(opts.Store != StoreMemory && opts.CacheTTL > 0) ||
			(opts.RateLimit && opts.Store != StoreMemory)
		if usesRedis {
			checkers["redis"] = health.NewRedisChecker(do.MustInvoke[*RedisClient](i).Client)
		}

		switch opts.Store {
		case StorePostgres:
			checkers["postgres"] = do.MustInvoke[*store.PostgresStore](i)
		case StoreCosmos:
			checkers["cosmos"] = do.MustInvoke[*store.CosmosStore](i)
		}

		return health.NewHandler(checkers), nil
	})
}

func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		router := chi.NewMux()
		router.Use(chimiddleware.RequestID)
		router.Use(chimiddleware.RealIP)
		router.Use(middleware.AccessLog(logger))
		router.Use(chimiddleware.Recoverer)

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (*handlers.LinkHandler, error) {
		opts := do.MustInvoke[*Options](i)
		publishers := do.MustInvoke[*analytics.Publishers](i)

		renderer, err := handlers.NewRenderer()
		if err != nil {
			return nil, err
		}

		return handlers.NewLinkHandler(
			do.MustInvoke[*shortener.Service](i),
			renderer,
			opts.BaseURL,
			publishers.LinkCreated,
			publishers.LinkVisited,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)

		api := humachi.New(router, APIConfig())

		api.UseMiddleware(middleware.RequestMeta(api))

		if opts.RateLimit {
			api.UseMiddleware(middleware.RateLimit(api, do.MustInvoke[*ratelimit.Limiter](i), logger))
		}

		health.RegisterRoutes(api, do.MustInvoke[*health.Handler](i))
		handlers.RegisterRoutes(api, do.MustInvoke[*handlers.LinkHandler](i))

		return api, nil
	})
}

// APIConfig keeps generated documentation under /api so it never shadows a short key.
func APIConfig() huma.Config {
	cfg := huma.DefaultConfig("Shortlink", "1.0.0")
	cfg.DocsPath = "/api/docs"
	cfg.OpenAPIPath = "/api/openapi"
	cfg.SchemasPath = "/api/schemas"

	return cfg
}
