package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimit returns a Huma middleware that applies the limiter to every operation.
//
// Limits declared in operation metadata under ratelimit.MetadataKey take precedence
// over the scope limits of the policy. Counters are keyed by client, so all requests
// from the same IP and User-Agent share a bucket per route template.
func RateLimit(
	api huma.API,
	limiter *ratelimit.Limiter,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		path := operationPath(ctx)

		exceeded, err := limiter.Allow(ctx.Context(), clientKey(ctx), ctx.Method(), ctx.Operation())
		if err != nil {
			logger.Error("rate limit check failed", zap.String("path", path), zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if exceeded != nil {
			logger.Warn("rate limit exceeded",
				zap.String("path", path),
				zap.String("method", ctx.Method()),
				zap.String("bucket", exceeded.Bucket),
				zap.Int64("count", exceeded.Count),
				zap.Int64("max", exceeded.Config.Max),
				zap.Duration("window", exceeded.Config.Window),
				zap.String("client_ip", ClientIP(ctx)),
			)

			msg := fmt.Sprintf("rate limit exceeded: %d/%d requests in %s",
				exceeded.Count, exceeded.Config.Max, exceeded.Config.Window)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, msg)

			return
		}

		next(ctx)
	}
}

// clientKey generates a unique key for rate limiting based on IP and User-Agent.
func clientKey(ctx huma.Context) string {
	hash := sha256.Sum256([]byte(ClientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(hash[:])
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}
