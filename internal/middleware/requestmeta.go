package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/handlers"
)

// RequestMeta is a middleware that adds client IP, user-agent, referrer and the
// public scheme and host of the request to the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  ClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
			Scheme:    scheme(ctx),
			Host:      host(ctx),
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

// ClientIP extracts the client IP from the request, considering proxies.
func ClientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		// First entry is the original client.
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()

	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return ip
}

func scheme(ctx huma.Context) string {
	if proto := ctx.Header("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(firstValue(proto)))
	}

	if ctx.TLS() != nil {
		return "https"
	}

	return "http"
}

func host(ctx huma.Context) string {
	if fwd := ctx.Header("X-Forwarded-Host"); fwd != "" {
		return strings.TrimSpace(firstValue(fwd))
	}

	if h := ctx.Host(); h != "" {
		return h
	}

	u := ctx.URL()

	return u.Host
}

func firstValue(header string) string {
	if idx := strings.Index(header, ","); idx != -1 {
		return header[:idx]
	}

	return header
}
