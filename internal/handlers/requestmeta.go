package handlers

import "context"

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata used for short URLs and analytics.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
	// Scheme and Host describe how the client reached the service.
	Scheme string
	Host   string
}

// BaseURL returns scheme://host as seen by the client.
func (m RequestMeta) BaseURL() string {
	scheme := m.Scheme
	if scheme == "" {
		scheme = "http"
	}

	return scheme + "://" + m.Host
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}
