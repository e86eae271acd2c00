package ratelimit

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Scope categorizes a request for rate limiting purposes.
type Scope string

const (
	// ScopeGlobal applies to all requests regardless of type.
	ScopeGlobal Scope = "global"
	// ScopeRead applies to safe methods (GET, HEAD, OPTIONS).
	ScopeRead Scope = "read"
	// ScopeWrite applies to everything else.
	ScopeWrite Scope = "write"
)

// MetadataKey is the key used to store an EndpointConfig in huma operation metadata.
const MetadataKey = "rateLimit"

// LimitConfig allows at most Max requests per sliding Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy holds the default limits per scope.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy returns the limits applied to operations without their own configuration.
func DefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeGlobal: {{Window: time.Minute, Max: 2000}},
			ScopeRead:   {{Window: time.Minute, Max: 1000}},
			ScopeWrite:  {{Window: time.Minute, Max: 30}},
		},
	}
}

// EndpointConfig is attached to a huma operation via Metadata[MetadataKey].
// Non-empty Limits replace the policy's scope limits for that operation.
type EndpointConfig struct {
	Limits   []LimitConfig
	Disabled bool
}

// EndpointConfigFor extracts the EndpointConfig from operation metadata, if present.
func EndpointConfigFor(op *huma.Operation) *EndpointConfig {
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

// ScopesFor returns the scopes that apply to a request with the given method.
func ScopesFor(method string) []Scope {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return []Scope{ScopeGlobal, ScopeRead}
	default:
		return []Scope{ScopeGlobal, ScopeWrite}
	}
}
