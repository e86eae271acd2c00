package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/ratelimit"
)

// RegisterRoutes registers the home, shorten and redirect routes with per-endpoint rate limits.
func RegisterRoutes(api huma.API, links *LinkHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "home",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Home page",
		Description: "Serves an HTML form that posts a URL to /shorten.",
		Tags:        []string{"Pages"},
	}, links.Home)

	// Writes get stricter limits than redirects.
	huma.Register(api, huma.Operation{
		OperationID:   "shorten",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short URL",
		Description:   "Accepts a url field as JSON or form data and answers in the same format.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 100},
				},
			},
		},
	}, links.Shorten)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{key}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the short key.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, links.Redirect)
}
