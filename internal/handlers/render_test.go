package handlers_test

import (
	"testing"

	"github.com/serroba/shortlink/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        handlers.Format
	}{
		{"application/json", handlers.FormatJSON},
		{"application/json; charset=utf-8", handlers.FormatJSON},
		{"application/problem+json", handlers.FormatJSON},
		{"application/x-www-form-urlencoded", handlers.FormatHTML},
		{"multipart/form-data; boundary=xyz", handlers.FormatHTML},
		{"text/plain", handlers.FormatHTML},
		{"", handlers.FormatHTML},
		{";;not a media type", handlers.FormatHTML},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, handlers.FormatFor(tt.contentType))
		})
	}
}

func TestRenderer(t *testing.T) {
	renderer, err := handlers.NewRenderer()
	require.NoError(t, err)

	t.Run("home is stable", func(t *testing.T) {
		assert.Equal(t, renderer.Home(), renderer.Home())
	})

	t.Run("created links the short url", func(t *testing.T) {
		body, err := renderer.Created("http://sho.rt/abc123")

		require.NoError(t, err)
		assert.Contains(t, string(body), `<a href="http://sho.rt/abc123">http://sho.rt/abc123</a>`)
	})

	t.Run("error escapes the message", func(t *testing.T) {
		body, err := renderer.Error("<b>bad</b>")

		require.NoError(t, err)
		assert.Contains(t, string(body), "&lt;b&gt;bad&lt;/b&gt;")
	})
}
