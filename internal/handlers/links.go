package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

const (
	msgMissingURL = "No URL was provided."
	msgNotFound   = "URL not found."
)

// LinkHandler serves the home page, shorten and redirect operations.
type LinkHandler struct {
	service            *shortener.Service
	renderer           *Renderer
	baseURL            string
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent]
	publishLinkVisited messaging.Publish[analytics.LinkVisitedEvent]
	logger             *zap.Logger
}

// NewLinkHandler creates a link handler. An empty baseURL derives short URLs from
// the scheme and host of each request.
func NewLinkHandler(
	service *shortener.Service,
	renderer *Renderer,
	baseURL string,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishLinkVisited messaging.Publish[analytics.LinkVisitedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		service:            service,
		renderer:           renderer,
		baseURL:            strings.TrimSuffix(baseURL, "/"),
		publishLinkCreated: publishLinkCreated,
		publishLinkVisited: publishLinkVisited,
		logger:             logger,
	}
}

func (h *LinkHandler) Home(_ context.Context, _ *struct{}) (*HomeResponse, error) {
	return &HomeResponse{
		ContentType: contentTypeHTML,
		Body:        h.renderer.Home(),
	}, nil
}

func (h *LinkHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	format := FormatFor(req.ContentType)

	longURL, err := decodeShortenBody(req.ContentType, format, req.RawBody)
	if err != nil {
		if format == FormatJSON {
			return nil, huma.Error400BadRequest("invalid JSON body", err)
		}

		return h.htmlError(http.StatusBadRequest, msgMissingURL)
	}

	link, err := h.service.Shorten(ctx, longURL)
	if err != nil {
		return h.shortenError(ctx, format, err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		Key:       string(link.Key),
		LongURL:   link.LongURL,
		CreatedAt: link.CreatedAt,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err = h.publishLinkCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish analytics event",
			zap.String("key", event.Key),
			zap.Error(err),
		)
	}

	shortURL := h.shortURL(ctx, link.Key)

	if format == FormatJSON {
		body, err := json.Marshal(shortenJSONResponse{ShortURL: shortURL})
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to encode response")
		}

		return &ShortenResponse{
			Status:      http.StatusCreated,
			ContentType: contentTypeJSON,
			Location:    shortURL,
			Body:        body,
		}, nil
	}

	body, err := h.renderer.Created(shortURL)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to render response")
	}

	return &ShortenResponse{
		Status:      http.StatusCreated,
		ContentType: contentTypeHTML,
		Location:    shortURL,
		Body:        body,
	}, nil
}

func (h *LinkHandler) shortenError(ctx context.Context, format Format, err error) (*ShortenResponse, error) {
	switch {
	case errors.Is(err, shortener.ErrMissingURL):
		if format == FormatJSON {
			return nil, huma.Error400BadRequest(msgMissingURL)
		}

		return h.htmlError(http.StatusBadRequest, msgMissingURL)
	case errors.Is(err, shortener.ErrKeyspaceExhausted):
		h.logger.Error("no free short key", zap.Error(err))

		return nil, huma.Error503ServiceUnavailable("no short key available, try again later")
	case errors.Is(err, context.Canceled):
		return nil, huma.Error503ServiceUnavailable("request canceled")
	default:
		h.logger.Error("failed to shorten url", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save url")
	}
}

func (h *LinkHandler) htmlError(status int, message string) (*ShortenResponse, error) {
	body, err := h.renderer.Error(message)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to render response")
	}

	return &ShortenResponse{
		Status:      status,
		ContentType: contentTypeHTML,
		Body:        body,
	}, nil
}

func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	link, err := h.service.Resolve(ctx, shortener.Key(req.Key))
	if err != nil {
		if !errors.Is(err, shortener.ErrNotFound) {
			h.logger.Error("failed to resolve short key", zap.String("key", req.Key), zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to get url")
		}

		body, err := h.renderer.Error(msgNotFound)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to render response")
		}

		return &RedirectResponse{
			Status:      http.StatusNotFound,
			ContentType: contentTypeHTML,
			Body:        body,
		}, nil
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkVisitedEvent{
		Key:       req.Key,
		VisitedAt: time.Now().UTC(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	}

	if err = h.publishLinkVisited(ctx, event); err != nil {
		h.logger.Error("failed to publish visit event",
			zap.String("key", event.Key),
			zap.Error(err),
		)
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: link.LongURL,
	}, nil
}

func (h *LinkHandler) shortURL(ctx context.Context, key shortener.Key) string {
	base := h.baseURL
	if base == "" {
		base = RequestMetaFromContext(ctx).BaseURL()
	}

	return base + "/" + string(key)
}
