package store

import (
	"context"

	"github.com/serroba/shortlink/internal/analytics"
	"go.uber.org/zap"
)

// Log is an analytics.Store that records events as structured log entries.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a new logging analytics store.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	l.logger.Info("link created",
		zap.String("key", event.Key),
		zap.String("longUrl", event.LongURL),
		zap.Time("createdAt", event.CreatedAt),
		zap.String("clientIp", event.ClientIP),
	)

	return nil
}

func (l *Log) SaveLinkVisited(_ context.Context, event *analytics.LinkVisitedEvent) error {
	l.logger.Info("link visited",
		zap.String("key", event.Key),
		zap.Time("visitedAt", event.VisitedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

var _ analytics.Store = (*Log)(nil)
