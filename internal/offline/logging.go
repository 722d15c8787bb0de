package offline

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Fetcher retrieves a document by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// LoggingFetcher is a decorator that logs every fetch with its latency.
type LoggingFetcher struct {
	inner  Fetcher
	logger *zap.Logger
}

// WithLogging wraps a Fetcher with fetch logging.
func WithLogging(f Fetcher, logger *zap.Logger) Fetcher {
	if logger == nil {
		return f
	}
	return &LoggingFetcher{inner: f, logger: logger}
}

func (l *LoggingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()
	body, err := l.inner.Fetch(ctx, url)

	fields := []zap.Field{
		zap.String("url", url),
		zap.Duration("latency", time.Since(start)),
		zap.Int("bytes", len(body)),
	}
	if err != nil {
		l.logger.Warn("fetch failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	l.logger.Debug("fetch", fields...)
	return body, nil
}
