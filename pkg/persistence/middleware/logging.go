package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.PathStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level, and failures at warn level.
// Missing runs and paths are reported at debug level since callers probe for them.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.PathStore) ports.PathStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op string, start time.Time, err error, attrs ...any) {
	attrs = append(attrs, "op", op, "duration", time.Since(start))
	notFound := errors.Is(err, domain.ErrRunNotFound) || errors.Is(err, domain.ErrStoredPathNotFound)
	if err != nil && !notFound {
		m.logger.WarnContext(ctx, "Store call failed", append(attrs, "error", err)...)
		return
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	m.logger.DebugContext(ctx, "Store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, runID, key string, path *domain.Path) error {
	start := time.Now()
	err := m.next.Save(ctx, runID, key, path)
	m.log(ctx, "save", start, err, "run_id", runID, "key", key, "samples", path.Len())
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, runID, key string) (*domain.Path, error) {
	start := time.Now()
	p, err := m.next.Load(ctx, runID, key)
	m.log(ctx, "load", start, err, "run_id", runID, "key", key)
	return p, err
}

func (m *loggingMiddleware) List(ctx context.Context, runID string) ([]string, error) {
	start := time.Now()
	keys, err := m.next.List(ctx, runID)
	m.log(ctx, "list", start, err, "run_id", runID, "keys", len(keys))
	return keys, err
}

func (m *loggingMiddleware) Runs(ctx context.Context) ([]string, error) {
	start := time.Now()
	runs, err := m.next.Runs(ctx)
	m.log(ctx, "runs", start, err, "runs", len(runs))
	return runs, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, runID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, runID)
	m.log(ctx, "delete", start, err, "run_id", runID)
	return err
}
