package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/adapters/file"
	"github.com/aretw0/waypoint/internal/adapters/redis"
	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/config"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/persistence/middleware"
	"github.com/aretw0/waypoint/pkg/ports"
)

// Options holds the flags shared by every command.
type Options struct {
	ConfigPath string
	FrameRate  float64
	Store      string
	RedisURL   string
	Debug      bool
}

// LoadSettings reads the settings file and applies flag overrides.
func LoadSettings(opts Options) (config.Settings, error) {
	s := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return config.Settings{}, err
		}
		s = loaded
	}
	if opts.FrameRate > 0 {
		s.FrameRate = opts.FrameRate
	}
	if opts.Store != "" {
		s.Store.Backend = opts.Store
	}
	if opts.RedisURL != "" {
		s.Store.RedisURL = opts.RedisURL
	}
	if opts.Debug {
		s.Log.Level = "debug"
	}
	return s, s.Validate()
}

// NewLogger builds the application logger from the settings.
func NewLogger(s config.Settings) *slog.Logger {
	lvl, err := s.LogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	return logging.ForFormat(s.Log.Format, lvl)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewStore opens the configured path store. The returned closer is never nil.
func NewStore(s config.Settings) (ports.PathStore, io.Closer, error) {
	switch s.Store.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nopCloser{}, nil
	case config.BackendRedis:
		st, err := redis.New(s.Store.RedisURL, redis.WithTTL(s.Store.TTL))
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil
	case config.BackendFile:
		return file.New(s.Store.Dir), nopCloser{}, nil
	case config.BackendNone:
		return nil, nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown store.backend %q", config.ErrInvalidSettings, s.Store.Backend)
}

// NewConverter initializes a converter with standard CLI conventions.
func NewConverter(s config.Settings, store ports.PathStore, logger *slog.Logger, debug bool, hooks ...domain.Hooks) (*waypoint.Converter, error) {
	opts := []waypoint.Option{
		waypoint.WithSettings(s),
		waypoint.WithLogger(logger),
	}
	if store != nil {
		if debug {
			store = middleware.Chain(store, middleware.NewLoggingMiddleware(logger))
		}
		opts = append(opts, waypoint.WithStore(store))
	}
	if debug {
		opts = append(opts, waypoint.WithHooks(createDebugHooks(logger)))
	}
	for _, h := range hooks {
		opts = append(opts, waypoint.WithHooks(h))
	}

	conv, err := waypoint.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing converter: %w", err)
	}
	return conv, nil
}

func createDebugHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnPromote: func(e *domain.ParamEvent) {
			logger.Debug("Promote", "param", e.Param, "from", e.State.String(), "anim_type", e.AnimType)
		},
		OnPathGenerated: func(e *domain.ParamEvent) {
			logger.Debug("Path", "param", e.Param, "generator", e.Generator, "samples", e.Samples, "transform_axis", e.TransformAxis)
		},
		OnFailure: func(e *domain.ParamEvent) {
			logger.Debug("Failure", "param", e.Param, "layer_type", e.LayerType, "err", e.Err)
		},
	}
}
