// Package config holds the export settings shared by the CLI, the HTTP API
// and the MCP server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/track"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned by Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendFile   = "file"
	BackendNone   = "none"
)

// Settings configures a conversion.
type Settings struct {
	// FrameRate overrides the canvas fps when > 0.
	FrameRate float64 `yaml:"frame_rate" json:"frame_rate" mapstructure:"frame_rate"`
	// Units overrides the mapping derived from the canvas view box.
	Units *track.Units `yaml:"units" json:"units,omitempty" mapstructure:"units"`
	// TransformParams get a transform-axis path besides the standard one.
	TransformParams []string `yaml:"transform_params" json:"transform_params" mapstructure:"transform_params"`

	Store StoreSettings `yaml:"store" json:"store" mapstructure:"store"`
	Log   LogSettings   `yaml:"log" json:"log" mapstructure:"log"`
	HTTP  HTTPSettings  `yaml:"http" json:"http" mapstructure:"http"`
}

type StoreSettings struct {
	Backend  string        `yaml:"backend" json:"backend" mapstructure:"backend"`
	RedisURL string        `yaml:"redis_url" json:"redis_url" mapstructure:"redis_url"`
	TTL      time.Duration `yaml:"ttl" json:"ttl" mapstructure:"ttl"`
	Dir      string        `yaml:"dir" json:"dir" mapstructure:"dir"`
}

type LogSettings struct {
	Level  string `yaml:"level" json:"level" mapstructure:"level"`
	Format string `yaml:"format" json:"format" mapstructure:"format"`
}

type HTTPSettings struct {
	Addr string `yaml:"addr" json:"addr" mapstructure:"addr"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		TransformParams: []string{"origin", "offset"},
		Store: StoreSettings{
			Backend:  BackendMemory,
			RedisURL: "redis://localhost:6379/0",
			TTL:      24 * time.Hour,
			Dir:      filepath.Join(".waypoint", "runs"),
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
		HTTP: HTTPSettings{
			Addr: ":8080",
		},
	}
}

// Load reads a YAML or JSON settings file over the defaults.
// A missing file yields the defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return Settings{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Settings{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return FromMap(Default(), raw)
}

// FromMap decodes loosely typed overrides on top of base.
// Strings are accepted for numbers and durations, and dotted keys such as
// "units.scale" address nested settings. Unknown keys are rejected.
func FromMap(base Settings, m map[string]any) (Settings, error) {
	out := base
	if base.Units != nil {
		u := *base.Units
		out.Units = &u
	}
	out.TransformParams = append([]string(nil), base.TransformParams...)

	m, err := expandKeys(m)
	if err != nil {
		return Settings{}, err
	}
	// Units is a pointer, which ZeroFields would reset as a whole.
	if overrides, ok := m["units"].(map[string]any); ok {
		u := track.DefaultUnits()
		if base.Units != nil {
			u = *base.Units
		}
		m["units"] = mergeMaps(map[string]any{
			"scale":    u.Scale,
			"origin_x": u.OriginX,
			"origin_y": u.OriginY,
		}, overrides)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ZeroFields:       true,
		ErrorUnused:      true,
		Result:           &out,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := dec.Decode(m); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return out, nil
}

// expandKeys turns {"units.scale": 10} into {"units": {"scale": 10}} without
// touching m.
func expandKeys(m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		parts := strings.Split(k, ".")
		node := out
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				if _, taken := node[part]; taken {
					return nil, fmt.Errorf("%w: %q conflicts with %q", ErrInvalidSettings, k, part)
				}
				child = map[string]any{}
				node[part] = child
			}
			node = child
		}
		last := parts[len(parts)-1]
		if nested, ok := v.(map[string]any); ok {
			if existing, ok := node[last].(map[string]any); ok {
				node[last] = mergeMaps(existing, nested)
				continue
			}
			nested = mergeMaps(map[string]any{}, nested)
			v = nested
		}
		if _, taken := node[last]; taken {
			return nil, fmt.Errorf("%w: %q is set twice", ErrInvalidSettings, k)
		}
		node[last] = v
	}
	return out, nil
}

// mergeMaps copies src over dst, recursing into nested maps.
func mergeMaps(dst, src map[string]any) map[string]any {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				dst[k] = mergeMaps(dv, sv)
				continue
			}
			dst[k] = mergeMaps(map[string]any{}, sv)
			continue
		}
		dst[k] = v
	}
	return dst
}

// Validate checks the settings for values no component accepts.
func (s Settings) Validate() error {
	if s.FrameRate < 0 || math.IsNaN(s.FrameRate) || math.IsInf(s.FrameRate, 0) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidFrameRate, s.FrameRate)
	}
	if s.Units != nil && s.Units.Scale <= 0 {
		return fmt.Errorf("%w: units.scale must be positive", ErrInvalidSettings)
	}
	switch s.Store.Backend {
	case BackendMemory, BackendNone:
	case BackendFile:
		if s.Store.Dir == "" {
			return fmt.Errorf("%w: store.dir is required for the file backend", ErrInvalidSettings)
		}
	case BackendRedis:
		if s.Store.RedisURL == "" {
			return fmt.Errorf("%w: store.redis_url is required for the redis backend", ErrInvalidSettings)
		}
	default:
		return fmt.Errorf("%w: unknown store.backend %q", ErrInvalidSettings, s.Store.Backend)
	}
	if _, err := s.LogLevel(); err != nil {
		return err
	}
	switch s.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalidSettings, s.Log.Format)
	}
	return nil
}

// LogLevel parses Log.Level.
func (s Settings) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidSettings, s.Log.Level)
	}
	return lvl, nil
}

// IsTransformParam reports whether name gets a transform-axis path.
func (s Settings) IsTransformParam(name string) bool {
	for _, p := range s.TransformParams {
		if p == name {
			return true
		}
	}
	return false
}
