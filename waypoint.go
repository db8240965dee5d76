package waypoint

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/waypoint/internal/compiler"
	"github.com/aretw0/waypoint/pkg/config"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/param"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/track"
	"github.com/beevik/etree"
	"github.com/google/uuid"
)

// TransformSuffix marks the store key of a transform-axis path.
const TransformSuffix = "@transform"

// Converter is the high-level entry point of the library.
// It loads a .sif document, generates the path of every parameter and
// optionally persists the paths in a PathStore.
//
// A Converter is safe for concurrent use: each call builds its own tree.
type Converter struct {
	settings   config.Settings
	store      ports.PathStore
	hooks      domain.Hooks
	logger     *slog.Logger
	generators map[string]track.Generator
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithSettings replaces the default settings.
func WithSettings(s config.Settings) Option {
	return func(c *Converter) {
		c.settings = s
	}
}

// WithStore persists every generated path.
func WithStore(s ports.PathStore) Option {
	return func(c *Converter) {
		c.store = s
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.Hooks) Option {
	return func(c *Converter) {
		c.hooks = c.hooks.Merge(h)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithGenerator overrides or adds a track generator, e.g. track.NameScalar.
func WithGenerator(name string, g track.Generator) Option {
	return func(c *Converter) {
		c.generators[name] = g
	}
}

// New initializes a Converter.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		settings:   config.Default(),
		generators: make(map[string]track.Generator),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.settings.Validate(); err != nil {
		return nil, err
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return c, nil
}

// Derive returns a copy of c with opts applied on top, e.g. per-request
// settings overrides. c itself is not modified.
func (c *Converter) Derive(opts ...Option) (*Converter, error) {
	d := *c
	d.generators = make(map[string]track.Generator, len(c.generators))
	for name, g := range c.generators {
		d.generators[name] = g
	}
	for _, opt := range opts {
		opt(&d)
	}
	if err := d.settings.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Settings returns the settings in use.
func (c *Converter) Settings() config.Settings {
	return c.settings
}

// Store returns the configured store, or nil.
func (c *Converter) Store() ports.PathStore {
	return c.store
}

// ConvertFile converts the document at path.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	res, err := c.ConvertBytes(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return res, nil
}

// Convert reads a document from r and converts it.
func (c *Converter) Convert(ctx context.Context, r io.Reader) (*Result, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return c.ConvertBytes(ctx, buf.Bytes())
}

// ConvertBytes converts a document held in memory.
//
// Parameters that cannot be converted are reported in the result with their
// error; only parse, store and context errors abort the run.
func (c *Converter) ConvertBytes(ctx context.Context, data []byte) (*Result, error) {
	doc, err := c.parse(data)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to create run id: %w", err)
	}
	res := newResult(id.String(), doc)
	logger := c.logger.With("run_id", res.RunID)

	for i, layer := range doc.Tree.Layers() {
		for _, p := range doc.Tree.LayerParams(layer.ID) {
			if err := c.convertParam(ctx, logger, res.RunID, layer, p, &res.Layers[i]); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("document converted",
		"layers", len(res.Layers),
		"paths", res.Paths(),
		"failures", res.Failures(),
		"frame_rate", res.FrameRate,
	)
	return res, nil
}

// Inspect reports the animation state of every parameter without converting.
// The document is left untouched.
func (c *Converter) Inspect(ctx context.Context, data []byte) (*Result, error) {
	doc, err := c.parse(data)
	if err != nil {
		return nil, err
	}
	res := newResult("", doc)
	for i, layer := range doc.Tree.Layers() {
		for _, p := range doc.Tree.LayerParams(layer.ID) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			inspectParam(p, &res.Layers[i])
		}
	}
	return res, nil
}

func (c *Converter) parse(data []byte) (*compiler.Document, error) {
	opts := []compiler.Option{
		compiler.WithFrameRate(c.settings.FrameRate),
		compiler.WithHooks(c.hooks),
		compiler.WithLogger(c.logger),
	}
	if c.settings.Units != nil {
		opts = append(opts, compiler.WithUnits(*c.settings.Units))
	}
	for name, g := range c.generators {
		opts = append(opts, compiler.WithGenerator(name, g))
	}
	doc, err := compiler.NewParser(opts...).Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}
	return doc, nil
}

// convertParam generates the paths of p, or of its links when p holds a
// converted value node.
func (c *Converter) convertParam(ctx context.Context, logger *slog.Logger, runID string, layer *domain.Layer, p *param.Param, out *LayerResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if keys := p.SubparamKeys(); len(keys) > 0 {
		for _, k := range keys {
			sub, err := p.Subparam(k)
			if err != nil {
				return err
			}
			if err := c.convertParam(ctx, logger, runID, layer, sub, out); err != nil {
				return err
			}
		}
		return nil
	}

	pr := ParamResult{Key: p.Key(), AnimType: AnimType(p.Value())}
	if pr.AnimType == domain.TypeString {
		logger.Debug("skipping text parameter", "param", pr.Key)
		return nil
	}
	pr.State = domain.StateUnknown
	if state, err := p.State(); err == nil {
		pr.State = state
	}

	if err := c.generate(p, &pr); err != nil {
		pr.Error = err.Error()
		logger.Warn("skipping parameter",
			"layer", layer.Type,
			"param", pr.Key,
			"error", err,
		)
		out.Params = append(out.Params, pr)
		return nil
	}

	if c.store != nil {
		key := StoreKey(layer.ID, pr.Key)
		if err := c.store.Save(ctx, runID, key, pr.Path); err != nil {
			return fmt.Errorf("failed to store %s: %w", key, err)
		}
		if pr.TransformPath != nil {
			if err := c.store.Save(ctx, runID, key+TransformSuffix, pr.TransformPath); err != nil {
				return fmt.Errorf("failed to store %s: %w", key+TransformSuffix, err)
			}
		}
	}
	out.Params = append(out.Params, pr)
	return nil
}

// generate runs the transform-axis pass first for transform parameters, so
// that the standard pass that follows regenerates from a cleared flag.
func (c *Converter) generate(p *param.Param, pr *ParamResult) error {
	if c.settings.IsTransformParam(p.Name()) {
		if err := p.GenPathWithTransform(pr.AnimType, 0); err != nil {
			return err
		}
		path, err := p.Path()
		if err != nil {
			return err
		}
		pr.TransformPath = path
	}
	if err := p.GenPath(pr.AnimType, 0); err != nil {
		return err
	}
	path, err := p.Path()
	if err != nil {
		return err
	}
	pr.Path = path
	return nil
}

func inspectParam(p *param.Param, out *LayerResult) {
	if keys := p.SubparamKeys(); len(keys) > 0 {
		for _, k := range keys {
			if sub, err := p.Subparam(k); err == nil {
				inspectParam(sub, out)
			}
		}
		return
	}
	pr := ParamResult{Key: p.Key(), AnimType: AnimType(p.Value())}
	state, err := p.State()
	if err != nil {
		pr.State = domain.StateUnknown
		pr.Error = err.Error()
	} else {
		pr.State = state
	}
	out.Params = append(out.Params, pr)
}

// AnimType returns the animation type of a value node: the type attribute of
// an animated wrapper, or the tag of a literal.
func AnimType(node *etree.Element) string {
	if node == nil {
		return ""
	}
	if node.Tag == domain.TagAnimated {
		return node.SelectAttrValue(domain.AttrType, "")
	}
	return node.Tag
}

// StoreKey is the key under which a parameter path is stored.
func StoreKey(layerID uuid.UUID, paramKey string) string {
	return layerID.String() + "/" + paramKey
}
