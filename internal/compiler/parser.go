package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/param"
	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/aretw0/waypoint/pkg/track"
	"github.com/beevik/etree"
)

// Document is a parsed .sif file.
type Document struct {
	Canvas    domain.Canvas
	FrameRate float64
	Units     track.Units
	Tree      *param.Tree
	Root      *etree.Document
}

// Parser turns raw .sif bytes into a Document.
type Parser struct {
	frameRate float64
	units     *track.Units
	hooks     domain.Hooks
	logger    *slog.Logger
	extra     map[string]track.Generator
}

// Option configures a Parser.
type Option func(*Parser)

// WithFrameRate overrides the canvas frame rate when fps > 0.
func WithFrameRate(fps float64) Option {
	return func(p *Parser) {
		p.frameRate = fps
	}
}

// WithUnits overrides the unit mapping derived from the canvas view box.
func WithUnits(u track.Units) Option {
	return func(p *Parser) {
		p.units = &u
	}
}

// WithHooks passes hooks down to every parameter of the document.
func WithHooks(h domain.Hooks) Option {
	return func(p *Parser) {
		p.hooks = h
	}
}

// WithLogger sets the logger shared by the document's parameters.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// WithGenerator registers g under name on top of the built-in generators.
func WithGenerator(name string, g track.Generator) Option {
	return func(p *Parser) {
		if p.extra == nil {
			p.extra = make(map[string]track.Generator)
		}
		p.extra[name] = g
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// Parse decodes a .sif document and builds its parameter tree.
func (p *Parser) Parse(data []byte) (*Document, error) {
	root := etree.NewDocument()
	if err := root.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	canvasElem := root.Root()
	if canvasElem == nil || canvasElem.Tag != domain.TagCanvas {
		return nil, domain.ErrNoCanvas
	}

	canvas, err := parseCanvas(canvasElem)
	if err != nil {
		return nil, err
	}

	fps := p.frameRate
	if fps <= 0 {
		fps = canvas.FPS
	}
	if fps <= 0 {
		fps = domain.DefaultFrameRate
	}
	units := track.UnitsFromCanvas(canvas)
	if p.units != nil {
		units = *p.units
	}

	generators := registry.NewDefault(fps, units)
	for name, g := range p.extra {
		generators.Register(name, g)
	}
	tree := param.NewTree(
		param.WithFrameRate(fps),
		param.WithGenerators(generators),
		param.WithHooks(p.hooks),
		param.WithLogger(p.logger),
	)

	doc := &Document{
		Canvas:    canvas,
		FrameRate: fps,
		Units:     units,
		Tree:      tree,
		Root:      root,
	}
	if err := p.walkCanvas(tree, canvasElem, 0); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseCanvas(e *etree.Element) (domain.Canvas, error) {
	var c domain.Canvas
	var err error

	if c.Width, err = intAttr(e, "width"); err != nil {
		return c, err
	}
	if c.Height, err = intAttr(e, "height"); err != nil {
		return c, err
	}
	if raw := e.SelectAttrValue("fps", ""); raw != "" {
		if c.FPS, err = strconv.ParseFloat(raw, 64); err != nil {
			return c, fmt.Errorf("canvas fps %q: %w", raw, err)
		}
		// Non-finite rates count as absent.
		if math.IsNaN(c.FPS) || math.IsInf(c.FPS, 0) {
			c.FPS = 0
		}
	}
	if raw := e.SelectAttrValue("view-box", ""); raw != "" {
		fields := strings.Fields(raw)
		if len(fields) != 4 {
			return c, fmt.Errorf("canvas view-box %q: want 4 numbers", raw)
		}
		for i, f := range fields {
			if c.ViewBox[i], err = strconv.ParseFloat(f, 64); err != nil {
				return c, fmt.Errorf("canvas view-box %q: %w", raw, err)
			}
			if math.IsNaN(c.ViewBox[i]) || math.IsInf(c.ViewBox[i], 0) {
				return c, fmt.Errorf("canvas view-box %q: not a finite number", raw)
			}
		}
	}
	c.Begin = e.SelectAttrValue("begin-time", "")
	c.End = e.SelectAttrValue("end-time", "")
	return c, nil
}

func intAttr(e *etree.Element, name string) (int, error) {
	raw := e.SelectAttrValue(name, "")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("canvas %s %q: %w", name, raw, err)
	}
	return v, nil
}

// walkCanvas registers the layers of a canvas in document order. Inline
// canvases of group layers are walked one level deeper.
func (p *Parser) walkCanvas(tree *param.Tree, canvas *etree.Element, depth int) error {
	for _, le := range canvas.SelectElements(domain.TagLayer) {
		layer := tree.AddLayer(&domain.Layer{
			Type:   le.SelectAttrValue("type", ""),
			Desc:   le.SelectAttrValue("desc", ""),
			Active: le.SelectAttrValue("active", "true") != "false",
			Depth:  depth,
		})

		for _, pe := range le.SelectElements(domain.TagParam) {
			if inner := pe.SelectElement(domain.TagCanvas); inner != nil {
				if err := p.walkCanvas(tree, inner, depth+1); err != nil {
					return err
				}
				continue
			}
			prm, err := tree.NewParam(pe, param.LayerOwner(layer.ID))
			if err != nil {
				return err
			}
			if err := addSubparams(tree, prm); err != nil {
				return err
			}
		}
	}
	return nil
}

// addSubparams registers the links of a converted value node, such as the
// lhs and rhs of an add node, as subparameters of prm.
func addSubparams(tree *param.Tree, prm *param.Param) error {
	value := prm.Value()
	if value == nil || domain.IsLiteral(value.Tag) || value.Tag == domain.TagAnimated {
		return nil
	}
	for _, link := range value.ChildElements() {
		sub, err := tree.NewParam(link, param.ParamOwner(prm.ID))
		if err != nil {
			return err
		}
		if err := addSubparams(tree, sub); err != nil {
			return err
		}
	}
	return nil
}
