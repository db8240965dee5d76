package param

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/aretw0/waypoint/pkg/track"
	"github.com/beevik/etree"
	"github.com/google/uuid"
)

// OwnerKind tells whether an owner reference points at a layer or a parameter.
type OwnerKind int

const (
	OwnerLayer OwnerKind = iota
	OwnerParam
)

// Owner is a non-owning reference resolved through the Tree.
type Owner struct {
	Kind OwnerKind
	ID   uuid.UUID
}

// LayerOwner references a layer.
func LayerOwner(id uuid.UUID) Owner { return Owner{Kind: OwnerLayer, ID: id} }

// ParamOwner references a parameter.
func ParamOwner(id uuid.UUID) Owner { return Owner{Kind: OwnerParam, ID: id} }

// Tree is the registry of layers and parameters of one document.
// It also carries the settings every parameter of the document shares.
type Tree struct {
	layers     map[uuid.UUID]*domain.Layer
	layerOrder []uuid.UUID
	params     map[uuid.UUID]*Param
	roots      map[uuid.UUID][]*Param

	fps        float64
	generators *registry.Registry
	hooks      domain.Hooks
	logger     *slog.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithFrameRate sets the frame rate used to place synthesized keyframes.
func WithFrameRate(fps float64) Option {
	return func(t *Tree) {
		t.fps = fps
	}
}

// WithGenerators injects the track generators. Defaults to registry.NewDefault.
func WithGenerators(r *registry.Registry) Option {
	return func(t *Tree) {
		t.generators = r
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.Hooks) Option {
	return func(t *Tree) {
		t.hooks = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) {
		t.logger = l
	}
}

// NewTree creates an empty tree.
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		layers: make(map[uuid.UUID]*domain.Layer),
		params: make(map[uuid.UUID]*Param),
		roots:  make(map[uuid.UUID][]*Param),
		fps:    domain.DefaultFrameRate,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if t.generators == nil {
		t.generators = registry.NewDefault(t.fps, track.DefaultUnits())
	}
	return t
}

// FrameRate returns the frame rate shared by the tree's parameters.
func (t *Tree) FrameRate() float64 {
	return t.fps
}

// AddLayer registers a layer, assigning an ID if it has none.
func (t *Tree) AddLayer(l *domain.Layer) *domain.Layer {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if _, exists := t.layers[l.ID]; !exists {
		t.layerOrder = append(t.layerOrder, l.ID)
	}
	t.layers[l.ID] = l
	return l
}

// Layer resolves a layer by ID.
func (t *Tree) Layer(id uuid.UUID) (*domain.Layer, error) {
	l, ok := t.layers[id]
	if !ok {
		return nil, fmt.Errorf("%w: layer %s", domain.ErrOwnerNotFound, id)
	}
	return l, nil
}

// Layers returns the layers in registration order.
func (t *Tree) Layers() []*domain.Layer {
	out := make([]*domain.Layer, 0, len(t.layerOrder))
	for _, id := range t.layerOrder {
		out = append(out, t.layers[id])
	}
	return out
}

// Param resolves a parameter by ID.
func (t *Tree) Param(id uuid.UUID) (*Param, error) {
	p, ok := t.params[id]
	if !ok {
		return nil, fmt.Errorf("%w: param %s", domain.ErrOwnerNotFound, id)
	}
	return p, nil
}

// LayerParams returns the top-level parameters of a layer in document order.
func (t *Tree) LayerParams(layerID uuid.UUID) []*Param {
	return t.roots[layerID]
}

// NewParam wraps elem in a Param owned by owner. The element's name
// attribute, or its tag when absent, becomes the parameter name. A parameter
// owned by another parameter is also registered as its subparameter.
func (t *Tree) NewParam(elem *etree.Element, owner Owner) (*Param, error) {
	var parent *Param
	switch owner.Kind {
	case OwnerLayer:
		if _, err := t.Layer(owner.ID); err != nil {
			return nil, err
		}
	case OwnerParam:
		p, err := t.Param(owner.ID)
		if err != nil {
			return nil, err
		}
		parent = p
	default:
		return nil, fmt.Errorf("%w: unknown owner kind %d", domain.ErrOwnerNotFound, owner.Kind)
	}

	p := &Param{
		ID:        uuid.New(),
		name:      elem.SelectAttrValue(domain.AttrName, elem.Tag),
		elem:      elem,
		owner:     owner,
		tree:      t,
		subparams: make(map[string]*Param),
	}
	t.params[p.ID] = p

	if parent != nil {
		parent.AddSubparam(p.name, p)
	} else {
		t.roots[owner.ID] = append(t.roots[owner.ID], p)
	}
	return p, nil
}
