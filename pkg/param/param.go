package param

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/waypoint/internal/animation"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/track"
	"github.com/beevik/etree"
	"github.com/google/uuid"
)

// Param wraps one parameter element of the document.
type Param struct {
	ID uuid.UUID

	name      string
	elem      *etree.Element
	owner     Owner
	tree      *Tree
	subparams map[string]*Param

	// animated latches on the first promotion attempt, successful or not.
	animated bool
	// pathGenerated guards GenPath; GenPathWithTransform clears it.
	pathGenerated bool
	path          *domain.Path
}

// Name returns the parameter name.
func (p *Param) Name() string {
	return p.name
}

// Key returns the dotted name from the top-level parameter, e.g. "origin.lhs".
func (p *Param) Key() string {
	parts := []string{p.name}
	for cur := p.Parent(); cur != nil; cur = cur.Parent() {
		parts = append(parts, cur.name)
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".")
}

// Element returns the wrapped parameter element.
func (p *Param) Element() *etree.Element {
	return p.elem
}

// Value returns the value node, the first child element, or nil.
func (p *Param) Value() *etree.Element {
	children := p.elem.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// Text returns the character data of the parameter element.
func (p *Param) Text() string {
	return p.elem.Text()
}

// Child returns the i-th child element.
func (p *Param) Child(i int) (*etree.Element, error) {
	children := p.elem.ChildElements()
	if i < 0 || i >= len(children) {
		return nil, fmt.Errorf("%w: %s has %d children, asked for %d", domain.ErrChildNotFound, p.Key(), len(children), i)
	}
	return children[i], nil
}

// SetChild replaces the i-th child element with e.
func (p *Param) SetChild(i int, e *etree.Element) error {
	old, err := p.Child(i)
	if err != nil {
		return err
	}
	pos := old.Index()
	p.elem.RemoveChildAt(pos)
	p.elem.InsertChildAt(pos, e)
	return nil
}

// Owner returns the owner reference.
func (p *Param) Owner() Owner {
	return p.owner
}

// Parent returns the owning parameter, or nil when a layer owns p.
func (p *Param) Parent() *Param {
	if p.owner.Kind != OwnerParam {
		return nil
	}
	parent, err := p.tree.Param(p.owner.ID)
	if err != nil {
		return nil
	}
	return parent
}

// Layer climbs the owner chain up to the layer.
func (p *Param) Layer() (*domain.Layer, error) {
	cur := p
	for cur.owner.Kind == OwnerParam {
		next, err := p.tree.Param(cur.owner.ID)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return p.tree.Layer(cur.owner.ID)
}

// LayerType returns the type of the layer the parameter belongs to.
func (p *Param) LayerType() (string, error) {
	l, err := p.Layer()
	if err != nil {
		return "", err
	}
	return l.Type, nil
}

// AddSubparam registers sub under key, replacing any previous entry.
func (p *Param) AddSubparam(key string, sub *Param) {
	p.subparams[key] = sub
}

// Subparam looks up a subparameter.
func (p *Param) Subparam(key string) (*Param, error) {
	sub, ok := p.subparams[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", domain.ErrSubparamNotFound, p.Key(), key)
	}
	return sub, nil
}

// Subparams returns a copy of the subparameter mapping.
func (p *Param) Subparams() map[string]*Param {
	return maps.Clone(p.subparams)
}

// SubparamKeys returns the subparameter keys in sorted order.
func (p *Param) SubparamKeys() []string {
	return slices.Sorted(maps.Keys(p.subparams))
}

// State classifies the current value node.
func (p *Param) State() (domain.AnimationState, error) {
	return animation.Classify(p.Value())
}

// IsAnimated reports whether the value node has been promoted.
func (p *Param) IsAnimated() bool {
	return p.animated
}

// PathGenerated reports whether GenPath has run since the last transform pass.
func (p *Param) PathGenerated() bool {
	return p.pathGenerated
}

// Animate promotes the value node to a fully animated track of animType.
// Promotion is attempted once: later calls return nil even if that attempt
// failed or the value node changed since.
func (p *Param) Animate(animType string) error {
	if p.animated {
		return nil
	}
	p.animated = true

	prev, err := animation.Promote(p.Value(), animType, p.tree.fps)
	if err != nil {
		err = fmt.Errorf("animate %s: %w", p.Key(), err)
		p.fail(animType, err)
		return err
	}

	p.tree.logger.Debug("parameter promoted",
		"param", p.Key(),
		"from", prev.String(),
		"anim_type", animType,
	)
	if p.tree.hooks.OnPromote != nil {
		ev := p.event(domain.EventPromote, animType)
		ev.State = prev
		p.tree.hooks.OnPromote(ev)
	}
	return nil
}

// GenPath generates the parameter's path once. Real values go to the scalar
// generator, everything else to the multi-dimensional one. Later calls return
// nil without touching the stored path.
func (p *Param) GenPath(animType string, idx int) error {
	if p.pathGenerated {
		return nil
	}
	if err := p.Animate(animType); err != nil {
		return err
	}
	name := track.NameMulti
	if animType == domain.TypeReal {
		name = track.NameScalar
	}
	return p.generate(name, animType, idx, false)
}

// GenPathWithTransform generates the path relative to the layer's own axis.
// It always runs, always uses the multi-dimensional generator, and leaves the
// value node with transform_axis="false" and the generated flag cleared.
func (p *Param) GenPathWithTransform(animType string, idx int) error {
	if err := p.Animate(animType); err != nil {
		return err
	}
	node := p.Value()
	node.CreateAttr(domain.AttrTransformAxis, "true")
	defer func() {
		node.CreateAttr(domain.AttrTransformAxis, "false")
		p.pathGenerated = false
	}()
	return p.generate(track.NameMulti, animType, idx, true)
}

// Path returns the last generated path.
func (p *Param) Path() (*domain.Path, error) {
	if p.path == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPathNotReady, p.Key())
	}
	return p.path, nil
}

func (p *Param) generate(name, animType string, idx int, transform bool) error {
	// A failed promotion is not retried, so the node may still be unfit.
	if state, err := animation.Classify(p.Value()); err != nil || state != domain.StateFullyAnimated {
		if err == nil {
			err = fmt.Errorf("%w: %s", domain.ErrNotAnimated, state)
		}
		err = fmt.Errorf("generate %s: %w", p.Key(), err)
		p.fail(animType, err)
		return err
	}

	g, err := p.tree.generators.Get(name)
	if err != nil {
		p.fail(animType, err)
		return err
	}

	prevPath, prevFlag := p.path, p.pathGenerated
	p.pathGenerated = true
	p.path = domain.NewPath()
	if err := g.Generate(p.path, p.Value(), idx); err != nil {
		p.path, p.pathGenerated = prevPath, prevFlag
		err = fmt.Errorf("generate %s: %w", p.Key(), err)
		p.fail(animType, err)
		return err
	}

	p.tree.logger.Debug("path generated",
		"param", p.Key(),
		"generator", name,
		"transform_axis", transform,
		"samples", p.path.Len(),
	)
	if p.tree.hooks.OnPathGenerated != nil {
		ev := p.event(domain.EventPathGenerated, animType)
		ev.State = domain.StateFullyAnimated
		ev.Generator = name
		ev.TransformAxis = transform
		ev.Samples = p.path.Len()
		p.tree.hooks.OnPathGenerated(ev)
	}
	return nil
}

func (p *Param) fail(animType string, err error) {
	p.tree.logger.Debug("parameter failed", "param", p.Key(), "error", err)
	if p.tree.hooks.OnFailure != nil {
		ev := p.event(domain.EventFailure, animType)
		ev.Err = err
		p.tree.hooks.OnFailure(ev)
	}
}

func (p *Param) event(t domain.EventType, animType string) *domain.ParamEvent {
	ev := domain.NewParamEvent(t)
	ev.ParamID = p.ID
	ev.Param = p.Key()
	ev.AnimType = animType
	ev.LayerType, _ = p.LayerType()
	return ev
}
