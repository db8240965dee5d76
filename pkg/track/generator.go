package track

import (
	"fmt"

	"github.com/aretw0/waypoint/internal/animation"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/beevik/etree"
)

// Registry names of the built-in generators.
const (
	NameScalar = "scalar"
	NameMulti  = "multi"
)

// Generator fills dst from the keyframes of an animated value node.
// idx selects the component (scalar) or labels the track (multi-dimensional).
type Generator interface {
	Generate(dst *domain.Path, node *etree.Element, idx int) error
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(dst *domain.Path, node *etree.Element, idx int) error

// Generate calls f.
func (f GeneratorFunc) Generate(dst *domain.Path, node *etree.Element, idx int) error {
	return f(dst, node, idx)
}

type keyframe struct {
	time    string
	seconds float64
	before  string
	after   string
	value   *etree.Element
}

// readKeyframes collects the waypoints of an animated node in document order.
func readKeyframes(node *etree.Element, fps float64) ([]keyframe, error) {
	if node == nil || node.Tag != domain.TagAnimated {
		tag := ""
		if node != nil {
			tag = node.Tag
		}
		return nil, &domain.MalformedError{Tag: tag, Reason: "is not an animated wrapper"}
	}

	var out []keyframe
	for _, wp := range node.SelectElements(domain.TagWaypoint) {
		values := wp.ChildElements()
		if len(values) != 1 {
			return nil, &domain.MalformedError{Tag: wp.Tag, Reason: "must hold exactly one value"}
		}
		raw := wp.SelectAttrValue(domain.AttrTime, "")
		seconds, err := animation.ParseTime(raw, fps)
		if err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", len(out), err)
		}
		out = append(out, keyframe{
			time:    raw,
			seconds: seconds,
			before:  wp.SelectAttrValue(domain.AttrBefore, domain.InterpolationClamped),
			after:   wp.SelectAttrValue(domain.AttrAfter, domain.InterpolationClamped),
			value:   values[0],
		})
	}
	if len(out) == 0 {
		return nil, &domain.MalformedError{Tag: node.Tag, Reason: "holds no keyframes"}
	}
	return out, nil
}

func (k keyframe) sample(fps float64, value []float64) domain.Sample {
	return domain.Sample{
		Time:    k.time,
		Seconds: k.seconds,
		Frame:   animation.Frame(k.seconds, fps),
		Value:   value,
		Before:  k.before,
		After:   k.after,
	}
}
