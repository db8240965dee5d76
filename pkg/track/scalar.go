package track

import (
	"fmt"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/beevik/etree"
)

// Scalar samples one component of each keyframe.
type Scalar struct {
	fps float64
}

// NewScalar creates a scalar generator for the given frame rate.
func NewScalar(fps float64) *Scalar {
	return &Scalar{fps: fps}
}

// Generate implements Generator.
func (s *Scalar) Generate(dst *domain.Path, node *etree.Element, idx int) error {
	kfs, err := readKeyframes(node, s.fps)
	if err != nil {
		return err
	}

	dst.Generator = NameScalar
	dst.Type = node.SelectAttrValue(domain.AttrType, "")
	dst.Index = idx

	for i, kf := range kfs {
		values, err := Decode(kf.value)
		if err != nil {
			return fmt.Errorf("keyframe %d: %w", i, err)
		}
		if idx < 0 || idx >= len(values) {
			return fmt.Errorf("keyframe %d: %w: component %d of <%s>", i, domain.ErrUnsupportedValue, idx, kf.value.Tag)
		}
		dst.Add(kf.sample(s.fps, []float64{values[idx]}))
	}
	dst.Sort()
	return nil
}
