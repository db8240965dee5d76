package track

import (
	"fmt"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/beevik/etree"
)

// MultiDimensional samples every component of each keyframe.
// Vectors are converted to pixels; when the value node carries
// transform_axis="true" they become offsets relative to the layer's own axis.
type MultiDimensional struct {
	fps   float64
	units Units
}

// NewMultiDimensional creates a multi-dimensional generator.
func NewMultiDimensional(fps float64, units Units) *MultiDimensional {
	return &MultiDimensional{fps: fps, units: units}
}

// Generate implements Generator.
func (m *MultiDimensional) Generate(dst *domain.Path, node *etree.Element, idx int) error {
	kfs, err := readKeyframes(node, m.fps)
	if err != nil {
		return err
	}

	relative := node.SelectAttrValue(domain.AttrTransformAxis, "false") == "true"
	dst.Generator = NameMulti
	dst.Type = node.SelectAttrValue(domain.AttrType, "")
	dst.Index = idx
	dst.TransformAxis = relative

	for i, kf := range kfs {
		values, err := Decode(kf.value)
		if err != nil {
			return fmt.Errorf("keyframe %d: %w", i, err)
		}
		if kf.value.Tag == domain.TypeVector {
			values = m.units.Point(values[0], values[1], relative)
		}
		dst.Add(kf.sample(m.fps, values))
	}
	dst.Sort()
	return nil
}
