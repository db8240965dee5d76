package track

import "github.com/aretw0/waypoint/pkg/domain"

// DefaultScale is the number of pixels per canvas unit of a default canvas.
const DefaultScale = 60.0

// Units maps canvas coordinates to target pixels.
type Units struct {
	Scale   float64 `json:"scale" yaml:"scale" mapstructure:"scale"`
	OriginX float64 `json:"origin_x" yaml:"origin_x" mapstructure:"origin_x"`
	OriginY float64 `json:"origin_y" yaml:"origin_y" mapstructure:"origin_y"`
}

// DefaultUnits returns a unit mapping with the default scale and no offset.
func DefaultUnits() Units {
	return Units{Scale: DefaultScale}
}

// UnitsFromCanvas derives the mapping from the canvas view box so that the
// top-left corner lands on pixel (0, 0).
func UnitsFromCanvas(c domain.Canvas) Units {
	s := c.UnitScale()
	if s == 0 {
		return DefaultUnits()
	}
	return Units{
		Scale:   s,
		OriginX: -c.ViewBox[0] * s,
		OriginY: c.ViewBox[1] * s,
	}
}

// Point converts a canvas vector to pixels. The y axis is flipped.
// Relative points skip the origin offset.
func (u Units) Point(x, y float64, relative bool) []float64 {
	if relative {
		return []float64{x * u.Scale, -y * u.Scale}
	}
	return []float64{u.OriginX + x*u.Scale, u.OriginY - y*u.Scale}
}
