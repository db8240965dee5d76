package track

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/waypoint/internal/animation"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/beevik/etree"
)

var componentNames = map[string][]string{
	domain.TypeVector: {"x", "y"},
	domain.TypeColor:  {"r", "g", "b", "a"},
}

// Decode reads the numeric components of a literal value element.
func Decode(v *etree.Element) ([]float64, error) {
	switch v.Tag {
	case domain.TypeReal, domain.TypeAngle, domain.TypeInteger:
		f, err := parseFloat(v.SelectAttrValue(domain.AttrValue, ""))
		if err != nil {
			return nil, fmt.Errorf("%w: <%s>: %v", domain.ErrUnsupportedValue, v.Tag, err)
		}
		return []float64{f}, nil

	case domain.TypeBool:
		b, err := strconv.ParseBool(v.SelectAttrValue(domain.AttrValue, ""))
		if err != nil {
			return nil, fmt.Errorf("%w: <%s>: %v", domain.ErrUnsupportedValue, v.Tag, err)
		}
		if b {
			return []float64{1}, nil
		}
		return []float64{0}, nil

	case domain.TypeTime:
		s, err := animation.ParseTime(v.SelectAttrValue(domain.AttrValue, ""), 0)
		if err != nil {
			return nil, fmt.Errorf("%w: <%s>: %v", domain.ErrUnsupportedValue, v.Tag, err)
		}
		return []float64{s}, nil

	case domain.TypeVector, domain.TypeColor:
		names := componentNames[v.Tag]
		out := make([]float64, 0, len(names))
		for _, name := range names {
			c := v.SelectElement(name)
			if c == nil {
				return nil, fmt.Errorf("%w: <%s> has no <%s>", domain.ErrUnsupportedValue, v.Tag, name)
			}
			f, err := parseFloat(c.Text())
			if err != nil {
				return nil, fmt.Errorf("%w: <%s><%s>: %v", domain.ErrUnsupportedValue, v.Tag, name, err)
			}
			out = append(out, f)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: <%s>", domain.ErrUnsupportedValue, v.Tag)
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
