package animation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/beevik/etree"
)

// ParseTime converts a document time string into seconds.
// It accepts unit sequences such as "1s", "0.5s", "12f" or "1h 2m 3s 4f";
// a bare number is read as seconds. Frame units need a positive fps.
func ParseTime(s string, fps float64) (float64, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0, fmt.Errorf("%w: empty string", domain.ErrInvalidTime)
	}
	if v, err := strconv.ParseFloat(str, 64); err == nil {
		if !isFinite(v) {
			return 0, fmt.Errorf("%w: %q: not a finite number", domain.ErrInvalidTime, s)
		}
		return v, nil
	}

	var total float64
	var num strings.Builder
	for _, r := range str {
		switch {
		case unicode.IsSpace(r):
			if num.Len() > 0 {
				return 0, fmt.Errorf("%w: %q: number without unit", domain.ErrInvalidTime, s)
			}
		case unicode.IsDigit(r) || r == '.' || r == '-' || r == '+':
			num.WriteRune(r)
		default:
			if num.Len() == 0 {
				return 0, fmt.Errorf("%w: %q: unit without number", domain.ErrInvalidTime, s)
			}
			v, err := strconv.ParseFloat(num.String(), 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %q: %v", domain.ErrInvalidTime, s, err)
			}
			num.Reset()

			switch unicode.ToLower(r) {
			case 'h':
				total += v * 3600
			case 'm':
				total += v * 60
			case 's':
				total += v
			case 'f':
				if fps <= 0 {
					return 0, fmt.Errorf("%w: %q: frames need a frame rate", domain.ErrInvalidTime, s)
				}
				total += v / fps
			default:
				return 0, fmt.Errorf("%w: %q: unknown unit %q", domain.ErrInvalidTime, s, r)
			}
		}
	}
	if num.Len() > 0 {
		return 0, fmt.Errorf("%w: %q: number without unit", domain.ErrInvalidTime, s)
	}
	if !isFinite(total) {
		return 0, fmt.Errorf("%w: %q: not a finite number", domain.ErrInvalidTime, s)
	}
	return total, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatTime renders seconds as a document time string using the shortest
// decimal representation, e.g. 1.0/24 becomes "0.041666666666666664s".
func FormatTime(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64) + "s"
}

// Frame converts seconds to the nearest whole frame.
func Frame(seconds, fps float64) float64 {
	return math.Round(seconds * fps)
}

// WaypointFrame returns the frame a waypoint is placed at.
func WaypointFrame(wp *etree.Element, fps float64) (float64, error) {
	seconds, err := ParseTime(wp.SelectAttrValue(domain.AttrTime, ""), fps)
	if err != nil {
		return 0, err
	}
	return Frame(seconds, fps), nil
}
