package domain

import "fmt"

// AnimationState is the classification of a value node.
type AnimationState int

const (
	// StateStatic is a single literal value with no keyframe wrapper.
	StateStatic AnimationState = iota
	// StatePartiallyAnimated is an animated wrapper holding a single keyframe or a bare value.
	StatePartiallyAnimated
	// StateFullyAnimated is an animated wrapper holding a well-formed keyframe sequence.
	StateFullyAnimated
	// StateUnknown marks a value node that could not be classified.
	// Classify never returns it; reports use it next to the error.
	StateUnknown
)

func (s AnimationState) String() string {
	switch s {
	case StateStatic:
		return "static"
	case StatePartiallyAnimated:
		return "partially_animated"
	case StateFullyAnimated:
		return "fully_animated"
	case StateUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("AnimationState(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s AnimationState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *AnimationState) UnmarshalText(text []byte) error {
	for _, st := range []AnimationState{StateStatic, StatePartiallyAnimated, StateFullyAnimated, StateUnknown} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown animation state %q", text)
}
