package animation

import (
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/beevik/etree"
)

// Classify inspects a value node and reports its animation state.
// It never mutates the node. Shapes that match no state return a
// *domain.MalformedError.
func Classify(node *etree.Element) (domain.AnimationState, error) {
	if node == nil {
		return 0, &domain.MalformedError{Reason: "is missing"}
	}
	if domain.IsLiteral(node.Tag) {
		return domain.StateStatic, nil
	}
	if node.Tag != domain.TagAnimated {
		return 0, &domain.MalformedError{Tag: node.Tag, Reason: "is neither a literal nor an animated wrapper"}
	}

	children := node.ChildElements()
	switch len(children) {
	case 0:
		return 0, &domain.MalformedError{Tag: node.Tag, Reason: "holds no keyframes"}
	case 1:
		only := children[0]
		if only.Tag == domain.TagWaypoint {
			if err := checkWaypoint(only); err != nil {
				return 0, err
			}
			return domain.StatePartiallyAnimated, nil
		}
		if domain.IsLiteral(only.Tag) {
			return domain.StatePartiallyAnimated, nil
		}
		return 0, &domain.MalformedError{Tag: node.Tag, Reason: "holds <" + only.Tag + "> instead of a keyframe"}
	}

	for _, c := range children {
		if c.Tag != domain.TagWaypoint {
			return 0, &domain.MalformedError{Tag: node.Tag, Reason: "mixes keyframes with <" + c.Tag + ">"}
		}
		if err := checkWaypoint(c); err != nil {
			return 0, err
		}
	}
	return domain.StateFullyAnimated, nil
}

func checkWaypoint(wp *etree.Element) error {
	if wp.SelectAttr(domain.AttrTime) == nil {
		return &domain.MalformedError{Tag: wp.Tag, Reason: "has no time attribute"}
	}
	if len(wp.ChildElements()) != 1 {
		return &domain.MalformedError{Tag: wp.Tag, Reason: "must hold exactly one value"}
	}
	return nil
}
