package animation

import (
	"fmt"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/beevik/etree"
)

// Promote rewrites node in place so that it classifies as FullyAnimated and
// returns the state the node had before promotion.
//
// A fully animated node only gets its type retagged and its first keyframe
// forced to constant. A static literal is wrapped into an animated node with
// a keyframe at 0s. Static and partially animated nodes then receive a copy of
// their first keyframe one frame later, so the track always spans at least
// one interval.
func Promote(node *etree.Element, animType string, fps float64) (domain.AnimationState, error) {
	if fps <= 0 || !isFinite(fps) {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidFrameRate, fps)
	}
	state, err := Classify(node)
	if err != nil {
		return 0, err
	}

	// Everything that can fail is checked before the node is touched.
	var frame float64
	switch state {
	case domain.StateFullyAnimated:
		node.CreateAttr(domain.AttrType, animType)
		forceConstant(node.ChildElements()[0])
		return state, nil

	case domain.StateStatic:
		wrapLiteral(node, animType)

	case domain.StatePartiallyAnimated:
		first := node.ChildElements()[0]
		if first.Tag == domain.TagWaypoint {
			if frame, err = WaypointFrame(first, fps); err != nil {
				return state, err
			}
		}

		node.CreateAttr(domain.AttrType, animType)
		if first.Tag != domain.TagWaypoint {
			node.RemoveChild(first)
			wp := newWaypoint(FormatTime(0))
			wp.AddChild(first)
			node.AddChild(wp)
		}
		forceConstant(node.ChildElements()[0])
	}

	appendSuccessor(node, frame, fps)
	return state, nil
}

// wrapLiteral turns the literal element itself into the animated wrapper so
// that references to node stay valid.
func wrapLiteral(node *etree.Element, animType string) {
	literal := node.Copy()

	node.Space = ""
	node.Tag = domain.TagAnimated
	node.Attr = nil
	node.Child = nil
	node.CreateAttr(domain.AttrType, animType)

	wp := newWaypoint(FormatTime(0))
	wp.AddChild(literal)
	node.AddChild(wp)
}

// appendSuccessor inserts a copy of the first keyframe one frame after it.
func appendSuccessor(node *etree.Element, frame, fps float64) {
	first := node.ChildElements()[0]
	next := first.Copy()
	next.CreateAttr(domain.AttrTime, FormatTime((frame+1)/fps))
	node.InsertChildAt(first.Index()+1, next)
}

func newWaypoint(t string) *etree.Element {
	wp := etree.NewElement(domain.TagWaypoint)
	wp.CreateAttr(domain.AttrTime, t)
	forceConstant(wp)
	return wp
}

func forceConstant(wp *etree.Element) {
	wp.CreateAttr(domain.AttrBefore, domain.InterpolationConstant)
	wp.CreateAttr(domain.AttrAfter, domain.InterpolationConstant)
}
