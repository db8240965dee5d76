package domain

// Value node tags and animation types.
// The animation type of an <animated> wrapper reuses the tag of the values it holds.
const (
	TypeReal    = "real"
	TypeInteger = "integer"
	TypeAngle   = "angle"
	TypeBool    = "bool"
	TypeTime    = "time"
	TypeVector  = "vector"
	TypeColor   = "color"
	TypeString  = "string"

	// TagAnimated is the wrapper holding a keyframe sequence.
	TagAnimated = "animated"
	// TagWaypoint is a single keyframe inside an animated wrapper.
	TagWaypoint = "waypoint"
	// TagParam binds a value node to a named layer parameter.
	TagParam = "param"
	// TagLayer is a visual layer of the canvas.
	TagLayer = "layer"
	// TagCanvas is the document root.
	TagCanvas = "canvas"
)

// Interpolation tags carried by the "before" and "after" attributes of a waypoint.
const (
	InterpolationConstant  = "constant"
	InterpolationLinear    = "linear"
	InterpolationEase      = "halt"
	InterpolationClamped   = "clamped"
	InterpolationTCB       = "auto"
	InterpolationUndefined = "undefined"
)

// Attribute names read and written on value nodes.
const (
	AttrType          = "type"
	AttrTime          = "time"
	AttrBefore        = "before"
	AttrAfter         = "after"
	AttrValue         = "value"
	AttrName          = "name"
	AttrTransformAxis = "transform_axis"
)

// literalTags is the set of leaf tags that hold a single static value.
var literalTags = map[string]bool{
	TypeReal:    true,
	TypeInteger: true,
	TypeAngle:   true,
	TypeBool:    true,
	TypeTime:    true,
	TypeVector:  true,
	TypeColor:   true,
	TypeString:  true,
}

// IsLiteral reports whether tag names a static literal value node.
func IsLiteral(tag string) bool {
	return literalTags[tag]
}

// DefaultFrameRate is used when neither the settings nor the canvas declare one.
const DefaultFrameRate = 24.0
