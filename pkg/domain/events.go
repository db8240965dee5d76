package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPromote       EventType = "promote"
	EventPathGenerated EventType = "path_generated"
	EventFailure       EventType = "failure"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ParamEvent reports a lifecycle step of a single parameter.
type ParamEvent struct {
	EventBase
	ParamID       uuid.UUID      `json:"param_id"`
	Param         string         `json:"param"`
	LayerType     string         `json:"layer_type,omitempty"`
	State         AnimationState `json:"state"`
	AnimType      string         `json:"anim_type"`
	Generator     string         `json:"generator,omitempty"`
	TransformAxis bool           `json:"transform_axis,omitempty"`
	Samples       int            `json:"samples,omitempty"`
	Err           error          `json:"-"`
}

// NewParamEvent stamps a new event of the given type.
func NewParamEvent(t EventType) *ParamEvent {
	return &ParamEvent{EventBase: EventBase{Timestamp: time.Now(), Type: t}}
}

// Hooks defines callbacks for parameter observability.
// The core is synchronous, so hooks run inline on the caller's goroutine.
type Hooks struct {
	OnPromote       func(*ParamEvent)
	OnPathGenerated func(*ParamEvent)
	OnFailure       func(*ParamEvent)
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnPromote:       chain(h.OnPromote, other.OnPromote),
		OnPathGenerated: chain(h.OnPathGenerated, other.OnPathGenerated),
		OnFailure:       chain(h.OnFailure, other.OnFailure),
	}
}

func chain(a, b func(*ParamEvent)) func(*ParamEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *ParamEvent) {
		a(e)
		b(e)
	}
}
