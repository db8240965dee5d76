package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedValueNode is returned when a value node is neither a literal,
// a partially animated wrapper nor a well-formed keyframe sequence.
var ErrMalformedValueNode = errors.New("malformed value node")

// ErrNotAnimated is returned when a path is requested from a value node whose
// promotion failed earlier.
var ErrNotAnimated = errors.New("value node is not fully animated")

// ErrPathNotReady is returned when a path is read before any generation completed.
var ErrPathNotReady = errors.New("path not generated yet")

// ErrSubparamNotFound is returned when a named subparameter does not exist.
var ErrSubparamNotFound = errors.New("subparameter not found")

// ErrChildNotFound is returned when a child index is out of range on a parameter element.
var ErrChildNotFound = errors.New("child element not found")

// ErrOwnerNotFound is returned when an owner reference cannot be resolved to a layer or parameter.
var ErrOwnerNotFound = errors.New("owner not found")

// ErrInvalidTime is returned when a time string cannot be parsed.
var ErrInvalidTime = errors.New("invalid time")

// ErrInvalidFrameRate is returned when the frame rate is zero or negative.
var ErrInvalidFrameRate = errors.New("frame rate must be positive")

// ErrUnsupportedValue is returned when a keyframe payload cannot be decoded into numbers.
var ErrUnsupportedValue = errors.New("unsupported value")

// ErrGeneratorNotFound is returned when no track generator is registered under a name.
var ErrGeneratorNotFound = errors.New("track generator not found")

// ErrNoCanvas is returned when a document has no canvas root.
var ErrNoCanvas = errors.New("document has no canvas root")

// ErrRunNotFound is returned when a store holds no paths for an export run.
var ErrRunNotFound = errors.New("run not found")

// ErrStoredPathNotFound is returned when a store holds no path under a key.
var ErrStoredPathNotFound = errors.New("stored path not found")

// MalformedError describes why a value node failed classification.
// It matches ErrMalformedValueNode with errors.Is.
type MalformedError struct {
	Tag    string // Tag of the offending element
	Reason string // Human-readable reason
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: <%s> %s", ErrMalformedValueNode, e.Tag, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedValueNode
}

// ErrInvalidDocument is returned when a document cannot be loaded at all.
var ErrInvalidDocument = errors.New("invalid document")
