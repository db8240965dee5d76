// Package animation classifies value nodes and promotes static or partially
// animated ones into well-formed keyframe sequences.
//
// Both operations work in place on the parsed XML tree. They are pure CPU
// work with no I/O, and the caller is responsible for calling Promote at
// most once per parameter.
package animation
