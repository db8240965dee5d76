/*
Package track turns a keyframe sequence into a domain.Path.

Two generators are provided: Scalar, which samples a single component of each
keyframe, and MultiDimensional, which keeps every component and converts
vectors from canvas units to pixels. Both expect a fully animated value node;
the param package guarantees that before delegating.

Custom strategies implement Generator and are registered by name in a
registry.Registry.
*/
package track
