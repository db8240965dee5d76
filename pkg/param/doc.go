/*
Package param holds the parameter tree of a document and generates the
animation path of each parameter.

A Param wraps one <param> element. Its first child is the value node, either a
static literal or an <animated> keyframe sequence. Generating a path promotes
static values to a two-keyframe track first, so generators always receive a
fully animated node.

Generation is single-shot: GenPath runs at most once per Param. The only way
to regenerate is GenPathWithTransform, which always runs and then clears the
generated flag so that a later GenPath starts fresh.

Owners are referenced by ID and resolved through the Tree, never by pointer.
The package is not safe for concurrent use; build one Tree per document.
*/
package param
