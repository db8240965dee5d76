// Package compiler loads .sif documents into a parameter tree.
//
// The frame rate of the tree is the override passed to the parser, else the
// canvas fps attribute, else 24. Vector units are derived from the canvas
// view box unless overridden.
package compiler
