/*
Package domain contains the core domain models for the Waypoint exporter.

It defines the vocabulary shared by the parameter tree, the animation
classifier and the track generators. This package is kept pure and free of
I/O and persistence concerns, following Hexagonal Architecture principles.

# Key Entities

  - AnimationState: The tagged result of classifying a value node (Static, PartiallyAnimated, FullyAnimated).
  - Path: The time-indexed sampling of a parameter, ready for serialization.
  - Layer: The visual layer that owns a parameter tree.
  - Canvas: Document-wide timing and geometry read from the source file.
  - Hooks: Callbacks fired when parameters are promoted or their paths generated.
*/
package domain
