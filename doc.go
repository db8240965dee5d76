/*
Package waypoint converts the animated parameters of Synfig (.sif) documents
into Lottie-style time-indexed paths.

Each parameter's value is either a static literal or an <animated> sequence of
waypoints (keyframes). Conversion classifies the value, promotes static and
single-keyframe values into a two-keyframe track, and samples the keyframes
into a domain.Path that keeps the timing and the before/after interpolation
of every waypoint.

# Concept

The core (pkg/param, internal/animation, pkg/track) works on one parameter at
a time and is synchronous. The Converter in this package walks a whole
document, collects the paths, and hands them to an optional PathStore. The
CLI, the HTTP API and the MCP server are thin adapters around the Converter.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/waypoint"
	)

	func main() {
		conv, err := waypoint.New()
		if err != nil {
			log.Fatal(err)
		}

		res, err := conv.ConvertFile(context.Background(), "scene.sif")
		if err != nil {
			log.Fatal(err)
		}

		for _, layer := range res.Layers {
			for _, p := range layer.Params {
				if p.Error != "" {
					fmt.Printf("%s/%s: %s\n", layer.Type, p.Key, p.Error)
					continue
				}
				fmt.Printf("%s/%s: %d samples\n", layer.Type, p.Key, p.Path.Len())
			}
		}
	}

Static values become two constant keyframes one frame apart, so a literal
5.0 at 24 fps yields samples at "0s" and "0.041666666666666664s".
*/
package waypoint
