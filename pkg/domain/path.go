package domain

import (
	"cmp"
	"math"
	"slices"
)

// Sample is one keyframe of a generated path.
type Sample struct {
	Time    string    `json:"time"`    // Time as written in the source document, e.g. "0.5s"
	Seconds float64   `json:"seconds"` // Time converted to seconds
	Frame   float64   `json:"frame"`   // Time converted to frames at the export frame rate
	Value   []float64 `json:"value"`   // Decoded components of the keyframe value
	Before  string    `json:"before"`  // Interpolation tag entering the keyframe
	After   string    `json:"after"`   // Interpolation tag leaving the keyframe
}

// Path is the time-indexed sampling of a parameter's value.
// A Path is produced once by a track generator and treated as immutable afterwards.
type Path struct {
	Generator     string   `json:"generator"`
	Type          string   `json:"type"`
	Index         int      `json:"index"`
	TransformAxis bool     `json:"transform_axis,omitempty"`
	Samples       []Sample `json:"samples"`
}

// NewPath returns an empty path container.
func NewPath() *Path {
	return &Path{Samples: []Sample{}}
}

// Len returns the number of samples.
func (p *Path) Len() int {
	return len(p.Samples)
}

// Add appends a sample.
func (p *Path) Add(s Sample) {
	p.Samples = append(p.Samples, s)
}

// Sort orders samples by time, keeping the document order of equal times.
func (p *Path) Sort() {
	slices.SortStableFunc(p.Samples, func(a, b Sample) int {
		return cmp.Compare(a.Seconds, b.Seconds)
	})
}

// At returns the sample placed at the given time in seconds.
func (p *Path) At(seconds float64) (Sample, bool) {
	const epsilon = 1e-9
	for _, s := range p.Samples {
		if math.Abs(s.Seconds-seconds) < epsilon {
			return s, true
		}
	}
	return Sample{}, false
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	out := *p
	out.Samples = make([]Sample, len(p.Samples))
	for i, s := range p.Samples {
		s.Value = slices.Clone(s.Value)
		out.Samples[i] = s
	}
	return &out
}
