package waypoint

import (
	"github.com/aretw0/waypoint/internal/compiler"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/google/uuid"
)

// Result is the outcome of converting one document.
type Result struct {
	RunID     string        `json:"run_id,omitempty"`
	Canvas    domain.Canvas `json:"canvas"`
	FrameRate float64       `json:"frame_rate"`
	Layers    []LayerResult `json:"layers"`
}

// LayerResult groups the parameters of one layer.
type LayerResult struct {
	ID     uuid.UUID     `json:"id"`
	Type   string        `json:"type"`
	Desc   string        `json:"desc,omitempty"`
	Active bool          `json:"active"`
	Depth  int           `json:"depth"`
	Params []ParamResult `json:"params"`
}

// ParamResult holds the paths of one parameter, or the reason it has none.
// State is the animation state before promotion, or StateUnknown when the
// value node could not be classified.
type ParamResult struct {
	Key           string                `json:"key"`
	State         domain.AnimationState `json:"state"`
	AnimType      string                `json:"anim_type"`
	Path          *domain.Path          `json:"path,omitempty"`
	TransformPath *domain.Path          `json:"transform_path,omitempty"`
	Error         string                `json:"error,omitempty"`
}

func newResult(runID string, doc *compiler.Document) *Result {
	res := &Result{
		RunID:     runID,
		Canvas:    doc.Canvas,
		FrameRate: doc.FrameRate,
	}
	for _, l := range doc.Tree.Layers() {
		res.Layers = append(res.Layers, LayerResult{
			ID:     l.ID,
			Type:   l.Type,
			Desc:   l.Desc,
			Active: l.Active,
			Depth:  l.Depth,
			Params: []ParamResult{},
		})
	}
	return res
}

// Paths counts the generated paths, transform-axis paths included.
func (r *Result) Paths() int {
	n := 0
	for _, l := range r.Layers {
		for _, p := range l.Params {
			if p.Path != nil {
				n++
			}
			if p.TransformPath != nil {
				n++
			}
		}
	}
	return n
}

// Failures counts the parameters that could not be converted.
func (r *Result) Failures() int {
	n := 0
	for _, l := range r.Layers {
		for _, p := range l.Params {
			if p.Error != "" {
				n++
			}
		}
	}
	return n
}

// Param finds a parameter result by layer index and key.
func (r *Result) Param(layer int, key string) (ParamResult, bool) {
	if layer < 0 || layer >= len(r.Layers) {
		return ParamResult{}, false
	}
	for _, p := range r.Layers[layer].Params {
		if p.Key == key {
			return p, true
		}
	}
	return ParamResult{}, false
}
