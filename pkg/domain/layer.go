package domain

import "github.com/google/uuid"

// Layer is a visual layer owning a tree of parameters.
type Layer struct {
	ID     uuid.UUID `json:"id"`
	Type   string    `json:"type"`
	Desc   string    `json:"desc,omitempty"`
	Active bool      `json:"active"`
	Depth  int       `json:"depth"`
}

// Canvas holds the document-wide settings read from the <canvas> root.
type Canvas struct {
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	FPS     float64    `json:"fps"`
	ViewBox [4]float64 `json:"view_box"` // top-left x, top-left y, bottom-right x, bottom-right y
	Begin   string     `json:"begin_time,omitempty"`
	End     string     `json:"end_time,omitempty"`
}

// UnitScale returns how many pixels one canvas unit spans horizontally.
// It returns 0 when the view box is degenerate.
func (c Canvas) UnitScale() float64 {
	span := c.ViewBox[2] - c.ViewBox[0]
	if span == 0 || c.Width == 0 {
		return 0
	}
	return float64(c.Width) / span
}
