package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint"
)

// Report formats a conversion or inspection result as markdown.
func Report(res *waypoint.Result) string {
	var b strings.Builder

	b.WriteString("# Waypoint report\n\n")
	if res.RunID != "" {
		fmt.Fprintf(&b, "Run `%s`, ", res.RunID)
	}
	fmt.Fprintf(&b, "%d×%d canvas at %g fps, %d paths, %d failures.\n\n",
		res.Canvas.Width, res.Canvas.Height, res.FrameRate, res.Paths(), res.Failures())

	for _, l := range res.Layers {
		title := l.Type
		if l.Desc != "" {
			title = fmt.Sprintf("%s (%s)", l.Type, l.Desc)
		}
		fmt.Fprintf(&b, "## %s%s\n\n", strings.Repeat("↳ ", l.Depth), title)
		if len(l.Params) == 0 {
			b.WriteString("_no parameters_\n\n")
			continue
		}

		b.WriteString("| param | type | state | samples | note |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, p := range l.Params {
			samples := "-"
			if p.Path != nil {
				samples = fmt.Sprint(p.Path.Len())
			}
			note := ""
			switch {
			case p.Error != "":
				note = "⚠ " + p.Error
			case p.TransformPath != nil:
				note = "transform axis"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				p.Key, p.AnimType, p.State, samples, escape(note))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
