package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the layers and parameters of a result.
// Shapes follow the animation state:
// - Layer: [[Subroutine]]
// - Static: [Rectangle]
// - Partially animated: [/Parallelogram/]
// - Fully animated: ((Circle))
// Parameters whose conversion failed are styled as failed.
func GenerateMermaid(res *waypoint.Result) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var failed []string
	for i, l := range res.Layers {
		layerID := fmt.Sprintf("layer%d", i)
		label := l.Type
		if l.Desc != "" {
			label = fmt.Sprintf("%s <br/> %s", l.Type, quote(l.Desc))
		}
		sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", layerID, label))

		for _, p := range l.Params {
			safeID := layerID + "_" + sanitizeMermaidID(p.Key)

			opener, closer := "[", "]"
			switch p.State {
			case domain.StatePartiallyAnimated:
				opener, closer = "[/", "/]"
			case domain.StateFullyAnimated:
				opener, closer = "((", "))"
			}

			name := p.Key[strings.LastIndex(p.Key, ".")+1:]
			sb.WriteString(fmt.Sprintf("    %s%s\"%s <br/> %s\"%s\n", safeID, opener, name, p.AnimType, closer))

			parent := layerID
			if i := strings.LastIndex(p.Key, "."); i >= 0 {
				parent = layerID + "_" + sanitizeMermaidID(p.Key[:i])
			}
			arrow := "-->"
			if p.TransformPath != nil {
				arrow = "-. transform .->"
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", parent, arrow, safeID))

			if p.Error != "" {
				failed = append(failed, safeID)
			}
		}
	}

	if len(failed) > 0 {
		sb.WriteString("\n    %% Failures\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		for _, id := range failed {
			sb.WriteString(fmt.Sprintf("    class %s failed;\n", id))
		}
	}

	return sb.String()
}

func quote(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
