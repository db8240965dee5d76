package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/internal/presentation/tui"
)

// Output formats of the convert and inspect commands.
const (
	FormatJSON    = "json"
	FormatReport  = "report"
	FormatMermaid = "mermaid"
)

// Convert converts each file and writes one result per file to w.
// JSON output is one document per line.
func Convert(ctx context.Context, conv *waypoint.Converter, files []string, format string, w io.Writer) error {
	for _, f := range files {
		res, err := conv.ConvertFile(ctx, f)
		if err != nil {
			return err
		}
		if err := write(res, format, w); err != nil {
			return err
		}
	}
	return nil
}

func write(res *waypoint.Result, format string, w io.Writer) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(res)
	case FormatReport:
		_, err := io.WriteString(w, tui.Report(res))
		return err
	case FormatMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(res))
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
