package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/presentation/tui"
)

// Inspect prints the animation state of every parameter of a document.
// Markdown is rendered through glamour when pretty is set.
func Inspect(ctx context.Context, conv *waypoint.Converter, file, format string, pretty bool, width int, w io.Writer) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	res, err := conv.Inspect(ctx, data)
	if err != nil {
		return err
	}
	if format != FormatReport || !pretty {
		return write(res, format, w)
	}

	render, err := tui.NewRenderer(width)
	if err != nil {
		return err
	}
	out, err := render(tui.Report(res))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
