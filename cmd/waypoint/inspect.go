package main

import (
	"os"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.sif>",
	Short: "Show the animation state of every parameter",
	Long: `Classifies each parameter as static, partially or fully animated without
converting anything. The report is rendered with colors when stdout is a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.closer.Close()

		format, _ := cmd.Flags().GetString("format")
		fd := int(os.Stdout.Fd())
		pretty := term.IsTerminal(fd)
		width := 0
		if pretty {
			if w, _, err := term.GetSize(fd); err == nil {
				width = w
			}
		}
		return cli.Inspect(cmd.Context(), a.conv, args[0], format, pretty, width, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("format", "f", cli.FormatReport, "Output format: report, json or mermaid")
}
