package main

import (

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.sif>...",
	Short: "Convert documents and print their paths",
	Long: `Converts each document and prints one JSON result per line.
Parameters that cannot be converted are reported in the result instead of
aborting the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.closer.Close()

		format, _ := cmd.Flags().GetString("format")
		return cli.Convert(cmd.Context(), a.conv, args, format, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("format", "f", cli.FormatJSON, "Output format: json, report or mermaid")
}
