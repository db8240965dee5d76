package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/pkg/config"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "waypoint",
	Short: "Waypoint converts Synfig animations into time-indexed paths",
	Long: `Waypoint reads Synfig (.sif) documents and turns every animated parameter
into a Lottie-style path that keeps the timing and interpolation of each waypoint.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Settings file (YAML or JSON)")
	rootCmd.PersistentFlags().Float64("fps", 0, "Frame rate override (default: canvas fps)")
	rootCmd.PersistentFlags().String("store", "", "Path store backend: memory, redis, file or none")
	rootCmd.PersistentFlags().String("redis-url", "", "Redis URL for the redis store")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every promotion and generated path")
}

// app bundles what every command builds from the persistent flags.
type app struct {
	settings config.Settings
	logger   *slog.Logger
	conv     *waypoint.Converter
	closer   io.Closer
}

func setup(cmd *cobra.Command, hooks ...domain.Hooks) (*app, error) {
	flags := cmd.Flags()
	var opts cli.Options
	opts.ConfigPath, _ = flags.GetString("config")
	opts.FrameRate, _ = flags.GetFloat64("fps")
	opts.Store, _ = flags.GetString("store")
	opts.RedisURL, _ = flags.GetString("redis-url")
	opts.Debug, _ = flags.GetBool("debug")

	settings, err := cli.LoadSettings(opts)
	if err != nil {
		return nil, err
	}
	logger := cli.NewLogger(settings)

	store, closer, err := cli.NewStore(settings)
	if err != nil {
		return nil, err
	}
	conv, err := cli.NewConverter(settings, store, logger, opts.Debug, hooks...)
	if err != nil {
		closer.Close()
		return nil, err
	}
	return &app{settings: settings, logger: logger, conv: conv, closer: closer}, nil
}
