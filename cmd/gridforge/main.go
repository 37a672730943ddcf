// Package main is the entry point for gridforge.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/gridforge/internal/config"
	"github.com/samdwyer/gridforge/internal/sim"
	"github.com/samdwyer/gridforge/internal/telemetry"
	"github.com/samdwyer/gridforge/internal/ui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath    string
		width      int
		height     int
		iterations int
		seed       int64
		renderMode string
		verbose    bool
	)

	root := &cobra.Command{
		Use:          "gridforge",
		Short:        "gridforge generates 2D occupancy-grid maps in the terminal",
		Long:         "gridforge procedurally generates a 2D occupancy grid by alternating a cellular-automata smoothing pass with a randomized drunk-walker carve pass, rendering each iteration to the terminal.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			// Flags override the file config only when set.
			flags := cmd.Flags()
			if flags.Changed("width") {
				cfg.Grid.Width = width
			}
			if flags.Changed("height") {
				cfg.Grid.Height = height
			}
			if flags.Changed("iterations") {
				cfg.Run.Iterations = iterations
			}
			if flags.Changed("seed") {
				cfg.Run.Seed = seed
			}
			if flags.Changed("render") {
				cfg.Render.Mode = renderMode
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, verbose)
		},
	}

	root.Flags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	root.Flags().IntVar(&width, "width", config.Default().Grid.Width, "grid width in cells")
	root.Flags().IntVar(&height, "height", config.Default().Grid.Height, "grid height in cells")
	root.Flags().IntVarP(&iterations, "iterations", "n", config.Default().Run.Iterations, "number of generation iterations")
	root.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	root.Flags().StringVar(&renderMode, "render", config.Default().Render.Mode, "render mode: screen or text")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	return root
}

func run(ctx context.Context, cfg *config.Config, verbose bool) error {
	logger := newLogger(cfg.Render.Mode, verbose)

	// Load .env for local development; env vars may also be set directly.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "err", err)
	}
	setupOTelEnv()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("telemetry setup failed, continuing without it", "err", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("telemetry shutdown failed", "err", err)
			}
		}()
	}

	runner, err := sim.New(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Render.Mode == config.RenderText {
		text := ui.NewTextRenderer(os.Stdout)
		return runner.Run(ctx, text.Frame)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Close()

	viewer := ui.NewViewer(screen, time.Duration(cfg.Render.DelayMS)*time.Millisecond, cfg.Run.Iterations)
	if err := runner.Run(ctx, viewer.Frame); err != nil {
		if errors.Is(err, ui.ErrQuit) {
			return nil
		}
		return err
	}
	return viewer.Done(runner.Grid(), runner.Walker())
}

// newLogger builds the run logger. In screen mode tcell owns the terminal,
// so log output is dropped rather than scribbled over the grid.
func newLogger(renderMode string, verbose bool) *log.Logger {
	out := io.Writer(os.Stderr)
	if renderMode == config.RenderScreen {
		out = io.Discard
	}
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_GRIDFORGE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_GRIDFORGE_DATASET")
	if dataset == "" {
		dataset = "gridforge"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
