package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitrdm/lsysmcts/internal/config"
	"github.com/gitrdm/lsysmcts/internal/logging"
	"github.com/gitrdm/lsysmcts/internal/raster"
	"github.com/gitrdm/lsysmcts/pkg/lsysmcts"
	"github.com/gitrdm/lsysmcts/pkg/lsystem"
	"github.com/gitrdm/lsysmcts/pkg/reward"
)

var (
	targetPath string
	outPath    string
	verbose    bool
	timeLimit  time.Duration
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Search for a derivation matching a target image",
	Example: `
# Search against a target image with the config file's defaults
lsysmcts solve --target tree.png

# Override the wall-clock budget and grammar from the command line
lsysmcts solve --target tree.png --time-limit 30s --config custom.yaml

# Write the best derivation's rendering alongside its description
lsysmcts solve --target tree.png --out best.png
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if targetPath == "" {
			return fmt.Errorf("--target is required")
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		fileCfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		opts, err := fileCfg.Options()
		if err != nil {
			return err
		}

		grammar, err := lsystem.Lookup(fileCfg.Grammar)
		if err != nil {
			return err
		}

		logger, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		rasterizer := raster.New()
		target, err := raster.NewFileTargetLoader(targetPath).Load()
		if err != nil {
			return err
		}

		opts = append(opts,
			lsysmcts.WithRasterizer(rasterizer),
			lsysmcts.WithDistanceTransform(&raster.EuclideanDistanceTransform{}),
			lsysmcts.WithLogger(logger),
		)
		if timeLimit > 0 {
			opts = append(opts, lsysmcts.WithTimeLimit(timeLimit))
		}
		if verbose {
			opts = append(opts, lsysmcts.WithOnIterationBestReward(func(iteration int, bestReward float64) {
				fmt.Fprintf(os.Stderr, "  iteration %d: best reward so far %.4f\n", iteration, bestReward)
			}))
		}

		cfg := lsysmcts.NewConfig(grammar, opts...)

		start := time.Now()
		derivation, stats, solveErr := lsysmcts.Solve(ctx, target, cfg)
		elapsed := time.Since(start)

		fmt.Printf("run %s: %d root advancements, %d MCTS iterations, %d nodes created (%s)\n",
			stats.RunID, stats.RootAdvancements, stats.TotalIterations, stats.NodesCreated, elapsed)
		fmt.Println(derivation.String())

		if outPath != "" {
			if err := writeRendering(rasterizer, derivation, cfg.GridSize, cfg.RenderScale, outPath); err != nil {
				return err
			}
			fmt.Printf("wrote rendering to %s\n", outPath)
		}

		return solveErr
	},
}

func init() {
	solveCmd.Flags().StringVar(&targetPath, "target", "", "path to the target image (PNG or JPEG)")
	solveCmd.Flags().StringVar(&outPath, "out", "", "optional path to write the best derivation's rendering as a PNG")
	solveCmd.Flags().BoolVar(&verbose, "verbose", false, "enable development logging and per-iteration progress")
	solveCmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "wall-clock budget for the search (0 disables the limit)")
}

func writeRendering(r reward.Rasterizer, derivation lsystem.Derivation, gridSize int, scale float64, path string) error {
	rgb, err := r.RenderRGB(derivation, gridSize, scale)
	if err != nil {
		return fmt.Errorf("rendering final derivation: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, rgb.Width, rgb.Height))
	for y := 0; y < rgb.Height; y++ {
		for x := 0; x < rgb.Width; x++ {
			i := (y*rgb.Width + x) * 3
			img.Set(x, y, color.RGBA{R: rgb.Pixels[i], G: rgb.Pixels[i+1], B: rgb.Pixels[i+2], A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, img)
}
