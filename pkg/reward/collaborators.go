package reward

import "github.com/gitrdm/lsysmcts/pkg/lsystem"

// Rasterizer renders a derivation into raster form (spec.md §6). The core
// reward evaluator only ever calls RenderIndicator; RenderRGB exists for
// diagnostic/preview callers outside the search loop.
type Rasterizer interface {
	// RenderIndicator rasterizes derivation into a square single-channel
	// image of size gridSize*scale: drawable "F" symbols draw line segments
	// of width proportional to radius*scale (minimum one pixel), "["/"]"
	// implement a model-matrix stack, and angle symbols rotate the current
	// model matrix. The result is centered horizontally.
	RenderIndicator(derivation lsystem.Derivation, gridSize int, scale float64) (Image2D, error)

	// RenderRGB produces an RGB raster of derivation for preview/diagnostic
	// use; not required by the reward path.
	RenderRGB(derivation lsystem.Derivation, gridSize int, scale float64) (Image2DRGB, error)
}

// TargetLoader produces the normalized target image: single channel,
// float32, in [0, 1], matching the rasterizer's output dimensions at the
// working scale.
type TargetLoader interface {
	Load() (Image2D, error)
}

// DistanceTransform maps a binary or grayscale image to its per-pixel
// Euclidean distance to the nearest zero-valued pixel, used by the
// distance-map reward form.
type DistanceTransform interface {
	Transform(img Image2D) (Image2D, error)
}
