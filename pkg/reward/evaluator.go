package reward

import (
	"fmt"
	"math"

	"github.com/gitrdm/lsysmcts/pkg/lsystem"
)

// Evaluator scores a derivation against a fixed target image, returning the
// scalar reward the search tree backpropagates (spec.md §4.5). A solve run
// uses exactly one Evaluator implementation for its whole duration: the two
// forms below are never mixed within a run, only switched at configuration
// time.
type Evaluator interface {
	Evaluate(derivation lsystem.Derivation) (float64, error)
}

// render is the shared indicator-rendering step both evaluator forms use:
// it calls out to the rasterizer and validates the result's dimensions
// against target before any scoring math runs.
func render(r Rasterizer, derivation lsystem.Derivation, gridSize int, scale float64, target Image2D) (Image2D, error) {
	img, err := r.RenderIndicator(derivation, gridSize, scale)
	if err != nil {
		return Image2D{}, fmt.Errorf("%w: %v", ErrRasterFailure, err)
	}
	if !img.SameDimensions(target) {
		return Image2D{}, fmt.Errorf("%w: %w: rendered %dx%d, target %dx%d", ErrRasterFailure, ErrDimensionMismatch, img.Width, img.Height, target.Width, target.Height)
	}
	return img, nil
}

// PixelPairEvaluator implements the pixel-difference similarity form:
// reward = 1 - Sum(|I-T|^2) / W, where W is the number of "on" pixels in
// the target (spec.md §4.5).
type PixelPairEvaluator struct {
	Rasterizer Rasterizer
	Target     Image2D
	GridSize   int
	Scale      float64

	onPixelCount int
}

// NewPixelPairEvaluator builds a PixelPairEvaluator, precomputing the
// target's "on" pixel count once since it never changes across the many
// evaluations one solve performs.
func NewPixelPairEvaluator(r Rasterizer, target Image2D, gridSize int, scale float64) *PixelPairEvaluator {
	count := 0
	for _, p := range target.Pixels {
		if p == 1 {
			count++
		}
	}
	return &PixelPairEvaluator{Rasterizer: r, Target: target, GridSize: gridSize, Scale: scale, onPixelCount: count}
}

// Evaluate implements Evaluator.
func (e *PixelPairEvaluator) Evaluate(derivation lsystem.Derivation) (float64, error) {
	img, err := render(e.Rasterizer, derivation, e.GridSize, e.Scale, e.Target)
	if err != nil {
		return 0, err
	}

	if e.onPixelCount == 0 {
		// An all-zero target makes W, the normalizer, meaningless; fall
		// back to an unnormalized sum so reward stays finite and
		// deterministic (spec.md §8's all-zero rasterizer edge case).
		var sum float64
		for i, p := range img.Pixels {
			diff := float64(p) - float64(e.Target.Pixels[i])
			sum += diff * diff
		}
		return 1 - sum, nil
	}

	var sum float64
	for i, p := range img.Pixels {
		diff := float64(p) - float64(e.Target.Pixels[i])
		sum += diff * diff
	}
	return 1 - sum/float64(e.onPixelCount), nil
}

// DistanceMapEvaluator implements the distance-map similarity form:
// d = alpha * Sum_{T==0} D_I(p) + beta * Sum_{I==0} D_T(p), normalized by
// Z = rows*cols*(rows+cols)/2, reward = exp(-d) (spec.md §4.5).
type DistanceMapEvaluator struct {
	Rasterizer Rasterizer
	Target     Image2D
	Transform  DistanceTransform
	Alpha      float64
	Beta       float64
	GridSize   int
	Scale      float64

	targetDistance Image2D
	z              float64
}

// DefaultAlpha and DefaultBeta are the distance-map form's configured
// defaults (spec.md §4.5).
const (
	DefaultAlpha = 10000.0
	DefaultBeta  = 5000.0
)

// NewDistanceMapEvaluator builds a DistanceMapEvaluator, precomputing the
// target's own distance transform D_T once since, like the target itself,
// it never changes across a solve.
func NewDistanceMapEvaluator(r Rasterizer, target Image2D, transform DistanceTransform, alpha, beta float64, gridSize int, scale float64) (*DistanceMapEvaluator, error) {
	targetDistance, err := transform.Transform(target)
	if err != nil {
		return nil, fmt.Errorf("reward: computing target distance transform: %w", err)
	}
	z := float64(target.Height) * float64(target.Width) * float64(target.Height+target.Width) / 2
	return &DistanceMapEvaluator{
		Rasterizer:     r,
		Target:         target,
		Transform:      transform,
		Alpha:          alpha,
		Beta:           beta,
		GridSize:       gridSize,
		Scale:          scale,
		targetDistance: targetDistance,
		z:              z,
	}, nil
}

// Evaluate implements Evaluator.
func (e *DistanceMapEvaluator) Evaluate(derivation lsystem.Derivation) (float64, error) {
	img, err := render(e.Rasterizer, derivation, e.GridSize, e.Scale, e.Target)
	if err != nil {
		return 0, err
	}
	rendered, err := e.Transform.Transform(img)
	if err != nil {
		return 0, fmt.Errorf("reward: computing rendered distance transform: %w", err)
	}

	var d float64
	for i := range e.Target.Pixels {
		if e.Target.Pixels[i] == 0 {
			d += e.Alpha * float64(rendered.Pixels[i])
		}
		if img.Pixels[i] == 0 {
			d += e.Beta * float64(e.targetDistance.Pixels[i])
		}
	}
	if e.z > 0 {
		d /= e.z
	}
	return math.Exp(-d), nil
}
