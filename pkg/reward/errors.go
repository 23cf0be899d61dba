package reward

import "errors"

// ErrRasterFailure indicates the rasterizer returned a wrong-sized or
// ill-typed image; the evaluator surfaces this to the driver rather than
// guessing at a corrected image (spec.md §7).
var ErrRasterFailure = errors.New("reward: rasterizer returned an unusable image")

// ErrDimensionMismatch indicates the rendered image and the target image
// do not share dimensions, a specific instance of ErrRasterFailure.
var ErrDimensionMismatch = errors.New("reward: rendered image dimensions do not match target")
