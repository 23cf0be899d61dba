package raster

import (
	"math"
	"testing"

	"github.com/gitrdm/lsysmcts/pkg/reward"
)

func TestEuclideanDistanceTransformOfSingleSource(t *testing.T) {
	img := reward.Image2D{Width: 3, Height: 3, Pixels: []float32{
		1, 1, 1,
		1, 0, 1,
		1, 1, 1,
	}}
	var dt EuclideanDistanceTransform
	out, err := dt.Transform(img)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}

	if out.At(1, 1) != 0 {
		t.Fatalf("distance at the source pixel = %v, want 0", out.At(1, 1))
	}
	if diff := float64(out.At(0, 1)) - 1.0; math.Abs(diff) > 1e-5 {
		t.Fatalf("distance at an orthogonal neighbor = %v, want 1.0", out.At(0, 1))
	}
	wantDiag := math.Sqrt2
	if diff := float64(out.At(0, 0)) - wantDiag; math.Abs(diff) > 1e-5 {
		t.Fatalf("distance at a diagonal neighbor = %v, want %v", out.At(0, 0), wantDiag)
	}
}

func TestEuclideanDistanceTransformAllZeroIsZeroEverywhere(t *testing.T) {
	img := reward.Image2D{Width: 2, Height: 2, Pixels: []float32{0, 0, 0, 0}}
	var dt EuclideanDistanceTransform
	out, err := dt.Transform(img)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	for i, p := range out.Pixels {
		if p != 0 {
			t.Fatalf("Pixels[%d] = %v, want 0 when every pixel is a source", i, p)
		}
	}
}

func TestEuclideanDistanceTransformMonotoneAwayFromSource(t *testing.T) {
	img := reward.Image2D{Width: 5, Height: 1, Pixels: []float32{0, 1, 1, 1, 1}}
	var dt EuclideanDistanceTransform
	out, err := dt.Transform(img)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	for x := 1; x < 4; x++ {
		if out.At(x, 0) > out.At(x+1, 0) {
			t.Fatalf("distance not monotone non-decreasing moving away from the source: %v at x=%d, %v at x=%d", out.At(x, 0), x, out.At(x+1, 0), x+1)
		}
	}
}
