// Package raster is the reference external-collaborator implementation of
// pkg/reward.Rasterizer: it turns a derivation's turtle-graphics walk into
// an SVG document and rasterizes it with oksvg/rasterx, then downsamples
// with golang.org/x/image/draw for anti-aliasing. Nothing in pkg/mcts or
// pkg/reward imports this package directly; they only see the Rasterizer
// interface, so a future caller can swap in a different renderer (the real
// OpenGL/sketch pipeline spec.md §1 places out of scope) without touching
// the core.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/gitrdm/lsysmcts/pkg/lsystem"
	"github.com/gitrdm/lsysmcts/pkg/reward"
)

// superSample is the linear oversampling factor used before downsampling to
// the requested grid size, trading render cost for anti-aliased edges on
// thin strokes.
const superSample = 2

// Rasterizer is the reference Rasterizer: renders a derivation's turtle
// walk as stroked line segments.
type Rasterizer struct{}

// New returns the reference Rasterizer.
func New() *Rasterizer { return &Rasterizer{} }

// RenderIndicator implements reward.Rasterizer.
func (r *Rasterizer) RenderIndicator(derivation lsystem.Derivation, gridSize int, scale float64) (reward.Image2D, error) {
	rgba, err := r.render(derivation, gridSize, scale)
	if err != nil {
		return reward.Image2D{}, err
	}
	return toIndicator(rgba), nil
}

// RenderRGB implements reward.Rasterizer.
func (r *Rasterizer) RenderRGB(derivation lsystem.Derivation, gridSize int, scale float64) (reward.Image2DRGB, error) {
	rgba, err := r.render(derivation, gridSize, scale)
	if err != nil {
		return reward.Image2DRGB{}, err
	}
	return toRGB(rgba), nil
}

// render walks derivation into strokes, builds an SVG document for them
// scaled and centered horizontally per spec.md §6's origin convention,
// rasterizes it at superSample resolution, and downsamples to the
// requested size*scale grid.
func (r *Rasterizer) render(derivation lsystem.Derivation, gridSize int, scale float64) (*image.RGBA, error) {
	size := int(float64(gridSize) * scale)
	if size <= 0 {
		return nil, fmt.Errorf("raster: non-positive render size %d", size)
	}

	segs := walk(derivation)
	for i := range segs {
		segs[i].X0 *= scale
		segs[i].Y0 *= scale
		segs[i].X1 *= scale
		segs[i].Y1 *= scale
		segs[i].Width *= scale
	}
	minX, maxX := bounds(segs)
	shiftX := float64(size)/2 - (minX+maxX)/2

	hi := size * superSample
	doc := svgDocument(segs, hi, shiftX*superSample, superSample)

	icon, err := oksvg.ReadIconStream(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("raster: parsing generated svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(hi), float64(hi))

	hiImg := image.NewRGBA(image.Rect(0, 0, hi, hi))
	fillWhite(hiImg)

	scanner := rasterx.NewScannerGV(hi, hi, hiImg, hiImg.Bounds())
	dasher := rasterx.NewDasher(hi, hi, scanner)
	icon.Draw(dasher, 1.0)

	final := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(final, final.Bounds(), hiImg, hiImg.Bounds(), xdraw.Over, nil)
	return final, nil
}

func fillWhite(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
}

// svgDocument renders segs as an SVG document of size x size, each segment
// drawn as a stroked, round-capped path. The turtle's Y axis runs
// bottom-to-top while image rows run top-to-bottom, so Y is flipped; shiftX
// centers the whole figure horizontally.
func svgDocument(segs []segment, size int, shiftX float64, scaleFactor float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, size, size)
	for _, s := range segs {
		width := s.Width * scaleFactor
		if width < float64(scaleFactor) {
			width = float64(scaleFactor)
		}
		x0, y0 := s.X0*scaleFactor+shiftX, float64(size)-s.Y0*scaleFactor
		x1, y1 := s.X1*scaleFactor+shiftX, float64(size)-s.Y1*scaleFactor
		fmt.Fprintf(&b, `<path d="M%f %f L%f %f" stroke="black" stroke-width="%f" fill="none" stroke-linecap="round"/>`,
			x0, y0, x1, y1, width)
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// toIndicator thresholds a rendered image to the {0,1} indicator form
// reward.PixelPairEvaluator expects: any pixel darker than mid-gray (a
// drawn stroke, over the white background) is "on".
func toIndicator(img *image.RGBA) reward.Image2D {
	b := img.Bounds()
	out := reward.Image2D{Width: b.Dx(), Height: b.Dy(), Pixels: make([]float32, b.Dx()*b.Dy())}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			lum := (r + g + bl) / 3
			if lum < 0x8000 {
				out.Pixels[y*b.Dx()+x] = 1
			}
		}
	}
	return out
}

func toRGB(img *image.RGBA) reward.Image2DRGB {
	b := img.Bounds()
	out := reward.Image2DRGB{Width: b.Dx(), Height: b.Dy(), Pixels: make([]byte, b.Dx()*b.Dy()*3)}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*b.Dx() + x) * 3
			out.Pixels[i] = byte(r >> 8)
			out.Pixels[i+1] = byte(g >> 8)
			out.Pixels[i+2] = byte(bl >> 8)
		}
	}
	return out
}
