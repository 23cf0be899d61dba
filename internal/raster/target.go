package raster

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/gitrdm/lsysmcts/pkg/reward"
)

// FileTargetLoader implements reward.TargetLoader by decoding a PNG or JPEG
// file from disk and thresholding it into the {0,1} indicator form the
// pixel-pair and distance-map evaluators both compare against, the same
// mid-gray threshold toIndicator applies to a rendered derivation so a
// target image and a rendered candidate are judged on equal footing.
type FileTargetLoader struct {
	Path string
}

// NewFileTargetLoader returns a FileTargetLoader for the image at path.
func NewFileTargetLoader(path string) *FileTargetLoader {
	return &FileTargetLoader{Path: path}
}

// Load implements reward.TargetLoader.
func (l *FileTargetLoader) Load() (reward.Image2D, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return reward.Image2D{}, fmt.Errorf("raster: opening target image %q: %w", l.Path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return reward.Image2D{}, fmt.Errorf("raster: decoding target image %q: %w", l.Path, err)
	}

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
	return out, nil
}
