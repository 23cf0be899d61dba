// Package reward scores a rendered derivation against a target raster image
// and reduces the comparison to the scalar reward the search tree
// backpropagates. It never rasterizes anything itself: rendering, target
// loading, and distance-transform computation are all external
// collaborators, consumed here only through interfaces, the same
// separation the teacher draws between its Model (problem definition) and
// the constraint/propagation code that consumes it.
package reward

// Image2D is a single-channel float32 raster, row-major, Width*Height long.
type Image2D struct {
	Width  int
	Height int
	Pixels []float32
}

// At returns the pixel value at (x, y).
func (img Image2D) At(x, y int) float32 {
	return img.Pixels[y*img.Width+x]
}

// SameDimensions reports whether img and other share Width and Height.
func (img Image2D) SameDimensions(other Image2D) bool {
	return img.Width == other.Width && img.Height == other.Height
}

// Image2DRGB is an 8-bit-per-channel RGB raster, row-major, used only for
// on-screen preview / diagnostic output, never consumed by the reward path.
type Image2DRGB struct {
	Width  int
	Height int
	// Pixels holds 3 bytes (R, G, B) per pixel.
	Pixels []byte
}
