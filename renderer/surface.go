package renderer

import "math"

// Surface tracks the logical window size and the pixel size of the render
// targets derived from it.
type Surface struct {
	// MaxPixelRatio caps the device pixel ratio; 0 means uncapped.
	MaxPixelRatio float32

	Width       int
	Height      int
	PixelRatio  float32
	PixelWidth  int
	PixelHeight int
}

// SurfaceSize converts a logical size to render-target pixels using the
// device pixel ratio clamped to maxRatio.
func SurfaceSize(width, height int, dpr, maxRatio float32) (int, int, float32) {
	ratio := dpr
	if ratio <= 0 {
		ratio = 1
	}
	if maxRatio > 0 && ratio > maxRatio {
		ratio = maxRatio
	}
	pw := int(math.Round(float64(float32(width) * ratio)))
	ph := int(math.Round(float64(float32(height) * ratio)))
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	return pw, ph, ratio
}

// Resize records a new window size. It reports whether anything changed;
// a zero-sized (minimised) window is ignored.
func (s *Surface) Resize(width, height int, dpr float32) bool {
	if width < 1 || height < 1 {
		return false
	}
	pw, ph, ratio := SurfaceSize(width, height, dpr, s.MaxPixelRatio)
	if width == s.Width && height == s.Height && pw == s.PixelWidth && ph == s.PixelHeight {
		return false
	}
	s.Width, s.Height = width, height
	s.PixelWidth, s.PixelHeight = pw, ph
	s.PixelRatio = ratio
	return true
}
