package scene

import (
	"image"
	"image/draw"
)

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
	// SRGB marks colour data that must be linearised on sampling.
	SRGB bool
	// GLID is the OpenGL texture object ID, set by opengl.UploadTexture.
	GLID uint32
}

// NewTextureFromImage copies img into an RGBA8 texture.
func NewTextureFromImage(name string, img image.Image) *Texture {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	pix := make([]byte, len(rgba.Pix))
	copy(pix, rgba.Pix)
	return &Texture{
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: pix,
		SRGB:   true,
	}
}

// EnvironmentMap is an equirectangular HDR image in linear RGB.
type EnvironmentMap struct {
	Name   string
	Width  int
	Height int
	// Pixels holds 3 floats per texel, row-major, top-to-bottom.
	Pixels []float32
	// Mean is the average radiance, used as a flat ambient term.
	Mean [3]float32
	// GLID is set by opengl.UploadEnvironment.
	GLID uint32
}
