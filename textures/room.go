// Package textures generates the procedural images used by the scene.
package textures

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"

	"github.com/fogleman/gg"

	"kusama-scene/config"
	"kusama-scene/scene"
)

// DitherStats counts what the dither pass did.
type DitherStats struct {
	Erased int
	Filled int
}

// NewRoomTexture paints the striped, dithered wallpaper of the room.
// Erased patches end up transparent black.
func NewRoomTexture(rng *rand.Rand, cfg config.Room) (*scene.Texture, DitherStats) {
	img, stats := DrawRoom(rng, cfg)
	return scene.NewTextureFromImage("room", img), stats
}

// DrawRoom renders the wallpaper onto a fresh square canvas.
func DrawRoom(rng *rand.Rand, cfg config.Room) (*image.RGBA, DitherStats) {
	dc := gg.NewContext(cfg.TextureSize, cfg.TextureSize)
	dc.SetColor(color.White)
	dc.Clear()

	DrawStripes(dc, cfg)
	stats := Dither(dc, rng, cfg)

	return dc.Image().(*image.RGBA), stats
}

// DrawStripes strokes StripeCount black horizontal lines across the full
// width, centred on y = i*StripeStep. The first line sits on the top edge
// and is half clipped.
func DrawStripes(dc *gg.Context, cfg config.Room) {
	w := float64(dc.Width())
	dc.SetColor(color.Black)
	dc.SetLineWidth(cfg.StripeWidth)
	dc.SetLineCapButt()
	for i := 0; i < cfg.StripeCount; i++ {
		y := float64(i) * cfg.StripeStep
		dc.DrawLine(0, y, w, y)
		dc.Stroke()
	}
}

// Dither scatters DitherCount random squares over the canvas. Each square
// has even odds of being punched out to transparent black or painted white.
// Per square the generator is drawn for x, y, size and then the coin.
func Dither(dc *gg.Context, rng *rand.Rand, cfg config.Room) DitherStats {
	var stats DitherStats
	size := float64(dc.Width())
	dst := dc.Image().(*image.RGBA)

	dc.SetColor(color.White)
	for i := 0; i < cfg.DitherCount; i++ {
		x := rng.Float64() * size
		y := rng.Float64() * size
		s := rng.Float64() * cfg.DitherMax

		if rng.Float64() > 0.5 {
			r := image.Rect(
				int(math.Round(x)), int(math.Round(y)),
				int(math.Round(x+s)), int(math.Round(y+s)),
			)
			draw.Draw(dst, r, image.Transparent, image.Point{}, draw.Src)
			stats.Erased++
		} else {
			dc.DrawRectangle(x, y, s, s)
			dc.Fill()
			stats.Filled++
		}
	}
	return stats
}
