package textures

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/fogleman/gg"

	"kusama-scene/config"
)

func TestDrawStripes(t *testing.T) {
	cfg := config.Default().Room
	dc := gg.NewContext(cfg.TextureSize, cfg.TextureSize)
	dc.SetColor(color.White)
	dc.Clear()
	DrawStripes(dc, cfg)

	img := dc.Image()
	cases := []struct {
		y     int
		black bool
	}{
		{0, true},    // first stripe, half clipped
		{20, true},
		{70, false},  // gap between stripes
		{140, true},  // second stripe centre
		{420, true},
		{490, false},
		{980, true},  // stripe 7 centre
	}
	for _, c := range cases {
		r, g, b, a := img.At(512, c.y).RGBA()
		isBlack := r == 0 && g == 0 && b == 0 && a == 0xffff
		isWhite := r == 0xffff && g == 0xffff && b == 0xffff
		if c.black && !isBlack {
			t.Errorf("y=%d: expected black, got %v", c.y, img.At(512, c.y))
		}
		if !c.black && !isWhite {
			t.Errorf("y=%d: expected white, got %v", c.y, img.At(512, c.y))
		}
	}
}

func TestDitherCountsAndTransparency(t *testing.T) {
	cfg := config.Default().Room
	img, stats := DrawRoom(rand.New(rand.NewSource(42)), cfg)

	if stats.Erased+stats.Filled != cfg.DitherCount {
		t.Fatalf("expected %d operations, got %d", cfg.DitherCount, stats.Erased+stats.Filled)
	}
	// Even odds over 8000 draws should land well inside this band.
	if stats.Erased < 3600 || stats.Erased > 4400 {
		t.Errorf("erase count %d is far from half", stats.Erased)
	}
	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 1024 {
		t.Errorf("expected 1024x1024, got %v", b)
	}

	transparent := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0 {
			transparent++
		}
	}
	if transparent == 0 {
		t.Error("expected erased pixels to be fully transparent")
	}
}

func TestRoomTextureDeterministicForSeed(t *testing.T) {
	cfg := config.Default().Room
	cfg.TextureSize = 128
	cfg.DitherCount = 200

	a, _ := NewRoomTexture(rand.New(rand.NewSource(9)), cfg)
	b, _ := NewRoomTexture(rand.New(rand.NewSource(9)), cfg)

	if len(a.Pixels) != 128*128*4 {
		t.Fatalf("unexpected pixel buffer size %d", len(a.Pixels))
	}
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("textures differ at byte %d", i)
		}
	}
}
