package core

import (
	"fmt"
	stdmath "math"
	"strconv"
	"strings"

	"kusama-scene/math"
)

// Color is a linear RGBA colour. Components may exceed 1 for HDR values
// such as emissive or attenuation tints.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// ParseHexColor decodes "#RRGGBB" (or "RRGGBB") into an opaque colour.
// The channels are converted from sRGB to linear, matching how colour
// literals are interpreted by a colour-managed renderer.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex colour %q: want 6 digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return Color{
		R: SRGBToLinear(float32((v>>16)&0xff) / 255),
		G: SRGBToLinear(float32((v>>8)&0xff) / 255),
		B: SRGBToLinear(float32(v&0xff) / 255),
		A: 1,
	}, nil
}

// MustParseHexColor is ParseHexColor for compile-time constants.
func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Scale multiplies RGB by f and keeps alpha.
func (c Color) Scale(f float32) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}

func SRGBToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(stdmath.Pow(float64((c+0.055)/1.055), 2.4))
}

type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.QuaternionIdentity(),
		Scale:    math.Vec3One,
	}
}

// GetMatrix returns the local matrix: scale, then rotate, then translate.
func (t Transform) GetMatrix() math.Mat4 {
	return math.Mat4Compose(t.Position, t.Rotation, t.Scale)
}

// GetUp is the local +Y axis in parent space.
func (t Transform) GetUp() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Up)
}
