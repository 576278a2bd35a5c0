package scene

import "kusama-scene/core"

// Side selects which triangle faces a material renders.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// Material is a physically based surface description with optional
// transmission. Transmissive materials look through the surface toward the
// environment, tinted by Beer-Lambert attenuation over Thickness.
type Material struct {
	Name      string
	Albedo    core.Color
	Roughness float32
	Metallic  float32
	Unlit     bool // output raw albedo/texture colour
	Side      Side

	EmissiveColor     core.Color
	EmissiveIntensity float32

	Transmission        float32 // 0 = opaque, 1 = fully transmissive
	IOR                 float32
	Thickness           float32
	AttenuationColor    core.Color
	AttenuationDistance float32 // 0 = no absorption
	Dispersion          float32 // spread of IOR across RGB

	SpecularIntensity float32
	SpecularColor     core.Color

	Transparent bool
	DepthWrite  bool

	// Optional albedo texture; if set, it is multiplied with Albedo.
	// Upload via opengl.UploadTexture before rendering.
	AlbedoTexture *Texture
}

// DefaultMaterial returns a plain white dielectric.
func DefaultMaterial() *Material {
	return &Material{
		Name:              "Default",
		Albedo:            core.ColorWhite,
		Roughness:         1,
		IOR:               1.5,
		SpecularIntensity: 1,
		SpecularColor:     core.ColorWhite,
		EmissiveColor:     core.ColorBlack,
		EmissiveIntensity: 1,
		DepthWrite:        true,
	}
}

// Emission returns the emitted radiance (colour times intensity).
func (m *Material) Emission() core.Color {
	return m.EmissiveColor.Scale(m.EmissiveIntensity)
}

// IsTransparent reports whether the material is drawn in the blended pass.
func (m *Material) IsTransparent() bool {
	return m.Transparent || m.Transmission > 0
}
