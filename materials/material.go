// Package materials is the library of surface presets used by the scene,
// plus the flattening of a material into the values the shader consumes.
package materials

import (
	"math"

	"kusama-scene/core"
	"kusama-scene/scene"
)

// Frosted is the translucent glowing finish of the disks: a tinted,
// fully transmissive dielectric that also emits its own colour.
func Frosted(c core.Color) *scene.Material {
	return &scene.Material{
		Name:                "Frosted",
		Albedo:              c,
		AttenuationColor:    c.Scale(1.2),
		AttenuationDistance: 1.2,
		Transmission:        1,
		Roughness:           0.3,
		IOR:                 1.4,
		Thickness:           0.8,
		Side:                scene.SideDouble,
		Transparent:         true,
		DepthWrite:          true,
		EmissiveColor:       c,
		EmissiveIntensity:   1.5,
		SpecularIntensity:   2,
		SpecularColor:       core.ColorWhite,
	}
}

// Clear is the colourless shell of a bubble. It splits light into colour
// fringes (Dispersion) and does not occlude what lies behind it in depth.
func Clear() *scene.Material {
	return &scene.Material{
		Name:              "Clear",
		Albedo:            core.ColorWhite,
		Transmission:      1,
		IOR:               1.3,
		Dispersion:        15,
		Roughness:         0.3,
		Thickness:         1,
		Transparent:       true,
		DepthWrite:        false,
		Side:              scene.SideDouble,
		SpecularIntensity: 2,
		SpecularColor:     core.ColorWhite,
		EmissiveColor:     core.ColorBlack,
		EmissiveIntensity: 1,
	}
}

// Room shows a texture unlit on the inside of an enclosing sphere.
func Room(tex *scene.Texture) *scene.Material {
	return &scene.Material{
		Name:              "Room",
		Albedo:            core.ColorWhite,
		AlbedoTexture:     tex,
		Unlit:             true,
		Side:              scene.SideBack,
		DepthWrite:        true,
		EmissiveColor:     core.ColorBlack,
		EmissiveIntensity: 1,
	}
}

// Uniform is a material flattened into shader inputs.
type Uniform struct {
	Albedo        [4]float32
	Emissive      [3]float32
	Attenuation   [3]float32 // per-channel absorption coefficient, 0 = none
	SpecularColor [3]float32
	Roughness     float32
	Metallic      float32
	Transmission  float32
	IOR           float32
	Thickness     float32
	Dispersion    float32
	Specular      float32
	F0            float32 // normal-incidence reflectance derived from IOR
	Unlit         bool
	HasTexture    bool
}

// ToUniform converts the material to its GPU representation.
func ToUniform(m *scene.Material) Uniform {
	u := Uniform{
		Albedo:        [4]float32{m.Albedo.R, m.Albedo.G, m.Albedo.B, m.Albedo.A},
		SpecularColor: [3]float32{m.SpecularColor.R, m.SpecularColor.G, m.SpecularColor.B},
		Roughness:     m.Roughness,
		Metallic:      m.Metallic,
		Transmission:  m.Transmission,
		IOR:           m.IOR,
		Thickness:     m.Thickness,
		Dispersion:    m.Dispersion,
		Specular:      m.SpecularIntensity,
		Unlit:         m.Unlit,
		HasTexture:    m.AlbedoTexture != nil,
	}
	e := m.Emission()
	u.Emissive = [3]float32{e.R, e.G, e.B}

	if u.IOR <= 0 {
		u.IOR = 1.5
	}
	r := (u.IOR - 1) / (u.IOR + 1)
	u.F0 = r * r

	if m.AttenuationDistance > 0 {
		u.Attenuation = [3]float32{
			absorption(m.AttenuationColor.R, m.AttenuationDistance),
			absorption(m.AttenuationColor.G, m.AttenuationDistance),
			absorption(m.AttenuationColor.B, m.AttenuationDistance),
		}
	}
	return u
}

// absorption returns the Beer-Lambert coefficient for which light keeps
// the fraction c of its energy after travelling distance d. Channels at or
// above 1 do not absorb.
func absorption(c, d float32) float32 {
	if c >= 1 {
		return 0
	}
	if c <= 0 {
		c = 1e-4
	}
	return float32(-math.Log(float64(c))) / d
}
