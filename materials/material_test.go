package materials

import (
	"math"
	"testing"

	"kusama-scene/core"
	"kusama-scene/scene"
)

func TestFrostedCarriesAccentColour(t *testing.T) {
	c := core.MustParseHexColor("#0059CF")
	m := Frosted(c)

	if m.Albedo != c || m.EmissiveColor != c {
		t.Errorf("expected albedo and emissive %v, got %v / %v", c, m.Albedo, m.EmissiveColor)
	}
	if want := c.Scale(1.2); m.AttenuationColor != want {
		t.Errorf("attenuation colour: expected %v, got %v", want, m.AttenuationColor)
	}
	if m.Transmission != 1 || m.IOR != 1.4 || m.Thickness != 0.8 || m.Roughness != 0.3 {
		t.Errorf("unexpected optical constants: %+v", m)
	}
	if m.Side != scene.SideDouble || !m.Transparent || !m.DepthWrite {
		t.Errorf("unexpected render state: side=%v transparent=%v depthWrite=%v", m.Side, m.Transparent, m.DepthWrite)
	}
	if got := m.Emission(); math.Abs(float64(got.B-c.B*1.5)) > 1e-6 {
		t.Errorf("emission: expected %v, got %v", c.B*1.5, got.B)
	}
}

func TestFrostedInstancesAreIndependent(t *testing.T) {
	c := core.MustParseHexColor("#F8D12E")
	a, b := Frosted(c), Frosted(c)
	a.EmissiveIntensity = 0

	if b.EmissiveIntensity != 1.5 {
		t.Errorf("mutating one instance changed another")
	}
}

func TestClear(t *testing.T) {
	m := Clear()

	if m.DepthWrite {
		t.Error("clear shell must not write depth")
	}
	if m.Dispersion != 15 || m.IOR != 1.3 || m.Thickness != 1 {
		t.Errorf("unexpected optical constants: %+v", m)
	}
	if !m.IsTransparent() {
		t.Error("clear shell must be drawn in the blended pass")
	}
}

func TestToUniform(t *testing.T) {
	u := ToUniform(Frosted(core.ColorWhite))

	// IOR 1.4 -> ((0.4)/(2.4))^2
	if want := float32(1.0 / 36.0); math.Abs(float64(u.F0-want)) > 1e-6 {
		t.Errorf("F0: expected %v, got %v", want, u.F0)
	}
	// White scaled by 1.2 is above 1 and absorbs nothing.
	if u.Attenuation != [3]float32{} {
		t.Errorf("expected no absorption for bright attenuation colour, got %v", u.Attenuation)
	}

	tinted := Frosted(core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1})
	u = ToUniform(tinted)
	want := float32(-math.Log(0.6) / 1.2)
	if math.Abs(float64(u.Attenuation[0]-want)) > 1e-5 {
		t.Errorf("absorption: expected %v, got %v", want, u.Attenuation[0])
	}

	room := ToUniform(Room(&scene.Texture{}))
	if !room.Unlit || !room.HasTexture {
		t.Errorf("room uniform should be unlit and textured: %+v", room)
	}
}
