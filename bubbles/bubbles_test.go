package bubbles

import (
	"math"
	"math/rand"
	"testing"

	"kusama-scene/config"
	"kusama-scene/core"
	reMath "kusama-scene/math"
	"kusama-scene/scene"
)

const tolerance = 1e-4

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tolerance
}

func testGeometry(cfg config.Bubble) Geometry {
	// Coarse tessellation keeps the tests fast; the layout does not depend on it.
	cfg.Segments = 8
	cfg.DiskSegments = 8
	return NewGeometry(cfg)
}

func TestDiskPlacement(t *testing.T) {
	cfg := config.Default().Bubble
	rng := rand.New(rand.NewSource(1))
	geo := testGeometry(cfg)

	for n := 0; n < 20; n++ {
		g := NewGroup(rng, cfg, geo, core.ColorWhite)
		if len(g.Disks) != cfg.DiskCount {
			t.Fatalf("expected %d disks, got %d", cfg.DiskCount, len(g.Disks))
		}
		for _, d := range g.Disks {
			pos := d.Node.Transform.Position
			if got := pos.Length(); !near(got, cfg.Radius-cfg.Inset) {
				t.Errorf("disk centre at distance %v, expected %v", got, cfg.Radius-cfg.Inset)
			}

			axis := d.Node.GetUp()
			if dot := axis.Dot(d.Direction); !near(dot, 1) {
				t.Errorf("disk axis %v not parallel to direction %v (dot %v)", axis, d.Direction, dot)
			}
			if !near(d.Direction.Length(), 1) {
				t.Errorf("direction %v is not unit length", d.Direction)
			}
		}
	}
}

func TestDiskWorldPlacementFollowsGroup(t *testing.T) {
	cfg := config.Default().Bubble
	geo := testGeometry(cfg)
	g := NewGroup(rand.New(rand.NewSource(3)), cfg, geo, core.ColorWhite)

	g.Node.SetPosition(reMath.NewVec3(5, -2, 8))
	g.Node.SetEuler(reMath.NewVec3(0, 1.1, 0.4))

	centre := g.Node.GetWorldMatrix().Translation()
	for _, d := range g.Disks {
		world := d.Node.GetWorldMatrix().Translation()
		if got := world.Distance(centre); !near(got, cfg.Radius-cfg.Inset) {
			t.Errorf("world disk distance %v, expected %v", got, cfg.Radius-cfg.Inset)
		}
	}
}

func TestDisksHaveOwnMaterials(t *testing.T) {
	cfg := config.Default().Bubble
	g := NewGroup(rand.New(rand.NewSource(5)), cfg, testGeometry(cfg), core.ColorWhite)

	seen := map[*scene.Material]bool{}
	for _, d := range g.Disks {
		m := d.Node.Mesh.Material
		if seen[m] {
			t.Fatal("two disks share a material instance")
		}
		seen[m] = true
	}
	if g.Disks[0].Node.Mesh.Geometry != g.Disks[1].Node.Mesh.Geometry {
		t.Error("disks should share one geometry")
	}
}

func TestPopulate(t *testing.T) {
	cfg := config.Default()
	palette, err := Palette(cfg.Bubble)
	if err != nil {
		t.Fatal(err)
	}

	groups := Populate(rand.New(rand.NewSource(11)), cfg, testGeometry(cfg.Bubble), palette)
	if len(groups) != 40 {
		t.Fatalf("expected 40 groups, got %d", len(groups))
	}

	for i, g := range groups {
		inPalette := false
		for _, c := range palette {
			if g.Color == c {
				inPalette = true
			}
		}
		if !inPalette {
			t.Errorf("group %d colour %v not in palette", i, g.Color)
		}

		p := g.BasePosition
		if p.X < -20 || p.X >= 20 || p.Y < -15 || p.Y >= 15 || p.Z < -15 || p.Z >= 15 {
			t.Errorf("group %d base %v outside the placement box", i, p)
		}
		if g.Node.Transform.Position != p {
			t.Errorf("group %d starts at %v, base is %v", i, g.Node.Transform.Position, p)
		}
		if g.Index != i {
			t.Errorf("group %d has index %d", i, g.Index)
		}
	}
}

func TestPaletteRejectsBadHex(t *testing.T) {
	cfg := config.Default().Bubble
	cfg.Palette = []string{"#F8D12E", "#nothex"}
	if _, err := Palette(cfg); err == nil {
		t.Error("expected an error for a malformed colour")
	}
	cfg.Palette = nil
	if _, err := Palette(cfg); err == nil {
		t.Error("expected an error for an empty palette")
	}
}

func TestTargetOffset(t *testing.T) {
	anim := config.Default().Animation

	cases := []struct {
		name   string
		t      float64
		i      int
		dx, dy float32
	}{
		{"start", 0, 0, 0.3, 0},
		{"bob peak", math.Pi / (2 * 0.5), 0, float32(math.Cos(0.3*math.Pi) * 0.3), 0.7},
		{"phase shift", 0, 2, float32(math.Cos(2) * 0.3), float32(math.Sin(2) * 0.7)},
		{"later", 10, 3, float32(math.Cos(10*0.3+3) * 0.3), float32(math.Sin(10*0.5+3) * 0.7)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dx, dy := TargetOffset(anim, c.t, c.i)
			if !near(dx, c.dx) || !near(dy, c.dy) {
				t.Errorf("TargetOffset(%v, %d) = (%v, %v), expected (%v, %v)", c.t, c.i, dx, dy, c.dx, c.dy)
			}
		})
	}
}

func TestAnimatorStep(t *testing.T) {
	cfg := config.Default()
	geo := testGeometry(cfg.Bubble)
	g := NewGroup(rand.New(rand.NewSource(2)), cfg.Bubble, geo, core.ColorWhite)
	base := reMath.NewVec3(4, 5, 6)
	g.Node.SetPosition(base)
	g.BasePosition = base

	room := scene.NewNode("Room")
	a := NewAnimator(room, []*Group{g}, cfg)

	a.Step(0)

	// One step eases 5% of the way toward base + (0.3, 0, 0).
	want := reMath.NewVec3(4+0.3*0.05, 5, 6)
	if got := g.Node.Transform.Position; !near(got.X, want.X) || !near(got.Y, want.Y) || got.Z != want.Z {
		t.Errorf("position after one step: expected %v, got %v", want, got)
	}
	if !near(g.Node.Euler.Y, 0.005) || !near(g.Node.Euler.Z, 0.002) || g.Node.Euler.X != 0 {
		t.Errorf("group spin after one step: %v", g.Node.Euler)
	}
	if !near(room.Euler.Y, 0.0003) || !near(room.Euler.Z, 0.0001) {
		t.Errorf("room spin after one step: %v", room.Euler)
	}

	for i := 0; i < 99; i++ {
		a.Step(0)
	}
	if !near(g.Node.Euler.Y, 0.5) {
		t.Errorf("spin should accumulate without wrapping: %v", g.Node.Euler.Y)
	}
}

func TestAnimatorConvergesOnStaticTarget(t *testing.T) {
	cfg := config.Default()
	g := NewGroup(rand.New(rand.NewSource(4)), cfg.Bubble, testGeometry(cfg.Bubble), core.ColorWhite)
	g.BasePosition = reMath.NewVec3(0, 0, 0)
	g.Node.SetPosition(reMath.NewVec3(10, 10, 10))

	a := NewAnimator(nil, []*Group{g}, cfg)
	for i := 0; i < 400; i++ {
		a.Step(0)
	}

	// Target at t=0, i=0 is (0.3, 0, 0).
	got := g.Node.Transform.Position
	if !near(got.X, 0.3) || !near(got.Y, 0) || !near(got.Z, 0) {
		t.Errorf("expected to settle at (0.3, 0, 0), got %v", got)
	}
}
