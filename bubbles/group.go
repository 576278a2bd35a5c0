// Package bubbles builds and animates the floating glass clusters: a clear
// sphere studded with glowing disks that sit just inside its surface.
package bubbles

import (
	"fmt"
	"math/rand"

	"kusama-scene/config"
	"kusama-scene/core"
	"kusama-scene/materials"
	"kusama-scene/math"
	"kusama-scene/scene"
)

// Disk is one embedded disk. Its local +Y axis points along Direction.
type Disk struct {
	Node      *scene.Node
	Direction math.Vec3
}

// Group is one bubble cluster.
type Group struct {
	Node         *scene.Node
	Sphere       *scene.Node
	Disks        []Disk
	Color        core.Color
	BasePosition math.Vec3
	Index        int
}

// Geometry is shared by every group.
type Geometry struct {
	Sphere *scene.Geometry
	Disk   *scene.Geometry
}

func NewGeometry(cfg config.Bubble) Geometry {
	return Geometry{
		Sphere: scene.CreateSphere(cfg.Radius, cfg.Segments, cfg.Segments),
		Disk:   scene.CreateCylinder(cfg.DiskRadius, cfg.DiskHeight, cfg.DiskSegments),
	}
}

// Palette parses the configured hex colours.
func Palette(cfg config.Bubble) ([]core.Color, error) {
	out := make([]core.Color, 0, len(cfg.Palette))
	for _, hex := range cfg.Palette {
		c, err := core.ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("palette: no colours configured")
	}
	return out, nil
}

// RandomDirection draws a direction from the cube [-0.5, 0.5)^3 and
// normalises it. The distribution is not uniform on the sphere, and a zero
// draw stays zero.
func RandomDirection(rng *rand.Rand) math.Vec3 {
	return math.Vec3{
		X: float32(rng.Float64() - 0.5),
		Y: float32(rng.Float64() - 0.5),
		Z: float32(rng.Float64() - 0.5),
	}.Normalize()
}

// NewGroup builds one cluster of the given accent colour at the origin.
// Every disk gets its own material instance.
func NewGroup(rng *rand.Rand, cfg config.Bubble, geo Geometry, color core.Color) *Group {
	g := &Group{
		Node:  scene.NewNode("BubbleGroup"),
		Color: color,
	}

	g.Sphere = scene.NewMeshNode("Bubble", scene.NewMesh("Bubble", geo.Sphere, materials.Clear()))
	g.Node.AddChild(g.Sphere)

	dist := cfg.Radius - cfg.Inset
	for i := 0; i < cfg.DiskCount; i++ {
		dir := RandomDirection(rng)

		n := scene.NewMeshNode(fmt.Sprintf("Disk%d", i), scene.NewMesh("Disk", geo.Disk, materials.Frosted(color)))
		n.SetPosition(dir.Mul(dist))
		n.SetRotation(math.QuaternionFromUnitVectors(math.Vec3Up, dir))

		g.Node.AddChild(n)
		g.Disks = append(g.Disks, Disk{Node: n, Direction: dir})
	}
	return g
}
