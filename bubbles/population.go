package bubbles

import (
	"math/rand"

	"kusama-scene/config"
	"kusama-scene/core"
	"kusama-scene/math"
	"kusama-scene/scene"
)

// Populate creates cfg.Population.Count groups scattered in a box centred
// on the origin. Each group's colour is drawn before its disks and its
// position after them. BasePosition records where the group started.
func Populate(rng *rand.Rand, cfg config.Config, geo Geometry, palette []core.Color) []*Group {
	groups := make([]*Group, 0, cfg.Population.Count)
	ext := cfg.Population.Extent

	for i := 0; i < cfg.Population.Count; i++ {
		color := palette[rng.Intn(len(palette))]
		g := NewGroup(rng, cfg.Bubble, geo, color)

		pos := math.Vec3{
			X: float32(rng.Float64()-0.5) * ext[0],
			Y: float32(rng.Float64()-0.5) * ext[1],
			Z: float32(rng.Float64()-0.5) * ext[2],
		}
		g.Node.SetPosition(pos)
		g.BasePosition = pos
		g.Index = i

		groups = append(groups, g)
	}
	return groups
}

// Attach adds every group to the scene root.
func Attach(s *scene.Scene, groups []*Group) {
	for _, g := range groups {
		s.AddNode(g.Node)
	}
}
