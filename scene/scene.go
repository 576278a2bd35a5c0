package scene

import (
	"kusama-scene/core"
	"kusama-scene/math"
)

// Scene manages a collection of nodes, the active camera and lighting.
type Scene struct {
	Root       *Node
	Camera     *Camera
	Lights     []*Light
	Background core.Color

	// Environment is nil until an environment map has been loaded.
	Environment *EnvironmentMap
}

// Light is a point light with inverse-square falloff.
type Light struct {
	Position  math.Vec3
	Color     core.Color
	Intensity float32
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		Background: core.ColorBlack,
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) AddLight(light *Light) {
	s.Lights = append(s.Lights, light)
}

// SetEnvironment assigns the environment map once; later calls are
// ignored. It reports whether the map was taken.
func (s *Scene) SetEnvironment(env *EnvironmentMap) bool {
	if s.Environment != nil || env == nil {
		return false
	}
	s.Environment = env
	return true
}

// GetVisibleNodes returns all nodes with meshes that are visible
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node

	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Mesh != nil {
			visible = append(visible, node)
		}
	})

	return visible
}
