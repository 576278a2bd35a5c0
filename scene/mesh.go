package scene

import (
	"kusama-scene/core"
)

// Geometry holds CPU-side vertex/index data. Several meshes may share one
// geometry; it is uploaded to the GPU once.
type Geometry struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32

	// Local-space bounds, computed by NewGeometry.
	Bounds AABB

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	// Do not access directly; use the renderer's API.
	GPUData interface{}
}

// Mesh pairs a geometry with the material it is drawn with.
type Mesh struct {
	Name     string
	Geometry *Geometry

	// Material holds surface shading properties. If nil, DefaultMaterial() is used.
	Material *Material
}

func NewGeometry(name string, vertices []core.Vertex, indices []uint32) *Geometry {
	g := &Geometry{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if len(vertices) > 0 {
		g.Bounds = AABB{Min: vertices[0].Position, Max: vertices[0].Position}
		for _, v := range vertices[1:] {
			g.Bounds.expand(v.Position)
		}
	}
	return g
}

func NewMesh(name string, geometry *Geometry, material *Material) *Mesh {
	return &Mesh{Name: name, Geometry: geometry, Material: material}
}

// TriangleCount is the number of indexed triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}
