package io

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"kusama-scene/bubbles"
	"kusama-scene/scene"
)

type accessors struct {
	position, normal, indices int
}

type meshKey struct {
	geometry *scene.Geometry
	material int
}

// snapshotWriter accumulates glTF data, sharing one accessor set per
// geometry and one glTF material per distinct material value.
type snapshotWriter struct {
	doc        *gltf.Document
	geometries map[*scene.Geometry]accessors
	materials  map[scene.Material]int
	meshes     map[meshKey]int
}

func newSnapshotWriter() *snapshotWriter {
	return &snapshotWriter{
		doc:        gltf.NewDocument(),
		geometries: make(map[*scene.Geometry]accessors),
		materials:  make(map[scene.Material]int),
		meshes:     make(map[meshKey]int),
	}
}

func (w *snapshotWriter) geometry(g *scene.Geometry) accessors {
	if acc, ok := w.geometries[g]; ok {
		return acc
	}
	positions := make([][3]float32, len(g.Vertices))
	normals := make([][3]float32, len(g.Vertices))
	for i, v := range g.Vertices {
		positions[i] = [3]float32{v.Position.X, v.Position.Y, v.Position.Z}
		normals[i] = [3]float32{v.Normal.X, v.Normal.Y, v.Normal.Z}
	}
	acc := accessors{
		position: modeler.WritePosition(w.doc, positions),
		normal:   modeler.WriteNormal(w.doc, normals),
		indices:  modeler.WriteIndices(w.doc, g.Indices),
	}
	w.geometries[g] = acc
	return acc
}

// material maps the physical material onto core glTF metallic-roughness.
// Transmission has no core equivalent; it is approximated by alpha
// blending and kept in extras.
func (w *snapshotWriter) material(m *scene.Material) int {
	if i, ok := w.materials[*m]; ok {
		return i
	}
	base := colorToArray(m.Albedo)
	if m.Transmission > 0 {
		base[3] = float64(1 - 0.7*m.Transmission)
	}
	gm := &gltf.Material{
		Name: m.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &base,
			MetallicFactor:  gltf.Float(float64(m.Metallic)),
			RoughnessFactor: gltf.Float(float64(m.Roughness)),
		},
		EmissiveFactor: clampRGB(m.EmissiveColor),
		DoubleSided:    m.Side == scene.SideDouble,
		Extras: map[string]interface{}{
			"transmission":      m.Transmission,
			"ior":               m.IOR,
			"thickness":         m.Thickness,
			"dispersion":        m.Dispersion,
			"emissiveIntensity": m.EmissiveIntensity,
		},
	}
	if m.IsTransparent() {
		gm.AlphaMode = gltf.AlphaBlend
	}
	w.doc.Materials = append(w.doc.Materials, gm)
	i := len(w.doc.Materials) - 1
	w.materials[*m] = i
	return i
}

func (w *snapshotWriter) mesh(m *scene.Mesh) int {
	material := m.Material
	if material == nil {
		material = scene.DefaultMaterial()
	}
	mat := w.material(material)
	key := meshKey{geometry: m.Geometry, material: mat}
	if i, ok := w.meshes[key]; ok {
		return i
	}
	acc := w.geometry(m.Geometry)
	w.doc.Meshes = append(w.doc.Meshes, &gltf.Mesh{
		Name: m.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(acc.indices),
			Attributes: map[string]int{"POSITION": acc.position, "NORMAL": acc.normal},
			Material:   gltf.Index(mat),
		}},
	})
	i := len(w.doc.Meshes) - 1
	w.meshes[key] = i
	return i
}

// node writes n and its subtree and returns the glTF node index.
func (w *snapshotWriter) node(n *scene.Node) int {
	gn := &gltf.Node{
		Name:        n.Name,
		Translation: vec3ToArray(n.Transform.Position),
		Rotation:    quatToArray(n.Transform.Rotation),
		Scale:       vec3ToArray(n.Transform.Scale),
	}
	if n.Mesh != nil {
		gn.Mesh = gltf.Index(w.mesh(n.Mesh))
	}
	w.doc.Nodes = append(w.doc.Nodes, gn)
	self := len(w.doc.Nodes) - 1
	for _, c := range n.Children {
		gn.Children = append(gn.Children, w.node(c))
	}
	return self
}

// BuildSnapshot converts the current bubble layout to a glTF document with
// one root node per group.
func BuildSnapshot(groups []*bubbles.Group) *gltf.Document {
	w := newSnapshotWriter()
	for _, g := range groups {
		w.doc.Scenes[0].Nodes = append(w.doc.Scenes[0].Nodes, w.node(g.Node))
	}
	return w.doc
}

// ExportSnapshot writes the layout to path as binary glTF (.glb).
func ExportSnapshot(path string, groups []*bubbles.Group) error {
	if err := gltf.SaveBinary(BuildSnapshot(groups), path); err != nil {
		return fmt.Errorf("export snapshot %q: %w", path, err)
	}
	return nil
}
