package scene

import (
	"kusama-scene/core"
	"kusama-scene/math"
)

// Node is an object in the scene graph. A node's rotation is driven by
// an XYZ Euler triple so that per-axis spins accumulate independently.
type Node struct {
	Name      string
	Transform core.Transform
	Euler     math.Vec3
	Parent    *Node
	Children  []*Node
	Mesh      *Mesh
	Visible   bool
	Id        uint32

	// Cached world transform
	worldMatrixDirty bool
	worldMatrix      math.Mat4
}

var nodeIdCounter uint32 = 0

func NewNode(name string) *Node {
	nodeIdCounter++
	return &Node{
		Name:             name,
		Transform:        core.NewTransform(),
		Visible:          true,
		Id:               nodeIdCounter,
		worldMatrixDirty: true,
	}
}

// NewMeshNode wraps a mesh in a fresh node.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	return n
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	child.MarkWorldMatrixDirty()
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.MarkWorldMatrixDirty()
			return
		}
	}
}

// GetWorldMatrix is local * parent in the row-vector convention.
func (n *Node) GetWorldMatrix() math.Mat4 {
	if n.worldMatrixDirty {
		local := n.Transform.GetMatrix()
		if n.Parent != nil {
			n.worldMatrix = local.Mul(n.Parent.GetWorldMatrix())
		} else {
			n.worldMatrix = local
		}
		n.worldMatrixDirty = false
	}
	return n.worldMatrix
}

func (n *Node) MarkWorldMatrixDirty() {
	n.worldMatrixDirty = true
	for _, child := range n.Children {
		child.MarkWorldMatrixDirty()
	}
}

func (n *Node) SetPosition(pos math.Vec3) {
	n.Transform.Position = pos
	n.MarkWorldMatrixDirty()
}

// SetRotation sets an explicit orientation. The Euler triple is reset, so
// later RotateEuler calls start from zero.
func (n *Node) SetRotation(rot math.Quaternion) {
	n.Transform.Rotation = rot
	n.Euler = math.Vec3Zero
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetEuler(euler math.Vec3) {
	n.Euler = euler
	n.Transform.Rotation = math.QuaternionFromEulerXYZ(euler)
	n.MarkWorldMatrixDirty()
}

// RotateEuler adds per-axis angles (radians) to the Euler triple.
func (n *Node) RotateEuler(delta math.Vec3) {
	n.SetEuler(n.Euler.Add(delta))
}

func (n *Node) GetUp() math.Vec3 {
	return n.Transform.GetUp()
}

// Traverse visits all nodes in the graph
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// Find finds a node by name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
