package scene

import "kusama-scene/math"

// Plane represents a half-space: ax + by + cz + d = 0
// Normal (a, b, c) points into the "inside" of the frustum.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// DistanceTo returns the signed distance from a point to the plane.
// Positive means on the "inside" (same side as Normal).
func (p Plane) DistanceTo(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromVP extracts the six frustum planes from a view-projection
// matrix (Gribb/Hartmann). Mat4 is used with row vectors, so the clip-space
// rows of the usual column-vector formulation are the columns here.
func FrustumFromVP(vp math.Mat4) Frustum {
	col := func(j int) math.Vec4 {
		return math.Vec4{X: vp[0][j], Y: vp[1][j], Z: vp[2][j], W: vp[3][j]}
	}
	c0, c1, c2, c3 := col(0), col(1), col(2), col(3)

	var f Frustum
	f.Planes[0] = planeFrom(c3, c0, 1)  // left
	f.Planes[1] = planeFrom(c3, c0, -1) // right
	f.Planes[2] = planeFrom(c3, c1, 1)  // bottom
	f.Planes[3] = planeFrom(c3, c1, -1) // top
	f.Planes[4] = planeFrom(c3, c2, 1)  // near
	f.Planes[5] = planeFrom(c3, c2, -1) // far
	return f
}

func planeFrom(w, axis math.Vec4, sign float32) Plane {
	a := w.X + sign*axis.X
	b := w.Y + sign*axis.Y
	c := w.Z + sign*axis.Z
	d := w.W + sign*axis.W
	l := math.Vec3{X: a, Y: b, Z: c}.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: math.Vec3{X: a / l, Y: b / l, Z: c / l}, D: d / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

func (box *AABB) expand(p math.Vec3) {
	if p.X < box.Min.X {
		box.Min.X = p.X
	}
	if p.Y < box.Min.Y {
		box.Min.Y = p.Y
	}
	if p.Z < box.Min.Z {
		box.Min.Z = p.Z
	}
	if p.X > box.Max.X {
		box.Max.X = p.X
	}
	if p.Y > box.Max.Y {
		box.Max.Y = p.Y
	}
	if p.Z > box.Max.Z {
		box.Max.Z = p.Z
	}
}

// Center is the midpoint of the box.
func (box AABB) Center() math.Vec3 {
	return box.Min.Add(box.Max).Mul(0.5)
}

// IntersectsFrustum returns false if the AABB is completely outside the frustum.
// For each plane only the corner furthest along the normal is tested.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for _, p := range f.Planes {
		v := box.Max
		if p.Normal.X < 0 {
			v.X = box.Min.X
		}
		if p.Normal.Y < 0 {
			v.Y = box.Min.Y
		}
		if p.Normal.Z < 0 {
			v.Z = box.Min.Z
		}
		if p.DistanceTo(v) < 0 {
			return false
		}
	}
	return true
}

// ComputeAABB returns the world-space box around geometry placed by worldMatrix.
func ComputeAABB(geo *Geometry, worldMatrix math.Mat4) AABB {
	mn, mx := geo.Bounds.Min, geo.Bounds.Max
	first := worldMatrix.MulVec3(mn)
	out := AABB{Min: first, Max: first}
	for i := 1; i < 8; i++ {
		corner := mn
		if i&1 != 0 {
			corner.X = mx.X
		}
		if i&2 != 0 {
			corner.Y = mx.Y
		}
		if i&4 != 0 {
			corner.Z = mx.Z
		}
		out.expand(worldMatrix.MulVec3(corner))
	}
	return out
}
