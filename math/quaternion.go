package math

import "math"

type Quaternion struct {
	X, Y, Z, W float32
}

func QuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

func QuaternionFromAxisAngle(axis Vec3, angle float32) Quaternion {
	s := float32(math.Sin(float64(angle) / 2))
	c := float32(math.Cos(float64(angle) / 2))

	axis = axis.Normalize()
	return Quaternion{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: c}
}

// QuaternionFromEulerXYZ converts intrinsic X, then Y, then Z rotations (radians).
func QuaternionFromEulerXYZ(euler Vec3) Quaternion {
	c1 := float32(math.Cos(float64(euler.X) / 2))
	s1 := float32(math.Sin(float64(euler.X) / 2))
	c2 := float32(math.Cos(float64(euler.Y) / 2))
	s2 := float32(math.Sin(float64(euler.Y) / 2))
	c3 := float32(math.Cos(float64(euler.Z) / 2))
	s3 := float32(math.Sin(float64(euler.Z) / 2))

	return Quaternion{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}
}

// QuaternionFromUnitVectors returns the shortest rotation taking from onto to.
// Both inputs must be unit length. Opposite vectors rotate half a turn about
// an arbitrary axis orthogonal to from.
func QuaternionFromUnitVectors(from, to Vec3) Quaternion {
	const epsilon = 1e-6

	r := from.Dot(to) + 1
	var q Quaternion
	if r < epsilon {
		if abs32(from.X) > abs32(from.Z) {
			q = Quaternion{X: -from.Y, Y: from.X, Z: 0, W: 0}
		} else {
			q = Quaternion{X: 0, Y: -from.Z, Z: from.Y, W: 0}
		}
	} else {
		c := from.Cross(to)
		q = Quaternion{X: c.X, Y: c.Y, Z: c.Z, W: r}
	}
	return q.Normalize()
}

func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

func (q Quaternion) Normalize() Quaternion {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length == 0 {
		return q
	}
	inv := 1 / length
	return Quaternion{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

func (q Quaternion) RotateVector(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// ToMat4 returns the rotation matrix in the row-vector layout used by Mat4.
func (q Quaternion) ToMat4() Mat4 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	return Mat4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
