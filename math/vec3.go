package math

import "math"

type Vec3 struct {
	X, Y, Z float32
}

var (
	Vec3Zero  = Vec3{0, 0, 0}
	Vec3One   = Vec3{1, 1, 1}
	Vec3Up    = Vec3{0, 1, 0}
	Vec3Right = Vec3{1, 0, 0}
	Vec3Front = Vec3{0, 0, 1}
)

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vec3) Mul(scalar float32) Vec3 {
	return Vec3{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// MulVec multiplies component-wise.
func (v Vec3) MulVec(other Vec3) Vec3 {
	return Vec3{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}
}

func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSqr())))
}

func (v Vec3) LengthSqr() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns the unit vector along v. The zero vector comes back
// unchanged.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length > 0 {
		return v.Mul(1.0 / length)
	}
	return v
}

func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Lerp moves v toward other by fraction t; t=0 yields v, t=1 yields other.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return v.Add(other.Sub(v).Mul(t))
}

func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func (v Vec3) ToVec4(w float32) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}

// Spherical describes a point by radius, polar angle from +Y (Phi) and
// azimuth around +Y measured from +Z (Theta).
type Spherical struct {
	Radius, Phi, Theta float32
}

// SphericalFromVec3 converts a Cartesian offset to spherical coordinates.
func SphericalFromVec3(v Vec3) Spherical {
	r := v.Length()
	if r == 0 {
		return Spherical{}
	}
	y := float64(v.Y / r)
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	return Spherical{
		Radius: r,
		Theta:  float32(math.Atan2(float64(v.X), float64(v.Z))),
		Phi:    float32(math.Acos(y)),
	}
}

func (s Spherical) ToVec3() Vec3 {
	sinPhi := float32(math.Sin(float64(s.Phi)))
	return Vec3{
		X: s.Radius * sinPhi * float32(math.Sin(float64(s.Theta))),
		Y: s.Radius * float32(math.Cos(float64(s.Phi))),
		Z: s.Radius * sinPhi * float32(math.Cos(float64(s.Theta))),
	}
}
