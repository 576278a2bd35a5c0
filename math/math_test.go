package math

import (
	"math"
	"testing"
)

func approxVec3(a, b Vec3, tolerance float32) bool {
	return math.Abs(float64(a.X-b.X)) <= float64(tolerance) &&
		math.Abs(float64(a.Y-b.Y)) <= float64(tolerance) &&
		math.Abs(float64(a.Z-b.Z)) <= float64(tolerance)
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	if got, want := v1.Add(v2), NewVec3(5, 7, 9); got != want {
		t.Errorf("Add: expected %v, got %v", want, got)
	}
	if got, want := v2.Sub(v1), NewVec3(3, 3, 3); got != want {
		t.Errorf("Sub: expected %v, got %v", want, got)
	}
	if got := v1.Dot(v2); got != 32 {
		t.Errorf("Dot: expected 32, got %v", got)
	}

	// Right x Up = Front in a right-handed system
	if got := Vec3Right.Cross(Vec3Up); got != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, got)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := Vec3Zero.Normalize(); got != Vec3Zero {
		t.Errorf("Normalize(zero): expected zero vector back, got %v", got)
	}

	n := NewVec3(0, 3, 4).Normalize()
	if math.Abs(float64(n.Length()-1)) > 1e-5 {
		t.Errorf("Normalize: expected unit length, got %v", n.Length())
	}
}

func TestVec3Lerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(10, -20, 4)

	if got := a.Lerp(b, 0.05); !approxVec3(got, NewVec3(0.5, -1, 0.2), 1e-6) {
		t.Errorf("Lerp(0.05): got %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1): expected %v, got %v", b, got)
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	cases := []Vec3{
		NewVec3(0, 0, 30),
		NewVec3(3, 4, 5),
		NewVec3(-7, -2, 1),
	}
	for _, v := range cases {
		got := SphericalFromVec3(v).ToVec3()
		if !approxVec3(got, v, 1e-4) {
			t.Errorf("spherical round trip of %v gave %v", v, got)
		}
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	if got := NewVec4(0, 0, 0, 1).MulMat(m).ToVec3(); got != translation {
		t.Errorf("Translation: expected %v, got %v", translation, got)
	}
	if got := m.Translation(); got != translation {
		t.Errorf("Translation(): expected %v, got %v", translation, got)
	}
}

func TestMat4ComposeOrder(t *testing.T) {
	// Scale first, then a quarter turn about Y, then translate.
	rot := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))
	m := Mat4Compose(NewVec3(10, 0, 0), rot, NewVec3(2, 2, 2))

	got := m.MulVec3(Vec3Right)
	want := NewVec3(10, 0, -2)
	if !approxVec3(got, want, 1e-5) {
		t.Errorf("Compose: expected %v, got %v", want, got)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	if got := m.MulVec3(eye); !approxVec3(got, Vec3Zero, 1e-4) {
		t.Errorf("LookAt: expected eye to transform to origin, got %v", got)
	}
	// Target sits straight down -Z in view space.
	if got := m.MulVec3(Vec3Zero); !approxVec3(got, NewVec3(0, 0, -5), 1e-4) {
		t.Errorf("LookAt: expected target at (0,0,-5), got %v", got)
	}
}

func TestMat4PerspectiveDepthRange(t *testing.T) {
	near, far := float32(0.1), float32(1000)
	m := Mat4Perspective(Radians(75), 16.0/9.0, near, far)

	if got := m.MulVec3(NewVec3(0, 0, -near)).Z; math.Abs(float64(got+1)) > 1e-3 {
		t.Errorf("near plane: expected NDC z -1, got %v", got)
	}
	if got := m.MulVec3(NewVec3(0, 0, -far)).Z; math.Abs(float64(got-1)) > 1e-3 {
		t.Errorf("far plane: expected NDC z 1, got %v", got)
	}
}

func TestQuaternionRotation(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))

	got := q.RotateVector(Vec3Right)
	if !approxVec3(got, NewVec3(0, 0, -1), 1e-3) {
		t.Errorf("expected approximately (0,0,-1), got %v", got)
	}

	// The matrix form must agree with the direct rotation.
	if viaMat := q.ToMat4().MulVec3(Vec3Right); !approxVec3(viaMat, got, 1e-5) {
		t.Errorf("ToMat4 disagrees with RotateVector: %v vs %v", viaMat, got)
	}
}

func TestQuaternionFromUnitVectors(t *testing.T) {
	targets := []Vec3{
		Vec3Up,
		NewVec3(1, 0, 0),
		NewVec3(0, 0, -1),
		NewVec3(0.3, -0.4, 0.2).Normalize(),
		NewVec3(0, -1, 0), // antiparallel
	}
	for _, to := range targets {
		q := QuaternionFromUnitVectors(Vec3Up, to)
		if got := q.RotateVector(Vec3Up); !approxVec3(got, to, 1e-5) {
			t.Errorf("FromUnitVectors(up, %v) rotates up to %v", to, got)
		}
	}
}

func TestQuaternionFromEulerXYZSingleAxis(t *testing.T) {
	angle := float32(0.7)

	cases := []struct {
		euler Vec3
		axis  Vec3
	}{
		{NewVec3(angle, 0, 0), Vec3Right},
		{NewVec3(0, angle, 0), Vec3Up},
		{NewVec3(0, 0, angle), Vec3Front},
	}
	for _, c := range cases {
		got := QuaternionFromEulerXYZ(c.euler)
		want := QuaternionFromAxisAngle(c.axis, angle)
		if math.Abs(float64(got.X-want.X)) > 1e-6 || math.Abs(float64(got.Y-want.Y)) > 1e-6 ||
			math.Abs(float64(got.Z-want.Z)) > 1e-6 || math.Abs(float64(got.W-want.W)) > 1e-6 {
			t.Errorf("euler %v: expected %v, got %v", c.euler, want, got)
		}
	}
}

func TestQuaternionFromEulerXYZOrder(t *testing.T) {
	e := NewVec3(0.4, 0.9, -0.3)
	qx := QuaternionFromAxisAngle(Vec3Right, e.X)
	qy := QuaternionFromAxisAngle(Vec3Up, e.Y)
	qz := QuaternionFromAxisAngle(Vec3Front, e.Z)
	want := qx.Mul(qy).Mul(qz)

	v := NewVec3(1, 2, 3)
	if got := QuaternionFromEulerXYZ(e).RotateVector(v); !approxVec3(got, want.RotateVector(v), 1e-5) {
		t.Errorf("XYZ order mismatch: expected %v, got %v", want.RotateVector(v), got)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Translation(NewVec3(1, 2, 3))

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
