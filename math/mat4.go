package math

import "math"

// Mat4 is stored row-major and used with row vectors (v * M), so
// translation lives in the last row and transforms compose left to right.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return v.MulMat(m)
}

// MulVec3 transforms a point, applying the perspective divide.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec(v.ToVec4(1)).ToVec3DivW()
}

// Translation returns the translation row.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3][0], m[3][1], m[3][2]}
}

// Flatten lays the matrix out as 16 floats in memory order. Because the
// row-vector layout is the transpose of GLSL's column-vector one, the
// result can be uploaded with transpose=false and used as M * v.
func (m Mat4) Flatten() [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i*4+j] = m[i][j]
		}
	}
	return out
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

// Mat4Perspective builds an OpenGL clip-space projection. fovY is the
// vertical field of view in radians.
func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / float32(math.Tan(float64(fovY)/2))

	var m Mat4
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / (far - near)
	return m
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis := eye.Sub(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}

// Mat4Compose builds scale, then rotation, then translation.
func Mat4Compose(translation Vec3, rotation Quaternion, scale Vec3) Mat4 {
	return Mat4Scale(scale).Mul(rotation.ToMat4()).Mul(Mat4Translation(translation))
}

func Radians(degrees float32) float32 {
	return degrees * math.Pi / 180
}
