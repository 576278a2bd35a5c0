package scene

import (
	reMath "kusama-scene/math"
)

// Camera is a perspective camera aimed at a target point.
type Camera struct {
	Position    reMath.Vec3
	Target      reMath.Vec3
	Up          reMath.Vec3
	FOV         float32 // vertical, degrees
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	// Cached matrices
	viewMatrix       reMath.Mat4
	projectionMatrix reMath.Mat4
	viewProjMatrix   reMath.Mat4
	dirty            bool
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Up:          reMath.Vec3Up,
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		dirty:       true,
	}
}

// UpdateAspectRatio recomputes the projection for a new surface size.
// A zero height is ignored.
func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

func (c *Camera) SetPosition(pos reMath.Vec3) {
	c.Position = pos
	c.dirty = true
}

func (c *Camera) LookAt(target reMath.Vec3) {
	c.Target = target
	c.dirty = true
}

func (c *Camera) GetViewMatrix() reMath.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix
}

func (c *Camera) GetProjectionMatrix() reMath.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.projectionMatrix
}

// GetViewProjectionMatrix maps world space to clip space (row vectors:
// p * view * proj).
func (c *Camera) GetViewProjectionMatrix() reMath.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewProjMatrix
}

func (c *Camera) GetForward() reMath.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

func (c *Camera) updateMatrices() {
	c.viewMatrix = reMath.Mat4LookAt(c.Position, c.Target, c.Up)
	c.projectionMatrix = reMath.Mat4Perspective(reMath.Radians(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
	c.viewProjMatrix = c.viewMatrix.Mul(c.projectionMatrix)
	c.dirty = false
}
