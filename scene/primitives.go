package scene

import (
	stdmath "math"

	"kusama-scene/core"
	"kusama-scene/math"
)

// CreateSphere builds a UV sphere. Ring 0 is the north pole and v runs
// from 0 at the top to 1 at the bottom, so an image's first row wraps the
// pole. Triangles wind counter-clockwise seen from outside.
func CreateSphere(radius float32, segments, rings int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	vertices := make([]core.Vertex, 0, (rings+1)*(segments+1))
	indices := make([]uint32, 0, rings*segments*6)

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * stdmath.Pi / float64(rings)
		sinPhi := float32(stdmath.Sin(phi))
		cosPhi := float32(stdmath.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * stdmath.Pi / float64(segments)
			normal := math.Vec3{
				X: sinPhi * float32(stdmath.Cos(theta)),
				Y: cosPhi,
				Z: sinPhi * float32(stdmath.Sin(theta)),
			}
			vertices = append(vertices, core.Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       math.Vec2{X: float32(seg) / float32(segments), Y: float32(ring) / float32(rings)},
			})
		}
	}

	stride := uint32(segments + 1)
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := uint32(ring)*stride + uint32(seg)
			b := a + stride
			indices = append(indices, a, a+1, b, a+1, b+1, b)
		}
	}

	return NewGeometry("Sphere", vertices, indices)
}

// CreateCylinder builds a capped cylinder centred on the origin with its
// axis along +Y.
func CreateCylinder(radius, height float32, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32
	half := height / 2

	ring := func(i int) (float32, float32) {
		theta := float64(i) * 2.0 * stdmath.Pi / float64(segments)
		return float32(stdmath.Cos(theta)), float32(stdmath.Sin(theta))
	}

	// side wall
	for i := 0; i <= segments; i++ {
		c, s := ring(i)
		normal := math.Vec3{X: c, Z: s}
		u := float32(i) / float32(segments)
		vertices = append(vertices,
			core.Vertex{Position: math.Vec3{X: c * radius, Y: -half, Z: s * radius}, Normal: normal, UV: math.Vec2{X: u, Y: 1}},
			core.Vertex{Position: math.Vec3{X: c * radius, Y: half, Z: s * radius}, Normal: normal, UV: math.Vec2{X: u, Y: 0}},
		)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+1, base+2, base+2, base+1, base+3)
	}

	// caps: a fan around a centre vertex
	addCap := func(y float32, up bool) {
		normal := math.Vec3{Y: 1}
		if !up {
			normal.Y = -1
		}
		center := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{Position: math.Vec3{Y: y}, Normal: normal, UV: math.Vec2{X: 0.5, Y: 0.5}})
		for i := 0; i <= segments; i++ {
			c, s := ring(i)
			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: c * radius, Y: y, Z: s * radius},
				Normal:   normal,
				UV:       math.Vec2{X: c*0.5 + 0.5, Y: s*0.5 + 0.5},
			})
		}
		for i := uint32(0); i < uint32(segments); i++ {
			v1, v2 := center+1+i, center+2+i
			if up {
				indices = append(indices, center, v2, v1)
			} else {
				indices = append(indices, center, v1, v2)
			}
		}
	}
	addCap(half, true)
	addCap(-half, false)

	return NewGeometry("Cylinder", vertices, indices)
}
