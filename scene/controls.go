package scene

import (
	"math"

	reMath "kusama-scene/math"
)

// OrbitControls rotates and dollies a camera around its target with
// inertia. Input accumulates into pending deltas which Update applies a
// DampingFactor fraction of each frame, so motion eases out after the
// user lets go.
type OrbitControls struct {
	Camera        *Camera
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	MinDistance   float32
	MaxDistance   float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32

	dragging   bool
	lastX      float64
	lastY      float64
}

func NewOrbitControls(camera *Camera) *OrbitControls {
	return &OrbitControls{
		Camera:        camera,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MinDistance:   0,
		MaxDistance:   float32(math.Inf(1)),
		scale:         1,
	}
}

// Rotate queues an orbit by the given angles in radians. Positive theta
// swings the camera to the left around the target, positive phi raises it.
func (o *OrbitControls) Rotate(theta, phi float32) {
	o.deltaTheta -= theta
	o.deltaPhi -= phi
}

// Drag converts a pointer position to rotation while the button is held.
// viewHeight is the window height; a drag across it turns a full circle.
func (o *OrbitControls) Drag(x, y float64, pressed bool, viewHeight int) {
	if !pressed {
		o.dragging = false
		return
	}
	if !o.dragging {
		o.dragging = true
		o.lastX, o.lastY = x, y
		return
	}
	if viewHeight > 0 {
		k := 2 * math.Pi * float64(o.RotateSpeed) / float64(viewHeight)
		o.Rotate(float32((x-o.lastX)*k), float32((y-o.lastY)*k))
	}
	o.lastX, o.lastY = x, y
}

// Dolly moves toward (steps > 0) or away from the target.
func (o *OrbitControls) Dolly(steps float64) {
	zoom := float32(math.Pow(0.95, float64(o.ZoomSpeed)*math.Abs(steps)))
	if steps > 0 {
		o.scale *= zoom
	} else if steps < 0 {
		o.scale /= zoom
	}
}

// Update applies pending input to the camera and decays it. It reports
// whether the camera moved.
func (o *OrbitControls) Update() bool {
	cam := o.Camera
	offset := cam.Position.Sub(cam.Target)
	s := reMath.SphericalFromVec3(offset)

	s.Theta += o.deltaTheta * o.DampingFactor
	s.Phi += o.deltaPhi * o.DampingFactor

	const eps = 1e-6
	if s.Phi < eps {
		s.Phi = eps
	} else if s.Phi > math.Pi-eps {
		s.Phi = math.Pi - eps
	}

	s.Radius *= o.scale
	if s.Radius < o.MinDistance {
		s.Radius = o.MinDistance
	} else if s.Radius > o.MaxDistance {
		s.Radius = o.MaxDistance
	}

	newPos := cam.Target.Add(s.ToVec3())
	moved := newPos.Distance(cam.Position) > eps
	cam.SetPosition(newPos)

	o.deltaTheta *= 1 - o.DampingFactor
	o.deltaPhi *= 1 - o.DampingFactor
	o.scale = 1

	return moved
}
