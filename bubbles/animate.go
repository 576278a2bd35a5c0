package bubbles

import (
	stdmath "math"

	"kusama-scene/config"
	"kusama-scene/math"
	"kusama-scene/scene"
)

// TargetOffset is where group i wants to be relative to its base position
// at t seconds: a slow vertical bob and a smaller horizontal sway, phase
// shifted by the index so groups drift out of step.
func TargetOffset(cfg config.Animation, t float64, i int) (dx, dy float32) {
	phase := float64(i)
	dy = float32(stdmath.Sin(t*float64(cfg.BobFrequency)+phase)) * cfg.BobAmplitude
	dx = float32(stdmath.Cos(t*float64(cfg.SwayFrequency)+phase)) * cfg.SwayAmplitude
	return dx, dy
}

// Animator advances the room and the groups once per frame. The spins are
// per-frame increments, so their speed follows the frame rate; the bob
// target follows wall-clock time.
type Animator struct {
	Room   *scene.Node
	Groups []*Group

	anim     config.Animation
	roomSpin [2]float32
}

func NewAnimator(room *scene.Node, groups []*Group, cfg config.Config) *Animator {
	return &Animator{
		Room:     room,
		Groups:   groups,
		anim:     cfg.Animation,
		roomSpin: cfg.Room.Spin,
	}
}

// Step applies one frame at elapsed time t (seconds since start).
func (a *Animator) Step(t float64) {
	if a.Room != nil {
		a.Room.RotateEuler(math.Vec3{Y: a.roomSpin[0], Z: a.roomSpin[1]})
	}

	for i, g := range a.Groups {
		dx, dy := TargetOffset(a.anim, t, i)
		target := g.BasePosition.Add(math.Vec3{X: dx, Y: dy})

		g.Node.SetPosition(g.Node.Transform.Position.Lerp(target, a.anim.Easing))
		g.Node.RotateEuler(math.Vec3{Y: a.anim.Spin[0], Z: a.anim.Spin[1]})
	}
}
