// Package io moves scene data in and out of the process: the remote HDR
// environment and glTF snapshots of the bubble layout.
package io

import (
	"kusama-scene/core"
	"kusama-scene/math"
)

func vec3ToArray(v math.Vec3) [3]float64 {
	return [3]float64{float64(v.X), float64(v.Y), float64(v.Z)}
}

func quatToArray(q math.Quaternion) [4]float64 {
	return [4]float64{float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)}
}

func colorToArray(c core.Color) [4]float64 {
	return [4]float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
}

// clampRGB limits each channel to [0, 1], as glTF colour factors require.
func clampRGB(c core.Color) [3]float64 {
	clamp := func(v float32) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return float64(v)
	}
	return [3]float64{clamp(c.R), clamp(c.G), clamp(c.B)}
}
