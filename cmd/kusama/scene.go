package main

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"kusama-scene/bubbles"
	"kusama-scene/config"
	"kusama-scene/core"
	"kusama-scene/internal/logger"
	"kusama-scene/materials"
	"kusama-scene/math"
	"kusama-scene/scene"
	"kusama-scene/textures"
)

// world is everything the frame loop touches.
type world struct {
	Scene    *scene.Scene
	Room     *scene.Node
	RoomTex  *scene.Texture
	Groups   []*bubbles.Group
	Animator *bubbles.Animator
}

// buildWorld assembles the room, lights and bubble groups. The room texture
// consumes the random stream before the groups do.
func buildWorld(rng *rand.Rand, cfg config.Config, aspect float32) (*world, error) {
	s := scene.NewScene()

	cam := scene.NewCamera(cfg.Camera.FOV, aspect, cfg.Camera.Near, cfg.Camera.Far)
	p := cfg.Camera.Position
	cam.SetPosition(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	cam.LookAt(math.Vec3Zero)
	s.SetCamera(cam)

	tex, stats := textures.NewRoomTexture(rng, cfg.Room)
	logger.Log.Debug("room texture painted",
		zap.Int("size", cfg.Room.TextureSize),
		zap.Int("erased", stats.Erased),
		zap.Int("filled", stats.Filled))

	roomGeo := scene.CreateSphere(cfg.Room.Radius, cfg.Room.Segments, cfg.Room.Segments)
	room := scene.NewMeshNode("room", scene.NewMesh("room", roomGeo, materials.Room(tex)))
	s.AddNode(room)

	for i, l := range cfg.Lights {
		c, err := core.ParseHexColor(l.Color)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(&scene.Light{
			Position:  math.Vec3{X: l.Position[0], Y: l.Position[1], Z: l.Position[2]},
			Color:     c,
			Intensity: l.Intensity,
		})
	}

	palette, err := bubbles.Palette(cfg.Bubble)
	if err != nil {
		return nil, err
	}
	groups := bubbles.Populate(rng, cfg, bubbles.NewGeometry(cfg.Bubble), palette)
	bubbles.Attach(s, groups)

	return &world{
		Scene:    s,
		Room:     room,
		RoomTex:  tex,
		Groups:   groups,
		Animator: bubbles.NewAnimator(room, groups, cfg),
	}, nil
}
