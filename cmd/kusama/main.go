package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"kusama-scene/config"
	"kusama-scene/core"
	"kusama-scene/internal/logger"
	sceneio "kusama-scene/io"
	"kusama-scene/renderer"
	"kusama-scene/scene"
)

func main() {
	os.Exit(run())
}

func run() int {
	// KUSAMA_CONFIG overrides the config file location.
	cfg, cfgErr := config.Load(os.Getenv("KUSAMA_CONFIG"))

	if err := logger.Init(cfg.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer logger.Sync()
	log := logger.Log

	if cfgErr != nil {
		log.Warn("config unreadable, using defaults", zap.Error(cfgErr))
	}

	window, err := core.NewWindow(core.WindowConfig{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: true,
		VSync:     cfg.Window.VSync,
		Samples:   cfg.Window.Samples,
	})
	if err != nil {
		log.Error("window", zap.Error(err))
		return 1
	}
	defer window.Destroy()

	engine, err := renderer.NewRenderEngine(window, cfg)
	if err != nil {
		log.Error("renderer", zap.Error(err))
		return 1
	}
	defer engine.Destroy()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Info("building scene", zap.Int64("seed", seed))

	w, err := buildWorld(rng, cfg, float32(window.Width)/float32(window.Height))
	if err != nil {
		log.Error("scene", zap.Error(err))
		return 1
	}
	engine.SetScene(w.Scene)
	if err := engine.UploadTexture(w.RoomTex); err != nil {
		log.Error("room texture upload", zap.Error(err))
		return 1
	}

	controls := scene.NewOrbitControls(w.Scene.Camera)
	controls.DampingFactor = cfg.Camera.DampingFactor
	controls.MinDistance = cfg.Camera.MinDistance
	controls.MaxDistance = cfg.Camera.MaxDistance

	window.OnResize(engine.Resize)
	window.SetScrollCallback(func(_, yoff float64) {
		controls.Dolly(yoff)
	})
	window.OnKeyPress(func(key int) {
		switch key {
		case core.KeyEscape:
			window.Close()
		case core.KeyF5:
			if err := sceneio.ExportSnapshot(cfg.SnapshotPath, w.Groups); err != nil {
				log.Error("snapshot export failed", zap.String("path", cfg.SnapshotPath), zap.Error(err))
				return
			}
			log.Info("snapshot saved", zap.String("path", cfg.SnapshotPath), zap.Int("groups", len(w.Groups)))
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	envCh := sceneio.FetchEnvironmentAsync(ctx, cfg.Environment.URL,
		time.Duration(cfg.Environment.TimeoutSeconds)*time.Second)

	start := core.Time()
	fpsStart := start
	frames := 0

	for !window.ShouldClose() {
		window.PollEvents()

		select {
		case env, ok := <-envCh:
			if ok {
				attachEnvironment(engine, w.Scene, env)
			}
			envCh = nil
		default:
		}

		x, y := window.GetCursorPos()
		controls.Drag(x, y, window.IsMouseButtonPressed(core.MouseButtonLeft), window.Height)

		now := core.Time()
		w.Animator.Step(now - start)
		controls.Update()

		if err := engine.Render(); err != nil {
			log.Error("render", zap.Error(err))
			return 1
		}
		engine.Present()

		frames++
		if elapsed := now - fpsStart; elapsed >= 1 {
			fps := float64(frames) / elapsed
			objects, triangles, culled := engine.DrawStats()
			window.SetTitle(fmt.Sprintf("%s | %.0f FPS", cfg.Window.Title, fps))
			log.Debug("frame stats",
				zap.Float64("fps", fps),
				zap.Int("objects", objects),
				zap.Int("triangles", triangles),
				zap.Int("culled", culled))
			frames = 0
			fpsStart = now
		}
	}
	return 0
}

// attachEnvironment uploads env on the GL thread and assigns it once.
func attachEnvironment(engine *renderer.RenderEngine, s *scene.Scene, env *scene.EnvironmentMap) {
	if err := engine.UploadEnvironment(env); err != nil {
		logger.Log.Warn("environment upload failed", zap.Error(err))
		return
	}
	s.SetEnvironment(env)
}
