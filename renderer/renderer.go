package renderer

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"kusama-scene/config"
	"kusama-scene/core"
	"kusama-scene/internal/logger"
	"kusama-scene/internal/opengl"
	"kusama-scene/math"
	"kusama-scene/scene"
)

// RenderEngine is the high-level renderer that drives the OpenGL backend.
type RenderEngine struct {
	gl             *opengl.Renderer
	window         *core.Window
	Scene          *scene.Scene
	FrustumCulling bool
	BloomEnabled   bool

	surface Surface

	// Per-frame stats (populated during Render)
	lastObjects   int
	lastTriangles int
	lastCulled    int

	transparent []drawItem
}

type drawItem struct {
	node  *scene.Node
	model math.Mat4
	depth float32 // view-space distance along the camera forward axis
}

// NewRenderEngine creates the GL backend for window and sets up the HDR
// chain with bloom. A bloom failure is logged and rendering continues
// without it.
func NewRenderEngine(window *core.Window, cfg config.Config) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	re := &RenderEngine{
		gl:             glRenderer,
		window:         window,
		FrustumCulling: true,
		surface:        Surface{MaxPixelRatio: cfg.Window.MaxPixelRatio},
	}
	re.surface.Resize(window.Width, window.Height, window.DevicePixelRatio())

	fbw, fbh := window.GetFramebufferSize()
	glRenderer.SetViewport(fbw, fbh)

	if err := glRenderer.EnablePostProcess(re.surface.PixelWidth, re.surface.PixelHeight); err != nil {
		glRenderer.Destroy()
		return nil, fmt.Errorf("post-process: %w", err)
	}
	glRenderer.SetExposure(cfg.Bloom.Exposure)

	if err := glRenderer.EnableBloom(cfg.Bloom.Strength, cfg.Bloom.Radius, cfg.Bloom.Threshold); err != nil {
		logger.Log.Warn("bloom unavailable", zap.Error(err))
	} else {
		re.BloomEnabled = true
	}

	logger.Log.Info("render engine initialized",
		zap.Int("width", re.surface.PixelWidth),
		zap.Int("height", re.surface.PixelHeight),
		zap.Bool("bloom", re.BloomEnabled))
	return re, nil
}

func (re *RenderEngine) SetScene(s *scene.Scene) {
	re.Scene = s
	if s != nil && s.Camera != nil {
		s.Camera.UpdateAspectRatio(float32(re.surface.Width), float32(re.surface.Height))
	}
}

// Render draws the scene into the HDR target: opaque nodes first, then
// transparent nodes back to front.
func (re *RenderEngine) Render() error {
	if re.Scene == nil || re.Scene.Camera == nil {
		return fmt.Errorf("no scene or camera")
	}
	cam := re.Scene.Camera

	re.gl.BeginFrame(re.Scene.Background, re.Scene.Lights, cam.Position, re.Scene.Environment)

	view := cam.GetViewMatrix()
	proj := cam.GetProjectionMatrix()
	frustum := scene.FrustumFromVP(view.Mul(proj))
	forward := cam.GetForward()

	objects, triangles, culled := 0, 0, 0
	re.transparent = re.transparent[:0]

	for _, node := range re.Scene.GetVisibleNodes() {
		geo := node.Mesh.Geometry
		if geo == nil {
			continue
		}
		model := node.GetWorldMatrix()

		if re.FrustumCulling {
			aabb := scene.ComputeAABB(geo, model)
			if !aabb.IntersectsFrustum(&frustum) {
				culled++
				continue
			}
		}

		objects++
		triangles += geo.TriangleCount()

		if mat := node.Mesh.Material; mat != nil && mat.IsTransparent() {
			depth := model.Translation().Sub(cam.Position).Dot(forward)
			re.transparent = append(re.transparent, drawItem{node: node, model: model, depth: depth})
			continue
		}
		re.gl.DrawMesh(node.Mesh, model.Mul(view).Mul(proj), model)
	}

	sortBackToFront(re.transparent)
	for _, it := range re.transparent {
		re.gl.DrawMesh(it.node.Mesh, it.model.Mul(view).Mul(proj), it.model)
	}

	re.lastObjects = objects
	re.lastTriangles = triangles
	re.lastCulled = culled
	return nil
}

// sortBackToFront orders items farthest first. Equal depths keep scene
// order.
func sortBackToFront(items []drawItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].depth > items[j].depth
	})
}

// Present resolves the HDR FBO (bloom, tone mapping) to the default
// framebuffer and swaps buffers.
func (re *RenderEngine) Present() {
	re.gl.BlitPostProcess()
	re.window.SwapBuffers()
}

// Resize adapts the camera and render targets to a window of width×height
// units. Calling it again with the same size changes nothing.
func (re *RenderEngine) Resize(width, height int) {
	if !re.surface.Resize(width, height, re.window.DevicePixelRatio()) {
		return
	}
	fbw, fbh := re.window.GetFramebufferSize()
	re.gl.SetViewport(fbw, fbh)
	re.gl.ResizePostProcess(re.surface.PixelWidth, re.surface.PixelHeight)
	if re.Scene != nil && re.Scene.Camera != nil {
		re.Scene.Camera.UpdateAspectRatio(float32(width), float32(height))
	}
	logger.Log.Debug("resized",
		zap.Int("width", width), zap.Int("height", height),
		zap.Int("pixel_width", re.surface.PixelWidth),
		zap.Int("pixel_height", re.surface.PixelHeight))
}

// UploadTexture uploads a texture to the GPU. Must be called from the main thread.
func (re *RenderEngine) UploadTexture(tex *scene.Texture) error {
	return opengl.UploadTexture(tex)
}

// UploadEnvironment uploads an environment map. Must be called from the
// main thread.
func (re *RenderEngine) UploadEnvironment(env *scene.EnvironmentMap) error {
	return opengl.UploadEnvironment(env)
}

func (re *RenderEngine) Destroy() {
	if re.Scene != nil {
		opengl.DeleteEnvironment(re.Scene.Environment)
		re.Scene.Root.Traverse(func(n *scene.Node) {
			if n.Mesh != nil && n.Mesh.Material != nil {
				opengl.DeleteTexture(n.Mesh.Material.AlbedoTexture)
			}
		})
	}
	re.gl.Destroy()
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() (objects, triangles, culled int) {
	return re.lastObjects, re.lastTriangles, re.lastCulled
}
