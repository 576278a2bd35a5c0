package opengl

import (
	"fmt"
	gomath "math"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"kusama-scene/core"
	"kusama-scene/internal/logger"
	"kusama-scene/materials"
	"kusama-scene/math"
	"kusama-scene/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded geometry.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	program uint32

	// Vertex transform uniforms
	mvpLoc   int32
	modelLoc int32

	// Lighting
	cameraPosLoc           int32
	ambientColorLoc        int32
	pointLightCountLoc     int32
	pointLightPosLoc       [maxPointLights]int32
	pointLightColorLoc     [maxPointLights]int32
	pointLightIntensityLoc [maxPointLights]int32

	// Material
	matAlbedoLoc        int32
	matEmissiveLoc      int32
	matAttenuationLoc   int32
	matSpecularColorLoc int32
	matRoughnessLoc     int32
	matMetallicLoc      int32
	matTransmissionLoc  int32
	matIORLoc           int32
	matThicknessLoc     int32
	matDispersionLoc    int32
	matSpecularLoc      int32
	matF0Loc            int32
	unlitLoc            int32

	// Textures: albedo=0, environment=1
	albedoTexLoc  int32
	hasTextureLoc int32
	envMapLoc     int32
	hasEnvLoc     int32
	envMaxLodLoc  int32

	postProcess *PostProcessFBO

	viewportW int32
	viewportH int32

	gpuMeshes map[*scene.Geometry]*GPUMesh
}

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Log.Info("OpenGL initialised",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)

	loc := func(name string) int32 {
		return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
	}

	r := &Renderer{
		program: prog,

		mvpLoc:   loc("mvp"),
		modelLoc: loc("model"),

		cameraPosLoc:       loc("cameraPos"),
		ambientColorLoc:    loc("ambientColor"),
		pointLightCountLoc: loc("pointLightCount"),

		matAlbedoLoc:        loc("matAlbedo"),
		matEmissiveLoc:      loc("matEmissive"),
		matAttenuationLoc:   loc("matAttenuation"),
		matSpecularColorLoc: loc("matSpecularColor"),
		matRoughnessLoc:     loc("matRoughness"),
		matMetallicLoc:      loc("matMetallic"),
		matTransmissionLoc:  loc("matTransmission"),
		matIORLoc:           loc("matIOR"),
		matThicknessLoc:     loc("matThickness"),
		matDispersionLoc:    loc("matDispersion"),
		matSpecularLoc:      loc("matSpecular"),
		matF0Loc:            loc("matF0"),
		unlitLoc:            loc("unlit"),

		albedoTexLoc:  loc("albedoTex"),
		hasTextureLoc: loc("hasTexture"),
		envMapLoc:     loc("envMap"),
		hasEnvLoc:     loc("hasEnv"),
		envMaxLodLoc:  loc("envMaxLod"),

		gpuMeshes: make(map[*scene.Geometry]*GPUMesh),
	}

	for i := 0; i < maxPointLights; i++ {
		r.pointLightPosLoc[i] = loc(fmt.Sprintf("pointLightPos[%d]", i))
		r.pointLightColorLoc[i] = loc(fmt.Sprintf("pointLightColor[%d]", i))
		r.pointLightIntensityLoc[i] = loc(fmt.Sprintf("pointLightIntensity[%d]", i))
	}

	gl.UseProgram(prog)
	gl.Uniform1i(r.albedoTexLoc, 0)
	gl.Uniform1i(r.envMapLoc, 1)

	return r, nil
}

// ── Viewport ──────────────────────────────────────────────────────────────────

// SetViewport sets the size of the default framebuffer in pixels. The HDR
// target may be smaller when the pixel ratio is clamped.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ── Post-processing ───────────────────────────────────────────────────────────

// EnablePostProcess creates the HDR FBO at the given pixel size.
// Call once after NewRenderer; re-create on resize via ResizePostProcess.
func (r *Renderer) EnablePostProcess(width, height int) error {
	if r.postProcess != nil {
		r.postProcess.Destroy()
	}
	pp, err := NewPostProcessFBO(width, height)
	if err != nil {
		return err
	}
	r.postProcess = pp
	return nil
}

// HasPostProcess reports whether the HDR FBO is active.
func (r *Renderer) HasPostProcess() bool {
	return r.postProcess != nil
}

// ResizePostProcess reallocates the HDR and bloom targets. It reports
// whether anything was reallocated.
func (r *Renderer) ResizePostProcess(width, height int) bool {
	if r.postProcess == nil {
		return false
	}
	return r.postProcess.Resize(width, height)
}

// SetExposure sets the tone-mapping exposure.
func (r *Renderer) SetExposure(exp float32) {
	if r.postProcess != nil {
		r.postProcess.Exposure = exp
	}
}

// EnableBloom activates bloom on the post-process chain.
func (r *Renderer) EnableBloom(strength, radius, threshold float32) error {
	if r.postProcess == nil {
		return fmt.Errorf("EnableBloom: EnablePostProcess must be called first")
	}
	if err := r.postProcess.EnableBloom(); err != nil {
		return err
	}
	r.postProcess.BloomStrength = strength
	r.postProcess.BloomRadius = radius
	r.postProcess.BloomThreshold = threshold
	return nil
}

// BlitPostProcess resolves the HDR FBO over the whole viewport.
func (r *Renderer) BlitPostProcess() {
	if r.postProcess == nil {
		return
	}
	r.postProcess.Blit(r.viewportW, r.viewportH)
}

// ── Frame ─────────────────────────────────────────────────────────────────────

// BeginFrame binds the render target, clears it and uploads per-frame
// uniforms. env may be nil.
func (r *Renderer) BeginFrame(background core.Color, lights []*scene.Light, camPos math.Vec3, env *scene.EnvironmentMap) {
	if r.postProcess != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, r.postProcess.FBO)
		gl.Viewport(0, 0, r.postProcess.Width, r.postProcess.Height)
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, r.viewportW, r.viewportH)
	}
	gl.DepthMask(true)
	gl.ClearColor(background.R, background.G, background.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform3f(r.cameraPosLoc, camPos.X, camPos.Y, camPos.Z)

	if env != nil && env.GLID != 0 {
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, env.GLID)
		gl.Uniform1i(r.hasEnvLoc, 1)
		gl.Uniform1f(r.envMaxLodLoc, mipLevels(env.Width, env.Height)-1)
		// Diffuse surfaces pick up the mean sky radiance.
		gl.Uniform3f(r.ambientColorLoc, env.Mean[0], env.Mean[1], env.Mean[2])
	} else {
		gl.Uniform1i(r.hasEnvLoc, 0)
		gl.Uniform3f(r.ambientColorLoc, 0, 0, 0)
	}

	n := 0
	for _, l := range lights {
		if l == nil {
			continue
		}
		if n == maxPointLights {
			logger.Log.Debug("point light limit reached", zap.Int("limit", maxPointLights))
			break
		}
		gl.Uniform3f(r.pointLightPosLoc[n], l.Position.X, l.Position.Y, l.Position.Z)
		gl.Uniform3f(r.pointLightColorLoc[n], l.Color.R, l.Color.G, l.Color.B)
		gl.Uniform1f(r.pointLightIntensityLoc[n], l.Intensity)
		n++
	}
	gl.Uniform1i(r.pointLightCountLoc, int32(n))
}

// ── DrawMesh ──────────────────────────────────────────────────────────────────

// DrawMesh draws a mesh with the given MVP and model matrices. Raster state
// (culling, blending, depth writes) follows mesh.Material.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, mvp, model math.Mat4) {
	if mesh == nil || mesh.Geometry == nil {
		return
	}
	gpu := r.ensureUploaded(mesh.Geometry)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.program)
	mvpData, modelData := mvp.Flatten(), model.Flatten()
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvpData[0])
	gl.UniformMatrix4fv(r.modelLoc, 1, false, &modelData[0])

	mat := mesh.Material
	if mat == nil {
		mat = scene.DefaultMaterial()
	}
	r.applyMaterial(mat)

	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (r *Renderer) applyMaterial(mat *scene.Material) {
	u := materials.ToUniform(mat)

	gl.Uniform4f(r.matAlbedoLoc, u.Albedo[0], u.Albedo[1], u.Albedo[2], u.Albedo[3])
	gl.Uniform3f(r.matEmissiveLoc, u.Emissive[0], u.Emissive[1], u.Emissive[2])
	gl.Uniform3f(r.matAttenuationLoc, u.Attenuation[0], u.Attenuation[1], u.Attenuation[2])
	gl.Uniform3f(r.matSpecularColorLoc, u.SpecularColor[0], u.SpecularColor[1], u.SpecularColor[2])
	gl.Uniform1f(r.matRoughnessLoc, u.Roughness)
	gl.Uniform1f(r.matMetallicLoc, u.Metallic)
	gl.Uniform1f(r.matTransmissionLoc, u.Transmission)
	gl.Uniform1f(r.matIORLoc, u.IOR)
	gl.Uniform1f(r.matThicknessLoc, u.Thickness)
	gl.Uniform1f(r.matDispersionLoc, u.Dispersion)
	gl.Uniform1f(r.matSpecularLoc, u.Specular)
	gl.Uniform1f(r.matF0Loc, u.F0)
	gl.Uniform1i(r.unlitLoc, boolToInt32(u.Unlit))

	if tex := mat.AlbedoTexture; tex != nil && tex.GLID != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.GLID)
		gl.Uniform1i(r.hasTextureLoc, 1)
	} else {
		gl.Uniform1i(r.hasTextureLoc, 0)
	}

	switch mat.Side {
	case scene.SideBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	case scene.SideDouble:
		gl.Disable(gl.CULL_FACE)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	if mat.IsTransparent() {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	gl.DepthMask(mat.DepthWrite)
}

// ReleaseGeometry frees the GPU buffers of an uploaded geometry.
func (r *Renderer) ReleaseGeometry(geo *scene.Geometry) {
	if gpu, ok := r.gpuMeshes[geo]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteBuffers(1, &gpu.EBO)
		delete(r.gpuMeshes, geo)
		geo.GPUData = nil
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for geo := range r.gpuMeshes {
		r.ReleaseGeometry(geo)
	}
	if r.postProcess != nil {
		r.postProcess.Destroy()
	}
	gl.DeleteProgram(r.program)
}

// ensureUploaded creates the VAO for geo on first use. Geometries shared
// by several meshes are uploaded once.
func (r *Renderer) ensureUploaded(geo *scene.Geometry) *GPUMesh {
	if gpu, ok := r.gpuMeshes[geo]; ok {
		return gpu
	}
	if len(geo.Vertices) == 0 || len(geo.Indices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{IndexCount: int32(len(geo.Indices))}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(geo.Vertices)*int(stride),
		gl.Ptr(geo.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(geo.Indices)*4,
		gl.Ptr(geo.Indices),
		gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.gpuMeshes[geo] = gpu
	geo.GPUData = gpu
	logger.Log.Debug("geometry uploaded",
		zap.String("name", geo.Name),
		zap.Int("vertices", len(geo.Vertices)),
		zap.Int("triangles", geo.TriangleCount()))
	return gpu
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

// mipLevels is the length of a full mip chain for a w×h texture.
func mipLevels(w, h int) float32 {
	m := w
	if h > m {
		m = h
	}
	if m < 1 {
		return 1
	}
	return float32(gomath.Floor(gomath.Log2(float64(m)))) + 1
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
