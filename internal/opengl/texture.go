package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"kusama-scene/scene"
)

// UploadTexture uploads a scene.Texture to the GPU and sets its GLID field.
// Call this from the main goroutine (OpenGL context must be current).
// Colour textures (SRGB set) are stored as SRGB8_ALPHA8 so sampling returns
// linear values.
func UploadTexture(tex *scene.Texture) error {
	if tex == nil {
		return fmt.Errorf("nil texture")
	}
	if len(tex.Pixels) == 0 {
		return fmt.Errorf("texture %q has no pixel data", tex.Name)
	}
	if len(tex.Pixels) < tex.Width*tex.Height*4 {
		return fmt.Errorf("texture %q: %d bytes for %dx%d RGBA", tex.Name, len(tex.Pixels), tex.Width, tex.Height)
	}

	internal := int32(gl.RGBA8)
	if tex.SRGB {
		internal = gl.SRGB8_ALPHA8
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		internal,
		int32(tex.Width),
		int32(tex.Height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		unsafe.Pointer(&tex.Pixels[0]),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	tex.GLID = id
	return nil
}

// DeleteTexture frees a previously uploaded GPU texture and zeroes its GLID.
func DeleteTexture(tex *scene.Texture) {
	if tex == nil || tex.GLID == 0 {
		return
	}
	gl.DeleteTextures(1, &tex.GLID)
	tex.GLID = 0
}

// UploadEnvironment uploads an equirectangular float map as a mipmapped
// RGB16F texture. Rougher surfaces sample higher mip levels.
func UploadEnvironment(env *scene.EnvironmentMap) error {
	if env == nil {
		return fmt.Errorf("nil environment map")
	}
	if env.Width < 1 || env.Height < 1 || len(env.Pixels) < env.Width*env.Height*3 {
		return fmt.Errorf("environment %q: %d floats for %dx%d RGB", env.Name, len(env.Pixels), env.Width, env.Height)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGB16F,
		int32(env.Width),
		int32(env.Height),
		0,
		gl.RGB,
		gl.FLOAT,
		unsafe.Pointer(&env.Pixels[0]),
	)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	env.GLID = id
	return nil
}

// DeleteEnvironment frees an uploaded environment map.
func DeleteEnvironment(env *scene.EnvironmentMap) {
	if env == nil || env.GLID == 0 {
		return
	}
	gl.DeleteTextures(1, &env.GLID)
	env.GLID = 0
}
