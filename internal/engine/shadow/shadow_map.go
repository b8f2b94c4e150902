// Package shadow renders the sun's depth map and fits its frustum to the
// scene.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DefaultResolution is used when no resolution is configured.
const DefaultResolution = 1024

// Map is a square depth-only render target sampled with sampler2DShadow.
type Map struct {
	fbo   uint32
	depth uint32
	size  int32

	saved [4]int32 // viewport active before Begin
}

// depthParams make lookups outside the light frustum read as lit and enable
// hardware depth comparison.
var depthParams = [...]struct {
	name  uint32
	value int32
}{
	{gl.TEXTURE_MIN_FILTER, gl.LINEAR},
	{gl.TEXTURE_MAG_FILTER, gl.LINEAR},
	{gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER},
	{gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER},
	{gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE},
	{gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL},
}

// MapSize rounds requested up to a power of two no larger than limit.
// Non-positive requests use DefaultResolution; limit <= 0 means no cap.
func MapSize(requested, limit int32) int32 {
	if requested <= 0 {
		requested = DefaultResolution
	}
	size := int32(1)
	for size < requested && size < 1<<30 {
		size <<= 1
	}
	for limit > 0 && size > limit {
		size >>= 1
	}
	return size
}

// NewMap allocates a depth map of about resolution texels per side.
func NewMap(resolution int32) (*Map, error) {
	var limit int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &limit)

	m := &Map{size: MapSize(resolution, limit)}

	gl.GenTextures(1, &m.depth)
	gl.BindTexture(gl.TEXTURE_2D, m.depth)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, m.size, m.size, 0,
		gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	for _, p := range depthParams {
		gl.TexParameteri(gl.TEXTURE_2D, p.name, p.value)
	}
	white := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &white[0])
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &m.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, m.depth, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		m.Destroy()
		return nil, fmt.Errorf("shadow map %dx%d: framebuffer status 0x%x", m.size, m.size, status)
	}
	return m, nil
}

// Size returns the texels per side.
func (m *Map) Size() int32 {
	return m.size
}

// Begin targets the depth map and clears it. Front faces are culled while
// it is bound to keep acne off lit surfaces.
func (m *Map) Begin() {
	gl.GetIntegerv(gl.VIEWPORT, &m.saved[0])
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.Viewport(0, 0, m.size, m.size)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
}

// End restores the default framebuffer, the saved viewport and back-face
// culling.
func (m *Map) End() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(m.saved[0], m.saved[1], m.saved[2], m.saved[3])
	gl.CullFace(gl.BACK)
}

// Sample binds the depth texture to unit.
func (m *Map) Sample(unit uint32) {
	gl.ActiveTexture(unit)
	gl.BindTexture(gl.TEXTURE_2D, m.depth)
}

// Destroy releases the texture and framebuffer. It is safe to call twice.
func (m *Map) Destroy() {
	if m.fbo != 0 {
		gl.DeleteFramebuffers(1, &m.fbo)
		m.fbo = 0
	}
	if m.depth != 0 {
		gl.DeleteTextures(1, &m.depth)
		m.depth = 0
	}
}
