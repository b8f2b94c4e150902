package renderer

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/hopper/internal/engine/model"
)

// Device is the slice of the graphics API the resource manager drives.
type Device interface {
	CreateIndexBuffer(indices []uint32) uint32
	CreateTexture(img *image.RGBA) uint32
	// CreateVertexArray uploads the shared vertex buffer and describes the
	// vertex layout: slot 0 position, slot 1 normal, slot 2 texcoord.
	CreateVertexArray(vertices []model.Vertex) (vao, vbo uint32)
	DeleteBuffer(id uint32)
	DeleteTexture(id uint32)
	DeleteVertexArray(id uint32)
}

// GLDevice implements Device with OpenGL. It requires a current context.
type GLDevice struct{}

// NewGLDevice returns the OpenGL device.
func NewGLDevice() GLDevice {
	return GLDevice{}
}

// CreateIndexBuffer uploads indices into a static buffer.
func (GLDevice) CreateIndexBuffer(indices []uint32) uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	// Buffers are typeless; uploading through ARRAY_BUFFER avoids touching
	// element-array state while no vertex array is bound.
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	if len(indices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return id
}

// CreateTexture uploads an RGBA image with mipmaps and repeat wrapping.
func (GLDevice) CreateTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 8.0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}

// CreateVertexArray uploads the vertex pool and configures attributes.
func (GLDevice) CreateVertexArray(vertices []model.Vertex) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*model.VertexStride, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, model.VertexStride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, model.VertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, model.VertexStride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// DeleteBuffer deletes a buffer object.
func (GLDevice) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

// DeleteTexture deletes a texture object.
func (GLDevice) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

// DeleteVertexArray deletes a vertex array object.
func (GLDevice) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}
