// Package model imports mesh assets into primitives that share one vertex pool.
package model

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved vertex layout uploaded to the GPU as-is.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = 8 * 4

// DefaultNormal is used when the source has no normals.
var DefaultNormal = [3]float32{0, 1, 0}

// Material is the importer-side material: a base color and an optional
// decoded base-color texture.
type Material struct {
	Color   mgl32.Vec3
	Texture *image.RGBA
}

// HasTexture reports whether the material carries a texture.
func (m Material) HasTexture() bool {
	return m.Texture != nil
}

// Primitive is one drawable part of an imported mesh. Indices are already
// offset into the shared vertex pool.
type Primitive struct {
	Indices   []uint32
	Transform mgl32.Mat4
	Material  Material
}

// MaxIndex returns the largest index, or -1 when there are none.
func (p *Primitive) MaxIndex() int64 {
	max := int64(-1)
	for _, i := range p.Indices {
		if int64(i) > max {
			max = int64(i)
		}
	}
	return max
}

// Mesh is an imported asset: its primitives and their bounds in mesh space.
type Mesh struct {
	Primitives []Primitive
	Bounds     Bounds
}

// Bounds is an axis-aligned box. An empty Bounds has Min > Max.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns bounds that contain nothing.
func EmptyBounds() Bounds {
	inf := float32(math.Inf(1))
	return Bounds{
		Min: [3]float32{inf, inf, inf},
		Max: [3]float32{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point was ever added.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0]
}

// Extend grows the bounds to contain p.
func (b *Bounds) Extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Transform returns the bounds of the eight corners transformed by m.
func (b Bounds) Transform(m mgl32.Mat4) Bounds {
	out := EmptyBounds()
	if b.IsEmpty() {
		return out
	}
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out.Extend(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// Union returns bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.IsEmpty() {
		return b
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
	return b
}

// VertexPool is the append-only vertex store shared by every imported mesh.
type VertexPool struct {
	vertices []Vertex
}

// Len returns the number of vertices. It is the offset applied to the
// indices of the next primitive.
func (p *VertexPool) Len() int {
	return len(p.vertices)
}

// Append adds vertices to the end of the pool.
func (p *VertexPool) Append(vs ...Vertex) {
	p.vertices = append(p.vertices, vs...)
}

// Vertices returns the pool contents.
func (p *VertexPool) Vertices() []Vertex {
	return p.vertices
}

// Release drops the host copy once it has been uploaded.
func (p *VertexPool) Release() {
	p.vertices = nil
}
