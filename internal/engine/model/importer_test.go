package model

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// docBuilder packs accessors into a single in-memory buffer.
type docBuilder struct {
	doc *gltf.Document
	buf bytes.Buffer
}

func newDocBuilder() *docBuilder {
	return &docBuilder{doc: &gltf.Document{}}
}

func (b *docBuilder) view(data any) int {
	offset := b.buf.Len()
	if err := binary.Write(&b.buf, binary.LittleEndian, data); err != nil {
		panic(err)
	}
	// Keep every view 4-byte aligned.
	for b.buf.Len()%4 != 0 {
		b.buf.WriteByte(0)
	}
	b.doc.BufferViews = append(b.doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: binary.Size(data),
	})
	return len(b.doc.BufferViews) - 1
}

func (b *docBuilder) accessor(data any, ct gltf.ComponentType, at gltf.AccessorType, count int) int {
	v := b.view(data)
	b.doc.Accessors = append(b.doc.Accessors, &gltf.Accessor{
		BufferView:    gltf.Index(v),
		ComponentType: ct,
		Type:          at,
		Count:         count,
	})
	return len(b.doc.Accessors) - 1
}

func (b *docBuilder) triangle(indexType gltf.ComponentType) *gltf.Primitive {
	pos := b.accessor([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, gltf.ComponentFloat, gltf.AccessorVec3, 3)
	var idx int
	switch indexType {
	case gltf.ComponentUbyte:
		idx = b.accessor([]uint8{0, 1, 2}, indexType, gltf.AccessorScalar, 3)
	case gltf.ComponentUint:
		idx = b.accessor([]uint32{0, 1, 2}, indexType, gltf.AccessorScalar, 3)
	default:
		idx = b.accessor([]uint16{0, 1, 2}, indexType, gltf.AccessorScalar, 3)
	}
	return &gltf.Primitive{
		Attributes: map[string]int{gltf.POSITION: pos},
		Indices:    gltf.Index(idx),
	}
}

func (b *docBuilder) build() *gltf.Document {
	data := b.buf.Bytes()
	b.doc.Buffers = []*gltf.Buffer{{ByteLength: len(data), Data: data}}
	return b.doc
}

func TestImportOffsetsIndicesIntoPool(t *testing.T) {
	b := newDocBuilder()
	b.doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{b.triangle(gltf.ComponentUshort)}}}
	b.doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0), Translation: [3]float64{1, 2, 3}}}
	b.doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}
	doc := b.build()

	pool := &VertexPool{}
	pool.Append(make([]Vertex, 5)...)

	mesh, err := ImportDocument(doc, "", pool)
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if len(mesh.Primitives) != 1 {
		t.Fatalf("expected 1 primitive, got %d", len(mesh.Primitives))
	}

	prim := mesh.Primitives[0]
	want := []uint32{5, 6, 7}
	for i, v := range want {
		if prim.Indices[i] != v {
			t.Errorf("index %d = %d, want %d", i, prim.Indices[i], v)
		}
	}
	if pool.Len() != 8 {
		t.Errorf("pool length = %d, want 8", pool.Len())
	}
	if got := pool.Vertices()[5].Normal; got != DefaultNormal {
		t.Errorf("missing normals should default to +Y, got %v", got)
	}
	if !prim.Transform.ApproxEqual(mgl32.Translate3D(1, 2, 3)) {
		t.Errorf("unexpected transform %v", prim.Transform)
	}
	if prim.Material.HasTexture() || prim.Material.Color != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("expected untextured white material, got %+v", prim.Material)
	}
	if mesh.Bounds.Min != [3]float32{1, 2, 3} || mesh.Bounds.Max != [3]float32{2, 3, 3} {
		t.Errorf("unexpected bounds %+v", mesh.Bounds)
	}
}

func TestImportInheritsParentTransform(t *testing.T) {
	b := newDocBuilder()
	b.doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{b.triangle(gltf.ComponentUint)}}}
	b.doc.Nodes = []*gltf.Node{
		{Children: []int{1}, Scale: [3]float64{2, 2, 2}},
		{Mesh: gltf.Index(0), Translation: [3]float64{1, 0, 0}},
	}
	b.doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}

	mesh, err := ImportDocument(b.build(), "", &VertexPool{})
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}

	origin := mgl32.TransformCoordinate(mgl32.Vec3{}, mesh.Primitives[0].Transform)
	if !origin.ApproxEqual(mgl32.Vec3{2, 0, 0}) {
		t.Errorf("child origin = %v, want (2, 0, 0)", origin)
	}
}

func TestImportSkipsByteIndices(t *testing.T) {
	b := newDocBuilder()
	b.doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{
		b.triangle(gltf.ComponentUbyte),
		b.triangle(gltf.ComponentUshort),
	}}}
	b.doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	b.doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}

	pool := &VertexPool{}
	mesh, err := ImportDocument(b.build(), "", pool)
	if !errors.Is(err, ErrIndexType) {
		t.Fatalf("expected ErrIndexType, got %v", err)
	}
	if len(mesh.Primitives) != 1 {
		t.Fatalf("expected the valid primitive to survive, got %d", len(mesh.Primitives))
	}
	// The skipped primitive contributes no vertices.
	if pool.Len() != 3 {
		t.Errorf("pool length = %d, want 3", pool.Len())
	}
	if mesh.Primitives[0].Indices[0] != 0 {
		t.Errorf("first index = %d, want 0", mesh.Primitives[0].Indices[0])
	}
}

func TestImportMaterialTexture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{G: 255, A: 255})
	var png1 bytes.Buffer
	if err := png.Encode(&png1, img); err != nil {
		t.Fatal(err)
	}

	b := newDocBuilder()
	prim := b.triangle(gltf.ComponentUshort)
	prim.Material = gltf.Index(0)
	imgView := b.view(png1.Bytes())
	b.doc.Images = []*gltf.Image{{BufferView: gltf.Index(imgView), MimeType: "image/png"}}
	b.doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
	b.doc.Materials = []*gltf.Material{{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor:  &[4]float64{0.5, 0.25, 1, 1},
			BaseColorTexture: &gltf.TextureInfo{Index: 0},
		},
	}}
	b.doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{prim}}}
	b.doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	b.doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}

	mesh, err := ImportDocument(b.build(), "", &VertexPool{})
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}

	mat := mesh.Primitives[0].Material
	if !mat.HasTexture() {
		t.Fatal("expected a decoded texture")
	}
	if got := mat.Texture.RGBAAt(0, 0); got.G != 255 {
		t.Errorf("texel = %v", got)
	}
	if mat.Color != (mgl32.Vec3{0.5, 0.25, 1}) {
		t.Errorf("color = %v", mat.Color)
	}
}

func TestImportMissingFile(t *testing.T) {
	pool := &VertexPool{}
	mesh, err := NewGLTFImporter().Import(filepath.Join(t.TempDir(), "missing.glb"), pool)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if mesh == nil || len(mesh.Primitives) != 0 {
		t.Errorf("expected empty mesh, got %+v", mesh)
	}
	if pool.Len() != 0 {
		t.Errorf("pool touched on failure")
	}
}

func TestImportNodeCycle(t *testing.T) {
	doc := &gltf.Document{
		Nodes:  []*gltf.Node{{Children: []int{1}}, {Children: []int{0}}},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
	}
	if _, err := ImportDocument(doc, "", &VertexPool{}); err == nil {
		t.Error("expected cycle error")
	}
}

func TestBoundsTransform(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("EmptyBounds should be empty")
	}
	b.Extend([3]float32{-1, -1, -1})
	b.Extend([3]float32{1, 1, 1})

	moved := b.Transform(mgl32.Translate3D(10, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2)))
	if moved.Min != [3]float32{8, -2, -2} || moved.Max != [3]float32{12, 2, 2} {
		t.Errorf("unexpected transformed bounds %+v", moved)
	}

	u := EmptyBounds().Union(b)
	if u != b {
		t.Errorf("union with empty = %+v", u)
	}
}
